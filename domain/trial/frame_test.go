package trial

import (
	"testing"
)

func makeFrame(trialTypes []string, values []float64) *Frame {
	records := make([]Record, len(trialTypes))
	for i := range trialTypes {
		records[i] = Record{
			"trialtype": NewCategoricalValue(trialTypes[i]),
			"movdist":   NewNumericValue(values[i]),
		}
	}
	return NewFrame([]string{"trialtype", "movdist"}, records)
}

// TestDistinctStringsFirstOccurrenceOrder tests that partitioning order
// follows the dataset, not a sort
func TestDistinctStringsFirstOccurrenceOrder(t *testing.T) {
	f := makeFrame([]string{"timed", "free", "timed", "anchor", "free"}, []float64{1, 2, 3, 4, 5})

	got := f.DistinctStrings("trialtype")
	want := []string{"timed", "free", "anchor"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// TestFilterLeavesSourceUntouched tests that filtering builds a new frame
func TestFilterLeavesSourceUntouched(t *testing.T) {
	f := makeFrame([]string{"a", "b", "a"}, []float64{1, 2, 3})

	filtered := f.Filter(func(rec Record) bool {
		return rec["trialtype"].String() == "a"
	})

	if filtered.Len() != 2 {
		t.Errorf("expected 2 filtered records, got %d", filtered.Len())
	}
	if f.Len() != 3 {
		t.Errorf("source frame mutated: expected 3 records, got %d", f.Len())
	}
}

// TestPairedFloatsSkipsNonNumericRows tests row alignment across columns
func TestPairedFloatsSkipsNonNumericRows(t *testing.T) {
	records := []Record{
		{"x": NewNumericValue(1), "y": NewNumericValue(10)},
		{"x": NewMissingValue(), "y": NewNumericValue(20)},
		{"x": NewNumericValue(3), "y": NewNumericValue(30)},
	}
	f := NewFrame([]string{"x", "y"}, records)

	xs, ys, err := f.PairedFloats("x", "y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(xs) != 2 || len(ys) != 2 {
		t.Fatalf("expected 2 aligned pairs, got %d/%d", len(xs), len(ys))
	}
	if xs[1] != 3 || ys[1] != 30 {
		t.Errorf("rows misaligned: %v %v", xs, ys)
	}

	if _, _, err := f.PairedFloats("x", "nope"); err == nil {
		t.Error("expected error for unknown column")
	}
}

// TestMissingRatio tests the missing-cell fraction
func TestMissingRatio(t *testing.T) {
	records := []Record{
		{"x": NewNumericValue(1)},
		{"x": NewMissingValue()},
		{"x": NewMissingValue()},
		{"x": NewNumericValue(4)},
	}
	f := NewFrame([]string{"x"}, records)

	if ratio := f.MissingRatio("x"); ratio != 0.5 {
		t.Errorf("expected ratio 0.5, got %v", ratio)
	}
}

// TestValueCoercion tests numeric reading of categorical cells
func TestValueCoercion(t *testing.T) {
	if _, ok := NewCategoricalValue("3.14").Float(); !ok {
		t.Error("numeric string should coerce to float")
	}
	if _, ok := NewCategoricalValue("abc").Float(); ok {
		t.Error("non-numeric string should not coerce")
	}
	if _, ok := NewMissingValue().Float(); ok {
		t.Error("missing value should not coerce")
	}
}

// TestSchemaRequiredCols tests the default study layout
func TestSchemaRequiredCols(t *testing.T) {
	s := DefaultSchema()

	required := s.RequiredCols()
	want := []string{"movdist", "force", "stoplatency", "repduration", "error", "abserror", "trialtype"}
	if len(required) != len(want) {
		t.Fatalf("expected %d required columns, got %d: %v", len(want), len(required), required)
	}
	for i := range want {
		if required[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], required[i])
		}
	}

	if s.Label("movdist") != "Movement Distance" {
		t.Errorf("unexpected label: %s", s.Label("movdist"))
	}
	if s.Label("unknown") != "unknown" {
		t.Error("labels should fall back to the column name")
	}
}

// TestSchemaRejectsIncompleteConfig tests constructor validation
func TestSchemaRejectsIncompleteConfig(t *testing.T) {
	_, err := NewSchema(SchemaConfig{
		MovementCols: []string{"movdist"},
		ErrorCols:    []string{"error"},
		ResponseCol:  "repduration",
		// TrialTypeCol missing
	})
	if err == nil {
		t.Error("expected error for missing trial type column")
	}

	_, err = NewSchema(SchemaConfig{
		MovementCols: []string{"movdist"},
		ErrorCols:    []string{"movdist"},
		ResponseCol:  "repduration",
		TrialTypeCol: "trialtype",
	})
	if err == nil {
		t.Error("expected error for duplicate column")
	}
}
