package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movelab/domain/trial"
)

// cascadeSchema orders the numeric columns a, r, e for outlier removal
func cascadeSchema(t *testing.T) *trial.Schema {
	t.Helper()
	s, err := trial.NewSchema(trial.SchemaConfig{
		MovementCols: []string{"a"},
		ErrorCols:    []string{"e"},
		ResponseCol:  "r",
		TrialTypeCol: "trialtype",
	})
	require.NoError(t, err)
	return s
}

func numericFrame(cols []string, rows [][]float64) *trial.Frame {
	columns := append(append([]string{}, cols...), "trialtype")
	records := make([]trial.Record, len(rows))
	for i, row := range rows {
		rec := trial.Record{"trialtype": trial.NewCategoricalValue("timed")}
		for j, col := range cols {
			rec[col] = trial.NewNumericValue(row[j])
		}
		records[i] = rec
	}
	return trial.NewFrame(columns, records)
}

func TestImputationFillsNumericMedian(t *testing.T) {
	s := cascadeSchema(t)
	frame := numericFrame([]string{"a", "r", "e"}, [][]float64{
		{1, 1, 0}, {2, 1, 0}, {3, 1, 0}, {100, 1, 0},
	})
	frame.Record(1)["a"] = trial.NewMissingValue() // observed a: 1, 3, 100

	imputed := New(nil).Impute(frame, s)

	v, ok := imputed.Value(1, "a").Float()
	require.True(t, ok, "missing cell should be filled")
	assert.InDelta(t, 3.0, v, 1e-9, "median of {1,3,100} is 3")
	assert.Equal(t, 0.0, imputed.MissingRatio("a"))

	// Source frame stays untouched
	assert.True(t, frame.Value(1, "a").IsMissing())
}

func TestImputationIsIdempotent(t *testing.T) {
	s := cascadeSchema(t)
	frame := numericFrame([]string{"a", "r", "e"}, [][]float64{
		{1, 1, 0}, {2, 1, 0}, {3, 1, 0}, {4, 1, 0}, {100, 1, 0},
	})
	frame.Record(3)["a"] = trial.NewMissingValue()

	p := New(nil)
	once := p.Impute(frame, s)
	twice := p.Impute(once, s)

	require.Equal(t, once.Len(), twice.Len())
	for i := 0; i < once.Len(); i++ {
		for _, col := range []string{"a", "r", "e"} {
			assert.True(t, once.Value(i, col).Equal(twice.Value(i, col)),
				"re-imputation changed row %d column %s", i, col)
		}
	}
}

func TestImputationFillsCategoricalMode(t *testing.T) {
	s, err := trial.NewSchema(trial.SchemaConfig{
		MovementCols: []string{"a"},
		ErrorCols:    []string{"e"},
		ResponseCol:  "r",
		TrialTypeCol: "trialtype",
		Categorical:  []string{"hand"},
	})
	require.NoError(t, err)

	records := []trial.Record{
		{"a": trial.NewNumericValue(1), "r": trial.NewNumericValue(1), "e": trial.NewNumericValue(1), "trialtype": trial.NewCategoricalValue("x"), "hand": trial.NewCategoricalValue("left")},
		{"a": trial.NewNumericValue(2), "r": trial.NewNumericValue(1), "e": trial.NewNumericValue(1), "trialtype": trial.NewCategoricalValue("x"), "hand": trial.NewCategoricalValue("right")},
		{"a": trial.NewNumericValue(3), "r": trial.NewNumericValue(1), "e": trial.NewNumericValue(1), "trialtype": trial.NewCategoricalValue("x"), "hand": trial.NewCategoricalValue("left")},
		{"a": trial.NewNumericValue(4), "r": trial.NewNumericValue(1), "e": trial.NewNumericValue(1), "trialtype": trial.NewCategoricalValue("x"), "hand": trial.NewMissingValue()},
	}
	frame := trial.NewFrame([]string{"a", "r", "e", "trialtype", "hand"}, records)

	imputed := New(nil).Impute(frame, s)

	cat, ok := imputed.Value(3, "hand").Category()
	require.True(t, ok)
	assert.Equal(t, "left", cat, "mode of {left, right, left} is left")
}

func TestCategoricalModeTieBreaksOnFirstOccurrence(t *testing.T) {
	values := []trial.Value{
		trial.NewCategoricalValue("right"),
		trial.NewCategoricalValue("left"),
		trial.NewCategoricalValue("left"),
		trial.NewCategoricalValue("right"),
	}
	mode, ok := categoricalMode(values)
	require.True(t, ok)
	assert.Equal(t, "right", mode)
}

// TestOutlierRemovalCascades proves the quartiles for a later column are
// computed over the population already filtered by earlier columns, not
// the original dataset.
//
// Column order is a, r, e. The a pass drops the single a-outlier row,
// which also carries an extreme e value. With that row gone, e's fence
// tightens: e=4 survives bounds computed on the full population
// (upper 5.0) but not bounds computed on the filtered set (upper 3.75).
func TestOutlierRemovalCascades(t *testing.T) {
	s := cascadeSchema(t)
	rows := [][]float64{
		// a, r, e
		{10, 1, 0},
		{10, 1, 0},
		{10, 1, 1},
		{10, 1, 1},
		{10, 1, 1},
		{10, 1, 2},
		{10, 1, 4},       // dropped only if e's fence uses the filtered set
		{1000, 1, 2000},  // a-outlier, removed in the first pass
	}
	frame := numericFrame([]string{"a", "r", "e"}, rows)

	cleaned := New(nil).RemoveOutliers(frame, s)

	assert.Equal(t, 6, cleaned.Len(), "cascade should drop the a-outlier and then e=4")
	for i := 0; i < cleaned.Len(); i++ {
		e, _ := cleaned.Value(i, "e").Float()
		assert.LessOrEqual(t, e, 3.75, "row with e=%v should have been fenced out", e)
		a, _ := cleaned.Value(i, "a").Float()
		assert.Equal(t, 10.0, a)
	}
}

func TestCleanedRowCountIsMonotonic(t *testing.T) {
	s := cascadeSchema(t)
	frame := numericFrame([]string{"a", "r", "e"}, [][]float64{
		{1, 1, 1}, {2, 1, 1}, {3, 1, 1}, {4, 1, 1}, {5, 1, 1},
		{6, 1, 1}, {7, 1, 1}, {500, 1, 1},
	})

	cleaned, summary := New(nil).Clean(frame, s)

	assert.Equal(t, 8, summary.OriginalRows)
	assert.LessOrEqual(t, summary.CleanedRows, summary.OriginalRows)
	assert.Equal(t, summary.OriginalRows-summary.CleanedRows, summary.RemovedRows)
	assert.Equal(t, cleaned.Len(), summary.CleanedRows)
}

func TestCleanEmptyFrameIsReportedNotFatal(t *testing.T) {
	s := cascadeSchema(t)
	frame := trial.NewFrame([]string{"a", "r", "e", "trialtype"}, nil)

	cleaned, summary := New(nil).Clean(frame, s)

	assert.True(t, cleaned.IsEmpty())
	assert.Equal(t, trial.CleanSummary{}, summary)
}

func TestCleanIsDeterministic(t *testing.T) {
	s := cascadeSchema(t)
	rows := [][]float64{
		{1, 1, 3}, {2, 1, 5}, {3, 1, 2}, {4, 1, 9}, {5, 1, 1},
		{6, 1, 7}, {7, 1, 4}, {80, 1, 6},
	}

	first, firstSummary := New(nil).Clean(numericFrame([]string{"a", "r", "e"}, rows), s)
	second, secondSummary := New(nil).Clean(numericFrame([]string{"a", "r", "e"}, rows), s)

	require.Equal(t, firstSummary, secondSummary)
	require.Equal(t, first.Len(), second.Len())
	for i := 0; i < first.Len(); i++ {
		for _, col := range []string{"a", "r", "e"} {
			assert.True(t, first.Value(i, col).Equal(second.Value(i, col)))
		}
	}
}
