package trial

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates the cell types a trial record can hold
type ValueKind string

const (
	KindMissing     ValueKind = "missing"
	KindNumeric     ValueKind = "numeric"
	KindCategorical ValueKind = "categorical"
)

// Value is a single typed cell in a trial record.
// Values are immutable; construct them with the New*Value helpers.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

// NewMissingValue creates a missing (null) value
func NewMissingValue() Value {
	return Value{kind: KindMissing}
}

// NewNumericValue creates a numeric value
func NewNumericValue(f float64) Value {
	return Value{kind: KindNumeric, num: f}
}

// NewCategoricalValue creates a categorical (string) value
func NewCategoricalValue(s string) Value {
	return Value{kind: KindCategorical, str: s}
}

// Kind returns the value's discriminant
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsMissing reports whether the value is missing
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Float returns the numeric payload. For categorical values it attempts
// a lossless float parse, so columns ingested as strings can still be
// checked for numeric coercibility.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumeric:
		return v.num, true
	case KindCategorical:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Category returns the categorical payload
func (v Value) Category() (string, bool) {
	if v.kind != KindCategorical {
		return "", false
	}
	return v.str, true
}

func (v Value) String() string {
	switch v.kind {
	case KindNumeric:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindCategorical:
		return v.str
	default:
		return ""
	}
}

// Equal compares two values by kind and payload
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumeric:
		return v.num == other.num
	case KindCategorical:
		return v.str == other.str
	default:
		return true
	}
}

// GoString aids debugging output in tests
func (v Value) GoString() string {
	return fmt.Sprintf("trial.Value{%s:%s}", v.kind, v.String())
}
