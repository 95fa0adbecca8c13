// Package validate implements schema validation for trial datasets:
// column completeness, numeric coercibility, and missing-value ratios.
package validate

import (
	"fmt"

	"movelab/domain/trial"
)

// DefaultMaxMissingRatio is the fraction of missing values a required
// column may carry before the dataset is rejected.
const DefaultMaxMissingRatio = 0.30

// Report carries the three independent validation checks. A dataset is
// valid only when all of them pass; there is no partial-validity state.
type Report struct {
	ColumnsPresent   bool     `json:"columns_present"`
	MissingColumns   []string `json:"missing_columns,omitempty"`
	NumericCoercible bool     `json:"numeric_coercible"`
	NonNumericColumn string   `json:"non_numeric_column,omitempty"`
	NonNumericRow    int      `json:"non_numeric_row,omitempty"`
	MissingRatioOK   bool     `json:"missing_ratio_ok"`
	WorstColumn      string   `json:"worst_column,omitempty"`
	WorstRatio       float64  `json:"worst_ratio,omitempty"`
}

// Valid reports whether every check passed
func (r Report) Valid() bool {
	return r.ColumnsPresent && r.NumericCoercible && r.MissingRatioOK
}

// FailureReason names the first failing check for error surfacing
func (r Report) FailureReason() string {
	switch {
	case !r.ColumnsPresent:
		return fmt.Sprintf("missing required columns: %v", r.MissingColumns)
	case !r.NumericCoercible:
		return fmt.Sprintf("column %s has non-numeric data at row %d", r.NonNumericColumn, r.NonNumericRow)
	case !r.MissingRatioOK:
		return fmt.Sprintf("column %s has %.0f%% missing values", r.WorstColumn, r.WorstRatio*100)
	default:
		return ""
	}
}

// Validator checks a raw frame against a schema. It is a pure predicate:
// no side effects, no mutation of the frame.
type Validator struct {
	maxMissingRatio float64
}

// Option configures a Validator
type Option func(*Validator)

// WithMaxMissingRatio overrides the missing-value threshold
func WithMaxMissingRatio(ratio float64) Option {
	return func(v *Validator) {
		v.maxMissingRatio = ratio
	}
}

// New creates a validator with the default thresholds
func New(opts ...Option) *Validator {
	v := &Validator{maxMissingRatio: DefaultMaxMissingRatio}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs all three checks and returns the full report. Later
// checks still run when earlier ones fail so the report is complete,
// but checks that depend on column presence skip absent columns.
func (v *Validator) Validate(f *trial.Frame, s *trial.Schema) Report {
	report := Report{
		ColumnsPresent:   true,
		NumericCoercible: true,
		MissingRatioOK:   true,
	}

	for _, col := range s.RequiredCols() {
		if !f.HasColumn(col) {
			report.ColumnsPresent = false
			report.MissingColumns = append(report.MissingColumns, col)
		}
	}

	for _, col := range s.NumericCols() {
		if !f.HasColumn(col) {
			continue
		}
		for i := 0; i < f.Len(); i++ {
			val := f.Value(i, col)
			if val.IsMissing() {
				continue
			}
			if _, ok := val.Float(); !ok {
				// One bad cell fails the whole dataset, not just the row
				report.NumericCoercible = false
				report.NonNumericColumn = col
				report.NonNumericRow = i
				break
			}
		}
		if !report.NumericCoercible {
			break
		}
	}

	for _, col := range s.RequiredCols() {
		if !f.HasColumn(col) {
			continue
		}
		ratio := f.MissingRatio(col)
		if ratio > report.WorstRatio {
			report.WorstRatio = ratio
			report.WorstColumn = col
		}
		if ratio > v.maxMissingRatio {
			report.MissingRatioOK = false
		}
	}

	return report
}
