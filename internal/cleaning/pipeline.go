// Package cleaning implements the two-step cleaning pass over a raw
// trial frame: median/mode imputation followed by IQR outlier removal.
package cleaning

import (
	"github.com/montanaflynn/stats"

	"movelab/domain/trial"
	"movelab/internal"
)

// iqrFactor is the conventional Tukey fence multiplier
const iqrFactor = 1.5

// Pipeline cleans raw frames. Deterministic given frame content; the
// outlier pass is strictly sequential per column and must not be
// parallelized, because each column's quartiles are computed over the
// population left by the previous columns.
type Pipeline struct {
	log *internal.Logger
}

// New creates a cleaning pipeline
func New(logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{log: logger}
}

// Clean imputes missing values and removes outliers, returning a new
// frame and a row-count summary. An empty result is not an error;
// callers must check the summary before analyzing.
func (p *Pipeline) Clean(f *trial.Frame, s *trial.Schema) (*trial.Frame, trial.CleanSummary) {
	summary := trial.CleanSummary{OriginalRows: f.Len()}

	imputed := p.impute(f, s)
	cleaned := p.removeOutliers(imputed, s)

	summary.CleanedRows = cleaned.Len()
	summary.RemovedRows = summary.OriginalRows - summary.CleanedRows

	p.log.Info("data cleaning summary: original=%d cleaned=%d removed=%d",
		summary.OriginalRows, summary.CleanedRows, summary.RemovedRows)

	return cleaned, summary
}

// Impute fills missing numeric cells with the column median and missing
// categorical cells (excluding the trial type column) with the column
// mode. Exposed separately so the idempotence property is testable.
func (p *Pipeline) Impute(f *trial.Frame, s *trial.Schema) *trial.Frame {
	return p.impute(f, s)
}

func (p *Pipeline) impute(f *trial.Frame, s *trial.Schema) *trial.Frame {
	records := f.CloneRecords()
	working := trial.NewFrame(f.Columns(), records)

	for _, col := range s.NumericCols() {
		if !working.HasColumn(col) {
			continue
		}
		values := working.Floats(col)
		median, err := stats.Median(values)
		if err != nil {
			// Column has no observed values; nothing to impute from
			p.log.Warn("skipping imputation for %s: no numeric values", col)
			continue
		}
		for _, rec := range records {
			if rec[col].IsMissing() {
				rec[col] = trial.NewNumericValue(median)
			}
		}
	}

	for _, col := range s.CategoricalCols() {
		if !working.HasColumn(col) {
			continue
		}
		mode, ok := categoricalMode(working.Column(col))
		if !ok {
			continue
		}
		for _, rec := range records {
			if rec[col].IsMissing() {
				rec[col] = trial.NewCategoricalValue(mode)
			}
		}
	}

	return working
}

// categoricalMode returns the most frequent category, breaking ties by
// first occurrence. montanaflynn/stats only computes numeric modes, so
// string columns are counted by hand.
func categoricalMode(values []trial.Value) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		cat, ok := v.Category()
		if !ok {
			continue
		}
		if counts[cat] == 0 {
			order = append(order, cat)
		}
		counts[cat]++
	}
	best, bestCount := "", 0
	for _, cat := range order {
		if counts[cat] > bestCount {
			best, bestCount = cat, counts[cat]
		}
	}
	return best, bestCount > 0
}

// RemoveOutliers applies the IQR fence column by column, in the schema's
// fixed numeric-column order. Each column's Q1/Q3 are computed over the
// frame as filtered by the preceding columns, so removal compounds; the
// final bounds are order-dependent by design and documented as such.
func (p *Pipeline) RemoveOutliers(f *trial.Frame, s *trial.Schema) *trial.Frame {
	return p.removeOutliers(f, s)
}

func (p *Pipeline) removeOutliers(f *trial.Frame, s *trial.Schema) *trial.Frame {
	working := f
	for _, col := range s.NumericCols() {
		if !working.HasColumn(col) || working.IsEmpty() {
			continue
		}

		values := working.Floats(col)
		q1, err1 := stats.Percentile(values, 25)
		q3, err2 := stats.Percentile(values, 75)
		if err1 != nil || err2 != nil {
			p.log.Warn("skipping outlier removal for %s: quartiles unavailable", col)
			continue
		}
		iqr := q3 - q1
		lower := q1 - iqrFactor*iqr
		upper := q3 + iqrFactor*iqr

		before := working.Len()
		column := col
		working = working.Filter(func(rec trial.Record) bool {
			v, ok := rec[column].Float()
			if !ok {
				// Rows that still lack a numeric value here cannot
				// satisfy the bound and are dropped, matching the
				// reference behavior for unimputable columns.
				return false
			}
			return v >= lower && v <= upper
		})
		if removed := before - working.Len(); removed > 0 {
			p.log.Debug("outlier removal on %s dropped %d rows (bounds %.4f..%.4f)",
				col, removed, lower, upper)
		}
	}
	return working
}
