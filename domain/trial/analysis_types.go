package trial

import (
	"fmt"

	"movelab/domain/core"
)

// PairKey identifies one tested relationship: a movement variable against
// an error variable within a single trial-type partition.
type PairKey struct {
	MovementVar string `json:"movement_var"`
	ErrorVar    string `json:"error_var"`
	TrialType   string `json:"trial_type"`
}

func (k PairKey) String() string {
	return fmt.Sprintf("%s_%s_%s", k.MovementVar, k.ErrorVar, k.TrialType)
}

// CorrelationResult is the Pearson test outcome for one pair key.
// Degenerate partitions (fewer than two rows, or zero variance in either
// variable) are represented explicitly via Undefined rather than an error;
// callers must check Undefined before using Correlation or PValue.
type CorrelationResult struct {
	PairKey
	Correlation float64 `json:"correlation"`
	PValue      float64 `json:"p_value"`
	SampleSize  int     `json:"sample_size"`
	Undefined   bool    `json:"undefined"`
}

// ResultSet holds correlation results in insertion order, keyed by the
// exact (movement, error, trial type) triple. Key collisions cannot occur
// because a sweep visits each triple once.
type ResultSet struct {
	order   []PairKey
	results map[PairKey]CorrelationResult
}

// NewResultSet creates an empty result set
func NewResultSet() *ResultSet {
	return &ResultSet{results: make(map[PairKey]CorrelationResult)}
}

// Add inserts a result, preserving first-insertion order
func (rs *ResultSet) Add(r CorrelationResult) {
	if _, exists := rs.results[r.PairKey]; !exists {
		rs.order = append(rs.order, r.PairKey)
	}
	rs.results[r.PairKey] = r
}

// Get returns the result for a key
func (rs *ResultSet) Get(k PairKey) (CorrelationResult, bool) {
	r, ok := rs.results[k]
	return r, ok
}

// Len returns the number of results
func (rs *ResultSet) Len() int {
	return len(rs.order)
}

// Keys returns the pair keys in insertion order
func (rs *ResultSet) Keys() []PairKey {
	return append([]PairKey{}, rs.order...)
}

// Results returns all results in insertion order
func (rs *ResultSet) Results() []CorrelationResult {
	out := make([]CorrelationResult, 0, len(rs.order))
	for _, k := range rs.order {
		out = append(out, rs.results[k])
	}
	return out
}

// SignificantPairs returns the results whose p-value is strictly below
// alpha, excluding undefined results. The set is derived on demand so it
// can never drift from the underlying results.
func (rs *ResultSet) SignificantPairs(alpha float64) []CorrelationResult {
	var out []CorrelationResult
	for _, k := range rs.order {
		r := rs.results[k]
		if !r.Undefined && r.PValue < alpha {
			out = append(out, r)
		}
	}
	return out
}

// ColumnProfile summarizes the distribution of one numeric column
type ColumnProfile struct {
	Column       string  `json:"column"`
	Count        int     `json:"count"`
	MissingRatio float64 `json:"missing_ratio"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Median       float64 `json:"median"`
	Q1           float64 `json:"q1"`
	Q3           float64 `json:"q3"`
}

// CleanSummary reports the before/after row counts of a cleaning pass
type CleanSummary struct {
	OriginalRows int `json:"original_rows"`
	CleanedRows  int `json:"cleaned_rows"`
	RemovedRows  int `json:"removed_rows"`
}

// AnalysisRun is the audit manifest for one pipeline execution
type AnalysisRun struct {
	ID               core.RunID      `json:"id"`
	Source           string          `json:"source"`
	Summary          CleanSummary    `json:"summary"`
	Profiles         []ColumnProfile `json:"profiles,omitempty"`
	ResultCount      int             `json:"result_count"`
	SignificantCount int             `json:"significant_count"`
	StartedAt        core.Timestamp  `json:"started_at"`
	CompletedAt      core.Timestamp  `json:"completed_at"`
}
