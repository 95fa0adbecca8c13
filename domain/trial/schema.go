package trial

import (
	"fmt"
)

// Schema is the immutable column configuration for a trial dataset.
// Components receive it explicitly instead of reading shared globals, so
// multiple datasets with different layouts can be processed side by side.
type Schema struct {
	movementCols []string
	errorCols    []string
	responseCol  string
	trialTypeCol string
	extraNumeric []string
	categorical  []string
	labels       map[string]string
}

// SchemaConfig is the input to NewSchema
type SchemaConfig struct {
	MovementCols []string          // movement parameter columns (numeric)
	ErrorCols    []string          // error measure columns (numeric)
	ResponseCol  string            // response duration column (numeric)
	TrialTypeCol string            // categorical grouping column
	ExtraNumeric []string          // additional numeric columns kept through cleaning
	Categorical  []string          // additional categorical columns (mode-imputed)
	Labels       map[string]string // display labels for the visualization consumer
}

// NewSchema validates the configuration and builds an immutable schema
func NewSchema(cfg SchemaConfig) (*Schema, error) {
	if len(cfg.MovementCols) == 0 {
		return nil, fmt.Errorf("schema requires at least one movement column")
	}
	if len(cfg.ErrorCols) == 0 {
		return nil, fmt.Errorf("schema requires at least one error column")
	}
	if cfg.ResponseCol == "" {
		return nil, fmt.Errorf("schema requires a response duration column")
	}
	if cfg.TrialTypeCol == "" {
		return nil, fmt.Errorf("schema requires a trial type column")
	}

	seen := make(map[string]bool)
	for _, col := range append(append(append([]string{}, cfg.MovementCols...), cfg.ErrorCols...), cfg.ResponseCol, cfg.TrialTypeCol) {
		if seen[col] {
			return nil, fmt.Errorf("duplicate column in schema: %s", col)
		}
		seen[col] = true
	}

	labels := make(map[string]string, len(cfg.Labels))
	for k, v := range cfg.Labels {
		labels[k] = v
	}

	return &Schema{
		movementCols: append([]string{}, cfg.MovementCols...),
		errorCols:    append([]string{}, cfg.ErrorCols...),
		responseCol:  cfg.ResponseCol,
		trialTypeCol: cfg.TrialTypeCol,
		extraNumeric: append([]string{}, cfg.ExtraNumeric...),
		categorical:  append([]string{}, cfg.Categorical...),
		labels:       labels,
	}, nil
}

// DefaultSchema returns the movement-timing study layout
func DefaultSchema() *Schema {
	s, err := NewSchema(SchemaConfig{
		MovementCols: []string{"movdist", "force", "stoplatency"},
		ErrorCols:    []string{"error"},
		ResponseCol:  "repduration",
		TrialTypeCol: "trialtype",
		ExtraNumeric: []string{"abserror"},
		Labels: map[string]string{
			"movdist":     "Movement Distance",
			"force":       "Force",
			"stoplatency": "Stop Latency",
			"repduration": "Response Duration",
			"error":       "Error",
			"abserror":    "Absolute Error",
			"trialtype":   "Trial Type",
		},
	})
	if err != nil {
		// Static configuration above cannot fail validation
		panic(err)
	}
	return s
}

// MovementCols returns the movement parameter columns
func (s *Schema) MovementCols() []string {
	return append([]string{}, s.movementCols...)
}

// ErrorCols returns the error measure columns
func (s *Schema) ErrorCols() []string {
	return append([]string{}, s.errorCols...)
}

// ResponseCol returns the response duration column
func (s *Schema) ResponseCol() string {
	return s.responseCol
}

// TrialTypeCol returns the trial type grouping column
func (s *Schema) TrialTypeCol() string {
	return s.trialTypeCol
}

// CategoricalCols returns additional categorical columns, excluding the trial type
func (s *Schema) CategoricalCols() []string {
	return append([]string{}, s.categorical...)
}

// NumericCols returns every numeric column in its fixed processing order.
// Outlier removal cascades through columns in exactly this order, which
// makes the final bounds order-dependent; the order is part of the schema
// so that it is explicit and testable.
func (s *Schema) NumericCols() []string {
	cols := make([]string, 0, len(s.movementCols)+len(s.errorCols)+1+len(s.extraNumeric))
	cols = append(cols, s.movementCols...)
	cols = append(cols, s.responseCol)
	cols = append(cols, s.errorCols...)
	cols = append(cols, s.extraNumeric...)
	return cols
}

// RequiredCols returns every column validation checks for
func (s *Schema) RequiredCols() []string {
	cols := s.NumericCols()
	cols = append(cols, s.categorical...)
	cols = append(cols, s.trialTypeCol)
	return cols
}

// Label returns the display label for a column, falling back to its name
func (s *Schema) Label(col string) string {
	if label, ok := s.labels[col]; ok {
		return label
	}
	return col
}
