package ingest

import (
	"strconv"
	"strings"

	"movelab/domain/trial"
)

// missingMarkers are the cell renderings treated as absent values,
// compared case-insensitively after trimming.
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// CoerceCell converts a raw cell string to a typed value: missing
// markers become Missing, parseable floats become Numeric, anything
// else is Categorical.
func CoerceCell(raw string) trial.Value {
	cell := strings.TrimSpace(raw)
	if missingMarkers[strings.ToLower(cell)] {
		return trial.NewMissingValue()
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return trial.NewNumericValue(f)
	}
	return trial.NewCategoricalValue(cell)
}
