// Package ports defines the interfaces between the pipeline core and
// its adapters.
package ports

import (
	"movelab/domain/trial"
)

// FrameReader loads a raw trial frame from a tabular source
type FrameReader interface {
	Read() (*trial.Frame, error)
	Source() string
}

// ResultWriter hands the cleaned frame and relationship results to the
// external visualization consumer. It performs no analysis.
type ResultWriter interface {
	Write(frame *trial.Frame, results *trial.ResultSet, significant []trial.CorrelationResult) error
}
