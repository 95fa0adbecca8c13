// Package app orchestrates the validate, clean, analyze pipeline.
package app

import (
	"context"
	"time"

	"movelab/domain/core"
	"movelab/domain/trial"
	"movelab/internal"
	"movelab/internal/analysis"
	"movelab/internal/cleaning"
	"movelab/internal/errors"
	"movelab/internal/validate"
	"movelab/ports"
)

// Outcome discriminates how a pipeline run ended. Expected conditions
// (empty input, invalid schema, empty cleaned frame) are outcomes, not
// errors; callers branch on the outcome instead of matching error types.
type Outcome string

const (
	OutcomeCompleted          Outcome = "completed"
	OutcomeEmptyInput         Outcome = "empty_input"
	OutcomeSchemaInvalid      Outcome = "schema_invalid"
	OutcomeEmptyAfterCleaning Outcome = "empty_after_cleaning"
)

// RunRequest defines the inputs for one pipeline execution. Either
// Reader or Frame must be set; Frame takes precedence for pre-loaded
// datasets (primarily tests).
type RunRequest struct {
	Reader ports.FrameReader
	Frame  *trial.Frame
	Source string
	Schema *trial.Schema
}

// RunResult is the complete output of a pipeline run. Cleaned, Results
// and Significant are only populated for OutcomeCompleted.
type RunResult struct {
	Outcome     Outcome                   `json:"outcome"`
	Report      validate.Report           `json:"report"`
	Summary     trial.CleanSummary        `json:"summary"`
	Cleaned     *trial.Frame              `json:"-"`
	Results     *trial.ResultSet          `json:"-"`
	Significant []trial.CorrelationResult `json:"significant"`
	Manifest    trial.AnalysisRun         `json:"manifest"`
}

// PipelineService wires the validator, cleaning pipeline and analyzer
// into the sequential validate -> clean -> analyze flow.
type PipelineService struct {
	validator *validate.Validator
	cleaner   *cleaning.Pipeline
	analyzer  *analysis.Analyzer
	log       *internal.Logger
}

// NewPipelineService creates a pipeline service
func NewPipelineService(validator *validate.Validator, cleaner *cleaning.Pipeline, analyzer *analysis.Analyzer, logger *internal.Logger) *PipelineService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PipelineService{
		validator: validator,
		cleaner:   cleaner,
		analyzer:  analyzer,
		log:       logger,
	}
}

// Run executes the full pipeline. Only source failures and unexpected
// analysis failures return a non-nil error; everything the researcher is
// expected to handle is reported through RunResult.Outcome.
func (s *PipelineService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	startedAt := core.Now()

	frame := req.Frame
	source := req.Source
	if frame == nil {
		if req.Reader == nil {
			return nil, errors.InvalidInput("run request needs a reader or a pre-loaded frame")
		}
		loaded, err := req.Reader.Read()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load dataset from %s", req.Reader.Source())
		}
		frame = loaded
		source = req.Reader.Source()
	}

	schema := req.Schema
	if schema == nil {
		schema = trial.DefaultSchema()
	}

	result := &RunResult{
		Manifest: trial.AnalysisRun{
			ID:        core.RunID(core.NewID()),
			Source:    source,
			StartedAt: startedAt,
		},
	}

	if frame.IsEmpty() {
		s.log.Warn("no data found in source %s", source)
		result.Outcome = OutcomeEmptyInput
		return s.finish(result), nil
	}

	result.Report = s.validator.Validate(frame, schema)
	if !result.Report.Valid() {
		// Abort policy: an invalid dataset never reaches cleaning
		s.log.Error("schema validation failed: %s", result.Report.FailureReason())
		result.Outcome = OutcomeSchemaInvalid
		return s.finish(result), nil
	}

	cleaned, summary := s.cleaner.Clean(frame, schema)
	result.Summary = summary
	result.Manifest.Summary = summary

	if cleaned.IsEmpty() {
		s.log.Warn("no data left after cleaning %s", source)
		result.Outcome = OutcomeEmptyAfterCleaning
		return s.finish(result), nil
	}

	result.Cleaned = cleaned
	result.Manifest.Profiles = analysis.ProfileColumns(cleaned, schema)

	resultSet, err := s.analyzer.Analyze(ctx, cleaned, schema)
	if err != nil {
		return nil, errors.Wrap(err, "relationship analysis failed")
	}
	result.Results = resultSet
	result.Significant = resultSet.SignificantPairs(analysis.SignificanceAlpha)
	result.Manifest.ResultCount = resultSet.Len()
	result.Manifest.SignificantCount = len(result.Significant)

	result.Outcome = OutcomeCompleted
	s.log.Info("pipeline completed for %s: %d results, %d significant (%.1fms)",
		source, resultSet.Len(), len(result.Significant),
		float64(time.Since(startedAt.Time()).Nanoseconds())/1e6)
	return s.finish(result), nil
}

func (s *PipelineService) finish(result *RunResult) *RunResult {
	result.Manifest.CompletedAt = core.Now()
	return result
}
