package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movelab/domain/trial"
	"movelab/internal/analysis"
	"movelab/internal/cleaning"
	"movelab/internal/validate"
)

func newService() *PipelineService {
	return NewPipelineService(validate.New(), cleaning.New(nil), analysis.New(nil), nil)
}

func pipelineSchema(t *testing.T) *trial.Schema {
	t.Helper()
	s, err := trial.NewSchema(trial.SchemaConfig{
		MovementCols: []string{"movdist"},
		ErrorCols:    []string{"error"},
		ResponseCol:  "repduration",
		TrialTypeCol: "trialtype",
	})
	require.NoError(t, err)
	return s
}

func pipelineFrame(n int) *trial.Frame {
	columns := []string{"movdist", "error", "repduration", "trialtype"}
	records := make([]trial.Record, n)
	for i := range records {
		records[i] = trial.Record{
			"movdist":     trial.NewNumericValue(float64(i + 1)),
			"error":       trial.NewNumericValue(2 * float64(i+1)),
			"repduration": trial.NewNumericValue(1.5),
			"trialtype":   trial.NewCategoricalValue([]string{"timed", "free"}[i%2]),
		}
	}
	return trial.NewFrame(columns, records)
}

func TestPipelineCompletes(t *testing.T) {
	result, err := newService().Run(context.Background(), RunRequest{
		Frame:  pipelineFrame(20),
		Source: "synthetic",
		Schema: pipelineSchema(t),
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, result.Outcome)
	assert.True(t, result.Report.Valid())
	assert.Equal(t, 20, result.Summary.OriginalRows)
	// 1 movement var x 1 error var x 2 trial types
	assert.Equal(t, 2, result.Results.Len())
	// error = 2*movdist within each partition, so both pairs are significant
	assert.Len(t, result.Significant, 2)

	assert.False(t, result.Manifest.ID.String() == "")
	assert.Equal(t, "synthetic", result.Manifest.Source)
	assert.Equal(t, 2, result.Manifest.ResultCount)
	assert.Equal(t, 2, result.Manifest.SignificantCount)
	assert.NotEmpty(t, result.Manifest.Profiles)
}

func TestPipelineEmptyInput(t *testing.T) {
	frame := trial.NewFrame([]string{"movdist", "error", "repduration", "trialtype"}, nil)

	result, err := newService().Run(context.Background(), RunRequest{
		Frame:  frame,
		Source: "empty",
		Schema: pipelineSchema(t),
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeEmptyInput, result.Outcome)
	assert.Nil(t, result.Results)
}

func TestPipelineAbortsOnInvalidSchema(t *testing.T) {
	// Dataset missing the error column entirely
	records := []trial.Record{{
		"movdist":     trial.NewNumericValue(1),
		"repduration": trial.NewNumericValue(1),
		"trialtype":   trial.NewCategoricalValue("timed"),
	}}
	frame := trial.NewFrame([]string{"movdist", "repduration", "trialtype"}, records)

	result, err := newService().Run(context.Background(), RunRequest{
		Frame:  frame,
		Source: "invalid",
		Schema: pipelineSchema(t),
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeSchemaInvalid, result.Outcome)
	assert.False(t, result.Report.Valid())
	assert.Contains(t, result.Report.MissingColumns, "error")
	// Cleaning never ran
	assert.Equal(t, trial.CleanSummary{}, result.Summary)
	assert.Nil(t, result.Cleaned)
}

func TestPipelineRequiresReaderOrFrame(t *testing.T) {
	_, err := newService().Run(context.Background(), RunRequest{})
	assert.Error(t, err)
}

func TestPipelineDefaultsToStudySchema(t *testing.T) {
	// Default schema expects force, stoplatency, abserror too; this
	// minimal frame must fail column validation against it.
	result, err := newService().Run(context.Background(), RunRequest{
		Frame:  pipelineFrame(5),
		Source: "default-schema",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSchemaInvalid, result.Outcome)
}
