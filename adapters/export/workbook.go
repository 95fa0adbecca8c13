// Package export writes pipeline outputs to an Excel workbook. The
// workbook is the input contract of the external visualization consumer;
// no analysis happens here.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"movelab/domain/trial"
	"movelab/internal"
	"movelab/internal/analysis"
	"movelab/internal/errors"
)

const (
	sheetCleanedData      = "Cleaned Data"
	sheetCorrelations     = "Correlations"
	sheetSignificantPairs = "Significant Pairs"
)

// WorkbookWriter writes results to a three-sheet xlsx workbook
type WorkbookWriter struct {
	path   string
	schema *trial.Schema
	log    *internal.Logger
}

// NewWorkbookWriter creates a writer targeting the given path
func NewWorkbookWriter(path string, schema *trial.Schema, logger *internal.Logger) *WorkbookWriter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &WorkbookWriter{path: path, schema: schema, log: logger}
}

// Write saves the cleaned frame, the full correlation table, and the
// significant-pairs subset as separate sheets.
func (w *WorkbookWriter) Write(frame *trial.Frame, results *trial.ResultSet, significant []trial.CorrelationResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetCleanedData); err != nil {
		return errors.WithCode(errors.CodeExportFailed, err)
	}
	if err := w.writeFrame(f, frame); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetCorrelations); err != nil {
		return errors.WithCode(errors.CodeExportFailed, err)
	}
	if err := w.writeResults(f, sheetCorrelations, results.Results()); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetSignificantPairs); err != nil {
		return errors.WithCode(errors.CodeExportFailed, err)
	}
	if err := w.writeResults(f, sheetSignificantPairs, significant); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return errors.WithCode(errors.CodeExportFailed, errors.Wrapf(err, "failed to save workbook %s", w.path))
	}
	w.log.Info("results workbook written to %s", w.path)
	return nil
}

func (w *WorkbookWriter) writeFrame(f *excelize.File, frame *trial.Frame) error {
	columns := frame.Columns()
	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = w.schema.Label(col)
	}
	if err := f.SetSheetRow(sheetCleanedData, "A1", &header); err != nil {
		return errors.WithCode(errors.CodeExportFailed, err)
	}

	for i := 0; i < frame.Len(); i++ {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			val := frame.Value(i, col)
			if num, ok := val.Float(); ok {
				row[j] = num
			} else {
				row[j] = val.String()
			}
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetCleanedData, cell, &row); err != nil {
			return errors.WithCode(errors.CodeExportFailed, err)
		}
	}
	return nil
}

func (w *WorkbookWriter) writeResults(f *excelize.File, sheet string, results []trial.CorrelationResult) error {
	header := []interface{}{"Movement Variable", "Error Variable", "Trial Type", "Correlation", "P-Value", "Sample Size", "Significant"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.WithCode(errors.CodeExportFailed, err)
	}

	for i, r := range results {
		var correlation, pValue interface{}
		if r.Undefined {
			correlation, pValue = "undefined", "undefined"
		} else {
			correlation, pValue = r.Correlation, r.PValue
		}
		row := []interface{}{
			w.schema.Label(r.MovementVar),
			w.schema.Label(r.ErrorVar),
			r.TrialType,
			correlation,
			pValue,
			r.SampleSize,
			!r.Undefined && r.PValue < analysis.SignificanceAlpha,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.WithCode(errors.CodeExportFailed, err)
		}
	}
	return nil
}
