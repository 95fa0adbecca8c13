// Package ingest reads delimited and Excel trial data into raw frames.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"movelab/domain/trial"
	"movelab/internal"
	"movelab/internal/errors"
)

// DataReader handles reading Excel and CSV files into trial frames
type DataReader struct {
	filePath  string
	fileType  string // "xlsx" or "csv"
	sheetName string
	log       *internal.Logger
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath:  filePath,
		fileType:  fileType,
		sheetName: "Sheet1",
		log:       logger,
	}
}

// WithSheet overrides the worksheet read from Excel sources
func (r *DataReader) WithSheet(name string) *DataReader {
	if name != "" {
		r.sheetName = name
	}
	return r
}

// Source returns the file path this reader loads from
func (r *DataReader) Source() string {
	return r.filePath
}

// Read loads the source into a raw frame. A missing or unreadable file
// is fatal for the run and reported before any validation happens.
func (r *DataReader) Read() (*trial.Frame, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.SourceNotFound(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, errors.New(errors.CodeSourceMalformed, "unsupported file type: "+r.fileType)
	}
}

func (r *DataReader) readCSV() (*trial.Frame, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", r.filePath)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeSourceMalformed, errors.Wrapf(err, "failed to read CSV file %s", r.filePath))
	}
	return r.processRows(rows)
}

func (r *DataReader) readExcel() (*trial.Frame, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.WithCode(errors.CodeSourceMalformed, errors.Wrapf(err, "failed to open Excel file %s", r.filePath))
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return nil, errors.WithCode(errors.CodeSourceMalformed, errors.Wrapf(err, "failed to read sheet %s", r.sheetName))
	}
	return r.processRows(rows)
}

// processRows converts raw string rows into a typed frame. The first row
// is the header; short rows are padded with missing values.
func (r *DataReader) processRows(rows [][]string) (*trial.Frame, error) {
	if len(rows) == 0 {
		return trial.NewFrame(nil, nil), nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]trial.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(trial.Record, len(headers))
		for j, col := range headers {
			if j < len(row) {
				rec[col] = CoerceCell(row[j])
			} else {
				rec[col] = trial.NewMissingValue()
			}
		}
		records = append(records, rec)
	}

	r.log.Info("%s source loaded: %d columns, %d rows", strings.ToUpper(r.fileType), len(headers), len(records))
	return trial.NewFrame(headers, records), nil
}
