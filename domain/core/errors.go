package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Dataset shape errors
	ErrEmptyDataset   = errors.New("dataset contains no records")
	ErrColumnNotFound = errors.New("column not found")
	ErrSchemaInvalid  = errors.New("dataset failed schema validation")

	// Analysis errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrNonNumericValue  = errors.New("non-numeric value in numeric column")

	// Source errors
	ErrSourceNotFound    = errors.New("data source not found")
	ErrSourceUnsupported = errors.New("unsupported data source format")
)

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
}

func NewSchemaInvalidError(check string, detail string) error {
	return fmt.Errorf("%w: %s check failed: %s", ErrSchemaInvalid, check, detail)
}

func NewNonNumericValueError(column string, row int) error {
	return fmt.Errorf("%w: column %s, row %d", ErrNonNumericValue, column, row)
}

// Error checking helpers
func IsEmptyDatasetError(err error) bool {
	return errors.Is(err, ErrEmptyDataset)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchemaInvalid) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrNonNumericValue)
}

func IsSourceError(err error) bool {
	return errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrSourceUnsupported)
}
