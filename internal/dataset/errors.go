package dataset

import "errors"

var (
	// ErrMissingColumn indicates a required column is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrNotNumeric indicates a column could not be read as numbers.
	ErrNotNumeric = errors.New("column is not numeric")
	// ErrUnsupported indicates a file format no loader accepts.
	ErrUnsupported = errors.New("unsupported dataset format")
	// ErrEmpty indicates a dataset without data rows.
	ErrEmpty = errors.New("dataset has no rows")
)
