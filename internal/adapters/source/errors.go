package source

import "errors"

// Sentinel kinds for load errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported data format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrMalformed         = errors.New("malformed data")
	ErrEmptyDataset      = errors.New("dataset has no rows")
)
