package workbook

import "errors"

// ErrWorkbook wraps every workbook build or write failure.
var ErrWorkbook = errors.New("workbook export failed")
