package exporter

import "errors"

// Sentinel kinds for export failures.
var (
	ErrUsage  = errors.New("invalid usage")
	ErrExport = errors.New("export failed")
)
