package chart

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrUnknownChart   = errors.New("unknown chart")
	ErrDuplicateChart = errors.New("duplicate chart id")
	ErrInvalidEntry   = errors.New("invalid chart entry")
)
