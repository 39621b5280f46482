package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotReady         = errors.New("dashboard data not loaded")
	ErrBadRequest       = errors.New("bad request")
)
