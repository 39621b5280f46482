package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("dashboard service not started")
	ErrLoad       = errors.New("dashboard data load failed")
)
