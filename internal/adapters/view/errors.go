package view

import "errors"

// ErrUnknownKind is returned for a spec whose kind has no echarts figure.
var ErrUnknownKind = errors.New("unknown chart kind")
