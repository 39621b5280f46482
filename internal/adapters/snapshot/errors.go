package snapshot

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrUnknownKind   = errors.New("unknown chart kind")
	ErrNoData        = errors.New("chart has no data to draw")
	ErrRender        = errors.New("render failed")
)
