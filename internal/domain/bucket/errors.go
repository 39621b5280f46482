package bucket

import "errors"

// ErrInvalidScheme reports interval parameters that cannot form contiguous buckets.
var ErrInvalidScheme = errors.New("invalid bucket scheme")
