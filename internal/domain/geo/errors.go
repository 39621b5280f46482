package geo

import "errors"

// ErrTable reports an unreadable centroid table.
var ErrTable = errors.New("country table invalid")
