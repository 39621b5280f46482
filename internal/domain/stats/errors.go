package stats

import "errors"

// ErrAggregate wraps failures raised by the tabular library while grouping.
var ErrAggregate = errors.New("aggregate failed")
