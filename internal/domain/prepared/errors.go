package prepared

import "errors"

// ErrPrepare wraps every failure to build a snapshot.
var ErrPrepare = errors.New("prepare snapshot failed")
