package health

import "errors"

// ErrCheckTimeout is reported for a check still running at the deadline.
var ErrCheckTimeout = errors.New("health: check timeout")
