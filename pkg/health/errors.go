package health

import "errors"

var (
	// ErrCheckFailed is wrapped around every failing check's error.
	ErrCheckFailed = errors.New("check failed")

	// ErrCheckTimeout is returned when a check overruns the probe timeout.
	ErrCheckTimeout = errors.New("check timeout")
)
