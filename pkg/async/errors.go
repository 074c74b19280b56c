package async

import "errors"

var (
	// ErrTimeout is returned by AwaitTimeout when the future does not
	// complete before the deadline. The underlying work is not interrupted
	// beyond its context being canceled.
	ErrTimeout = errors.New("async: await timed out")
)
