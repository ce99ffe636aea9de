package script

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a call runs longer than the state allows.
	ErrTimeout = errors.New("lua execution timeout")

	// ErrNoListener is returned when a script defines no on_wheel function.
	ErrNoListener = errors.New("script defines no on_wheel function")
)
