package binary

import "errors"

// Sentinel errors for the fatal conditions this package detects.
var (
	// ErrMissingMain is returned if binary emission is attempted without
	// a registered "main" function.
	ErrMissingMain = errors.New("missing main function")

	// ErrIO wraps any short write or open/rename failure while producing
	// the output container.
	ErrIO = errors.New("io error writing binary")
)
