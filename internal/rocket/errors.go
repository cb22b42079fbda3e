package rocket

import "errors"

// Domain errors for vehicle construction and control.
var (
	// ErrInvalidArgument indicates an out-of-domain value passed to a
	// constructor or setter (negative mass, throttle outside [0,100],
	// non-finite input).
	ErrInvalidArgument = errors.New("rocket: invalid argument")

	// ErrPrecondition indicates an operation on a vehicle that is not in
	// the required state, such as separating a stage when none remain.
	ErrPrecondition = errors.New("rocket: precondition violated")
)
