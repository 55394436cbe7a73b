package roots

import "errors"

var (
	// ErrInvalidArgument is returned for malformed inputs: the zero
	// polynomial, a zero deflation degree or a zero precision.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPrecisionExhausted is returned when the next precision doubling
	// would exceed the configured ceiling. For a squarefree input this only
	// means the ceiling was too low; for an input with repeated roots the
	// loop would otherwise never terminate.
	ErrPrecisionExhausted = errors.New("working precision exhausted")
)
