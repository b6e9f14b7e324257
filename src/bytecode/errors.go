package bytecode

import "errors"

// Sentinel errors for the fatal conditions this package detects.
var (
	// ErrUnsupportedOperandType is returned by register_for when handed
	// an operand whose type is neither string nor integer.
	ErrUnsupportedOperandType = errors.New("unsupported operand type")

	// ErrUnsupportedIROp is returned while lowering an IR instruction
	// whose op is outside {call, ret, syscall}.
	ErrUnsupportedIROp = errors.New("unsupported ir op")

	// ErrTooManyParameters is returned when a function being lowered
	// declares more than six parameters — there are only six argument
	// registers (a0..a5).
	ErrTooManyParameters = errors.New("too many parameters")

	// ErrTooManyArguments is returned when a call instruction carries
	// more arguments than there are argument registers to receive them.
	ErrTooManyArguments = errors.New("too many arguments")

	// ErrImmediateOverflow is returned when a literal address or value
	// does not fit the 16-bit immediate field of an I-shape instruction.
	ErrImmediateOverflow = errors.New("immediate overflow")

	// ErrRegisterPressureExceeded is returned by the allocator once a
	// full scan of s0..s19 finds no free register.
	ErrRegisterPressureExceeded = errors.New("register pressure exceeded")
)
