package ir

import (
	"fmt"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Op identifies an IR operation. The set is closed: these are the only
// operations the IR module and, downstream, the bytecode module ever see.
type Op uint8

// Instruction is a single three-address IR instruction: an operation, its
// argument operands and an optional result operand. Result is absent for
// side-effect-only operations (call without a used result, ret, syscall).
type Instruction struct {
	Op     Op
	Args   []Operand
	Result *Operand
}

// ---------------------
// ----- Constants -----
// ---------------------

const (
	Call Op = iota
	Ret
	Syscall

	Add
	Sub
	Mul
	Div
	Rem

	BooleanAnd
	BooleanOr

	Less
	LessEq
	Greater
	GreaterEq
	Equal
	NotEqual

	BitAnd
	BitOr
	BitXor
	BitLeft
	BitRight

	Assign

	BooleanNot
	Negation
	BitNot
)

// opNames backs Op.String; index must track the const block above.
var opNames = [...]string{
	"call", "ret", "syscall",
	"add", "sub", "mul", "div", "rem",
	"boolean_and", "boolean_or",
	"less", "less_eq", "greater", "greater_eq", "equal", "not_equal",
	"bit_and", "bit_or", "bit_xor", "bit_left", "bit_right",
	"assign",
	"boolean_not", "negation", "bit_not",
}

// ---------------------
// ----- functions -----
// ---------------------

// String returns the op's canonical lower_snake_case name.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", op)
}

// IsBinary reports whether op takes exactly two argument operands and
// always produces a result.
func (op Op) IsBinary() bool {
	switch op {
	case Add, Sub, Mul, Div, Rem, BooleanAnd, BooleanOr,
		Less, LessEq, Greater, GreaterEq, Equal, NotEqual,
		BitAnd, BitOr, BitXor, BitLeft, BitRight:
		return true
	default:
		return false
	}
}

// IsUnary reports whether op takes exactly one argument operand and always
// produces a result.
func (op Op) IsUnary() bool {
	switch op {
	case Assign, BooleanNot, Negation, BitNot:
		return true
	default:
		return false
	}
}

// isBooleanResult reports whether op's result operand is always of
// types.Bool regardless of its operands' type.
func (op Op) isBooleanResult() bool {
	switch op {
	case BooleanAnd, BooleanOr, Less, LessEq, Greater, GreaterEq, Equal, NotEqual, BooleanNot:
		return true
	default:
		return false
	}
}

// String renders one instruction as "result = op arg1, arg2" or, for
// side-effect-only ops, "op arg1, arg2".
func (in Instruction) String() string {
	sb := strings.Builder{}
	if in.Result != nil {
		sb.WriteString(in.Result.String())
		sb.WriteString(" = ")
	}
	sb.WriteString(in.Op.String())
	for i1, e1 := range in.Args {
		if i1 == 0 {
			sb.WriteRune(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(e1.String())
	}
	return sb.String()
}
