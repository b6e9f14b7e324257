package ir

import (
	"strconv"
	"strings"

	"myvmc/src/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Operand is a named, typed value of the IR: a constant literal, an IR
// temporary, or a named value such as a function parameter.
//
// Operand is comparable (both Name and Type are comparable: Type is always
// a pointer wrapped in an interface) so it may be used directly as a map
// key, as required for the bytecode module's allocated-register table.
type Operand struct {
	Name string
	Type types.Type
}

// tempPrefix identifies an operand as an IR-generated temporary.
const tempPrefix = "temp_"

// ---------------------
// ----- functions -----
// ---------------------

// IsTemp reports whether op was generated by the IR builder rather than
// coming from source text.
func (op Operand) IsTemp() bool {
	return strings.HasPrefix(op.Name, tempPrefix)
}

// IsConstant reports whether op's name denotes a literal: a decimal
// integer or a quoted string, as opposed to a named value.
func (op Operand) IsConstant() bool {
	if op.Name == "" {
		return false
	}
	if strings.HasPrefix(op.Name, `"`) {
		return true
	}
	_, err := strconv.ParseInt(op.Name, 10, 64)
	return err == nil
}

// String renders "name: type" for pretty-printing.
func (op Operand) String() string {
	if op.Type == nil {
		return op.Name
	}
	return op.Name + ": " + op.Type.String()
}

// Operands is a slice of Operand that sorts by Name, per the data model's
// "Operands are ordered by name" rule — used whenever a deterministic
// iteration order over a set of operands is required (e.g. snapshotting
// the registers live across a call).
type Operands []Operand

func (o Operands) Len() int           { return len(o) }
func (o Operands) Less(i, j int) bool { return o[i].Name < o[j].Name }
func (o Operands) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
