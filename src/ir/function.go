package ir

import (
	"fmt"
	"strings"

	"myvmc/src/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Function is one IR function: its parameters, return type, stable
// function number and the ordered list of instructions its body lowers
// to.
type Function struct {
	Name         string
	Parameters   []Operand
	ReturnType   types.Type
	Number       uint32
	Instructions []Instruction

	funcType *types.Func // Cached on first call to FuncType.
}

// ---------------------
// ----- functions -----
// ---------------------

// FuncType returns the function's type, as seen by a caller: the ordered
// parameter types and the return type. The result is computed once and
// cached, since a Function's parameters and return type never change
// after register_function returns.
func (f *Function) FuncType() *types.Func {
	if f.funcType == nil {
		args := make([]types.Type, len(f.Parameters))
		for i1, e1 := range f.Parameters {
			args[i1] = e1.Type
		}
		f.funcType = types.NewFunc(args, f.ReturnType)
	}
	return f.funcType
}

// emit appends a fully formed instruction to f's body.
func (f *Function) emit(in Instruction) {
	f.Instructions = append(f.Instructions, in)
}

// String renders a human readable dump of the function: its signature
// followed by one tab-indented line per instruction.
func (f *Function) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("function %s(", f.Name))
	for i1, e1 := range f.Parameters {
		sb.WriteString(e1.String())
		if i1 < len(f.Parameters)-1 {
			sb.WriteString(", ")
		}
	}
	ret := "unit"
	if f.ReturnType != nil {
		ret = f.ReturnType.String()
	}
	sb.WriteString(fmt.Sprintf(") -> %s  ; number=%d\n", ret, f.Number))
	for _, e1 := range f.Instructions {
		sb.WriteString("\t")
		sb.WriteString(e1.String())
		sb.WriteRune('\n')
	}
	return sb.String()
}
