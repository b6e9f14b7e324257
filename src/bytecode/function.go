package bytecode

import (
	"sort"
	"strings"

	"myvmc/src/bytecode/regfile"
	"myvmc/src/ir"
	"myvmc/src/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Function holds the lowered bytecode instruction stream for one IR
// function, together with the register assignments made while lowering
// it.
type Function struct {
	Instructions []Instruction

	// AllocatedRegisters maps an operand of the function to the physical
	// register it has been assigned: parameters (a0..a5) and call results
	// (a saved register). Constants that registerFor materialises into
	// Temp are not entered here.
	AllocatedRegisters map[ir.Operand]regfile.Register

	Parameters []ir.Operand
	ReturnType types.Type
	Number     uint32
}

// ---------------------
// ----- functions -----
// ---------------------

// newFunction returns an empty Function with number inherited from the IR
// function it lowers.
func newFunction(src *ir.Function) *Function {
	return &Function{
		AllocatedRegisters: make(map[ir.Operand]regfile.Register, 16),
		Parameters:         src.Parameters,
		ReturnType:         src.ReturnType,
		Number:             src.Number,
	}
}

// emit appends in to f's instruction stream.
func (f *Function) emit(in Instruction) {
	f.Instructions = append(f.Instructions, in)
}

// usedRegisters returns the image of AllocatedRegisters: every register
// currently allocated to some operand of f, sorted by operand name for
// determinism (see ir.Operands).
func (f *Function) usedRegisters() []regfile.Register {
	ops := make(ir.Operands, 0, len(f.AllocatedRegisters))
	for op := range f.AllocatedRegisters {
		ops = append(ops, op)
	}
	sort.Sort(ops)

	res := make([]regfile.Register, 0, len(ops))
	for _, op := range ops {
		res = append(res, f.AllocatedRegisters[op])
	}
	return res
}

// String renders the function's disassembly, one instruction per line.
func (f *Function) String() string {
	sb := strings.Builder{}
	for _, e1 := range f.Instructions {
		sb.WriteString("\t")
		sb.WriteString(e1.String())
		sb.WriteRune('\n')
	}
	return sb.String()
}
