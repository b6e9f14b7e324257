// Package bytecode lowers the IR module to a linear stream of fixed-width
// instructions over the 32-register machine described in regfile,
// assigning registers, maintaining the string-literal data segment and
// enforcing the calling convention.
package bytecode

import (
	"fmt"
	"strconv"
	"strings"

	"myvmc/src/abi"
	"myvmc/src/bytecode/regfile"
	"myvmc/src/ir"
	"myvmc/src/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Module holds every lowered function plus the shared string-literal
// data segment.
type Module struct {
	irRef *ir.Module

	functions map[string]*Function
	order     []string

	currentFunctionName string

	dataSegment []byte
}

// ---------------------
// ----- Constants -----
// ---------------------

// maxImmediate16 is the largest value an I-shape instruction's immediate
// field can hold.
const maxImmediate16 = 0xFFFF

// ---------------------
// ----- functions -----
// ---------------------

// NewModule returns a Module ready to lower irMod's functions.
func NewModule(irMod *ir.Module) *Module {
	return &Module{
		irRef:     irMod,
		functions: make(map[string]*Function, 16),
	}
}

// Build lowers every IR function, in registration order, to bytecode. For
// each function it pre-assigns parameters left to right to a0..a5
// (failing with ErrTooManyParameters past six), then lowers each IR
// instruction in order.
func (m *Module) Build() error {
	for _, irFn := range m.irRef.Functions() {
		bcFn := newFunction(irFn)

		argRegs := regfile.ArgRegisters()
		if len(irFn.Parameters) > len(argRegs) {
			return fmt.Errorf("%w: function %q has %d parameters", ErrTooManyParameters, irFn.Name, len(irFn.Parameters))
		}
		for i1, param := range irFn.Parameters {
			bcFn.AllocatedRegisters[param] = argRegs[i1]
		}

		m.functions[irFn.Name] = bcFn
		m.order = append(m.order, irFn.Name)

		m.currentFunctionName = irFn.Name
		for _, in := range irFn.Instructions {
			if err := m.lower(in); err != nil {
				return fmt.Errorf("function %q: %w", irFn.Name, err)
			}
		}
		m.currentFunctionName = ""
	}
	return nil
}

// current returns the Function currently being lowered.
func (m *Module) current() *Function {
	f, ok := m.functions[m.currentFunctionName]
	if !ok {
		panic("bytecode: no function is currently being lowered")
	}
	return f
}

// registerFor resolves operand to a physical register, materialising it
// into Temp first if necessary. If operand is already allocated, that
// register is returned directly.
//
// A string operand is appended (with a trailing NUL) to the module's data
// segment and its address is loaded into Temp via "ori temp, zero,
// addr16". An integer operand is parsed as a non-negative decimal and
// loaded into Temp the same way. Any other operand type is fatal
// (ErrUnsupportedOperandType).
//
// Temp is a shared scratch register: it is overwritten on every call to
// registerFor for a string or integer operand, so callers must consume it
// before materialising another constant.
func (m *Module) registerFor(op ir.Operand) (regfile.Register, error) {
	f := m.current()
	if r, ok := f.AllocatedRegisters[op]; ok {
		return r, nil
	}

	switch op.Type {
	case types.String:
		addr, err := m.addString(op.Name)
		if err != nil {
			return 0, err
		}
		f.emit(IInstruction(ORI, regfile.Temp, regfile.Zero, addr))
		return regfile.Temp, nil
	case types.Int:
		value, err := strconv.ParseUint(op.Name, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnsupportedOperandType, op.Name)
		}
		if value >= maxImmediate16 {
			return 0, fmt.Errorf("%w: %d", ErrImmediateOverflow, value)
		}
		f.emit(IInstruction(ORI, regfile.Temp, regfile.Zero, uint16(value)))
		return regfile.Temp, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOperandType, op.Type)
	}
}

// addString appends text's bytes plus a trailing NUL to the module's data
// segment and returns its virtual address: .data is mapped at the fixed
// address abi.VMDataStart, so the address is known immediately, unlike
// function addresses, which are placeholders until the binary emitter's
// layout pass. text carries the operand's name verbatim, including the
// surrounding quotes the lexer preserves in a string literal's token
// value; only the quoted contents are written to memory, not the quote
// characters themselves. Fails with ErrImmediateOverflow if the address
// would not fit a 16-bit immediate.
func (m *Module) addString(text string) (uint16, error) {
	addr := abi.VMDataStart + len(m.dataSegment)
	if addr > maxImmediate16 {
		return 0, fmt.Errorf("%w: string address %d", ErrImmediateOverflow, addr)
	}
	m.dataSegment = append(m.dataSegment, unquote(text)...)
	m.dataSegment = append(m.dataSegment, 0)
	return uint16(addr), nil
}

// unquote strips one layer of surrounding double quotes from s, if
// present, so the quoted text an operand's name carries can be written to
// the data segment as the bytes it denotes rather than its source syntax.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// DataSegment returns the accumulated string-literal bytes, unpadded.
func (m *Module) DataSegment() []byte {
	return m.dataSegment
}

// Functions returns every lowered function in registration order.
func (m *Module) Functions() []*Function {
	res := make([]*Function, len(m.order))
	for i1, e1 := range m.order {
		res[i1] = m.functions[e1]
	}
	return res
}

// Function returns the named lowered function, or nil if no such
// function was registered.
func (m *Module) Function(name string) *Function {
	return m.functions[name]
}

// String renders every lowered function's disassembly, labelled by name.
func (m *Module) String() string {
	sb := strings.Builder{}
	for i1, name := range m.order {
		sb.WriteString(fmt.Sprintf("function %s: ; number=%d\n", name, m.functions[name].Number))
		sb.WriteString(m.functions[name].String())
		if i1 < len(m.order)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
