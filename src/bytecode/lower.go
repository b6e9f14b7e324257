package bytecode

import (
	"fmt"

	"myvmc/src/bytecode/regfile"
	"myvmc/src/ir"
)

// ----------------------------
// ----- Constants -----
// ----------------------------

// stackSlotSize is the width, in bytes, of one caller-save stack slot.
const stackSlotSize = 4

// ---------------------
// ----- functions -----
// ---------------------

// lower translates one IR instruction into zero or more bytecode
// instructions appended to the function currently being built. Only
// call, syscall and ret are lowered; anything else is fatal
// (ErrUnsupportedIROp).
func (m *Module) lower(in ir.Instruction) error {
	switch in.Op {
	case ir.Call:
		return m.lowerCall(in)
	case ir.Syscall:
		return m.lowerSyscall(in)
	case ir.Ret:
		return m.lowerRet(in)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedIROp, in.Op)
	}
}

// lowerCall emits the full call sequence:
//
//  1. Snapshot the registers currently live (allocated) in this function
//     and caller-save each of them to the stack.
//  2. Copy each argument (1-based into in.Args, skipping the callee name
//     at index 0) into a0..a5.
//  3. Emit jal lr, <callee function number>; the binary emitter rewrites
//     the immediate to the callee's final address.
//  4. Restore the caller-saved registers in reverse order.
//  5. If the call's result is used, harvest v0 into a freshly allocated
//     register.
func (m *Module) lowerCall(in ir.Instruction) error {
	if len(in.Args) == 0 {
		return fmt.Errorf("%w: call instruction has no callee operand", ErrUnsupportedIROp)
	}
	callee := in.Args[0]
	calleeFn := m.irRef.Function(callee.Name)
	if calleeFn == nil {
		return fmt.Errorf("bytecode: call to unregistered function %q", callee.Name)
	}

	callArgs := in.Args[1:]
	argRegs := regfile.ArgRegisters()
	if len(callArgs) > len(argRegs) {
		return fmt.Errorf("%w: call to %q has %d arguments", ErrTooManyArguments, callee.Name, len(callArgs))
	}

	f := m.current()
	live := f.usedRegisters()

	// Caller-save every live register before clobbering anything.
	for i1, r := range live {
		f.emit(IInstruction(SW, r, regfile.SP, uint16(i1*stackSlotSize)))
	}

	// Copy arguments into a0..a5.
	for i1, arg := range callArgs {
		src, err := m.registerFor(arg)
		if err != nil {
			return err
		}
		f.emit(IInstruction(ORI, argRegs[i1], src, 0))
	}

	f.emit(JInstruction(JAL, regfile.LR, calleeFn.Number))

	// Restore caller-saved registers in reverse order.
	for i1 := len(live) - 1; i1 >= 0; i1-- {
		f.emit(IInstruction(LW, live[i1], regfile.SP, uint16(i1*stackSlotSize)))
	}

	if in.Result != nil {
		dest, err := f.allocateFor(*in.Result)
		if err != nil {
			return err
		}
		f.emit(IInstruction(ORI, dest, regfile.V0, 0))
	}
	return nil
}

// lowerSyscall requires exactly five arguments, encoded as a single S-shape instruction with
// rd=reg(args[1]), rs1=reg(args[2]), rs2=reg(args[3]), rs3=reg(args[4])
// and func=reg(args[0]).
func (m *Module) lowerSyscall(in ir.Instruction) error {
	if len(in.Args) != 5 {
		return fmt.Errorf("%w: syscall takes 5 arguments, got %d", ErrUnsupportedIROp, len(in.Args))
	}
	regs := make([]regfile.Register, 5)
	for i1, arg := range in.Args {
		r, err := m.registerFor(arg)
		if err != nil {
			return err
		}
		regs[i1] = r
	}
	m.current().emit(SInstruction(Syscall, regs[1], regs[2], regs[3], regs[4], uint8(regs[0])))
	return nil
}

// lowerRet emits jr lr, 0.
func (m *Module) lowerRet(in ir.Instruction) error {
	if len(in.Args) != 0 {
		return fmt.Errorf("%w: ret takes no arguments, got %d", ErrUnsupportedIROp, len(in.Args))
	}
	m.current().emit(JInstruction(JR, regfile.LR, 0))
	return nil
}
