package bytecode

import (
	"math/rand"

	"myvmc/src/bytecode/regfile"
	"myvmc/src/ir"
)

// ---------------------
// ----- functions -----
// ---------------------

// allocReg chooses a register uniformly at random from s0..s19 that is
// not already present in used (the image of f's allocated-register
// table). No liveness analysis is performed: once chosen, a register is
// considered live for the rest of the function. If every saved register
// is occupied, allocReg returns ErrRegisterPressureExceeded after a
// single full scan of the saved range rather than looping forever.
func allocReg(used []regfile.Register) (regfile.Register, error) {
	saved := regfile.SavedRegisters()

	free := make([]regfile.Register, 0, len(saved))
outer:
	for _, candidate := range saved {
		for _, u := range used {
			if u == candidate {
				continue outer
			}
		}
		free = append(free, candidate)
	}

	if len(free) == 0 {
		return 0, ErrRegisterPressureExceeded
	}
	return free[rand.Intn(len(free))], nil
}

// allocateFor picks a fresh saved register for op in function f, records
// the assignment in f.AllocatedRegisters and returns it. It is a no-op
// (returning the existing assignment) if op is already allocated.
func (f *Function) allocateFor(op ir.Operand) (regfile.Register, error) {
	if r, ok := f.AllocatedRegisters[op]; ok {
		return r, nil
	}
	r, err := allocReg(f.usedRegisters())
	if err != nil {
		return 0, err
	}
	f.AllocatedRegisters[op] = r
	return r, nil
}
