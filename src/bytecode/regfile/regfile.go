// Package regfile defines the fixed 32-register file targeted by the
// bytecode module.
package regfile

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Register is one of the 32 physical registers of the target machine.
// Values 0..31 are all valid; there is no "no register" zero value
// distinct from the zero register itself, so callers that need an
// optional register should use a separate bool or pointer.
type Register uint8

// ---------------------
// ----- Constants -----
// ---------------------

const (
	Zero Register = iota // Zero always reads as 0.
	V0                   // V0 carries the first return value of a call.
	V1                   // V1 carries the second return value of a call.
	A0                   // A0..A5 carry up to 6 call arguments.
	A1
	A2
	A3
	A4
	A5
	Temp // Temp is the scratch register used for small-constant materialisation.
	S0   // S0..S19 are the 20 allocatable "saved" registers.
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
	S12
	S13
	S14
	S15
	S16
	S17
	S18
	S19
	SP // SP is the stack pointer.
	LR // LR holds the return address.
)

// NumRegisters is the size of the register file.
const NumRegisters = int(LR) + 1

// NumSaved is the number of allocatable saved registers, s0..s19.
const NumSaved = int(S19-S0) + 1

// -------------------
// ----- Globals -----
// -------------------

var names = [...]string{
	"zero", "v0", "v1",
	"a0", "a1", "a2", "a3", "a4", "a5",
	"temp",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9",
	"s10", "s11", "s12", "s13", "s14", "s15", "s16", "s17", "s18", "s19",
	"sp", "lr",
}

// ---------------------
// ----- functions -----
// ---------------------

// String returns the register's assembler-style name ("zero", "a0",
// "s7", ...).
func (r Register) String() string {
	if int(r) < len(names) {
		return names[r]
	}
	return fmt.Sprintf("r%d", r)
}

// ArgRegisters returns a0..a5, in order, for copying call arguments into.
func ArgRegisters() [6]Register {
	return [6]Register{A0, A1, A2, A3, A4, A5}
}

// SavedRegisters returns s0..s19, in order: the full allocatable set.
func SavedRegisters() [NumSaved]Register {
	var regs [NumSaved]Register
	for i1 := range regs {
		regs[i1] = S0 + Register(i1)
	}
	return regs
}
