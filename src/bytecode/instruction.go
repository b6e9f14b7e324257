package bytecode

import (
	"fmt"

	"myvmc/src/bytecode/regfile"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Instruction is one bytecode instruction targeting the 32-register
// machine. Which fields are meaningful depends on shapeOf(Op); unused
// fields are left zero. A single struct serves all four payload shapes;
// Encode picks which fields to pack from the opcode's shape.
type Instruction struct {
	Op Opcode

	Rd, Rs1, Rs2, Rs3 regfile.Register
	Shamt, Func       uint8

	// Imm backs the I-shape's 16-bit immediate and the J-shape's 32-bit
	// immediate. Before the binary emitter's address-rewriting pass, a
	// jal instruction's Imm holds the callee's IR function number, not
	// an address; the emitter overwrites it with the callee's vm_addr.
	Imm uint32
}

// ---------------------
// ----- functions -----
// ---------------------

// RInstruction builds an R-shape instruction (currently only r_type).
func RInstruction(op Opcode, rd, rs1, rs2 regfile.Register, shamt, fn uint8) Instruction {
	return Instruction{Op: op, Rd: rd, Rs1: rs1, Rs2: rs2, Shamt: shamt, Func: fn}
}

// IInstruction builds an I-shape instruction (lui, ori, lw, sw).
func IInstruction(op Opcode, rd, rs regfile.Register, imm uint16) Instruction {
	return Instruction{Op: op, Rd: rd, Rs1: rs, Imm: uint32(imm)}
}

// JInstruction builds a J-shape instruction (jal, jr). imm is either an IR
// function number (pre-emission) or a final vm address (post-emission).
func JInstruction(op Opcode, rd regfile.Register, imm uint32) Instruction {
	return Instruction{Op: op, Rd: rd, Imm: imm}
}

// SInstruction builds an S-shape instruction (syscall).
func SInstruction(op Opcode, rd, rs1, rs2, rs3 regfile.Register, fn uint8) Instruction {
	return Instruction{Op: op, Rd: rd, Rs1: rs1, Rs2: rs2, Rs3: rs3, Func: fn}
}

// String renders a one-line disassembly-style form, e.g. "ori temp, zero, 16384".
func (in Instruction) String() string {
	switch shapeOf(in.Op) {
	case ShapeR:
		return fmt.Sprintf("%s %s, %s, %s, %d, %d", in.Op, in.Rd, in.Rs1, in.Rs2, in.Shamt, in.Func)
	case ShapeI:
		return fmt.Sprintf("%s %s, %s, %d", in.Op, in.Rd, in.Rs1, in.Imm)
	case ShapeJ:
		return fmt.Sprintf("%s %s, %d", in.Op, in.Rd, in.Imm)
	case ShapeS:
		return fmt.Sprintf("%s %s, %s, %s, %s, %d", in.Op, in.Rd, in.Rs1, in.Rs2, in.Rs3, in.Func)
	default:
		return fmt.Sprintf("%s ?", in.Op)
	}
}

// Encode packs the instruction into its final 32-bit big-endian word.
// The opcode occupies the top 6 bits in every shape.
func (in Instruction) Encode() uint32 {
	word := uint32(in.Op) << 26
	switch shapeOf(in.Op) {
	case ShapeR:
		word |= uint32(in.Rd)<<21 | uint32(in.Rs1)<<16 | uint32(in.Rs2)<<11 | uint32(in.Shamt)<<6 | uint32(in.Func)
	case ShapeI:
		word |= uint32(in.Rd)<<21 | uint32(in.Rs1)<<16 | (in.Imm & 0xFFFF)
	case ShapeJ:
		word |= uint32(in.Rd)<<21 | ((in.Imm >> 2) & 0x001F_FFFF)
	case ShapeS:
		word |= uint32(in.Rd)<<21 | uint32(in.Rs1)<<16 | uint32(in.Rs2)<<11 | uint32(in.Rs3)<<6 | uint32(in.Func)
	}
	return word
}
