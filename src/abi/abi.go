// Package abi holds the small set of fixed virtual addresses shared by
// the bytecode module (which must embed the .data segment's base address
// directly into "ori temp, zero, addr" instructions as it lowers string
// operands) and the binary emitter (which maps .data and .text at these
// same addresses when laying out the container).
package abi

// VMDataStart is the fixed virtual address the .data segment is mapped
// at by the companion virtual machine.
const VMDataStart = 0x4000

// VMTextStart is the fixed virtual address the .text segment is mapped
// at.
const VMTextStart = 0x5000

// SPStart is the initial value of the stack pointer register.
const SPStart = 0x3000_0000
