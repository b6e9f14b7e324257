package binary

import (
	"fmt"
	"sort"

	"myvmc/src/abi"
	"myvmc/src/bytecode"
	"myvmc/src/bytecode/regfile"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// segment is one named, contiguous region of the emitted binary: a
// sequence of 32-bit words mapped at a known virtual address.
type segment struct {
	name   string
	words  []uint32
	vmAddr uint32
}

// layout is the result of laying out a bytecode.Module: the segment
// table plus the concatenated segment data, ready to be written after
// the primary header.
type layout struct {
	segments  []segment
	execStart uint32
}

// ---------------------
// ----- constants -----
// ---------------------

const mainFunctionName = "main"

// ---------------------
// ----- functions -----
// ---------------------

// buildLayout constructs the .data and .text segments of m: computing
// the string data segment's padded bytes, sorting functions by number,
// assigning each a .text virtual address, rewriting every jal
// instruction's immediate from an IR function number to the callee's
// final address, and appending the halt syscall after main. Fails with
// ErrMissingMain if m has no function named "main".
func buildLayout(m *bytecode.Module) (*layout, error) {
	mainFn := m.Function(mainFunctionName)
	if mainFn == nil {
		return nil, ErrMissingMain
	}

	dataWords := packData(m.DataSegment())
	dataSeg := segment{name: ".data", words: dataWords, vmAddr: abi.VMDataStart}

	fns := append([]*bytecode.Function(nil), m.Functions()...)
	sort.Slice(fns, func(i, j int) bool { return fns[i].Number < fns[j].Number })

	funcAddr := make(map[uint32]uint32, len(fns))
	var textWords []uint32
	for _, fn := range fns {
		funcAddr[fn.Number] = abi.VMTextStart + uint32(len(textWords))*4
		for _, in := range fn.Instructions {
			if in.Op == bytecode.JAL {
				addr, ok := funcAddr[in.Imm]
				if !ok {
					return nil, fmt.Errorf("binary: jal targets unknown function number %d", in.Imm)
				}
				in.Imm = addr
			}
			textWords = append(textWords, in.Encode())
		}
		if fn.Number == mainFn.Number {
			halt := bytecode.SInstruction(bytecode.Syscall, regfile.Zero, regfile.Zero, regfile.Zero, regfile.Zero, 0)
			textWords = append(textWords, halt.Encode())
		}
	}
	textSeg := segment{name: ".text", words: textWords, vmAddr: abi.VMTextStart}

	return &layout{
		segments:  []segment{dataSeg, textSeg},
		execStart: funcAddr[mainFn.Number],
	}, nil
}

// packData pads data to a 4-byte multiple with zero bytes and packs it
// into big-endian 32-bit words.
func packData(data []byte) []uint32 {
	padded := append([]byte(nil), data...)
	for len(padded)%4 != 0 {
		padded = append(padded, 0)
	}
	words := make([]uint32, 0, len(padded)/4)
	for i1 := 0; i1 < len(padded); i1 += 4 {
		w := uint32(padded[i1])<<24 | uint32(padded[i1+1])<<16 | uint32(padded[i1+2])<<8 | uint32(padded[i1+3])
		words = append(words, w)
	}
	return words
}
