// Package binary computes segment offsets, rewrites jal immediates with
// final addresses, encodes bytecode instructions to 32-bit words and
// writes the self-describing segmented container the companion virtual
// machine executes.
package binary

import "myvmc/src/abi"

// ----------------------------
// ----- Constants -----
// ----------------------------

// magic is the 12-byte primary-header magic: an 8-byte signature followed
// by a one-byte version and 3 bytes of padding.
var magic = [12]byte{0xEF, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0x01, 0x00, 0x00, 0x00}

// headerSize is the fixed size, in bytes, of the primary header: the
// magic plus exec_start, sp_start and segment_table_byte_len (three
// uint32 fields).
const headerSize = len(magic) + 4 + 4 + 4

// spStart is the initial stack pointer value written into every binary.
const spStart = abi.SPStart
