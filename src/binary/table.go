package binary

import "encoding/binary"

// ---------------------
// ----- Constants -----
// ---------------------

// entryFixedSize is the byte length of a segment-table entry excluding
// its packed name: file_offset, length and vm_addr, each a big-endian
// uint32. The packed name follows immediately, so the full entry is
// 12 + round_up(name_len+1, 4) bytes.
const entryFixedSize = 4 + 4 + 4

// ---------------------
// ----- functions -----
// ---------------------

// packName appends name's ASCII bytes, a terminating NUL and trailing
// zero padding up to the next 4-byte boundary: read back as big-endian
// words, the name's first character sits in the high byte of the first
// word.
func packName(name string) []byte {
	b := append([]byte(name), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// entrySize returns the total byte length of seg's segment-table entry.
func entrySize(seg segment) int {
	return entryFixedSize + len(packName(seg.name))
}

// buildSegmentTable lays out the segment table immediately following the
// primary header and computes each segment's file_offset: the table itself,
// then every segment's word data, concatenated in order. It returns the
// encoded table bytes and, in step with segs, the byte offset of each
// segment's data within the file.
func buildSegmentTable(segs []segment) ([]byte, []uint32) {
	tableSize := 0
	for _, seg := range segs {
		tableSize += entrySize(seg)
	}

	offsets := make([]uint32, len(segs))
	dataCursor := uint32(headerSize + tableSize)
	for i1, seg := range segs {
		offsets[i1] = dataCursor
		dataCursor += uint32(len(seg.words) * 4)
	}

	table := make([]byte, 0, tableSize)
	for i1, seg := range segs {
		var entry [entryFixedSize]byte
		binary.BigEndian.PutUint32(entry[0:4], offsets[i1])
		binary.BigEndian.PutUint32(entry[4:8], uint32(len(seg.words)*4))
		binary.BigEndian.PutUint32(entry[8:12], seg.vmAddr)
		table = append(table, entry[:]...)
		table = append(table, packName(seg.name)...)
	}
	return table, offsets
}
