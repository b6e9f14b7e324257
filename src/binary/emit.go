package binary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"myvmc/src/bytecode"
)

// ---------------------
// ----- functions -----
// ---------------------

// Emit lays m out as a segmented container and writes it to path. It
// writes to a temporary file in path's directory and renames it into
// place only once every segment has been written successfully; any
// failure along the way removes the temporary file instead of leaving a
// truncated binary behind.
func Emit(m *bytecode.Module, path string) error {
	lay, err := buildLayout(m)
	if err != nil {
		return err
	}

	table, _ := buildSegmentTable(lay.segments)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".myvmc-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := bufio.NewWriter(tmp)
	if err := writeContainer(w, lay, table); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// writeContainer writes the primary header, the segment table and every
// segment's word data, in that order, to w.
func writeContainer(w *bufio.Writer, lay *layout, table []byte) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	var field [4]byte
	binary.BigEndian.PutUint32(field[:], lay.execStart)
	if _, err := w.Write(field[:]); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(field[:], spStart)
	if _, err := w.Write(field[:]); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(field[:], uint32(len(table)))
	if _, err := w.Write(field[:]); err != nil {
		return err
	}

	if _, err := w.Write(table); err != nil {
		return err
	}

	for _, seg := range lay.segments {
		for _, word := range seg.words {
			binary.BigEndian.PutUint32(field[:], word)
			if _, err := w.Write(field[:]); err != nil {
				return err
			}
		}
	}
	return nil
}
