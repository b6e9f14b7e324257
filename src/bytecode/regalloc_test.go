package bytecode

import (
	"errors"
	"testing"

	"myvmc/src/bytecode/regfile"
	"myvmc/src/ir"
	"myvmc/src/types"
)

func TestAllocRegPicksFromSavedRange(t *testing.T) {
	r, err := allocReg(nil)
	if err != nil {
		t.Fatalf("allocReg(empty) = %v", err)
	}
	if r < regfile.S0 || r > regfile.S19 {
		t.Errorf("allocReg(empty) = %s, outside s0..s19", r)
	}
}

func TestAllocRegSkipsUsed(t *testing.T) {
	// Occupy all but s7; the only legal pick is s7 no matter how the
	// random choice lands.
	used := make([]regfile.Register, 0, regfile.NumSaved-1)
	for _, r := range regfile.SavedRegisters() {
		if r != regfile.S7 {
			used = append(used, r)
		}
	}
	for i1 := 0; i1 < 32; i1++ {
		r, err := allocReg(used)
		if err != nil {
			t.Fatalf("allocReg(one free) = %v", err)
		}
		if r != regfile.S7 {
			t.Fatalf("allocReg(one free) = %s, want s7", r)
		}
	}
}

func TestAllocRegPressureExceeded(t *testing.T) {
	saved := regfile.SavedRegisters()
	_, err := allocReg(saved[:])
	if !errors.Is(err, ErrRegisterPressureExceeded) {
		t.Errorf("allocReg(all used) = %v, want ErrRegisterPressureExceeded", err)
	}
}

func TestAllocateForIsIdempotent(t *testing.T) {
	irMod := ir.NewModule("test")
	_ = irMod.RegisterFunction("main", nil, "", fnBody{})
	f := newFunction(irMod.Function("main"))

	op := ir.Operand{Name: "temp_0", Type: types.Int}
	first, err := f.allocateFor(op)
	if err != nil {
		t.Fatalf("allocateFor() = %v", err)
	}
	second, err := f.allocateFor(op)
	if err != nil {
		t.Fatalf("second allocateFor() = %v", err)
	}
	if first != second {
		t.Errorf("allocateFor() reassigned %s to %s", first, second)
	}
	if len(f.AllocatedRegisters) != 1 {
		t.Errorf("AllocatedRegisters has %d entries, want 1", len(f.AllocatedRegisters))
	}
}
