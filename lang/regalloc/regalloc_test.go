package regalloc

import (
	"testing"

	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/operand"
)

func TestAllocFree(t *testing.T) {
	a := arch.AMD64()
	al := New(a)

	op1 := al.Alloc(8)
	op2 := al.Alloc(8)
	if op1.Reg == op2.Reg {
		t.Fatalf("Alloc handed out the same register twice: %v == %v", op1, op2)
	}

	al.Free(op1)
	op3 := al.Alloc(8)
	if op3.Reg != op1.Reg {
		t.Fatalf("expected freed register %v to be reused, got %v", op1.Reg, op3.Reg)
	}
}

func TestRequest(t *testing.T) {
	a := arch.AMD64()
	al := New(a)

	op, ok := al.Request(a.ReturnReg, 8)
	if !ok {
		t.Fatalf("Request for a free canonical register should succeed")
	}
	if !op.IsRegister(a.ReturnReg) {
		t.Fatalf("Request returned the wrong register: %v", op)
	}

	if _, ok := al.Request(a.ReturnReg, 8); ok {
		t.Fatalf("Request for an already-lent-out register should fail")
	}

	al.Free(op)
	if _, ok := al.Request(a.ReturnReg, 8); !ok {
		t.Fatalf("Request should succeed again after Free")
	}
}

func TestFreeNonRegisterIsNoop(t *testing.T) {
	a := arch.AMD64()
	al := New(a)

	al.Free(operand.Imm(5, 8))
	al.Free(operand.Mem(a.FrameBase, -8, 8))
	// no panic, no effect: every general-purpose register is still free
	for range a.GeneralPurpose {
		al.Alloc(8)
	}
}
