package ir

import (
	"strings"
	"testing"

	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/operand"
)

func TestCreateBlockAndSeal(t *testing.T) {
	a := arch.AMD64()
	c := Init(&strings.Builder{}, a)
	defer c.Free()

	b0 := c.CreateBlock()
	b1 := c.CreateBlock()
	if b0.Sealed() {
		t.Fatalf("freshly created block must not be sealed")
	}
	c.Jump(b0, b1)
	if !b0.Sealed() {
		t.Fatalf("block must be sealed after Jump")
	}
	if b0.Terminator().Target != b1 {
		t.Fatalf("jump target not recorded")
	}
}

func TestAppendToSealedBlockPanics(t *testing.T) {
	a := arch.AMD64()
	c := Init(&strings.Builder{}, a)
	b0 := c.CreateBlock()
	b1 := c.CreateBlock()
	c.Jump(b0, b1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected append to a sealed block to panic")
		}
	}()
	b0.Move(operand.Reg(a.ReturnReg, a.WordSize), operand.Imm(1, a.WordSize))
}

func TestReachableSkipsDeadContinuation(t *testing.T) {
	a := arch.AMD64()
	c := Init(&strings.Builder{}, a)
	entry := c.CreateBlock()
	target := c.CreateBlock()
	dead := c.CreateBlock() // never wired to anything, e.g. post-return continuation
	c.Jump(entry, target)
	c.FnEpilogue(target)

	reach := Reachable(entry)
	if !reach[entry] || !reach[target] {
		t.Fatalf("entry and target must be reachable")
	}
	if reach[dead] {
		t.Fatalf("unwired block must not be reachable")
	}
}

func TestEmitProducesReadableText(t *testing.T) {
	a := arch.AMD64()
	var out strings.Builder
	c := Init(&out, a)

	entry := c.CreateBlock()
	c.FnPrologue(entry, "_main", 16)
	dst := operand.Mem(a.FrameBase, -8, a.WordSize)
	entry.Move(dst, operand.Imm(5, a.WordSize))

	epilogue := c.CreateBlock()
	c.Jump(entry, epilogue)
	epilogue.Move(operand.Reg(a.ReturnReg, a.WordSize), dst)
	c.FnEpilogue(epilogue)

	one := int64(1)
	c.DeclareGlobal("_counter", a.WordSize, &one)

	if err := c.Emit(); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"global _counter, 8, 1",
		"block 0 (entry):",
		"prologue _main, 16",
		"mov [rbp-8], $5",
		"jmp block1",
		"block 1 (epilogue):",
		"mov %rax, [rbp-8]",
		"ret",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("Emit output missing %q, got:\n%s", want, text)
		}
	}
}
