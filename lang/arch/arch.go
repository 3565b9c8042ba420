// Package arch describes the target architecture details the emitter core
// consults but never interprets itself: word size, the canonical registers
// that give the calling convention its shape (the frame base and the
// integer return register), and symbol mangling.
package arch

import (
	"fmt"

	"github.com/mna/fcc/lang/sym"
)

// RegisterID names one of the architecture's general-purpose registers.
type RegisterID int

// Register describes one physical register: its canonical id, its
// assembler name at each supported operand width, and its natural
// (largest) size in bytes.
type Register struct {
	ID          RegisterID
	Size        int
	namesBySize map[int]string
}

// Name returns the assembler mnemonic for this register at the given
// operand width, falling back to the register's natural width if size is
// not one it has a distinct name for.
func (r Register) Name(size int) string {
	if n, ok := r.namesBySize[size]; ok {
		return n
	}
	return r.namesBySize[r.Size]
}

// Descriptor is the architecture contract the emitter core is written
// against: a word size, a calling-convention-mandated frame base and return
// register, and a symbol mangler. Concrete descriptors (AMD64 below) plug
// in the register file and mangling scheme; the core never special-cases an
// architecture by name.
type Descriptor struct {
	Name      string
	WordSize  int
	FrameBase RegisterID
	StackPtr  RegisterID
	ReturnReg RegisterID

	registers map[RegisterID]Register
	// GeneralPurpose lists the registers, in allocation-preference order,
	// that the register allocator may hand out for temporaries. It excludes
	// the frame base and stack pointer.
	GeneralPurpose []RegisterID
}

// Word satisfies the narrow wordSizer contract lang/types.Size is written
// against.
func (d *Descriptor) Word() int { return d.WordSize }

// Register looks up the physical register for a canonical id.
func (d *Descriptor) Register(id RegisterID) Register { return d.registers[id] }

// MangleSymbol assigns fn.Label if it is not already set. The scheme is a
// System-V-style leading underscore plus the bare name; re-mangling an
// already-labeled symbol is a no-op so the function lowerer's
// "if label == 0" guard (spec.md §4.3 step 1) is safe to call unconditionally.
func (d *Descriptor) MangleSymbol(s *sym.Symbol) {
	if s.Label != "" {
		return
	}
	s.Label = fmt.Sprintf("_%s", s.Name)
}

const (
	RAX RegisterID = iota
	RBX
	RCX
	RDX
	RSI
	RDI
	RBP
	RSP
	R8
	R9
	R10
	R11
)

// AMD64 returns the architecture descriptor for the System-V AMD64 calling
// convention: 8-byte words, RBP as the frame base, RSP as the stack
// pointer, and RAX as the integer return register.
func AMD64() *Descriptor {
	reg := func(id RegisterID, n64, n32, n16, n8 string) Register {
		return Register{ID: id, Size: 8, namesBySize: map[int]string{8: n64, 4: n32, 2: n16, 1: n8}}
	}
	regs := map[RegisterID]Register{
		RAX: reg(RAX, "rax", "eax", "ax", "al"),
		RBX: reg(RBX, "rbx", "ebx", "bx", "bl"),
		RCX: reg(RCX, "rcx", "ecx", "cx", "cl"),
		RDX: reg(RDX, "rdx", "edx", "dx", "dl"),
		RSI: reg(RSI, "rsi", "esi", "si", "sil"),
		RDI: reg(RDI, "rdi", "edi", "di", "dil"),
		RBP: reg(RBP, "rbp", "ebp", "bp", "bpl"),
		RSP: reg(RSP, "rsp", "esp", "sp", "spl"),
		R8:  reg(R8, "r8", "r8d", "r8w", "r8b"),
		R9:  reg(R9, "r9", "r9d", "r9w", "r9b"),
		R10: reg(R10, "r10", "r10d", "r10w", "r10b"),
		R11: reg(R11, "r11", "r11d", "r11w", "r11b"),
	}
	return &Descriptor{
		Name:      "amd64",
		WordSize:  8,
		FrameBase: RBP,
		StackPtr:  RSP,
		ReturnReg: RAX,
		registers: regs,
		GeneralPurpose: []RegisterID{
			RAX, RCX, RDX, RSI, RDI, R8, R9, R10, R11, RBX,
		},
	}
}
