// Package regalloc implements the register allocator the emitter core
// borrows registers from in a strictly paired allocate/free discipline
// (spec.md §5): Alloc hands out any free general-purpose register, Request
// asks for one specific canonical register (failing if it is in use), and
// Free returns a register to the pool.
//
// There is exactly one Allocator per compilation unit; it is not safe for
// concurrent use, which matches the single-threaded, fully synchronous
// scheduling model spec.md §5 describes for the whole core.
package regalloc

import (
	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/debug"
	"github.com/mna/fcc/lang/operand"
)

// Allocator tracks which of the architecture's general-purpose registers
// are currently lent out.
type Allocator struct {
	arch *arch.Descriptor
	free map[arch.RegisterID]bool
}

// New returns an allocator with every general-purpose register of a free.
func New(a *arch.Descriptor) *Allocator {
	free := make(map[arch.RegisterID]bool, len(a.GeneralPurpose))
	for _, id := range a.GeneralPurpose {
		free[id] = true
	}
	return &Allocator{arch: a, free: free}
}

// Alloc hands out any free general-purpose register able to hold size
// bytes, in the architecture's preference order. It panics if none is
// free: unlike Request, Alloc has no fallback path for the caller to check,
// so an exhausted register file here is always an internal invariant
// break, same class of fault as a failed canonical Request (spec.md §7).
func (al *Allocator) Alloc(size int) operand.Operand {
	for _, id := range al.arch.GeneralPurpose {
		if al.free[id] {
			al.free[id] = false
			return operand.Reg(id, size)
		}
	}
	debug.Error("Alloc", "no free register available")
	panic("unreachable")
}

// Request asks for one specific canonical register (e.g. the return
// register). It returns ok=false, leaving the register file untouched, if
// that register is already lent out — the caller (the return lowerer) is
// expected to handle that case itself per spec.md §4.8, not to treat it as
// fatal on its own.
func (al *Allocator) Request(id arch.RegisterID, size int) (op operand.Operand, ok bool) {
	if !al.free[id] {
		return operand.Operand{}, false
	}
	al.free[id] = false
	return operand.Reg(id, size), true
}

// Free returns a register operand to the pool. Freeing a non-register
// operand, or a register not currently lent out, is a no-op: call sites
// free operands unconditionally on every path, including ones where the
// operand never ended up in a register (spec.md §5).
func (al *Allocator) Free(op operand.Operand) {
	if op.Kind != operand.Register {
		return
	}
	al.free[op.Reg] = true
}
