// Package emitctx is the process-lifetime state bundle threaded through the
// recursive lowering in lang/emitter: the IR builder handle, the
// architecture descriptor, the register allocator, and the three jump
// targets (return_to, break_to, continue_to) that give meaning to
// non-local transfers (spec.md §2.1, §3's "emitter context invariants").
//
// The jump targets are mutable fields rather than parameters threaded
// explicitly through every lowerer call — that is the shape spec.md's own
// component contracts describe (each lowerer that changes one saves the old
// value and restores it on the way out), so the Set* helpers below enforce
// that stack discipline at a single choke point instead of leaving every
// call site to get the save/restore dance right by hand.
package emitctx

import (
	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/regalloc"
)

// Ctx bundles the collaborators and dynamic jump targets the emitter core
// needs at every recursion level.
type Ctx struct {
	IR   *ir.Context
	Arch *arch.Descriptor
	Regs *regalloc.Allocator

	// ReturnTo is non-nil for the duration of function-body lowering, nil
	// between functions.
	ReturnTo *ir.Block
	// BreakTo and ContinueTo are non-nil only while lowering statements
	// syntactically inside a loop or iter.
	BreakTo    *ir.Block
	ContinueTo *ir.Block
}

// New builds a Ctx around a freshly initialized IR context and a register
// allocator for a, with no jump targets installed.
func New(irCtx *ir.Context, a *arch.Descriptor) *Ctx {
	return &Ctx{IR: irCtx, Arch: a, Regs: regalloc.New(a)}
}

// SetReturnTo installs target as ReturnTo, returning a restore func that
// puts the previous value back — the function lowerer's save/restore around
// a function body.
func (c *Ctx) SetReturnTo(target *ir.Block) (restore func()) {
	prev := c.ReturnTo
	c.ReturnTo = target
	return func() { c.ReturnTo = prev }
}

// SetLoopTargets installs breakTo/continueTo, returning a restore func —
// used by the loop and iter lowerers around the body they lower.
func (c *Ctx) SetLoopTargets(breakTo, continueTo *ir.Block) (restore func()) {
	prevBreak, prevContinue := c.BreakTo, c.ContinueTo
	c.BreakTo, c.ContinueTo = breakTo, continueTo
	return func() {
		c.BreakTo = prevBreak
		c.ContinueTo = prevContinue
	}
}
