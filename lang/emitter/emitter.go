// Package emitter is the AST-to-IR lowering core: it walks a
// fully-decorated module AST and produces a control-flow graph of basic
// blocks in the IR layer, ready for a target-architecture back end.
//
// The package is organized the way spec.md's component design breaks the
// core down: scope.go (scope offset assigner), function.go (function
// lowerer), module.go (module lowerer), stmt.go (statement dispatch and
// code-block lowering), branch.go/loop.go/iter.go (control-flow lowerers),
// return.go (return lowerer). This file is just the public entry point and
// the internal error boundary.
package emitter

import (
	"io"

	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/debug"
	"github.com/mna/fcc/lang/emitctx"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/value"
)

// Emit lowers tree (a *module* node) to output for the given architecture.
// It recovers internal invariant breaks raised through lang/debug.Error and
// turns them into a normal Go error; nothing else in this package returns
// an error directly, matching spec.md §7's "nothing is recoverable at this
// layer" for the lowering logic itself — only this boundary recovers.
func Emit(tree *ast.Node, output io.Writer, a *arch.Descriptor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(debug.InternalError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()

	irCtx := ir.Init(output, a)
	defer irCtx.Free()

	ctx := emitctx.New(irCtx, a)
	LowerModule(ctx, tree)

	return irCtx.Emit()
}

// valueCtx adapts an emitctx.Ctx to the narrower view the value lowerer
// needs.
func valueCtx(ctx *emitctx.Ctx) *value.Ctx {
	return &value.Ctx{IR: ctx.IR, Regs: ctx.Regs, Arch: ctx.Arch}
}
