package emitter

import (
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/debug"
	"github.com/mna/fcc/lang/emitctx"
	"github.com/mna/fcc/lang/sym"
	"github.com/mna/fcc/lang/types"
)

// LowerFunction lowers an *fn-impl* node (spec.md §4.3): mangles the
// function's label if needed, assigns parameter and local frame offsets in
// a single linear pass, and emits the prologue/body/epilogue block chain.
func LowerFunction(ctx *emitctx.Ctx, node *ast.Node) {
	debug.Enter("FnImpl")
	defer debug.Leave()

	fn := node.Symbol
	ctx.Arch.MangleSymbol(fn)

	retType := types.ReturnType(fn.Type)
	paramOffset := 2 * ctx.Arch.WordSize
	if types.Size(ctx.Arch, retType) > ctx.Arch.WordSize {
		paramOffset += ctx.Arch.WordSize
	}

	i := 0
	for i < len(fn.Children) && fn.Children[i].Tag == sym.Param {
		p := fn.Children[i]
		p.Offset = paramOffset
		paramOffset += types.Size(ctx.Arch, p.Type)
		i++
	}

	stackSize := -AssignScopeOffsets(ctx.Arch, fn, 0)

	entry := ctx.IR.CreateBlock()
	epilogue := ctx.IR.CreateBlock()
	restore := ctx.SetReturnTo(epilogue)
	defer restore()

	ctx.IR.FnPrologue(entry, fn.Label, stackSize)
	lowerCode(ctx, entry, node.Right, epilogue, retType)
	ctx.IR.FnEpilogue(epilogue)
}
