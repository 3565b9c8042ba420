package emitter

import (
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/decl"
	"github.com/mna/fcc/lang/emitctx"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/types"
	"github.com/mna/fcc/lang/value"
)

// lowerIter lowers a C-style *for* node (spec.md §4.7): init, cond, step
// ordered as Init/Cond/Right, body as Left. Absent init/cond/step (an empty
// `for(;;)` clause) are handled as no-ops/always-true respectively.
//
// The cond node is lowered twice, once into the incoming block and once into
// the iterate block, so a condition with side effects runs them from both
// places; the two lowerings are not merged into a single operand.
func lowerIter(ctx *emitctx.Ctx, block *ir.Block, node *ast.Node, retType *types.Type) *ir.Block {
	cur := block
	if node.Init != nil {
		if node.Init.Tag == ast.Decl {
			b := cur
			decl.Emit(valueCtx(ctx), &b, node.Init)
			cur = b
		} else {
			b := cur
			v := value.Emit(valueCtx(ctx), &b, node.Init, value.Void)
			ctx.Regs.Free(v)
			cur = b
		}
	}

	body := ctx.IR.CreateBlock()
	iterate := ctx.IR.CreateBlock()
	cont := ctx.IR.CreateBlock()

	branchCond(ctx, cur, node.Cond, body, cont)

	restore := ctx.SetLoopTargets(cont, iterate)
	lowerCode(ctx, body, asCode(node.Left), iterate, retType)
	restore()

	if node.Right != nil {
		b := iterate
		v := value.Emit(valueCtx(ctx), &b, node.Right, value.Void)
		ctx.Regs.Free(v)
		iterate = b
	}
	branchCond(ctx, iterate, node.Cond, body, cont)

	return cont
}

// branchCond branches on cond, or unconditionally to ifTrue when cond is
// absent (an empty for-loop condition clause means "always true").
func branchCond(ctx *emitctx.Ctx, block *ir.Block, cond *ast.Node, ifTrue, ifFalse *ir.Block) {
	if cond == nil {
		ctx.IR.Jump(block, ifTrue)
		return
	}
	value.EmitBranchOnValue(valueCtx(ctx), block, cond, ifTrue, ifFalse)
}
