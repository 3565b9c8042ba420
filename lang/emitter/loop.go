package emitter

import (
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/emitctx"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/types"
	"github.com/mna/fcc/lang/value"
)

// lowerLoop lowers a *loop* node, either a while or a do-while depending on
// which child is the *code* node (spec.md §4.6).
func lowerLoop(ctx *emitctx.Ctx, block *ir.Block, node *ast.Node, retType *types.Type) *ir.Block {
	body := ctx.IR.CreateBlock()
	loopCheck := ctx.IR.CreateBlock()
	cont := ctx.IR.CreateBlock()

	var bodyCode, cond *ast.Node
	if node.IsDoWhile() {
		bodyCode, cond = node.Left, node.Right
		ctx.IR.Jump(block, body)
	} else {
		bodyCode, cond = node.Right, node.Left
		value.EmitBranchOnValue(valueCtx(ctx), block, cond, body, cont)
	}

	restore := ctx.SetLoopTargets(cont, loopCheck)
	lowerCode(ctx, body, asCode(bodyCode), loopCheck, retType)
	restore()

	value.EmitBranchOnValue(valueCtx(ctx), loopCheck, cond, body, cont)

	return cont
}
