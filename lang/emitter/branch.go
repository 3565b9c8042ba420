package emitter

import (
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/emitctx"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/types"
	"github.com/mna/fcc/lang/value"
)

// lowerBranch lowers an *if/else* node (spec.md §4.5). Both arms always
// join at the same continuation block.
func lowerBranch(ctx *emitctx.Ctx, block *ir.Block, node *ast.Node, retType *types.Type) *ir.Block {
	ifTrue := ctx.IR.CreateBlock()
	ifFalse := ctx.IR.CreateBlock()
	cont := ctx.IR.CreateBlock()

	value.EmitBranchOnValue(valueCtx(ctx), block, node.Cond, ifTrue, ifFalse)

	lowerCode(ctx, ifTrue, asCode(node.Left), cont, retType)
	lowerCode(ctx, ifFalse, asCode(node.Right), cont, retType)

	return cont
}

// asCode wraps a possibly-nil, possibly-bare-statement child as a *code*
// node of one statement, so branch/loop arms with a single unbraced
// statement (`if (c) return 1;`) go through the same lowerCode path as a
// braced block.
func asCode(n *ast.Node) *ast.Node {
	if n == nil {
		return &ast.Node{Tag: ast.Code}
	}
	if n.Tag == ast.Code {
		return n
	}
	wrapper := &ast.Node{Tag: ast.Code}
	wrapper.AddChild(n)
	return wrapper
}
