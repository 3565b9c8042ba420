package emitter

import (
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/debug"
	"github.com/mna/fcc/lang/decl"
	"github.com/mna/fcc/lang/emitctx"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/types"
	"github.com/mna/fcc/lang/value"
)

// lowerStmt lowers one statement node starting at block, returning the
// continuation block into which the next statement should be appended
// (spec.md §4.4's dispatch table).
func lowerStmt(ctx *emitctx.Ctx, block *ir.Block, node *ast.Node, retType *types.Type) *ir.Block {
	debug.Enter(node.Tag.String())
	defer debug.Leave()

	switch node.Tag {
	case ast.Branch:
		return lowerBranch(ctx, block, node, retType)

	case ast.Loop:
		return lowerLoop(ctx, block, node, retType)

	case ast.Iter:
		return lowerIter(ctx, block, node, retType)

	case ast.Code:
		cont := ctx.IR.CreateBlock()
		lowerCode(ctx, block, node, cont, retType)
		return cont

	case ast.Return:
		b := block
		return lowerReturn(ctx, &b, node, retType)

	case ast.Break:
		ctx.IR.Jump(block, ctx.BreakTo)
		return ctx.IR.CreateBlock()

	case ast.Continue:
		ctx.IR.Jump(block, ctx.ContinueTo)
		return ctx.IR.CreateBlock()

	case ast.Decl:
		b := block
		decl.Emit(valueCtx(ctx), &b, node)
		return b

	case ast.Empty:
		return block

	case ast.Using:
		return block

	default:
		// expression statement: lower for side effects, discard the result.
		b := block
		v := value.Emit(valueCtx(ctx), &b, node, value.Void)
		ctx.Regs.Free(v)
		return b
	}
}

// lowerCode iterates the children of a *code* node left to right, threading
// the current block through lowerStmt, then jumps from the resulting block
// to the externally supplied continuation (spec.md §4.9).
func lowerCode(ctx *emitctx.Ctx, block, code, cont *ir.Block, retType *types.Type) {
	if code.Tag != ast.Code {
		debug.ErrorUnhandled("lowerCode", "ast tag", code.Tag.String())
		ctx.IR.Jump(block, cont)
		return
	}
	cur := block
	for _, child := range code.Children() {
		cur = lowerStmt(ctx, cur, child, retType)
	}
	ctx.IR.Jump(cur, cont)
}
