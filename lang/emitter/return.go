package emitter

import (
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/debug"
	"github.com/mna/fcc/lang/emitctx"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/operand"
	"github.com/mna/fcc/lang/types"
	"github.com/mna/fcc/lang/value"
)

// lowerReturn lowers a *return* node into *block, following it with an
// unconditional jump to ctx.ReturnTo. Returns a fresh, generally
// unreachable continuation block per the statement lowerer's contract for
// non-local transfers.
func lowerReturn(ctx *emitctx.Ctx, block **ir.Block, node *ast.Node, retType *types.Type) *ir.Block {
	if node.Right == nil {
		ctx.IR.Jump(*block, ctx.ReturnTo)
		return ctx.IR.CreateBlock()
	}

	vc := valueCtx(ctx)
	retSize := types.Size(ctx.Arch, retType)
	v := value.Emit(vc, block, node.Right, value.Value)

	if retSize > ctx.Arch.WordSize {
		tempRef := ctx.Regs.Alloc(ctx.Arch.WordSize)
		hiddenPtr := operand.Mem(ctx.Arch.FrameBase, 2*ctx.Arch.WordSize, ctx.Arch.WordSize)
		(*block).Move(tempRef, hiddenPtr)
		dst := operand.Mem(tempRef.Reg, 0, retSize)
		(*block).Move(dst, v)
		ctx.Regs.Free(v)
		v = tempRef
		retSize = ctx.Arch.WordSize
	}

	dst, ok := ctx.Regs.Request(ctx.Arch.ReturnReg, retSize)
	if ok {
		(*block).Move(dst, v)
		ctx.Regs.Free(dst)
	} else if !v.IsRegister(ctx.Arch.ReturnReg) {
		debug.Error("lowerReturn", "return register unavailable and value is not already in it")
	}
	ctx.Regs.Free(v)

	ctx.IR.Jump(*block, ctx.ReturnTo)
	return ctx.IR.CreateBlock()
}
