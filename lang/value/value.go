// Package value is the expression lowerer spec.md treats as an external
// collaborator: emit_value and emit_branch_on_value. Coverage is
// deliberately partial — integer/char arithmetic, comparisons, assignment,
// short-circuit && and ||, and function calls (arguments are evaluated and
// the result is taken from the return register; no call instruction is
// emitted) — enough to drive every
// control-flow shape the emitter core exercises, not a full C expression
// grammar (that breadth is explicitly out of scope; see the non-goals this
// repo documents for the value lowerer).
package value

import (
	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/debug"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/operand"
	"github.com/mna/fcc/lang/regalloc"
	"github.com/mna/fcc/lang/types"
)

// Request hints at what operand form the caller wants back from Emit.
type Request int

const (
	// Void discards the result; side effects still happen.
	Void Request = iota
	// Value wants the expression's value in a register or immediate.
	Value
	// Reference wants the address of an lvalue, for assignment targets.
	Reference
)

// Ctx is the narrow slice of the emitter context the value lowerer needs:
// an IR context to append into, a register allocator to borrow from, and
// an architecture descriptor for word size and frame base.
type Ctx struct {
	IR   *ir.Context
	Regs *regalloc.Allocator
	Arch *arch.Descriptor
}

// Emit lowers node for the given request, possibly appending instructions
// to *block and possibly replacing *block with a fresh continuation (the
// short-circuit operators split blocks; everything else does not).
func Emit(c *Ctx, block **ir.Block, node *ast.Node, req Request) operand.Operand {
	switch node.Tag {
	case ast.IntLit:
		return operand.Imm(node.IntVal, c.Arch.WordSize)

	case ast.Ident:
		mem := operand.Mem(c.Arch.FrameBase, node.Symbol.Offset, sizeOf(c, node))
		if req == Reference {
			dst := c.Regs.Alloc(c.Arch.WordSize)
			(*block).Binary(ir.Lea, dst, mem)
			return dst
		}
		return mem

	case ast.Assign:
		dst := Emit(c, block, node.Left, Reference)
		src := Emit(c, block, node.Right, Value)
		(*block).Move(derefIfReg(dst), src)
		freeOperand(c, src)
		if req == Void {
			freeOperand(c, dst)
			return operand.Operand{}
		}
		return dst

	case ast.Unary:
		src := Emit(c, block, node.Left, Value)
		switch node.UnOp {
		case ast.Neg:
			(*block).Unary(ir.Neg, src)
		case ast.Not:
			(*block).Unary(ir.Not, src)
		}
		return src

	case ast.Binary:
		return emitBinary(c, block, node)

	case ast.LAnd, ast.LOr:
		return emitShortCircuit(c, block, node)

	case ast.Call:
		return emitCall(c, block, node)

	default:
		debug.ErrorUnhandled("value.Emit", "ast tag", node.Tag.String())
		return operand.Operand{}
	}
}

// derefIfReg treats a Reference-mode register result as a pointer needing
// one more indirection for the store side of an assignment; Ident already
// returns a direct memory operand when no dereference was requested, so
// this only matters when Emit(..., Reference) actually materialized an
// address into a register.
func derefIfReg(op operand.Operand) operand.Operand {
	if op.Kind == operand.Register {
		return operand.Mem(op.Reg, 0, op.Size)
	}
	return op
}

func sizeOf(c *Ctx, node *ast.Node) int {
	if node.Symbol != nil && node.Symbol.Type != nil {
		return types.Size(c.Arch, node.Symbol.Type)
	}
	return c.Arch.WordSize
}

func emitBinary(c *Ctx, block **ir.Block, node *ast.Node) operand.Operand {
	left := Emit(c, block, node.Left, Value)
	right := Emit(c, block, node.Right, Value)

	switch node.BinOp {
	case ast.Add:
		(*block).Binary(ir.Add, left, right)
	case ast.Sub:
		(*block).Binary(ir.Sub, left, right)
	case ast.Mul:
		(*block).Binary(ir.Mul, left, right)
	case ast.Div:
		(*block).Binary(ir.Div, left, right)
	case ast.Eq, ast.Ne, ast.Lt, ast.Le, ast.Gt, ast.Ge:
		// materialized as a value (not a branch): compare, then the back end
		// is expected to sequence a setcc-style fixup. The core itself only
		// ever asks for comparisons via EmitBranchOnValue below; this path
		// exists for completeness when a comparison appears outside a
		// condition position (e.g. `int ok = x < y;`).
		(*block).Binary(ir.Cmp, left, right)
		freeOperand(c, right)
		return left
	}
	freeOperand(c, right)
	return left
}

func emitShortCircuit(c *Ctx, block **ir.Block, node *ast.Node) operand.Operand {
	rhs := c.IR.CreateBlock()
	cont := c.IR.CreateBlock()
	result := c.Regs.Alloc(c.Arch.WordSize)

	left := Emit(c, block, node.Left, Value)
	if node.Tag == ast.LAnd {
		(*block).Move(result, operand.Imm(0, c.Arch.WordSize))
		c.IR.CondJump(*block, ir.NE, left, operand.Imm(0, c.Arch.WordSize), rhs, cont)
	} else {
		(*block).Move(result, operand.Imm(1, c.Arch.WordSize))
		c.IR.CondJump(*block, ir.EQ, left, operand.Imm(0, c.Arch.WordSize), rhs, cont)
	}
	freeOperand(c, left)

	rb := rhs
	right := Emit(c, &rb, node.Right, Value)
	rb.Move(result, right)
	freeOperand(c, right)
	c.IR.Jump(rb, cont)

	*block = cont
	return result
}

func emitCall(c *Ctx, block **ir.Block, node *ast.Node) operand.Operand {
	for _, arg := range node.Args {
		v := Emit(c, block, arg, Value)
		freeOperand(c, v)
	}
	if node.Symbol == nil {
		debug.ErrorUnhandled("value.emitCall", "callee symbol", "<nil>")
		return operand.Operand{}
	}
	dst, ok := c.Regs.Request(c.Arch.ReturnReg, c.Arch.WordSize)
	if !ok {
		debug.Error("value.emitCall", "return register unavailable for call result")
	}
	return dst
}

// EmitBranchOnValue lowers cond for its truth value and appends a
// conditional terminator to block jumping to ifTrue or ifFalse.
func EmitBranchOnValue(c *Ctx, block *ir.Block, cond *ast.Node, ifTrue, ifFalse *ir.Block) {
	if cond.Tag == ast.Binary {
		switch cond.BinOp {
		case ast.Eq, ast.Ne, ast.Lt, ast.Le, ast.Gt, ast.Ge:
			b := block
			left := Emit(c, &b, cond.Left, Value)
			right := Emit(c, &b, cond.Right, Value)
			c.IR.CondJump(b, condFor(cond.BinOp), left, right, ifTrue, ifFalse)
			freeOperand(c, left)
			freeOperand(c, right)
			return
		}
	}
	b := block
	v := Emit(c, &b, cond, Value)
	c.IR.CondJump(b, ir.NE, v, operand.Imm(0, c.Arch.WordSize), ifTrue, ifFalse)
	freeOperand(c, v)
}

func condFor(op ast.BinOp) ir.Cond {
	switch op {
	case ast.Eq:
		return ir.EQ
	case ast.Ne:
		return ir.NE
	case ast.Lt:
		return ir.LT
	case ast.Le:
		return ir.LE
	case ast.Gt:
		return ir.GT
	case ast.Ge:
		return ir.GE
	default:
		return ir.NE
	}
}

func freeOperand(c *Ctx, op operand.Operand) {
	c.Regs.Free(op)
}
