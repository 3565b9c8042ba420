// Package decl is the declaration lowerer spec.md treats as an external
// collaborator: Emit for a local declaration (optionally split across
// blocks by an initializer's side effects) and EmitGlobal for a top-level
// declaration, which reserves storage through the IR layer rather than
// threading a block at all.
package decl

import (
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/types"
	"github.com/mna/fcc/lang/value"
)

// Emit lowers a local *decl* node: if it carries an initializer expression
// (node.Right), the value lowerer stores it into the declared symbol's
// frame slot. May replace *block with a fresh continuation, mirroring
// value.Emit's in/out block parameter (a short-circuit initializer splits
// blocks just like any other expression).
func Emit(c *value.Ctx, block **ir.Block, node *ast.Node) {
	if node.Right == nil {
		return
	}
	target := &ast.Node{Tag: ast.Ident, Symbol: node.Symbol}
	assign := &ast.Node{Tag: ast.Assign, Left: target, Right: node.Right}
	v := value.Emit(c, block, assign, value.Void)
	_ = v
}

// EmitGlobal lowers a top-level *decl* node by reserving its storage in the
// IR context under its mangled label. Top-level declarations have no
// enclosing block to thread, and (per the value lowerer's documented
// partial coverage) only literal-constant initializers are supported; any
// other initializer is a declaration this core cannot lower at module
// scope and is reported through the debug sink by the caller.
func EmitGlobal(irc *ir.Context, a ArchWordSizer, node *ast.Node) {
	size := types.Size(a, node.Symbol.Type)
	var init *int64
	if node.Right != nil && node.Right.Tag == ast.IntLit {
		v := node.Right.IntVal
		init = &v
	}
	irc.DeclareGlobal(node.Symbol.Label, size, init)
}

// ArchWordSizer is the narrow view of the architecture descriptor
// types.Size needs; EmitGlobal takes it directly rather than *arch.Descriptor
// to avoid decl depending on the arch package for anything more than this.
type ArchWordSizer interface {
	Word() int
}
