package emitter

import (
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/debug"
	"github.com/mna/fcc/lang/decl"
	"github.com/mna/fcc/lang/emitctx"
)

// LowerModule dispatches every top-level child of a *module* node
// (spec.md §4.1). Top-level items are independent; there is no block to
// thread here.
func LowerModule(ctx *emitctx.Ctx, module *ast.Node) {
	debug.Enter("Module")
	defer debug.Leave()

	for _, child := range module.Children() {
		lowerTopLevel(ctx, child)
	}
}

func lowerTopLevel(ctx *emitctx.Ctx, node *ast.Node) {
	switch node.Tag {
	case ast.Using:
		if node.Right != nil {
			LowerModule(ctx, node.Right)
		}
	case ast.FnImpl:
		LowerFunction(ctx, node)
	case ast.Decl:
		if node.Right != nil && node.Right.Tag != ast.IntLit {
			debug.ErrorUnhandled("LowerModule", "global initializer", node.Right.Tag.String())
		}
		decl.EmitGlobal(ctx.IR, ctx.Arch, node)
	case ast.Empty:
		debug.Msg("Empty")
	default:
		debug.ErrorUnhandled("LowerModule", "ast tag", node.Tag.String())
	}
}
