package decl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/ir"
	"github.com/mna/fcc/lang/regalloc"
	"github.com/mna/fcc/lang/sym"
	"github.com/mna/fcc/lang/types"
	"github.com/mna/fcc/lang/value"
)

func TestEmitLocalWithInitializer(t *testing.T) {
	a := arch.AMD64()
	irc := ir.Init(&strings.Builder{}, a)
	b := irc.CreateBlock()
	vc := &value.Ctx{IR: irc, Regs: regalloc.New(a), Arch: a}

	s := sym.NewId("x", types.NewInt())
	s.Offset = -8
	node := &ast.Node{Tag: ast.Decl, Symbol: s, Right: &ast.Node{Tag: ast.IntLit, IntVal: 7}}

	Emit(vc, &b, node)
	require.NotEmpty(t, b.Insns(), "expected the initializer to append at least one instruction")
}

func TestEmitLocalNoInitializerIsNoop(t *testing.T) {
	a := arch.AMD64()
	irc := ir.Init(&strings.Builder{}, a)
	b := irc.CreateBlock()
	vc := &value.Ctx{IR: irc, Regs: regalloc.New(a), Arch: a}

	s := sym.NewId("x", types.NewInt())
	s.Offset = -8
	node := &ast.Node{Tag: ast.Decl, Symbol: s}

	Emit(vc, &b, node)
	require.Empty(t, b.Insns(), "declaration without initializer must not append instructions")
}

func TestEmitGlobalReservesStorage(t *testing.T) {
	a := arch.AMD64()
	irc := ir.Init(&strings.Builder{}, a)

	s := sym.NewFn("counter", types.NewInt())
	s.Label = "_counter"
	node := &ast.Node{Tag: ast.Decl, Symbol: s, Right: &ast.Node{Tag: ast.IntLit, IntVal: 3}}

	EmitGlobal(irc, a, node)
	require.NoError(t, irc.Emit())
}
