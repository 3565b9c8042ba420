package emitter

import (
	"strings"
	"testing"

	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/sym"
	"github.com/mna/fcc/lang/types"
)

func fn(name string, ret *types.Type, params []*sym.Symbol, locals []*sym.Symbol, body *ast.Node) *ast.Node {
	f := sym.NewFn(name, types.NewFunc(ret, paramTypes(params)...))
	for _, p := range params {
		f.Add(p)
	}
	for _, l := range locals {
		f.Add(l)
	}
	return &ast.Node{Tag: ast.FnImpl, Symbol: f, Right: body}
}

func paramTypes(params []*sym.Symbol) []*types.Type {
	var out []*types.Type
	for _, p := range params {
		out = append(out, p.Type)
	}
	return out
}

func code(children ...*ast.Node) *ast.Node {
	c := &ast.Node{Tag: ast.Code}
	for _, ch := range children {
		c.AddChild(ch)
	}
	return c
}

func module(children ...*ast.Node) *ast.Node {
	m := &ast.Node{Tag: ast.Module}
	for _, ch := range children {
		m.AddChild(ch)
	}
	return m
}

// 1. Empty function.
func TestEmitEmptyFunction(t *testing.T) {
	body := code()
	f := fn("f", types.NewVoid(), nil, nil, body)
	var out strings.Builder
	if err := Emit(module(f), &out, arch.AMD64()); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "block 0 (entry):") || !strings.Contains(text, "prologue _f, 0") {
		t.Fatalf("missing entry/prologue:\n%s", text)
	}
	if !strings.Contains(text, "jmp block1") {
		t.Fatalf("entry must jump straight to epilogue:\n%s", text)
	}
	if !strings.Contains(text, "block 1 (epilogue):") || !strings.Contains(text, "ret") {
		t.Fatalf("missing epilogue/ret:\n%s", text)
	}
}

// 2. If-else with returns in both arms.
func TestEmitIfElseBothReturn(t *testing.T) {
	x := sym.NewParam("x", types.NewInt())
	cond := &ast.Node{Tag: ast.Ident, Symbol: x}
	thenRet := &ast.Node{Tag: ast.Return, Right: &ast.Node{Tag: ast.IntLit, IntVal: 1}}
	elseRet := &ast.Node{Tag: ast.Return, Right: &ast.Node{Tag: ast.IntLit, IntVal: 2}}
	branch := &ast.Node{Tag: ast.Branch, Cond: cond, Left: thenRet, Right: elseRet}

	f := fn("f", types.NewInt(), []*sym.Symbol{x}, nil, code(branch))
	var out strings.Builder
	if err := Emit(module(f), &out, arch.AMD64()); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	text := out.String()
	if strings.Count(text, "ret") != 1 {
		t.Fatalf("expected exactly one epilogue ret, got:\n%s", text)
	}
	if strings.Count(text, "jmp") < 2 {
		t.Fatalf("expected both arms to jump to the epilogue:\n%s", text)
	}
}

// 3. While with break.
func TestEmitWhileWithBreak(t *testing.T) {
	c := sym.NewId("c", types.NewInt())
	d := sym.NewId("d", types.NewInt())
	whileCond := &ast.Node{Tag: ast.Ident, Symbol: c}
	ifD := &ast.Node{Tag: ast.Branch, Cond: &ast.Node{Tag: ast.Ident, Symbol: d},
		Left: &ast.Node{Tag: ast.Break}}
	loop := &ast.Node{Tag: ast.Loop, Left: whileCond, Right: code(ifD)}

	f := fn("f", types.NewVoid(), nil, []*sym.Symbol{c, d}, code(loop))
	var out strings.Builder
	if err := Emit(module(f), &out, arch.AMD64()); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "ret") {
		t.Fatalf("missing epilogue:\n%s", text)
	}
}

// 4. Do-while with continue.
func TestEmitDoWhileWithContinue(t *testing.T) {
	c := sym.NewId("c", types.NewInt())
	d := sym.NewId("d", types.NewInt())
	ifD := &ast.Node{Tag: ast.Branch, Cond: &ast.Node{Tag: ast.Ident, Symbol: d},
		Left: &ast.Node{Tag: ast.Continue}}
	loop := &ast.Node{Tag: ast.Loop, Left: code(ifD), Right: &ast.Node{Tag: ast.Ident, Symbol: c}}

	f := fn("f", types.NewVoid(), nil, []*sym.Symbol{c, d}, code(loop))
	var out strings.Builder
	if err := Emit(module(f), &out, arch.AMD64()); err != nil {
		t.Fatalf("Emit: %v", err)
	}
}

// 5. For loop.
func TestEmitForLoop(t *testing.T) {
	i := sym.NewId("i", types.NewInt())
	n := sym.NewParam("n", types.NewInt())
	initDecl := &ast.Node{Tag: ast.Decl, Symbol: i, Right: &ast.Node{Tag: ast.IntLit, IntVal: 0}}
	condNode := &ast.Node{Tag: ast.Binary, BinOp: ast.Lt,
		Left: &ast.Node{Tag: ast.Ident, Symbol: i}, Right: &ast.Node{Tag: ast.Ident, Symbol: n}}
	step := &ast.Node{Tag: ast.Unary, UnOp: ast.Neg, Left: &ast.Node{Tag: ast.Ident, Symbol: i}}
	forNode := &ast.Node{Tag: ast.Iter, Init: initDecl, Cond: condNode, Left: code(), Right: step}

	f := fn("f", types.NewVoid(), []*sym.Symbol{n}, []*sym.Symbol{i}, code(forNode))
	var out strings.Builder
	if err := Emit(module(f), &out, arch.AMD64()); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	text := out.String()
	if strings.Count(text, "jl") < 2 {
		t.Fatalf("expected condition to branch at entry and at the iterate block:\n%s", text)
	}
}

// 6. Large return value via hidden pointer.
func TestEmitLargeReturnValue(t *testing.T) {
	a := arch.AMD64()
	big := types.NewStruct(
		types.Field{Name: "a", Type: types.NewInt()},
		types.Field{Name: "b", Type: types.NewInt()},
		types.Field{Name: "c", Type: types.NewInt()},
	)
	x := sym.NewId("x", big)
	ret := &ast.Node{Tag: ast.Return, Right: &ast.Node{Tag: ast.Ident, Symbol: x}}

	f := fn("f", big, nil, []*sym.Symbol{x}, code(ret))
	var out strings.Builder
	if err := Emit(module(f), &out, a); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "[rbp+16]") {
		t.Fatalf("expected the hidden pointer load from [rbp+16] (2*word_size):\n%s", text)
	}
}
