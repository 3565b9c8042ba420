// Package fixture loads the JSON-encoded AST+symbol fixtures the emit
// command consumes. A real front end would hand lang/emitter a tree built
// by its own parser and resolver; since those phases are out of scope here,
// tests and the CLI instead describe a module as a small JSON document and
// this package builds the corresponding lang/ast.Node / lang/sym.Symbol
// graph from it.
package fixture

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mna/fcc/lang/ast"
	"github.com/mna/fcc/lang/sym"
	"github.com/mna/fcc/lang/types"
)

// Type is the JSON shape of a type handle.
type Type struct {
	Kind    string  `json:"kind"` // void, int, char, pointer, array, struct, func
	Base    *Type   `json:"base,omitempty"`
	Length  int     `json:"length,omitempty"`
	Fields  []Field `json:"fields,omitempty"`
	Return  *Type   `json:"return,omitempty"`
	Params  []*Type `json:"params,omitempty"`
}

// Field is one struct member in a JSON type.
type Field struct {
	Name string `json:"name"`
	Type *Type  `json:"type"`
}

// Symbol is the JSON shape of a sym.Symbol.
type Symbol struct {
	Tag      string    `json:"tag"` // scope, id, param, fn
	Name     string    `json:"name,omitempty"`
	Type     *Type     `json:"type,omitempty"`
	Children []*Symbol `json:"children,omitempty"`
	// Label pre-sets the mangled assembler label, meaningful only for "fn"
	// (skips the architecture's mangler, which is a no-op once Label is
	// already set) and for top-level "decl" symbols, whose label the
	// declaration lowerer expects to already be assigned (spec.md's mangler
	// is defined for function symbols only).
	Label string `json:"label,omitempty"`
}

// Node is the JSON shape of an ast.Node.
type Node struct {
	Tag      string  `json:"tag"`
	Children []*Node `json:"children,omitempty"`

	Cond  *Node `json:"cond,omitempty"`
	Left  *Node `json:"left,omitempty"`
	Right *Node `json:"right,omitempty"`
	Init  *Node `json:"init,omitempty"`

	Symbol *Symbol `json:"symbol,omitempty"`
	// Ref names a symbol declared elsewhere in the same fixture (a param or
	// local's "name") instead of nesting a fresh Symbol. Every fixture
	// symbol with a non-empty Name is registered as it is built, so an
	// "ident" node that reads/writes an existing local or parameter should
	// use Ref rather than re-declaring a look-alike Symbol, which would be
	// a distinct *sym.Symbol with its own, never-assigned Offset.
	Ref string `json:"ref,omitempty"`

	BinOp  string  `json:"binop,omitempty"`
	UnOp   string  `json:"unop,omitempty"`
	IntVal int64   `json:"intval,omitempty"`
	Args   []*Node `json:"args,omitempty"`
}

// Load reads a JSON module fixture from r and builds the lang/ast tree.
func Load(r io.Reader) (*ast.Node, error) {
	var n Node
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	names := map[string]*sym.Symbol{}
	return buildNode(&n, map[*Symbol]*sym.Symbol{}, names), nil
}

func buildType(t *Type) *types.Type {
	if t == nil {
		return types.NewVoid()
	}
	switch t.Kind {
	case "void":
		return types.NewVoid()
	case "int":
		return types.NewInt()
	case "char":
		return types.NewChar()
	case "pointer":
		return types.NewPointer(buildType(t.Base))
	case "array":
		return types.NewArray(buildType(t.Base), t.Length)
	case "struct":
		fields := make([]types.Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = types.Field{Name: f.Name, Type: buildType(f.Type)}
		}
		return types.NewStruct(fields...)
	case "func":
		params := make([]*types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = buildType(p)
		}
		return types.NewFunc(buildType(t.Return), params...)
	default:
		return types.NewVoid()
	}
}

func buildSymbol(s *Symbol, seen map[*Symbol]*sym.Symbol, names map[string]*sym.Symbol) *sym.Symbol {
	if s == nil {
		return nil
	}
	if existing, ok := seen[s]; ok {
		return existing
	}
	var out *sym.Symbol
	switch s.Tag {
	case "param":
		out = sym.NewParam(s.Name, buildType(s.Type))
	case "fn":
		out = sym.NewFn(s.Name, buildType(s.Type))
	case "scope":
		out = sym.NewScope()
	default:
		out = sym.NewId(s.Name, buildType(s.Type))
	}
	out.Label = s.Label
	seen[s] = out
	if s.Name != "" {
		names[s.Name] = out
	}
	for _, c := range s.Children {
		out.Add(buildSymbol(c, seen, names))
	}
	return out
}

func buildNode(n *Node, symbols map[*Symbol]*sym.Symbol, names map[string]*sym.Symbol) *ast.Node {
	if n == nil {
		return nil
	}
	// Symbol must be built before the node's children: a fn-impl's symbol
	// declares the params its body (Right) refers to by Ref, so the names
	// table needs the declaration in place first.
	declared := buildSymbol(n.Symbol, symbols, names)
	out := &ast.Node{
		Tag:    tagFor(n.Tag),
		Symbol: declared,
		BinOp:  binOpFor(n.BinOp),
		UnOp:   unOpFor(n.UnOp),
		IntVal: n.IntVal,
	}
	if n.Ref != "" {
		out.Symbol = names[n.Ref]
	}
	out.Cond = buildNode(n.Cond, symbols, names)
	out.Left = buildNode(n.Left, symbols, names)
	out.Right = buildNode(n.Right, symbols, names)
	out.Init = buildNode(n.Init, symbols, names)
	for _, c := range n.Children {
		out.AddChild(buildNode(c, symbols, names))
	}
	for _, a := range n.Args {
		out.Args = append(out.Args, buildNode(a, symbols, names))
	}
	return out
}

func tagFor(s string) ast.Tag {
	switch s {
	case "module":
		return ast.Module
	case "code":
		return ast.Code
	case "fn-impl":
		return ast.FnImpl
	case "decl":
		return ast.Decl
	case "branch":
		return ast.Branch
	case "loop":
		return ast.Loop
	case "iter":
		return ast.Iter
	case "return":
		return ast.Return
	case "break":
		return ast.Break
	case "continue":
		return ast.Continue
	case "empty":
		return ast.Empty
	case "using":
		return ast.Using
	case "ident":
		return ast.Ident
	case "int-lit":
		return ast.IntLit
	case "binary":
		return ast.Binary
	case "unary":
		return ast.Unary
	case "assign":
		return ast.Assign
	case "land":
		return ast.LAnd
	case "lor":
		return ast.LOr
	case "call":
		return ast.Call
	default:
		return ast.Empty
	}
}

func binOpFor(s string) ast.BinOp {
	switch s {
	case "add":
		return ast.Add
	case "sub":
		return ast.Sub
	case "mul":
		return ast.Mul
	case "div":
		return ast.Div
	case "eq":
		return ast.Eq
	case "ne":
		return ast.Ne
	case "lt":
		return ast.Lt
	case "le":
		return ast.Le
	case "gt":
		return ast.Gt
	case "ge":
		return ast.Ge
	default:
		return ast.Add
	}
}

func unOpFor(s string) ast.UnOp {
	if s == "not" {
		return ast.Not
	}
	return ast.Neg
}
