// Package ast defines the tagged syntax tree the emitter core consumes. A
// real front end would build this from source; here it is the thing a
// parser and type checker hand off fully decorated, which is why this
// package carries no parsing logic of its own (spec.md §1 treats parsing
// and type checking as out of scope).
package ast

import (
	"github.com/mna/fcc/lang/sym"
	"github.com/mna/fcc/lang/token"
)

// Tag discriminates the shape of a Node, per spec.md §3's data model.
type Tag int

const (
	Module Tag = iota
	Code
	FnImpl
	Decl
	Branch
	Loop
	Iter
	Return
	Break
	Continue
	Empty
	Using

	// value tags, lowered by lang/value.
	Ident
	IntLit
	Binary
	Unary
	Assign
	LAnd
	LOr
	Call
)

func (t Tag) String() string {
	switch t {
	case Module:
		return "module"
	case Code:
		return "code"
	case FnImpl:
		return "fn-impl"
	case Decl:
		return "decl"
	case Branch:
		return "branch"
	case Loop:
		return "loop"
	case Iter:
		return "iter"
	case Return:
		return "return"
	case Break:
		return "break"
	case Continue:
		return "continue"
	case Empty:
		return "empty"
	case Using:
		return "using"
	case Ident:
		return "ident"
	case IntLit:
		return "int-lit"
	case Binary:
		return "binary"
	case Unary:
		return "unary"
	case Assign:
		return "assign"
	case LAnd:
		return "land"
	case LOr:
		return "lor"
	case Call:
		return "call"
	default:
		return "unknown"
	}
}

// BinOp names a binary operator carried by a Binary node. Comparisons are
// distinguished from arithmetic so the value lowerer can fold a comparison
// straight into a conditional jump rather than materializing a 0/1 value
// (spec.md's ambient-stack expansion for emit_branch_on_value).
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

// UnOp names a unary operator carried by a Unary node.
type UnOp int

const (
	Neg UnOp = iota
	Not
)

// Node is a single tagged AST vertex. Not every field is meaningful for
// every Tag; see the per-tag shape notes in spec.md §3, mirrored on the
// field comments below.
type Node struct {
	Tag Tag
	Pos token.Pos

	// generic tree shape: Module/Code hold a flat list of children via
	// FirstChild/NextSibling; control-flow nodes address specific roles via
	// Left/Right/Cond for clarity, matching the "first/left/right child"
	// language spec.md uses per tag.
	FirstChild *Node
	NextSib    *Node

	Cond  *Node // branch condition; iter condition
	Left  *Node // branch then-body; loop code-or-cond; iter body
	Right *Node // branch else-body; loop cond-or-code; iter step; using sub-module; return expr

	Init *Node // iter initializer

	Symbol *sym.Symbol // fn-impl, decl, ident

	// value-node payloads.
	BinOp  BinOp
	UnOp   UnOp
	IntVal int64
	Args   []*Node // call arguments
}

// Children returns n's direct children via the FirstChild/NextSib chain,
// used by Module and Code nodes.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSib {
		out = append(out, c)
	}
	return out
}

// AddChild appends c to n's child list, used when building a Module or Code
// node programmatically (e.g. in tests or the CLI's fixture loader).
func (n *Node) AddChild(c *Node) {
	if n.FirstChild == nil {
		n.FirstChild = c
		return
	}
	last := n.FirstChild
	for last.NextSib != nil {
		last = last.NextSib
	}
	last.NextSib = c
}

// IsDoWhile reports whether a Loop node represents a do-while (its left
// child is a Code node) rather than a while (spec.md §3's discriminator).
func (n *Node) IsDoWhile() bool {
	return n.Tag == Loop && n.Left != nil && n.Left.Tag == Code
}
