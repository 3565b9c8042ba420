// Package sym defines the symbol tree the emitter core walks to assign
// frame offsets: a named entity with a tag, a type, an ordered list of
// children (for scopes and functions) and, for locals and parameters, a
// mutable frame offset written exactly once by the core.
package sym

import (
	"github.com/mna/fcc/lang/token"
	"github.com/mna/fcc/lang/types"
)

// Tag discriminates the kinds of symbol the core cares about. Any other
// entity a real checker would track (typedefs, enum constants, struct
// tags...) is out of scope: the core only ever switches on Scope/Id/Param,
// and treats everything else as opaque ("other").
type Tag int

const (
	Other Tag = iota
	Scope
	Id
	Param
	Fn
)

func (t Tag) String() string {
	switch t {
	case Scope:
		return "scope"
	case Id:
		return "id"
	case Param:
		return "param"
	case Fn:
		return "fn"
	default:
		return "other"
	}
}

// Symbol is a named entity in the resolved program: a lexical scope, a
// local/parameter, or a function. Offset is frame-relative and is written
// exactly once, either by the function lowerer's parameter pass (for
// Param) or by the scope offset assigner (for Id).
type Symbol struct {
	Tag      Tag
	Name     string
	Pos      token.Pos
	Type     *types.Type
	Children []*Symbol

	// Label is the mangled assembler symbol. For Fn it is set by the
	// architecture's MangleSymbol if still empty; for a top-level declaration
	// it must already be set, and is used as the global's data label.
	Label string

	// Offset is the frame-relative byte offset: positive for parameters
	// (above the saved frame pointer/return address), negative for locals
	// (below it). Zero until assigned.
	Offset int
}

// NewScope returns an empty lexical scope symbol.
func NewScope() *Symbol { return &Symbol{Tag: Scope} }

// NewId returns a local variable symbol of the given name and type.
func NewId(name string, t *types.Type) *Symbol {
	return &Symbol{Tag: Id, Name: name, Type: t}
}

// NewParam returns a function parameter symbol of the given name and type.
func NewParam(name string, t *types.Type) *Symbol {
	return &Symbol{Tag: Param, Name: name, Type: t}
}

// NewFn returns a function symbol. Its Children must be populated with zero
// or more Param entries followed by Scope/Id entries for its locals, in
// that order, before it is handed to the function lowerer.
func NewFn(name string, t *types.Type) *Symbol {
	return &Symbol{Tag: Fn, Name: name, Type: t}
}

// Add appends a child symbol (a parameter or local for Fn, or a nested
// scope/id for Scope) and returns the receiver for chaining.
func (s *Symbol) Add(children ...*Symbol) *Symbol {
	s.Children = append(s.Children, children...)
	return s
}
