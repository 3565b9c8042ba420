package emitter

import (
	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/sym"
	"github.com/mna/fcc/lang/types"
)

// AssignScopeOffsets walks scope's children in declaration order, assigning
// each *id* a frame-relative offset and recursing into nested *scope*
// children, starting from offset (initially 0 for a function's top scope).
// It returns the final, most-negative offset reached; the caller negates
// it for the function's stack frame size.
//
// Nested scopes reuse the running offset returned by the recursive call
// rather than a snapshot taken before recursing, so sibling scopes do not
// reclaim the frame space a scope before them used — preserved
// deliberately, not a bug (see the decided open question recorded for this
// package).
func AssignScopeOffsets(a *arch.Descriptor, scope *sym.Symbol, offset int) int {
	for _, child := range scope.Children {
		switch child.Tag {
		case sym.Scope:
			offset = AssignScopeOffsets(a, child, offset)
		case sym.Id:
			offset -= types.Size(a, child.Type)
			child.Offset = offset
		default:
			// params and anything else are not locals of this scope; ignored.
		}
	}
	return offset
}
