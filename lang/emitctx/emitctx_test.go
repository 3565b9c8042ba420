package emitctx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/ir"
)

func TestSetReturnToRestores(t *testing.T) {
	a := arch.AMD64()
	c := New(ir.Init(&strings.Builder{}, a), a)

	b1 := c.IR.CreateBlock()
	restore := c.SetReturnTo(b1)
	require.Same(t, b1, c.ReturnTo)
	restore()
	require.Nil(t, c.ReturnTo)
}

func TestSetLoopTargetsNests(t *testing.T) {
	a := arch.AMD64()
	c := New(ir.Init(&strings.Builder{}, a), a)

	outerBreak := c.IR.CreateBlock()
	outerContinue := c.IR.CreateBlock()
	restoreOuter := c.SetLoopTargets(outerBreak, outerContinue)

	innerBreak := c.IR.CreateBlock()
	innerContinue := c.IR.CreateBlock()
	restoreInner := c.SetLoopTargets(innerBreak, innerContinue)
	require.Same(t, innerBreak, c.BreakTo)
	require.Same(t, innerContinue, c.ContinueTo)

	restoreInner()
	require.Same(t, outerBreak, c.BreakTo)
	require.Same(t, outerContinue, c.ContinueTo)

	restoreOuter()
	require.Nil(t, c.BreakTo)
	require.Nil(t, c.ContinueTo)
}
