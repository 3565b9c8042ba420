package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChildrenAndAddChild(t *testing.T) {
	mod := &Node{Tag: Module}
	a := &Node{Tag: Empty}
	b := &Node{Tag: Empty}
	mod.AddChild(a)
	mod.AddChild(b)

	require.Equal(t, []*Node{a, b}, mod.Children())
}

func TestIsDoWhile(t *testing.T) {
	while := &Node{Tag: Loop, Left: &Node{Tag: IntLit}, Right: &Node{Tag: Code}}
	require.False(t, while.IsDoWhile())

	doWhile := &Node{Tag: Loop, Left: &Node{Tag: Code}, Right: &Node{Tag: IntLit}}
	require.True(t, doWhile.IsDoWhile())
}
