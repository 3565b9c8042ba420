package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeArch struct{ word int }

func (f fakeArch) Word() int { return f.word }

func TestSize(t *testing.T) {
	arch := fakeArch{word: 8}

	cases := []struct {
		name string
		t    *Type
		want int
	}{
		{"void", &Type{Kind: Void}, 0},
		{"int", NewInt(), 8},
		{"char", NewChar(), 1},
		{"pointer", NewPointer(NewInt()), 8},
		{"array", NewArray(NewChar(), 10), 10},
		{"array of int", NewArray(NewInt(), 4), 32},
		{"struct", NewStruct(Field{"a", NewInt()}, Field{"b", NewChar()}), 9},
		{"func is a pointer-sized value", NewFunc(NewInt()), 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Size(arch, c.t))
		})
	}
}

func TestReturnType(t *testing.T) {
	ret := NewStruct(Field{"x", NewInt()}, Field{"y", NewInt()}, Field{"z", NewInt()})
	fn := NewFunc(ret, NewInt(), NewInt())

	require.Same(t, ret, ReturnType(fn))
	require.Equal(t, Void, ReturnType(NewInt()).Kind)
}
