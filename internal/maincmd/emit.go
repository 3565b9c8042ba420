package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/fcc/internal/fixture"
	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/emitter"
)

func (c *Cmd) Emit(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var in *os.File
	switch len(args) {
	case 0:
		in = stdio.Stdin.(*os.File)
	case 1:
		f, err := os.Open(args[0])
		if err != nil {
			return printError(stdio, fmt.Errorf("emit: %w", err))
		}
		defer f.Close()
		in = f
	default:
		return printError(stdio, fmt.Errorf("emit: at most one fixture path may be given"))
	}

	tree, err := fixture.Load(in)
	if err != nil {
		return printError(stdio, fmt.Errorf("emit: %w", err))
	}

	out := stdio.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return printError(stdio, fmt.Errorf("emit: %w", err))
		}
		defer f.Close()
		out = f
	}

	if err := emitter.Emit(tree, out, arch.AMD64()); err != nil {
		return printError(stdio, fmt.Errorf("emit: %w", err))
	}
	return nil
}
