// Package ir is the IR layer spec.md treats as an external collaborator: it
// owns every block for a compilation unit, hands out fresh block handles,
// appends terminators, and serializes the finished control-flow graph to an
// assembly-like text form. The emitter core threads non-owning *Block
// handles through its recursion; it never allocates or frees a block
// itself, only asks this package to.
package ir

import (
	"fmt"
	"io"

	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"

	"github.com/mna/fcc/lang/arch"
	"github.com/mna/fcc/lang/operand"
)

// Mnemonic names an IR operation. The set is deliberately small: just
// enough for the value lowerer's arithmetic/comparisons and the return
// lowerer's moves, matching the partial expression coverage spec.md's
// ambient-stack expansion calls for.
type Mnemonic string

const (
	Mov  Mnemonic = "mov"
	Add  Mnemonic = "add"
	Sub  Mnemonic = "sub"
	Mul  Mnemonic = "imul"
	Div  Mnemonic = "idiv"
	Neg  Mnemonic = "neg"
	Not  Mnemonic = "not"
	And  Mnemonic = "and"
	Or   Mnemonic = "or"
	Xor  Mnemonic = "xor"
	Cmp  Mnemonic = "cmp"
	Lea  Mnemonic = "lea"
)

// Insn is a single, non-terminating IR instruction appended to a block.
type Insn struct {
	Op  Mnemonic
	Dst operand.Operand
	Src operand.Operand
}

// Cond names a condition code used by a conditional terminator.
type Cond int

const (
	NE Cond = iota
	EQ
	LT
	LE
	GT
	GE
)

func (c Cond) mnemonic() string {
	switch c {
	case EQ:
		return "je"
	case NE:
		return "jne"
	case LT:
		return "jl"
	case LE:
		return "jle"
	case GT:
		return "jg"
	case GE:
		return "jge"
	default:
		return "j?"
	}
}

// TermKind discriminates the three terminator shapes a block may end with
// (spec.md §3's data model: conditional branch, unconditional jump, or
// function return — exactly one per block, never zero, never two).
type TermKind int

const (
	termNone TermKind = iota
	termJump
	termCondJump
	termReturn
)

// Terminator is the single control-flow-ending operation of a sealed block.
type Terminator struct {
	Kind TermKind

	Target *Block // termJump

	Cond            Cond            // termCondJump
	Left, Right     operand.Operand // termCondJump, the compared operands
	IfTrue, IfFalse *Block          // termCondJump
}

// Block is an append-only sequence of instructions ending in at most one
// terminator. It becomes sealed the moment a terminator is emitted;
// appending an instruction or a second terminator to a sealed block is a
// contract violation (spec.md §3) that panics with a sealedBlockError rather
// than silently corrupting the IR.
type Block struct {
	ctx   *Context
	index int

	insns []Insn
	term  *Terminator

	// set by FnPrologue/FnEpilogue, used only for text serialization.
	fnLabel   string
	stackSize int
	prologue  bool
	epilogue  bool
}

// Index returns the creation-order index of b, stable for the lifetime of
// the IR context. Used only for diagnostics and the text dump; the core
// never relies on any particular numbering (spec.md §5).
func (b *Block) Index() int { return b.index }

// Sealed reports whether b already carries a terminator.
func (b *Block) Sealed() bool { return b.term != nil }

// Terminator returns b's terminator, or nil if b is not yet sealed.
func (b *Block) Terminator() *Terminator { return b.term }

// Insns returns b's instructions so far, in emission order.
func (b *Block) Insns() []Insn { return b.insns }

func (b *Block) appendInsn(i Insn) {
	if b.Sealed() {
		panic(sealedBlockError{b.index})
	}
	b.insns = append(b.insns, i)
}

// Move appends a mov from src to dst.
func (b *Block) Move(dst, src operand.Operand) { b.appendInsn(Insn{Op: Mov, Dst: dst, Src: src}) }

// Binary appends a two-operand arithmetic/logical instruction, reading and
// writing dst (dst := dst OP src).
func (b *Block) Binary(op Mnemonic, dst, src operand.Operand) {
	b.appendInsn(Insn{Op: op, Dst: dst, Src: src})
}

// Unary appends a single-operand instruction (neg/not), in place on dst.
func (b *Block) Unary(op Mnemonic, dst operand.Operand) {
	b.appendInsn(Insn{Op: op, Dst: dst})
}

type sealedBlockError struct{ index int }

func (e sealedBlockError) Error() string {
	return fmt.Sprintf("block %d: append to a sealed block", e.index)
}

// globalData is a reserved, optionally-initialized top-level declaration.
type globalData struct {
	Label string
	Size  int
	Init  *int64
}

// Context owns every block created for a compilation unit, plus the output
// sink and target information. Its lifetime spans exactly one call to
// emitter.Emit: Init creates it, Emit finalizes and serializes it, Free
// releases it.
type Context struct {
	Arch   *arch.Descriptor
	Output io.Writer

	blocks  []*Block
	globals *swiss.Map[string, globalData]
}

// Init creates an IR context writing the final assembly to output for the
// given architecture (ir_init).
func Init(output io.Writer, a *arch.Descriptor) *Context {
	return &Context{
		Arch:    a,
		Output:  output,
		globals: swiss.NewMap[string, globalData](8),
	}
}

// Free releases ctx. Blocks are owned exclusively by ctx and never freed
// individually (spec.md §5), so there is nothing to do beyond dropping the
// reference; Free exists to mirror the ir_free contract spec.md names.
func (c *Context) Free() {
	c.blocks = nil
}

// CreateBlock allocates a fresh, unsealed, empty block owned by ctx
// (block_create).
func (c *Context) CreateBlock() *Block {
	b := &Block{ctx: c, index: len(c.blocks)}
	c.blocks = append(c.blocks, b)
	return b
}

// Blocks returns every block created so far, in creation order. Exposed for
// tests exercising the CFG invariants of spec.md §8.
func (c *Context) Blocks() []*Block { return c.blocks }

// Jump appends an unconditional terminator to block, transferring control
// to target.
func (c *Context) Jump(block, target *Block) {
	if block.Sealed() {
		panic(sealedBlockError{block.index})
	}
	block.term = &Terminator{Kind: termJump, Target: target}
}

// CondJump appends a conditional terminator comparing left against right
// with cond, transferring control to ifTrue or ifFalse.
func (c *Context) CondJump(block *Block, cond Cond, left, right operand.Operand, ifTrue, ifFalse *Block) {
	if block.Sealed() {
		panic(sealedBlockError{block.index})
	}
	block.term = &Terminator{Kind: termCondJump, Cond: cond, Left: left, Right: right, IfTrue: ifTrue, IfFalse: ifFalse}
}

// FnPrologue marks block as a function's entry block, reserving stacksize
// bytes of auto storage under label.
func (c *Context) FnPrologue(block *Block, label string, stacksize int) {
	block.fnLabel = label
	block.stackSize = stacksize
	block.prologue = true
}

// FnEpilogue seals block with the architecture's return terminator.
func (c *Context) FnEpilogue(block *Block) {
	if block.Sealed() {
		panic(sealedBlockError{block.index})
	}
	block.epilogue = true
	block.term = &Terminator{Kind: termReturn}
}

// DeclareGlobal reserves size bytes of storage for a top-level declaration
// under its mangled label, optionally zero- or constant-initialized.
// Re-declaring the same label is idempotent (the last declaration wins),
// matching how a validated AST would never declare the same global twice
// but costing nothing to make safe.
func (c *Context) DeclareGlobal(label string, size int, init *int64) {
	c.globals.Put(label, globalData{Label: label, Size: size, Init: init})
}

// Emit serializes every block and global declaration to Output as a
// readable, assembly-like text form. Blocks are printed in creation order:
// the emitter core creates them in the order it visits the AST, which is
// already a reasonable reading order, so no separate layout pass is needed.
func (c *Context) Emit() error {
	w := c.Output

	if c.globals.Count() > 0 {
		labels := make([]string, 0, c.globals.Count())
		c.globals.Iter(func(label string, _ globalData) (stop bool) {
			labels = append(labels, label)
			return false
		})
		slices.Sort(labels)
		for _, label := range labels {
			g, _ := c.globals.Get(label)
			if g.Init != nil {
				if _, err := fmt.Fprintf(w, "global %s, %d, %d\n", g.Label, g.Size, *g.Init); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintf(w, "global %s, %d\n", g.Label, g.Size); err != nil {
					return err
				}
			}
		}
	}

	for _, b := range c.blocks {
		if err := b.emitText(w, c.Arch); err != nil {
			return err
		}
	}
	return nil
}

func (b *Block) emitText(w io.Writer, a *arch.Descriptor) error {
	kind := ""
	switch {
	case b.prologue:
		kind = " (entry)"
	case b.epilogue:
		kind = " (epilogue)"
	}
	if _, err := fmt.Fprintf(w, "block %d%s:\n", b.index, kind); err != nil {
		return err
	}
	if b.prologue {
		if _, err := fmt.Fprintf(w, "  prologue %s, %d\n", b.fnLabel, b.stackSize); err != nil {
			return err
		}
	}
	for _, insn := range b.insns {
		if insn.Src == (operand.Operand{}) {
			if _, err := fmt.Fprintf(w, "  %s %s\n", insn.Op, insn.Dst.String(a)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s %s, %s\n", insn.Op, insn.Dst.String(a), insn.Src.String(a)); err != nil {
			return err
		}
	}
	if t := b.term; t != nil {
		switch t.Kind {
		case termJump:
			if _, err := fmt.Fprintf(w, "  jmp block%d\n", t.Target.index); err != nil {
				return err
			}
		case termCondJump:
			if _, err := fmt.Fprintf(w, "  cmp %s, %s\n  %s block%d, block%d\n",
				t.Left.String(a), t.Right.String(a), t.Cond.mnemonic(), t.IfTrue.index, t.IfFalse.index); err != nil {
				return err
			}
		case termReturn:
			if _, err := fmt.Fprintf(w, "  ret\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reachable returns the set of blocks reachable from entry by following
// jump/cjmp edges. Blocks created as the dead continuation after a
// return/break/continue (spec.md §8 invariant 1) are legitimately absent
// from this set.
func Reachable(entry *Block) map[*Block]bool {
	seen := map[*Block]bool{}
	var walk func(b *Block)
	walk = func(b *Block) {
		if b == nil || seen[b] {
			return
		}
		seen[b] = true
		if t := b.term; t != nil {
			switch t.Kind {
			case termJump:
				walk(t.Target)
			case termCondJump:
				walk(t.IfTrue)
				walk(t.IfFalse)
			}
		}
	}
	walk(entry)
	return seen
}
