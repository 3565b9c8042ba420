package fixture

import (
	"strings"
	"testing"

	"github.com/mna/fcc/lang/ast"
)

const emptyFnFixture = `{
  "tag": "module",
  "children": [
    {
      "tag": "fn-impl",
      "symbol": {"tag": "fn", "name": "main", "type": {"kind": "func", "return": {"kind": "void"}}},
      "right": {"tag": "code"}
    }
  ]
}`

func TestLoadEmptyFunction(t *testing.T) {
	root, err := Load(strings.NewReader(emptyFnFixture))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root.Tag != ast.Module {
		t.Fatalf("root tag = %v, want module", root.Tag)
	}
	children := root.Children()
	if len(children) != 1 || children[0].Tag != ast.FnImpl {
		t.Fatalf("expected a single fn-impl child, got %v", children)
	}
	fn := children[0]
	if fn.Symbol == nil || fn.Symbol.Name != "main" {
		t.Fatalf("fn-impl symbol not decoded: %+v", fn.Symbol)
	}
	if fn.Right == nil || fn.Right.Tag != ast.Code {
		t.Fatalf("fn-impl body not decoded")
	}
}
