package syntax

import (
	"context"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"asynclint/internal/diag"
	"asynclint/internal/source"
)

func parseSnippet(t *testing.T, src string) (*Tree, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("snippet.js", []byte(src))
	tree, err := Parse(context.Background(), fs.Get(id))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree, fs
}

type recordingVisitor struct {
	enters []string
	exits  []string
}

func (v *recordingVisitor) Enter(n *sitter.Node) bool {
	v.enters = append(v.enters, n.Type())
	return true
}

func (v *recordingVisitor) Exit(n *sitter.Node) {
	v.exits = append(v.exits, n.Type())
}

// The escape analysis depends on calls being entered before their callback
// bodies. Lock that traversal-order assumption down.
func TestWalkIsPreOrder(t *testing.T) {
	tree, _ := parseSnippet(t, "p().then(x => f(x));")

	v := &recordingVisitor{}
	Walk(tree.Root(), v)

	callAt := -1
	arrowAt := -1
	for i, k := range v.enters {
		if k == KindCallExpression && callAt == -1 {
			callAt = i
		}
		if k == KindArrowFunction {
			arrowAt = i
		}
	}
	if callAt == -1 || arrowAt == -1 {
		t.Fatalf("expected call and arrow nodes, enters=%v", v.enters)
	}
	if callAt > arrowAt {
		t.Fatalf("call entered at %d after its arrow argument at %d", callAt, arrowAt)
	}
	if v.exits[len(v.exits)-1] != KindProgram {
		t.Fatalf("program must exit last, exits=%v", v.exits)
	}
}

func TestFunctionParams(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"plain", "function h(event, extra) {}", []string{"event", "extra"}},
		{"arrow bare", "p.then(event => event);", []string{"event"}},
		{"arrow parens", "p.then((e, i) => e);", []string{"e", "i"}},
		{"destructured skipped", "function h({type}, event) {}", []string{"event"}},
		{"rest skipped", "function h(...events) {}", nil},
		{"none", "function h() {}", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := parseSnippet(t, tt.src)
			var got []string
			Walk(tree.Root(), visitFunc(func(n *sitter.Node) bool {
				if IsFunctionKind(n.Type()) && got == nil {
					got = FunctionParams(n, tree.File.Content)
				}
				return true
			}))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("params = %v, want %v", got, tt.want)
			}
		})
	}
}

type visitFunc func(n *sitter.Node) bool

func (f visitFunc) Enter(n *sitter.Node) bool { return f(n) }
func (f visitFunc) Exit(n *sitter.Node)       {}

func TestIsAsyncFunction(t *testing.T) {
	tree, _ := parseSnippet(t, "async function a() {}\nfunction b() {}")

	var flags []bool
	Walk(tree.Root(), visitFunc(func(n *sitter.Node) bool {
		if n.Type() == KindFunctionDeclaration {
			flags = append(flags, IsAsyncFunction(n))
		}
		return true
	}))
	if len(flags) != 2 || !flags[0] || flags[1] {
		t.Fatalf("async flags = %v, want [true false]", flags)
	}
}

func TestCalleeProperty(t *testing.T) {
	tree, _ := parseSnippet(t, "p().then(cb); f(cb); q[0](cb);")

	var props []string
	Walk(tree.Root(), visitFunc(func(n *sitter.Node) bool {
		if n.Type() == KindCallExpression {
			if prop, _, ok := CalleeProperty(n); ok {
				props = append(props, tree.Text(prop))
			}
		}
		return true
	}))
	if len(props) != 1 || props[0] != "then" {
		t.Fatalf("callee properties = %v, want [then]", props)
	}
}

func TestReportParseErrors(t *testing.T) {
	tree, _ := parseSnippet(t, "function h( {")

	bag := diag.NewBag(10)
	n := tree.ReportParseErrors(diag.BagReporter{Bag: bag})
	if n == 0 || bag.Len() == 0 {
		t.Fatalf("broken input produced no parse diagnostics")
	}

	clean, _ := parseSnippet(t, "function ok() {}")
	if got := clean.ReportParseErrors(diag.BagReporter{Bag: diag.NewBag(10)}); got != 0 {
		t.Fatalf("clean input produced %d parse diagnostics", got)
	}
}
