package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"asynclint/internal/diag"
	"asynclint/internal/source"
)

// Tree owns a parsed tree-sitter tree together with the file it came from.
// Callers must Close it to release the underlying C allocation.
type Tree struct {
	File *source.File
	ts   *sitter.Tree
}

// Parse parses one JavaScript file. tree-sitter always produces a tree, even
// for malformed input; syntactic damage surfaces as ERROR/MISSING nodes
// which ReportParseErrors turns into PAR diagnostics.
func Parse(ctx context.Context, f *source.File) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	ts, err := parser.ParseCtx(ctx, nil, f.Content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse of %s: %w", f.Path, err)
	}
	return &Tree{File: f, ts: ts}, nil
}

// Root returns the root node of the parsed tree.
func (t *Tree) Root() *sitter.Node {
	return t.ts.RootNode()
}

// Close releases the tree-sitter allocation.
func (t *Tree) Close() {
	if t.ts != nil {
		t.ts.Close()
		t.ts = nil
	}
}

// Span converts a node's byte range into a source span of the tree's file.
func (t *Tree) Span(n *sitter.Node) source.Span {
	return source.Span{File: t.File.ID, Start: n.StartByte(), End: n.EndByte()}
}

// Text returns the source text covered by the node.
func (t *Tree) Text(n *sitter.Node) string {
	return n.Content(t.File.Content)
}

// ReportParseErrors walks the tree and reports every ERROR and MISSING node
// the grammar's recovery produced. The analysis still runs on the damaged
// tree afterwards; parse errors never abort a file.
func (t *Tree) ReportParseErrors(r diag.Reporter) int {
	if !t.Root().HasError() {
		return 0
	}
	count := 0
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		switch {
		case n.IsError():
			diag.ReportError(r, diag.ParSyntaxError, t.Span(n), "syntax error").Emit()
			count++
		case n.IsMissing():
			msg := fmt.Sprintf("missing %s inserted by parser recovery", n.Type())
			diag.ReportError(r, diag.ParMissingToken, t.Span(n), msg).Emit()
			count++
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(t.Root())
	return count
}
