package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"asynclint/internal/diag"
	"asynclint/internal/engine"
	"asynclint/internal/syntax"
)

// checkReference judges a bare identifier reference. Binding positions
// (parameter lists, declarator names, function names) are not uses and are
// skipped; property names never reach here because the grammar gives them a
// distinct node kind.
func (p *Pass) checkReference(n *sitter.Node) {
	if !p.opts.Reference {
		return
	}
	if isBindingPosition(n) {
		return
	}
	// the base of a member expression is judged by the property and method
	// checks, not as a bare reference
	if parent := n.Parent(); parent != nil && parent.Type() == syntax.KindMemberExpression &&
		sameNode(parent.ChildByFieldName("object"), n) {
		return
	}
	p.eng.EvaluateCandidate(engine.Candidate{
		Name:  p.text(n),
		Use:   p.ref(n),
		Span:  p.span(n),
		Check: diag.EvtStaleReference,
	})
}

// checkCallArgument handles the fn(event) shape: a matched identifier as
// the sole positional argument of a call. The identifier itself is also
// visited as a reference; the engine's per-node suppression collapses the
// two paths into a single diagnostic.
func (p *Pass) checkCallArgument(call *sitter.Node) {
	if !p.opts.Reference {
		return
	}
	args := syntax.CallArguments(call)
	if len(args) != 1 {
		return
	}
	arg := args[0]
	if arg.Type() != syntax.KindIdentifier {
		return
	}
	p.eng.EvaluateCandidate(engine.Candidate{
		Name:  p.text(arg),
		Use:   p.ref(arg),
		Span:  p.span(arg),
		Check: diag.EvtStaleReference,
	})
}

// isBindingPosition reports whether the identifier introduces a name rather
// than using one.
func isBindingPosition(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case syntax.KindVariableDeclarator:
		return sameNode(parent.ChildByFieldName("name"), n)
	case syntax.KindFormalParameters:
		return true
	case syntax.KindArrowFunction:
		return sameNode(parent.ChildByFieldName("parameter"), n)
	case syntax.KindFunctionDeclaration, syntax.KindFunctionExpression, syntax.KindFunction,
		syntax.KindGeneratorFunction, syntax.KindGeneratorFunctionDeclaration:
		return sameNode(parent.ChildByFieldName("name"), n)
	}
	return false
}
