package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"asynclint/internal/diag"
	"asynclint/internal/engine"
	"asynclint/internal/syntax"
)

// checkPropertyAccess judges event.currentTarget-style reads. Only a bare
// identifier base qualifies; computed access and deeper chains are not
// candidates. Method-call positions are left to checkMethodCall.
func (p *Pass) checkPropertyAccess(member *sitter.Node) {
	if len(p.properties) == 0 {
		return
	}
	prop := member.ChildByFieldName("property")
	if prop == nil || prop.Type() != syntax.KindPropertyIdentifier {
		return
	}
	propName := p.text(prop)
	if _, ok := p.properties[propName]; !ok {
		return
	}
	if isCalleePosition(member) {
		return
	}
	base := member.ChildByFieldName("object")
	if base == nil || base.Type() != syntax.KindIdentifier {
		return
	}
	p.eng.EvaluateCandidate(engine.Candidate{
		Name:     p.text(base),
		Use:      p.ref(member),
		Span:     p.span(member),
		Check:    diag.EvtStaleProperty,
		Property: propName,
	})
}

// checkMethodCall judges event.preventDefault()-style calls. prop is the
// callee property node of the call expression.
func (p *Pass) checkMethodCall(call *sitter.Node, prop *sitter.Node) {
	if len(p.methods) == 0 {
		return
	}
	methodName := p.text(prop)
	if _, ok := p.methods[methodName]; !ok {
		return
	}
	callee := call.ChildByFieldName("function")
	base := callee.ChildByFieldName("object")
	if base == nil || base.Type() != syntax.KindIdentifier {
		return
	}
	p.eng.EvaluateCandidate(engine.Candidate{
		Name:     p.text(base),
		Use:      p.ref(callee),
		Span:     p.span(callee),
		Check:    diag.EvtStaleMethod,
		Property: methodName,
	})
}

// isCalleePosition reports whether the member expression is the callee of
// its parent call.
func isCalleePosition(member *sitter.Node) bool {
	parent := member.Parent()
	if parent == nil || parent.Type() != syntax.KindCallExpression {
		return false
	}
	return sameNode(parent.ChildByFieldName("function"), member)
}
