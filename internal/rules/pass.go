package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"asynclint/internal/diag"
	"asynclint/internal/engine"
	"asynclint/internal/source"
	"asynclint/internal/syntax"
)

// Pass is one analysis of one parsed file: it walks the tree in source
// order, feeds scope/suspension/alias facts into a fresh engine, and asks
// the engine to judge every candidate use site the enabled checks produce.
type Pass struct {
	tree *syntax.Tree
	eng  *engine.Engine
	rep  diag.Reporter
	opts Options

	properties map[string]struct{}
	methods    map[string]struct{}
}

// NewPass builds a pass over a parsed tree. The reporter receives every
// diagnostic; wrap it in a DedupReporter when the same tree is analyzed
// more than once.
func NewPass(tree *syntax.Tree, opts Options, rep diag.Reporter) *Pass {
	p := &Pass{
		tree:       tree,
		rep:        rep,
		opts:       opts,
		properties: nameSet(opts.Properties),
		methods:    nameSet(opts.Methods),
	}
	p.eng = engine.New(engine.NewConfig(opts.Patterns, opts.ContinuationMethods), p)
	return p
}

// Run performs the traversal. Safe to call once per Pass.
func (p *Pass) Run() {
	syntax.Walk(p.tree.Root(), p)
}

func nameSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func (p *Pass) ref(n *sitter.Node) engine.NodeRef {
	return engine.NodeRef{Start: n.StartByte(), End: n.EndByte()}
}

func (p *Pass) span(n *sitter.Node) source.Span {
	return p.tree.Span(n)
}

func (p *Pass) text(n *sitter.Node) string {
	return p.tree.Text(n)
}

// Enter dispatches a node in pre-order. Calls are classified before their
// callback bodies are entered; see syntax.Walk.
func (p *Pass) Enter(n *sitter.Node) bool {
	kind := n.Type()
	switch {
	case syntax.IsFunctionKind(kind):
		p.eng.EnterFunctionScope(
			p.ref(n),
			syntax.FunctionParams(n, p.tree.File.Content),
			syntax.IsAsyncFunction(n),
		)

	case kind == syntax.KindCallExpression:
		p.enterCall(n)

	case syntax.IsDeclarationKind(kind):
		p.enterDeclaration(n)

	case kind == syntax.KindMemberExpression:
		p.checkPropertyAccess(n)

	case kind == syntax.KindIdentifier:
		p.checkReference(n)
	}
	return true
}

// Exit completes a node. Suspension is recorded on exit of the await so the
// awaited operand itself is still judged under pre-suspension state.
func (p *Pass) Exit(n *sitter.Node) {
	kind := n.Type()
	switch {
	case syntax.IsFunctionKind(kind):
		p.eng.ExitFunctionScope(p.ref(n))
	case kind == syntax.KindAwaitExpression:
		p.eng.OnSuspensionPoint(p.span(n))
	}
}

func (p *Pass) enterCall(n *sitter.Node) {
	if prop, _, ok := syntax.CalleeProperty(n); ok {
		propName := p.text(prop)
		var callbacks []engine.NodeRef
		for _, arg := range syntax.CallArguments(n) {
			if syntax.IsFunctionKind(arg.Type()) {
				callbacks = append(callbacks, p.ref(arg))
			}
		}
		if len(callbacks) > 0 {
			p.eng.OnContinuationRegistrationCall(propName, callbacks, p.span(prop))
		}
		p.checkMethodCall(n, prop)
	}
	p.checkCallArgument(n)
}

func (p *Pass) enterDeclaration(n *sitter.Node) {
	for _, d := range syntax.Declarators(n) {
		name := d.ChildByFieldName("name")
		if name == nil || name.Type() != syntax.KindIdentifier {
			// destructured declarations contribute nothing
			continue
		}
		value := syntax.Unparenthesize(d.ChildByFieldName("value"))
		kind, src := classifyInitializer(value)
		var srcName string
		if src != nil {
			srcName = p.text(src)
		}
		p.eng.DeclareVariable(p.text(name), kind, srcName)
	}
}

// classifyInitializer maps an initializer node onto the engine's
// three-way classification: object-like, identifier alias, or inert.
func classifyInitializer(value *sitter.Node) (engine.InitKind, *sitter.Node) {
	if value == nil {
		return engine.InitOther, nil
	}
	switch value.Type() {
	case syntax.KindObject, syntax.KindNewExpression, syntax.KindCallExpression:
		return engine.InitObjectLike, nil
	case syntax.KindIdentifier:
		return engine.InitIdentifier, value
	default:
		return engine.InitOther, nil
	}
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
