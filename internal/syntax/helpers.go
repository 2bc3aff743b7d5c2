package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// FunctionParams returns the names of the simple identifier parameters of a
// function-like node. Destructured, default and rest parameters contribute
// no names; the analysis deliberately under-approximates there.
func FunctionParams(n *sitter.Node, content []byte) []string {
	var names []string

	// Arrow functions with a single bare parameter carry it in the
	// "parameter" field instead of a formal_parameters list.
	if p := n.ChildByFieldName("parameter"); p != nil && p.Type() == KindIdentifier {
		return []string{p.Content(content)}
	}

	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() == KindIdentifier {
			names = append(names, p.Content(content))
		}
	}
	return names
}

// IsAsyncFunction reports whether a function-like node carries the async
// modifier. The "async" keyword is an anonymous token child in the grammar.
func IsAsyncFunction(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() && c.Type() == "async" {
			return true
		}
	}
	return false
}

// CalleeProperty inspects a call expression whose callee is a member access
// (x.prop(...)) and returns the property node and the member expression
// itself. ok is false for plain calls, computed access and optional chains
// without a property identifier.
func CalleeProperty(call *sitter.Node) (prop, member *sitter.Node, ok bool) {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != KindMemberExpression {
		return nil, nil, false
	}
	p := callee.ChildByFieldName("property")
	if p == nil || p.Type() != KindPropertyIdentifier {
		return nil, nil, false
	}
	return p, callee, true
}

// CallArguments returns the named argument nodes of a call expression.
func CallArguments(call *sitter.Node) []*sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, args.NamedChildCount())
	for i := 0; i < int(args.NamedChildCount()); i++ {
		out = append(out, args.NamedChild(i))
	}
	return out
}

// Declarators returns the variable_declarator children of a declaration
// statement.
func Declarators(decl *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, decl.NamedChildCount())
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		c := decl.NamedChild(i)
		if c.Type() == KindVariableDeclarator {
			out = append(out, c)
		}
	}
	return out
}

// Unparenthesize strips nested parenthesized_expression wrappers.
func Unparenthesize(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == KindParenthesized {
		inner := n.NamedChild(0)
		if inner == nil {
			return n
		}
		n = inner
	}
	return n
}
