package engine

import (
	"asynclint/internal/source"
)

// NodeRef identifies a syntax node by its byte range within the analyzed
// file. The engine never dereferences node contents; the host feeds it names
// and ranges, and ranges are unique enough per node category (function
// bodies, use sites) to serve as identity within one traversal.
type NodeRef struct {
	Start uint32
	End   uint32
}

// Scope is one entry per function-like construct encountered during
// traversal. parameterNames is fixed at creation; HasSuspended is monotonic
// (false to true, never back).
type Scope struct {
	Node   NodeRef
	params map[string]struct{}

	// AsyncEligible marks scopes that can legally contain a suspension
	// point (async functions). Kept for diagnostics; suspension itself is
	// only recorded when an await is actually observed.
	AsyncEligible bool

	// HasSuspended is set once a suspension point is observed lexically
	// inside this scope. Nested scopes track their own boundary; the flag
	// is never inherited.
	HasSuspended bool
	SuspendSpan  source.Span

	// IsDeferred marks scopes passed as callbacks to a continuation
	// registration call (.then/.catch/.finally by default).
	IsDeferred bool
	DeferSpan  source.Span
}

func (s *Scope) hasParam(name string) bool {
	_, ok := s.params[name]
	return ok
}

// EnterFunctionScope pushes a new scope for a function-like node. params
// lists the declared simple identifier parameters; destructured patterns
// contribute no names. If the node was previously tagged as a continuation
// callback the scope starts deferred.
func (e *Engine) EnterFunctionScope(node NodeRef, params []string, asyncEligible bool) {
	sc := Scope{
		Node:          node,
		params:        make(map[string]struct{}, len(params)),
		AsyncEligible: asyncEligible,
	}
	for _, p := range params {
		sc.params[p] = struct{}{}
	}
	if span, ok := e.pendingDeferred[node]; ok {
		sc.IsDeferred = true
		sc.DeferSpan = span
		delete(e.pendingDeferred, node)
	}
	id := e.scopes.allocate(sc)
	e.stack = append(e.stack, id)
}

// ExitFunctionScope pops the current scope iff the top of the stack belongs
// to the given node. Mismatched exits are silently ignored so a damaged
// traversal cannot corrupt the stack.
func (e *Engine) ExitFunctionScope(node NodeRef) {
	if len(e.stack) == 0 {
		return
	}
	top := e.scopes.get(e.stack[len(e.stack)-1])
	if top.Node != node {
		return
	}
	e.stack = e.stack[:len(e.stack)-1]
}

// currentScope returns the innermost open scope, or nil at the top level.
func (e *Engine) currentScope() *Scope {
	if len(e.stack) == 0 {
		return nil
	}
	return e.scopes.get(e.stack[len(e.stack)-1])
}

// scopeAt returns the open scope at the given stack index (0 = outermost).
func (e *Engine) scopeAt(i int) *Scope {
	return e.scopes.get(e.stack[i])
}

// Depth returns the number of open function scopes.
func (e *Engine) Depth() int {
	return len(e.stack)
}
