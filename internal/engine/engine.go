package engine

import (
	"asynclint/internal/diag"
	"asynclint/internal/source"
)

// Config is the engine's tuning surface, normally filled from the TOML
// configuration.
type Config struct {
	// Patterns decides event-likeness of identifier names.
	Patterns Patterns
	// ContinuationMethods are the property names whose function-valued
	// call arguments become deferred scopes. Default: then, catch,
	// finally.
	ContinuationMethods map[string]struct{}
}

// DefaultContinuationMethods returns the standard promise continuation
// registration names.
func DefaultContinuationMethods() []string {
	return []string{"then", "catch", "finally"}
}

// NewConfig compiles a config from raw pattern and method name lists,
// substituting defaults for empty inputs.
func NewConfig(patterns, continuations []string) Config {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	if len(continuations) == 0 {
		continuations = DefaultContinuationMethods()
	}
	methods := make(map[string]struct{}, len(continuations))
	for _, m := range continuations {
		methods[m] = struct{}{}
	}
	return Config{
		Patterns:            CompilePatterns(patterns),
		ContinuationMethods: methods,
	}
}

// Sink receives escape reports from the engine. The engine decides
// report/no-report; the sink owns message wording and transport.
type Sink interface {
	ReportEscape(c Candidate, v Verdict)
}

// Engine is the async-context escape analysis for one traversal of one
// file's syntax tree. Instances are single-use and not safe for concurrent
// use; independent files get independent engines.
type Engine struct {
	cfg  Config
	sink Sink

	scopes *arena
	stack  []ScopeID

	// pendingDeferred holds callback nodes tagged by a continuation
	// registration call before their own scope exists, keyed by node
	// identity, valued with the registration site span.
	pendingDeferred map[NodeRef]source.Span

	aliases  map[string]string
	nonEvent map[string]struct{}

	reported map[reportKey]struct{}
}

type reportKey struct {
	use   NodeRef
	check diag.Code
}

// New constructs a fresh engine bound to a reporting sink.
func New(cfg Config, sink Sink) *Engine {
	return &Engine{
		cfg:             cfg,
		sink:            sink,
		scopes:          newArena(16),
		pendingDeferred: make(map[NodeRef]source.Span),
		aliases:         make(map[string]string),
		nonEvent:        make(map[string]struct{}),
		reported:        make(map[reportKey]struct{}),
	}
}

// OnSuspensionPoint records that the current scope has crossed an
// asynchronous boundary. span points at the suspension construct and feeds
// the diagnostic note; the first observed suspension wins. Called at top
// level (no open scope) this is a no-op.
func (e *Engine) OnSuspensionPoint(span source.Span) {
	sc := e.currentScope()
	if sc == nil {
		return
	}
	if !sc.HasSuspended {
		sc.HasSuspended = true
		sc.SuspendSpan = span
	}
}

// OnContinuationRegistrationCall tags each function-valued argument of a
// recognized continuation registration call (prop is the callee property
// name) for deferred classification. The callback's scope usually does not
// exist yet — pre-order traversal visits the call first — so the node is
// parked in a pending set; if the scope does already exist it is marked
// retroactively. Both orders are handled so a host dispatch change cannot
// silently drop deferral.
func (e *Engine) OnContinuationRegistrationCall(prop string, callbacks []NodeRef, span source.Span) {
	if _, ok := e.cfg.ContinuationMethods[prop]; !ok {
		return
	}
	for _, cb := range callbacks {
		if id := e.scopes.lookup(cb); id != NoScope {
			sc := e.scopes.get(id)
			if !sc.IsDeferred {
				sc.IsDeferred = true
				sc.DeferSpan = span
			}
			continue
		}
		e.pendingDeferred[cb] = span
	}
}
