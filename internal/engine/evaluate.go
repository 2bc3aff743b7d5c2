package engine

import (
	"asynclint/internal/diag"
	"asynclint/internal/source"
)

// Candidate is one use site under judgment: an identifier reference or a
// disallowed property/method access on a base identifier.
type Candidate struct {
	// Name is the textual identifier being judged (the base identifier
	// for property/method accesses).
	Name string
	// Use identifies the node for duplicate suppression: the same node
	// evaluated through two front-end paths yields one diagnostic.
	Use NodeRef
	// Span is the use-site location carried into the diagnostic.
	Span source.Span
	// Check is the diagnostic identifier of the front-end check.
	Check diag.Code
	// Property optionally names the matched property or method.
	Property string
}

// Verdict explains a positive escape decision to the sink.
type Verdict struct {
	// Deferred is true when the use crossed a deferred-continuation
	// boundary; false means the enclosing call chain already suspended.
	Deferred bool
	// Boundary points at the await expression or the continuation
	// registration site, when known.
	Boundary source.Span
	// DerivedFrom names the event parameter the candidate aliases, empty
	// for direct uses.
	DerivedFrom string
}

// EvaluateCandidate decides report/no-report for one use site and, on
// report, emits through the sink. Returns whether the site is (or already
// was) reported.
//
// Decision order, short-circuiting: non-event exclusion; event-likeness or
// alias derivation; suspension boundary; deferred boundary.
func (e *Engine) EvaluateCandidate(c Candidate) bool {
	key := reportKey{use: c.Use, check: c.Check}
	if _, dup := e.reported[key]; dup {
		return true
	}

	// 1. A user-level "this is not the live event object" guarantee must
	// never be second-guessed by a name heuristic.
	if e.IsExcluded(c.Name) {
		return false
	}

	// 2. Candidate gate: spelled like an event, or derived from one.
	eventLike := e.cfg.Patterns.Match(c.Name)
	origin, derivedFrom, bound := e.deriveOrigin(c.Name)
	if !eventLike && derivedFrom == "" {
		return false
	}
	if !bound {
		// No parameter binding reachable from the stack: unknown origin,
		// err toward under-reporting.
		return false
	}

	// 3. Suspension boundary: the binding was introduced at or outside a
	// scope that has since crossed an await.
	for i := origin; i < len(e.stack); i++ {
		if sc := e.scopeAt(i); sc.HasSuspended {
			e.report(key, c, Verdict{Boundary: sc.SuspendSpan, DerivedFrom: derivedFrom})
			return true
		}
	}

	// 4. Deferred boundary: a continuation scope sits strictly inside the
	// binding scope. A parameter of the deferred scope itself (or of a
	// scope nested within it) is locally shadowed and safe.
	for i := origin + 1; i < len(e.stack); i++ {
		if sc := e.scopeAt(i); sc.IsDeferred {
			e.report(key, c, Verdict{Deferred: true, Boundary: sc.DeferSpan, DerivedFrom: derivedFrom})
			return true
		}
	}

	return false
}

func (e *Engine) report(key reportKey, c Candidate, v Verdict) {
	e.reported[key] = struct{}{}
	if e.sink != nil {
		e.sink.ReportEscape(c, v)
	}
}
