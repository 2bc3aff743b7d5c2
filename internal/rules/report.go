package rules

import (
	"fmt"

	"asynclint/internal/diag"
	"asynclint/internal/engine"
)

// ReportEscape is the engine's sink: it turns a positive verdict into a
// diagnostic with a human message, a note pointing at the boundary, and
// structured data for machine-readable output.
func (p *Pass) ReportEscape(c engine.Candidate, v engine.Verdict) {
	b := diag.NewReportBuilder(p.rep, p.opts.Severity, c.Check, c.Span, escapeMessage(c, v))

	if !v.Boundary.Empty() {
		if v.Deferred {
			b.WithNote(v.Boundary, "callback registered here runs as a later continuation")
		} else {
			b.WithNote(v.Boundary, "the enclosing function suspends here")
		}
	}
	if c.Property != "" {
		b.WithData("property", c.Property)
	}
	if v.DerivedFrom != "" {
		b.WithData("derivedFrom", v.DerivedFrom)
	}
	b.Emit()
}

func escapeMessage(c engine.Candidate, v engine.Verdict) string {
	boundary := "after 'await'"
	if v.Deferred {
		boundary = "inside a deferred callback"
	}
	derived := ""
	if v.DerivedFrom != "" {
		derived = fmt.Sprintf(" (derived from '%s')", v.DerivedFrom)
	}

	switch c.Check {
	case diag.EvtStaleProperty:
		return fmt.Sprintf("'%s.%s'%s read %s may not be the element the handler was attached to",
			c.Name, c.Property, derived, boundary)
	case diag.EvtStaleMethod:
		return fmt.Sprintf("calling '%s.%s()'%s %s has no effect on the original event",
			c.Name, c.Property, derived, boundary)
	default:
		return fmt.Sprintf("'%s'%s is used %s; the event it refers to is no longer being dispatched",
			c.Name, derived, boundary)
	}
}
