package engine

import (
	"strings"
)

// DefaultPatterns are the event name patterns used when configuration
// supplies none: the conventional handler parameter spellings plus any name
// ending in the literal suffix "Event".
func DefaultPatterns() []string {
	return []string{"event", "e", "ev", "*Event"}
}

// Patterns is a compiled event-likeness matcher. A pattern is either an
// exact name or a glob where each '*' matches any substring (including the
// empty one), anchored at both ends. Matching is case-sensitive.
type Patterns struct {
	exact map[string]struct{}
	globs [][]string // '*'-split segments, at least one '*' present
}

// CompilePatterns builds a matcher from the ordered pattern list.
func CompilePatterns(pats []string) Patterns {
	p := Patterns{exact: make(map[string]struct{}, len(pats))}
	for _, pat := range pats {
		if !strings.Contains(pat, "*") {
			p.exact[pat] = struct{}{}
			continue
		}
		p.globs = append(p.globs, strings.Split(pat, "*"))
	}
	return p
}

// Match reports whether name denotes a presumed event-like object.
func (p Patterns) Match(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := p.exact[name]; ok {
		return true
	}
	for _, segs := range p.globs {
		if matchSegments(segs, name) {
			return true
		}
	}
	return false
}

// matchSegments matches a '*'-split pattern against name: the first segment
// anchors the start, the last anchors the end, middle segments must appear
// in order in between.
func matchSegments(segs []string, name string) bool {
	first, last := segs[0], segs[len(segs)-1]
	if !strings.HasPrefix(name, first) {
		return false
	}
	rest := name[len(first):]

	for _, seg := range segs[1 : len(segs)-1] {
		if seg == "" {
			continue
		}
		idx := strings.Index(rest, seg)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(seg):]
	}
	return strings.HasSuffix(rest, last)
}
