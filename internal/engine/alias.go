package engine

// InitKind classifies the initializer of a variable declaration as far as
// this analysis cares.
type InitKind uint8

const (
	// InitOther covers initializers the analysis stays silent about
	// (literals, member reads, missing initializers). The variable is
	// inert: never excluded, never derived.
	InitOther InitKind = iota
	// InitObjectLike marks object literal, constructor and call
	// initializers. The variable's physical identity is known not to be
	// the ambient event object.
	InitObjectLike
	// InitIdentifier marks a plain identifier initializer; source carries
	// the referenced name.
	InitIdentifier
)

// DeclareVariable records what a const/let/var declaration tells us about a
// name. Object-like initializers put the name in the non-event set,
// permanently for the rest of the traversal. Identifier initializers start
// or extend an alias chain when the source looks relevant.
func (e *Engine) DeclareVariable(name string, kind InitKind, src string) {
	switch kind {
	case InitObjectLike:
		e.nonEvent[name] = struct{}{}
	case InitIdentifier:
		if src == "" {
			return
		}
		_, known := e.aliases[src]
		if known || e.cfg.Patterns.Match(src) {
			e.aliases[name] = src
		}
	case InitOther:
		// inert
	}
}

// deriveOrigin resolves where a candidate name is bound, as a stack index
// (0 = outermost). For a name that is itself a parameter the innermost
// declaring scope wins (lexical shadowing). Otherwise the alias chain is
// followed, bounded by cycle detection, until it reaches an event-like name
// that is a declared parameter of some scope on the stack. derivedFrom
// carries that terminal name when resolution went through aliases.
func (e *Engine) deriveOrigin(name string) (origin int, derivedFrom string, ok bool) {
	if idx, found := e.innermostParamBinding(name); found {
		return idx, "", true
	}

	seen := map[string]struct{}{name: {}}
	cur := name
	for {
		src, has := e.aliases[cur]
		if !has {
			return 0, "", false
		}
		if _, cyclic := seen[src]; cyclic {
			// cycle ⇒ not derived
			return 0, "", false
		}
		seen[src] = struct{}{}
		if e.cfg.Patterns.Match(src) {
			if idx, found := e.innermostParamBinding(src); found {
				return idx, src, true
			}
		}
		cur = src
	}
}

func (e *Engine) innermostParamBinding(name string) (int, bool) {
	for i := len(e.stack) - 1; i >= 0; i-- {
		if e.scopeAt(i).hasParam(name) {
			return i, true
		}
	}
	return 0, false
}

// IsExcluded reports whether name sits in the non-event set.
func (e *Engine) IsExcluded(name string) bool {
	_, ok := e.nonEvent[name]
	return ok
}
