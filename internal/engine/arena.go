package engine

// ScopeID is a dense 1-based index into the scope arena. NoScope (0) is the
// null value, so a zeroed field never points at a real scope.
type ScopeID uint32

const NoScope ScopeID = 0

// arena stores every scope created during one traversal. Scopes are never
// freed: a popped scope keeps its flags queryable for the rest of the run,
// and the dense index replaces identity-keyed lookups on syntax nodes.
type arena struct {
	data []Scope
	byNode map[NodeRef]ScopeID
}

func newArena(capHint int) *arena {
	return &arena{
		data:   make([]Scope, 0, capHint),
		byNode: make(map[NodeRef]ScopeID, capHint),
	}
}

// allocate appends a scope and returns its 1-based index.
func (a *arena) allocate(s Scope) ScopeID {
	a.data = append(a.data, s)
	id := ScopeID(len(a.data))
	a.byNode[s.Node] = id
	return id
}

func (a *arena) get(id ScopeID) *Scope {
	if id == NoScope {
		return nil
	}
	return &a.data[id-1]
}

// lookup resolves a node identity to its scope, if one was created for it.
func (a *arena) lookup(node NodeRef) ScopeID {
	return a.byNode[node]
}

func (a *arena) len() int {
	return len(a.data)
}
