// Package engine implements the async-context escape analysis: a forward,
// single-pass model of one syntax-tree traversal that tracks nested function
// scopes, classifies them as suspended (an await was observed inside) or
// deferred (the scope is a continuation callback), follows single-hop alias
// chains back to event-like parameters, and judges every candidate use site
// against the boundaries between its binding scope and the use.
//
// The engine is host-agnostic: it never touches tree-sitter. The host
// traversal feeds it node identities (byte ranges), parameter name lists and
// declaration facts through the operations on Engine, and injects a Sink
// that turns positive verdicts into diagnostics. State is scoped to one file
// and one traversal; a fresh Engine is required per file.
package engine
