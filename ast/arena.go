package ast

import "ccfront/types"

// Arena is the bookkeeping handle for a single translation unit's worth of
// AST allocation. The source's manual single-free-on-exit arena has no
// counterpart in garbage-collected Go — the underlying memory is reclaimed
// once the last reachable reference (the ExternalDeclaration list returned
// to the driver) goes out of scope. What survives the port is the
// *lifetime discipline*: the parser creates its Objects and block Scopes
// through its Arena (the file scope itself is made directly with
// NewScope), so it never has to reason about allocation beyond "does this
// outlive the translation unit."
type Arena struct {
	objects int
	scopes  int
	nodes   int
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewObject allocates an Object owned by this arena.
func (a *Arena) NewObject(identifier string, typ *types.Type) *Object {
	a.objects++
	return &Object{Identifier: identifier, Type: typ}
}

// NewScope allocates a Scope chained to parent, owned by this arena.
func (a *Arena) NewScope(parent *Scope) *Scope {
	a.scopes++
	return NewScope(parent)
}

// Track records that node was allocated within this arena. The parser does
// not call it, so the node count reflects only explicit Track calls.
func (a *Arena) Track(node ASTNode) ASTNode {
	a.nodes++
	return node
}

// Stats returns the number of objects, scopes, and nodes allocated through
// this arena so far. Exercised by tests confirming the arena is actually
// on the allocation path, not just bookkeeping that nothing calls.
func (a *Arena) Stats() (objects, scopes, nodes int) {
	return a.objects, a.scopes, a.nodes
}

// Release drops the arena's bookkeeping. There is nothing to free by hand;
// this exists so call sites that structurally mirror the source's
// "acquire on translation-unit entry, release on exit" shape still have a
// matching call, keeping parser and driver code symmetric with the
// lexer/parser lifetime described in the data model.
func (a *Arena) Release() {
	a.objects, a.scopes, a.nodes = 0, 0, 0
}
