package ast

import "ccfront/types"

// Object is a declared name: an identifier, its Type, and — for a
// function-kind Object parsed as a definition rather than a declaration —
// the head of its body's statement list.
type Object struct {
	Identifier string
	Type       *types.Type

	// Storage carries the storage-class bits (static/extern/etc.) from the
	// declaration specifiers that introduced this Object. Unlike
	// qualifiers, storage class is never folded into Type itself (it is
	// not part of a type's identity), so the IR emitter reads it from here
	// to decide a function or global's linkage.
	Storage types.SpecifierFlags

	// Body is non-nil iff this Object is a function parsed as a
	// definition. A function declared but not defined (a prototype) has a
	// nil Body even though its Type.Kind is KindFunction.
	Body Stmt
}

// Scope is a symbol table with a parent pointer: one mapping for ordinary
// names (variables, functions, enum constants) and one for typedef names.
// Lookup falls through to the parent on a miss; the outermost scope has a
// nil parent. Scopes are created on entry to a compound statement and
// discarded (in the GC sense — no references survive) on exit, except that
// a block's own Scope is retained by any return-statement node inside it so
// the IR emitter can recover the enclosing function's return type.
type Scope struct {
	Parent   *Scope
	Vars     map[string]*Object
	Typedefs map[string]*Object

	// ReturnType is the return type of the nearest enclosing function,
	// inherited from Parent when a new block scope is opened. It lets a
	// return-statement node that only holds a Scope back-reference
	// recover what type its expression must convert to.
	ReturnType *types.Type
}

// NewScope returns an empty Scope chained to parent. If parent is non-nil,
// ReturnType is inherited from it.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		Parent:   parent,
		Vars:     make(map[string]*Object),
		Typedefs: make(map[string]*Object),
	}
	if parent != nil {
		s.ReturnType = parent.ReturnType
	}
	return s
}

// Lookup finds an ordinary name, searching outward through parent scopes.
func (s *Scope) Lookup(name string) (*Object, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if obj, ok := sc.Vars[name]; ok {
			return obj, true
		}
	}
	return nil, false
}

// LookupTypedef finds a typedef name, searching outward through parent
// scopes. The parser uses this to reclassify an Identifier token as a
// type-name use.
func (s *Scope) LookupTypedef(name string) (*Object, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if obj, ok := sc.Typedefs[name]; ok {
			return obj, true
		}
	}
	return nil, false
}

// Declare adds name to this scope's ordinary-name map. Redeclaration
// checking is the parser's responsibility, since the legality of a
// redeclaration depends on linkage and type compatibility.
func (s *Scope) Declare(obj *Object) {
	s.Vars[obj.Identifier] = obj
}

// DeclareTypedef adds name to this scope's typedef-name map.
func (s *Scope) DeclareTypedef(obj *Object) {
	s.Typedefs[obj.Identifier] = obj
}

// ExternalDeclarationKind distinguishes the two forms a top-level
// declaration can take.
type ExternalDeclarationKind int

const (
	FunctionDefinition ExternalDeclarationKind = iota
	PlainDeclaration
)

// ExternalDeclaration is one element of the translation unit's top-level
// list: its kind, the head AST node, and a link to the next element. A
// translation unit is the head of this linked list.
type ExternalDeclaration struct {
	Kind ExternalDeclarationKind
	Node ASTNode
	Next *ExternalDeclaration
}
