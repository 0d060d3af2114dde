package ast

import (
	"testing"

	"ccfront/types"

	"github.com/stretchr/testify/assert"
)

func TestScopeLookupFallsThroughToParent(t *testing.T) {
	parent := NewScope(nil)
	parent.Declare(&Object{Identifier: "x", Type: types.FundamentalTypeFor(types.KindInt)})

	child := NewScope(parent)
	obj, ok := child.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "x", obj.Identifier)
}

func TestScopeShadowing(t *testing.T) {
	parent := NewScope(nil)
	parent.Declare(&Object{Identifier: "x", Type: types.FundamentalTypeFor(types.KindInt)})

	child := NewScope(parent)
	child.Declare(&Object{Identifier: "x", Type: types.FundamentalTypeFor(types.KindLong)})

	obj, ok := child.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, types.KindLong, obj.Type.Kind, "child's declaration should shadow the parent's")

	parentObj, _ := parent.Lookup("x")
	assert.Equal(t, types.KindInt, parentObj.Type.Kind, "parent's own binding must be unaffected")
}

func TestScopeChildDeclarationsInvisibleToParent(t *testing.T) {
	parent := NewScope(nil)
	child := NewScope(parent)
	child.Declare(&Object{Identifier: "y", Type: types.FundamentalTypeFor(types.KindInt)})

	_, ok := parent.Lookup("y")
	assert.False(t, ok)
}

func TestScopeInheritsReturnType(t *testing.T) {
	parent := NewScope(nil)
	parent.ReturnType = types.FundamentalTypeFor(types.KindInt)

	child := NewScope(parent)
	assert.Same(t, parent.ReturnType, child.ReturnType)
}

func TestExternalDeclarationListTraversal(t *testing.T) {
	third := &ExternalDeclaration{Kind: PlainDeclaration}
	second := &ExternalDeclaration{Kind: FunctionDefinition, Next: third}
	first := &ExternalDeclaration{Kind: PlainDeclaration, Next: second}

	tu := &TranslationUnit{Decls: first}
	decls := tu.Declarations()
	assert.Len(t, decls, 3)
	assert.Equal(t, FunctionDefinition, decls[1].Kind)
}

func TestArenaStats(t *testing.T) {
	a := NewArena()
	a.NewObject("x", types.FundamentalTypeFor(types.KindInt))
	a.NewScope(nil)
	a.Track(&VoidStmt{})

	objects, scopes, nodes := a.Stats()
	assert.Equal(t, 1, objects)
	assert.Equal(t, 1, scopes)
	assert.Equal(t, 1, nodes)
}
