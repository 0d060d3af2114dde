package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderAddLong(t *testing.T) {
	b := NewBuilder(nil)
	b.AddLong()
	assert.Equal(t, Long, b.Flags())

	b.AddLong()
	assert.Equal(t, LongTest, b.Flags(), "long long should carry into the LongTest bit")

	assert.Panics(t, func() { b.AddLong() }, "a third long is an error")
}

func TestBuilderAddTypeSpecifierRepeated(t *testing.T) {
	b := NewBuilder(nil)
	b.AddTypeSpecifier(Int)
	assert.Panics(t, func() { b.AddTypeSpecifier(Int) })
}

func TestBuilderStorageClassThreadLocalCombinesWithStaticOrExtern(t *testing.T) {
	b := NewBuilder(nil)
	b.AddStorageClass(ThreadLocal)
	require.NotPanics(t, func() { b.AddStorageClass(Static) })
	assert.True(t, b.Has(ThreadLocal))
	assert.True(t, b.Has(Static))
}

func TestBuilderStorageClassRejectsSecondUnrelated(t *testing.T) {
	b := NewBuilder(nil)
	b.AddStorageClass(Static)
	assert.Panics(t, func() { b.AddStorageClass(Extern) })
}

func TestBuilderQualifiersAreIdempotent(t *testing.T) {
	b := NewBuilder(nil)
	b.AddQualifier(Const)
	require.NotPanics(t, func() { b.AddQualifier(Const) })
	assert.Equal(t, Const, b.Flags())
}

func TestBuilderFunctionSpecifiersAreIdempotent(t *testing.T) {
	b := NewBuilder(nil)
	b.AddFunctionSpecifier(Inline)
	require.NotPanics(t, func() { b.AddFunctionSpecifier(Inline) })
	assert.Equal(t, Inline, b.Flags())
}

func TestTypeSpecifierBitsExcludesStorageAndQualifiers(t *testing.T) {
	b := NewBuilder(nil)
	b.AddTypeSpecifier(Int)
	b.AddStorageClass(Static)
	b.AddQualifier(Const)
	b.AddFunctionSpecifier(Inline)
	assert.Equal(t, Int, b.TypeSpecifierBits())
}
