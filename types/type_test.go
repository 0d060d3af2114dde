package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFundamentalTypeForInterning(t *testing.T) {
	a := FundamentalTypeFor(KindInt)
	b := FundamentalTypeFor(KindInt)
	assert.Same(t, a, b, "int must be a singleton")

	c := FundamentalTypeFor(KindLong)
	assert.NotSame(t, a, c)
}

func TestNewPointerToIsAlwaysFresh(t *testing.T) {
	pointee := FundamentalTypeFor(KindInt)
	p1 := NewPointerTo(pointee, 0)
	p2 := NewPointerTo(pointee, 0)
	assert.NotSame(t, p1, p2)
	assert.Same(t, pointee, p1.Pointee)
}

func TestNewPointerToQualified(t *testing.T) {
	p := NewPointerTo(FundamentalTypeFor(KindInt), Const)
	assert.True(t, p.IsQualified())
}

func TestNewFunctionType(t *testing.T) {
	params := &FunctionParameter{Type: FundamentalTypeFor(KindInt), Name: "x"}
	fn := NewFunctionType(FundamentalTypeFor(KindVoid), params, false)
	assert.Equal(t, KindFunction, fn.Kind)
	assert.Equal(t, KindVoid, fn.Func.Return.Kind)
	assert.Same(t, params, fn.Func.Params)
	assert.False(t, fn.Func.Variadic)
}
