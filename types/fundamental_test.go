package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFundamentalTable(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
		want  FundamentalType
	}{
		{"void", func(b *Builder) { b.AddTypeSpecifier(Void) }, KindVoid},
		{"char", func(b *Builder) { b.AddTypeSpecifier(Char) }, KindChar},
		{"signed char", func(b *Builder) { b.AddTypeSpecifier(Signed); b.AddTypeSpecifier(Char) }, KindSChar},
		{"unsigned char", func(b *Builder) { b.AddTypeSpecifier(Unsigned); b.AddTypeSpecifier(Char) }, KindUChar},
		{"short", func(b *Builder) { b.AddTypeSpecifier(Short) }, KindShort},
		{"signed short int", func(b *Builder) {
			b.AddTypeSpecifier(Signed)
			b.AddTypeSpecifier(Short)
			b.AddTypeSpecifier(Int)
		}, KindShort},
		{"unsigned short", func(b *Builder) { b.AddTypeSpecifier(Unsigned); b.AddTypeSpecifier(Short) }, KindUShort},
		{"int", func(b *Builder) { b.AddTypeSpecifier(Int) }, KindInt},
		{"signed", func(b *Builder) { b.AddTypeSpecifier(Signed) }, KindInt},
		{"unsigned", func(b *Builder) { b.AddTypeSpecifier(Unsigned) }, KindUInt},
		{"long", func(b *Builder) { b.AddLong() }, KindLong},
		{"unsigned long int", func(b *Builder) {
			b.AddTypeSpecifier(Unsigned)
			b.AddLong()
			b.AddTypeSpecifier(Int)
		}, KindULong},
		{"long long", func(b *Builder) { b.AddLong(); b.AddLong() }, KindLongLong},
		{"unsigned long long", func(b *Builder) {
			b.AddTypeSpecifier(Unsigned)
			b.AddLong()
			b.AddLong()
		}, KindULongLong},
		{"float", func(b *Builder) { b.AddTypeSpecifier(Float) }, KindFloat},
		{"double", func(b *Builder) { b.AddTypeSpecifier(Double) }, KindDouble},
		{"long double", func(b *Builder) { b.AddLong(); b.AddTypeSpecifier(Double) }, KindLongDouble},
		{"float complex", func(b *Builder) { b.AddTypeSpecifier(Float); b.AddTypeSpecifier(Complex) }, KindFloatComplex},
		{"double complex", func(b *Builder) { b.AddTypeSpecifier(Double); b.AddTypeSpecifier(Complex) }, KindDoubleComplex},
		{"long double complex", func(b *Builder) {
			b.AddLong()
			b.AddTypeSpecifier(Double)
			b.AddTypeSpecifier(Complex)
		}, KindLongDoubleComplex},
		{"bool", func(b *Builder) { b.AddTypeSpecifier(Bool) }, KindBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(nil)
			tt.build(b)
			assert.Equal(t, tt.want, ResolveFundamental(b, nil))
		})
	}
}

func TestResolveFundamentalRejectsIllegalCombination(t *testing.T) {
	b := NewBuilder(nil)
	b.AddTypeSpecifier(Signed)
	b.AddTypeSpecifier(Float)
	assert.Panics(t, func() { ResolveFundamental(b, nil) })
}

func TestIsIntegerFloatingArithmetic(t *testing.T) {
	assert.True(t, IsInteger(KindInt))
	assert.True(t, IsInteger(KindEnumeratedValue))
	assert.False(t, IsInteger(KindFloat))

	assert.True(t, IsFloating(KindDouble))
	assert.False(t, IsFloating(KindInt))

	assert.True(t, IsArithmetic(KindLong))
	assert.True(t, IsArithmetic(KindFloat))
	assert.False(t, IsArithmetic(KindStruct))
}
