// Package types implements the C type system: declaration-specifier
// accumulation, the fundamental type lattice, and the derived pointer and
// function type constructors.
package types

import "ccfront/report"

// SpecifierFlags is the bitset accumulated while walking a
// declaration-specifier list. It mirrors the layout of the original
// TypeSpecifierFlag enum bit for bit: type-specifiers occupy the low bits,
// storage-class-specifiers, qualifiers, function-specifiers and the
// alignment-specifier occupy the rest.
//
// Long is special: it may appear up to twice ("long long"), so a second
// occurrence is folded into the bitset by arithmetic addition rather than a
// bitwise OR. Adding Long (1<<6) to itself carries into bit 7 (LongTest),
// which is otherwise unused as an independent specifier — this is how a
// single integer field distinguishes "long" from "long long" without a
// separate counter.
type SpecifierFlags int

const (
	Void SpecifierFlags = 1 << 0
	// bit 1 unused, mirroring the source enum's gap.
	Char     SpecifierFlags = 1 << 2
	Signed   SpecifierFlags = 1 << 3
	Unsigned SpecifierFlags = 1 << 4
	Short    SpecifierFlags = 1 << 5
	Long     SpecifierFlags = 1 << 6
	LongTest SpecifierFlags = 1 << 7
	Int      SpecifierFlags = 1 << 8
	Float    SpecifierFlags = 1 << 9
	// bit 10 unused.
	Double  SpecifierFlags = 1 << 11
	Bool    SpecifierFlags = 1 << 12
	Complex SpecifierFlags = 1 << 13

	TypeDef     SpecifierFlags = 1 << 14
	Extern      SpecifierFlags = 1 << 15
	Static      SpecifierFlags = 1 << 16
	ThreadLocal SpecifierFlags = 1 << 17
	Auto        SpecifierFlags = 1 << 18
	Register    SpecifierFlags = 1 << 19

	Const    SpecifierFlags = 1 << 20
	Restrict SpecifierFlags = 1 << 21
	// bit 22 unused.
	Volatile SpecifierFlags = 1 << 23
	Atomic   SpecifierFlags = 1 << 24

	Inline   SpecifierFlags = 1 << 25
	NoReturn SpecifierFlags = 1 << 26

	Alignas SpecifierFlags = 1 << 27

	TypedefName SpecifierFlags = 1 << 28
	Struct      SpecifierFlags = 1 << 29
	Enum        SpecifierFlags = 1 << 30

	storageClassMask = TypeDef | Extern | Static | ThreadLocal | Auto | Register
	// typeSpecifierMask covers every bit a type-specifier may occupy,
	// including the LongTest carry bit produced by a doubled Long.
	typeSpecifierMask = Void | Char | Signed | Unsigned | Short | Long | LongTest |
		Int | Float | Double | Bool | Complex | TypedefName | Struct | Enum
)

// Builder accumulates SpecifierFlags while a declaration-specifier list is
// walked token by token, enforcing the constraints of the C11 grammar: at
// most one storage class (except that _Thread_local may combine with static
// or extern), at most two longs, and no repeated plain type-specifier.
type Builder struct {
	flags SpecifierFlags
	span  *report.TextSpan
}

// NewBuilder returns an empty Builder. span is used to position any
// diagnostic the builder raises.
func NewBuilder(span *report.TextSpan) *Builder {
	return &Builder{span: span}
}

// Flags returns the accumulated bitset.
func (b *Builder) Flags() SpecifierFlags {
	return b.flags
}

// AddTypeSpecifier records a plain (non-long) type-specifier keyword.
// Repeating one is an error: "int int" is not a wider int, it is malformed.
func (b *Builder) AddTypeSpecifier(flag SpecifierFlags) {
	if b.flags&flag != 0 {
		panic(report.Raise(b.span, "repeated type specifier"))
	}
	b.flags |= flag
}

// AddLong records one occurrence of "long". A first occurrence sets the Long
// bit; a second adds Long to itself, which carries into LongTest — the
// bitset equivalent of "long long". A third occurrence is rejected.
func (b *Builder) AddLong() {
	if b.flags&LongTest != 0 {
		panic(report.Raise(b.span, "too many long specifiers in type specification"))
	}
	b.flags += Long
}

// AddStorageClass records a storage-class-specifier keyword. At most one may
// be given, except that ThreadLocal may combine with Static or Extern.
func (b *Builder) AddStorageClass(flag SpecifierFlags) {
	if existing := b.flags & storageClassMask; existing != 0 {
		combinable := (flag == ThreadLocal && (existing == Static || existing == Extern)) ||
			((flag == Static || flag == Extern) && existing == ThreadLocal)
		if !combinable {
			panic(report.Raise(b.span, "a second storage class specifier was given"))
		}
	}
	b.flags |= flag
}

// AddQualifier records a type-qualifier keyword (const, restrict, volatile,
// _Atomic). Repeating a qualifier, directly or via a typedef, has the same
// effect as specifying it once, so this is idempotent.
func (b *Builder) AddQualifier(flag SpecifierFlags) {
	b.flags |= flag
}

// AddFunctionSpecifier records inline or _Noreturn. Like qualifiers, a
// function-specifier may repeat with no additional effect.
func (b *Builder) AddFunctionSpecifier(flag SpecifierFlags) {
	b.flags |= flag
}

// AddAlignas records that an alignment-specifier was present. Validating its
// placement (not on a typedef, bit-field, function, parameter, or
// register-class object) is the parser's responsibility, since it requires
// knowing what is being declared.
func (b *Builder) AddAlignas() {
	b.flags |= Alignas
}

// TypeSpecifierBits isolates the bits relevant to fundamental-type
// resolution, discarding storage class, qualifiers, function specifiers and
// the alignment bit.
func (b *Builder) TypeSpecifierBits() SpecifierFlags {
	return b.flags & typeSpecifierMask
}

func (b *Builder) Has(flag SpecifierFlags) bool {
	return b.flags&flag != 0
}
