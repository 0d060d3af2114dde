package types

import "ccfront/report"

// FundamentalType is the closed enumeration of arithmetic, aggregate, and
// derived type kinds a declaration can resolve to.
type FundamentalType int

const (
	KindVoid FundamentalType = iota
	KindChar
	KindSChar
	KindUChar
	KindShort
	KindUShort
	KindInt
	KindUInt
	KindLong
	KindULong
	KindLongLong
	KindULongLong
	KindFloat
	KindDouble
	KindLongDouble
	KindFloatComplex
	KindDoubleComplex
	KindLongDoubleComplex
	KindBool
	KindStruct
	KindUnion
	KindEnum
	KindEnumeratedValue
	KindTypedefName
	KindPointer
	KindFunction
)

// fundamentalFromSpecifiers maps the exhaustive legal multisets of §4.2's
// table, keyed by the arithmetic sum of their SpecifierFlags bits, to the
// FundamentalType they denote. Multisets that alias to the same sum (e.g.
// "int" and "signed int") share an entry.
var fundamentalFromSpecifiers = map[SpecifierFlags]FundamentalType{
	Void: KindVoid,

	Char:            KindChar,
	Signed | Char:   KindSChar,
	Unsigned | Char: KindUChar,

	Short:                  KindShort,
	Short | Signed:         KindShort,
	Short | Int:            KindShort,
	Short | Signed | Int:   KindShort,
	Short | Unsigned:       KindUShort,
	Short | Unsigned | Int: KindUShort,

	Int:            KindInt,
	Signed:         KindInt,
	Signed | Int:   KindInt,
	Unsigned:       KindUInt,
	Unsigned | Int: KindUInt,

	Long:                 KindLong,
	Signed | Long:        KindLong,
	Long | Int:           KindLong,
	Signed | Long | Int:  KindLong,
	Unsigned | Long:      KindULong,
	Unsigned | Long | Int: KindULong,

	LongTest:                 KindLongLong,
	Signed | LongTest:        KindLongLong,
	LongTest | Int:           KindLongLong,
	Signed | LongTest | Int:  KindLongLong,
	Unsigned | LongTest:      KindULongLong,
	Unsigned | LongTest | Int: KindULongLong,

	Float:  KindFloat,
	Double: KindDouble,

	Long | Double: KindLongDouble,

	Float | Complex:         KindFloatComplex,
	Double | Complex:        KindDoubleComplex,
	Long | Double | Complex: KindLongDoubleComplex,

	Bool: KindBool,
}

// ResolveFundamental masks a Builder's flags down to the type-specifier bits
// and looks up the FundamentalType they denote. An unlisted combination
// (e.g. "signed float", "short long") is an error.
func ResolveFundamental(b *Builder, span *report.TextSpan) FundamentalType {
	bits := b.TypeSpecifierBits()

	if bits&Struct != 0 {
		return KindStruct
	}
	if bits&Enum != 0 {
		return KindEnum
	}
	if bits&TypedefName != 0 {
		return KindTypedefName
	}

	if kind, ok := fundamentalFromSpecifiers[bits]; ok {
		return kind
	}

	panic(report.Raise(span, "invalid combination of type specifiers"))
}

// IsInteger reports whether kind is one of the integer arithmetic types
// (the char, short, int, long, and long-long families, plus an enum's
// underlying representation).
func IsInteger(kind FundamentalType) bool {
	switch kind {
	case KindChar, KindSChar, KindUChar,
		KindShort, KindUShort,
		KindInt, KindUInt,
		KindLong, KindULong,
		KindLongLong, KindULongLong,
		KindBool,
		KindEnumeratedValue:
		return true
	default:
		return false
	}
}

// IsFloating reports whether kind is float, double, or long double (the
// complex variants are arithmetic but not real-floating in the C11 sense,
// so they are excluded here as the source's is_floating_type is).
func IsFloating(kind FundamentalType) bool {
	switch kind {
	case KindFloat, KindDouble, KindLongDouble:
		return true
	default:
		return false
	}
}

// IsArithmetic reports whether kind participates in the usual arithmetic
// conversions.
func IsArithmetic(kind FundamentalType) bool {
	return IsInteger(kind) || IsFloating(kind)
}
