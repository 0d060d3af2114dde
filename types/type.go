package types

// Type is an immutable, possibly-shared description of a complete C type.
// For each fundamental arithmetic or aggregate kind there is exactly one
// canonical singleton (see FundamentalTypeFor); pointer and function types
// are always freshly allocated since they carry their own substructure.
type Type struct {
	Kind  FundamentalType
	Flags SpecifierFlags // qualifiers (const/volatile/restrict/atomic) attached to this type

	// Pointee is set iff Kind == KindPointer; always non-nil in that case.
	Pointee *Type

	// Func is set iff Kind == KindFunction; always non-nil in that case.
	Func *FunctionData
}

// FunctionData describes a function type: its return type, its parameter
// list, and whether it accepts a trailing variadic argument.
type FunctionData struct {
	Return   *Type
	Params   *FunctionParameter
	Variadic bool
}

// FunctionParameter is one node of a function type's singly-linked
// parameter list. Name is empty for an abstract declarator (legal in a
// function prototype, illegal in a function definition).
type FunctionParameter struct {
	Type *Type
	Name string
	Next *FunctionParameter
}

// singletons holds the one canonical *Type for each fundamental kind that is
// not a pointer or function type. They are allocated once at package init
// and never mutated, giving them static lifetime independent of any
// translation-unit arena.
var singletons = map[FundamentalType]*Type{}

func init() {
	for _, kind := range []FundamentalType{
		KindVoid, KindChar, KindSChar, KindUChar,
		KindShort, KindUShort, KindInt, KindUInt,
		KindLong, KindULong, KindLongLong, KindULongLong,
		KindFloat, KindDouble, KindLongDouble,
		KindFloatComplex, KindDoubleComplex, KindLongDoubleComplex,
		KindBool,
		KindStruct, KindUnion, KindEnum, KindEnumeratedValue, KindTypedefName,
	} {
		singletons[kind] = &Type{Kind: kind}
	}
}

// FundamentalTypeFor returns the canonical singleton Type for any kind other
// than pointer and function. Those two carry their own substructure and are
// built by NewPointerTo and NewFunctionType; asking for one here returns a
// fresh Type with neither Pointee nor Func set.
func FundamentalTypeFor(kind FundamentalType) *Type {
	if t, ok := singletons[kind]; ok {
		return t
	}
	return &Type{Kind: kind}
}

// NewPointerTo allocates a fresh pointer type to pointee, qualified by
// flags (the qualifiers written between the '*' and the declarator, e.g.
// "int *const p").
func NewPointerTo(pointee *Type, flags SpecifierFlags) *Type {
	return &Type{Kind: KindPointer, Flags: flags, Pointee: pointee}
}

// NewFunctionType allocates a fresh function type.
func NewFunctionType(ret *Type, params *FunctionParameter, variadic bool) *Type {
	return &Type{
		Kind: KindFunction,
		Func: &FunctionData{Return: ret, Params: params, Variadic: variadic},
	}
}

// IsQualified reports whether any of const/volatile/restrict/atomic is set
// on this type node.
func (t *Type) IsQualified() bool {
	return t.Flags&(Const|Volatile|Restrict|Atomic) != 0
}

const qualifierMask = Const | Restrict | Volatile | Atomic

// Qualify attaches qualifier flags to base. The interned singleton
// returned by FundamentalTypeFor must never be mutated in place — a
// qualified use (e.g. "const int") gets its own fresh Type sharing base's
// Kind, leaving the singleton itself unqualified for every other use.
func Qualify(base *Type, flags SpecifierFlags) *Type {
	quals := flags & qualifierMask
	if quals == 0 {
		return base
	}
	clone := *base
	clone.Flags |= quals
	return &clone
}
