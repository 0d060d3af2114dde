// Package lexer scans C11 source text into a stream of tokens, consumed one
// at a time by the parser.
package lexer

import "ccfront/report"

// Token is a single lexical token: its kind, the literal source lexeme (for
// identifiers, numbers, and strings), and the span of source text it covers.
// Tokens are value-typed and cheap to copy.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   *report.TextSpan

	// IntSuffix is meaningful only when Kind == NumberLit and the literal
	// has no decimal point or exponent.
	IntSuffix IntSuffixKind
}

// Kind enumerates every token tag the lexer can produce.
type Kind int

const (
	// Compiler internals.
	NotStarted Kind = iota
	EOF
	Error
	Identifier
	NumberLit
	StringLit

	// Punctuation.
	Comma
	Dot
	Bang
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Semicolon
	QuestionMark
	Colon
	Ellipsis

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	PlusPlus
	MinusMinus
	Equals
	NotEquals
	LessThan
	GreaterThan
	LessEqual
	GreaterEqual
	Ampersand
	Pipe
	Caret
	Tilde
	ShiftLeft
	ShiftRight
	LogicalAnd
	LogicalOr
	LogicalNot
	Arrow

	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AndAssign
	OrAssign
	XorAssign
	ShiftLeftAssign
	ShiftRightAssign

	// Control-flow keywords.
	For
	While
	Do
	If
	Else
	Switch
	Case
	Default
	Continue
	Break
	Goto
	Return
	SizeOf

	// Type specifiers.
	IntKw
	FloatKw
	DoubleKw
	UnsignedKw
	VoidKw
	CharKw
	ShortKw
	LongKw
	SignedKw
	BoolKw
	ComplexKw
	StructKw
	UnionKw
	EnumKw

	// Storage-class specifiers.
	TypedefKw
	ExternKw
	StaticKw
	ThreadLocalKw
	AutoKw
	RegisterKw

	// Type qualifiers.
	ConstKw
	RestrictKw
	VolatileKw
	AtomicKw

	// Function specifiers.
	InlineKw
	NoReturnKw

	// Alignment specifier.
	AlignAsKw
)

// IntSuffixKind enumerates the integer-literal suffix combinations the
// lexer recognizes: none, u/U, l/L, ll/LL, and every ordering of u/U with
// l/L or ll/LL.
type IntSuffixKind int

const (
	SuffixNone IntSuffixKind = iota
	SuffixU
	SuffixL
	SuffixUL
	SuffixLL
	SuffixULL
)

// keywords maps every reserved word to its token kind. Identifiers that do
// not match an entry here remain Identifier; the parser is responsible for
// separately reclassifying an Identifier whose lexeme names a visible
// typedef.
var keywords = map[string]Kind{
	"for": For, "while": While, "do": Do,
	"if": If, "else": Else,
	"switch": Switch, "case": Case, "default": Default,
	"continue": Continue, "break": Break, "goto": Goto, "return": Return,
	"sizeof": SizeOf,

	"int": IntKw, "float": FloatKw, "double": DoubleKw,
	"unsigned": UnsignedKw, "void": VoidKw, "char": CharKw,
	"short": ShortKw, "long": LongKw, "signed": SignedKw, "_Bool": BoolKw,
	"_Complex": ComplexKw, "struct": StructKw, "union": UnionKw, "enum": EnumKw,

	"typedef": TypedefKw, "extern": ExternKw, "static": StaticKw,
	"_Thread_local": ThreadLocalKw, "auto": AutoKw, "register": RegisterKw,

	"const": ConstKw, "restrict": RestrictKw, "volatile": VolatileKw,
	"_Atomic": AtomicKw,

	"inline": InlineKw, "_Noreturn": NoReturnKw,

	"_Alignas": AlignAsKw,
}

// IsDeclarationSpecifier reports whether a keyword kind can start or
// continue a declaration-specifier list.
func (k Kind) IsDeclarationSpecifier() bool {
	switch k {
	case IntKw, FloatKw, DoubleKw, UnsignedKw, VoidKw, CharKw, ShortKw, LongKw,
		SignedKw, BoolKw, ComplexKw, StructKw, UnionKw, EnumKw,
		TypedefKw, ExternKw, StaticKw, ThreadLocalKw, AutoKw, RegisterKw,
		ConstKw, RestrictKw, VolatileKw, AtomicKw,
		InlineKw, NoReturnKw, AlignAsKw:
		return true
	default:
		return false
	}
}
