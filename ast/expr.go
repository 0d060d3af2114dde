package ast

import (
	"ccfront/lexer"
	"ccfront/report"
	"ccfront/types"
)

// Expr is implemented by every expression node. Type/SetType let the
// parser build a node before its operand types are fully resolved and fill
// the type in once they are (mirroring how C's expression grammar
// sometimes requires a declarator's type before an initializer can be
// checked).
type Expr interface {
	ASTNode
	Type() *types.Type
	SetType(*types.Type)
}

// ExprBase is embedded by every expression node.
type ExprBase struct {
	Base
	typ *types.Type
}

// NewExprBase returns an ExprBase spanning span with the given type (may be
// nil if the type is not yet known at construction time).
func NewExprBase(span *report.TextSpan, typ *types.Type) ExprBase {
	return ExprBase{Base: NewBaseOn(span), typ: typ}
}

func (e *ExprBase) Type() *types.Type     { return e.typ }
func (e *ExprBase) SetType(t *types.Type) { e.typ = t }

// -----------------------------------------------------------------------------

// IntLit is an integer numeric constant.
type IntLit struct {
	ExprBase
	Value  uint64
	Suffix lexer.IntSuffixKind
}

// FloatLit is a floating-point numeric constant.
type FloatLit struct {
	ExprBase
	Value float64
}

// VarRef is a reference to a previously declared name, or (when
// IsStringLiteral is set) a string-literal lexeme, escape sequences left as
// written, reusing the same
// node shape rather than a dedicated literal type. Object is nil for a
// string literal and for an identifier that failed scope lookup.
type VarRef struct {
	ExprBase
	Name            string
	Object          *Object
	IsStringLiteral bool
}

// BinaryExpr covers every binary operator: arithmetic, relational,
// equality, bitwise, and logical.
type BinaryExpr struct {
	ExprBase
	Op       lexer.Kind
	LHS, RHS Expr
}

// AssignExpr covers simple assignment and every compound-assignment
// operator.
type AssignExpr struct {
	ExprBase
	Op       lexer.Kind
	LHS, RHS Expr
}

// UnaryExpr covers prefix unary operators: '-', '~', '!', '&', '*', and
// prefix/postfix '++'/'--' (distinguished by Postfix).
type UnaryExpr struct {
	ExprBase
	Op      lexer.Kind
	Operand Expr
	Postfix bool
}

// ConditionalExpr is the ternary `cond ? then : else` expression.
type ConditionalExpr struct {
	ExprBase
	Cond, Then, Else Expr
}

// CastExpr is an explicit `(T)expr` cast.
type CastExpr struct {
	ExprBase
	Operand Expr
}

// CallExpr is a function call `callee(args...)`.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// IndexExpr is an array subscript `array[index]`.
type IndexExpr struct {
	ExprBase
	Array, Index Expr
}

// SizeofExpr is `sizeof expr` or `sizeof ( type-name )`. Exactly one of
// Operand or OperandType is set, matching which grammar alternative was
// parsed.
type SizeofExpr struct {
	ExprBase
	Operand     Expr
	OperandType *types.Type
}
