package ast

import (
	"testing"

	"ccfront/lexer"
	"ccfront/report"
	"ccfront/types"

	"github.com/stretchr/testify/assert"
)

func TestExprBaseTypeRoundTrip(t *testing.T) {
	span := &report.TextSpan{}
	lit := &IntLit{ExprBase: NewExprBase(span, nil), Value: 1}
	assert.Nil(t, lit.Type())

	lit.SetType(types.FundamentalTypeFor(types.KindInt))
	assert.Equal(t, types.KindInt, lit.Type().Kind)
}

func TestBinaryExprPrecedenceShape(t *testing.T) {
	// a * b + c should parse (conceptually) as (a*b)+c: the '+' node's
	// LHS is the '*' node.
	a := &VarRef{ExprBase: NewExprBase(nil, nil), Name: "a"}
	b := &VarRef{ExprBase: NewExprBase(nil, nil), Name: "b"}
	c := &VarRef{ExprBase: NewExprBase(nil, nil), Name: "c"}

	mul := &BinaryExpr{ExprBase: NewExprBase(nil, nil), Op: lexer.Star, LHS: a, RHS: b}
	add := &BinaryExpr{ExprBase: NewExprBase(nil, nil), Op: lexer.Plus, LHS: mul, RHS: c}

	assert.Equal(t, lexer.Plus, add.Op)
	assert.Same(t, mul, add.LHS)
	assert.Same(t, c, add.RHS)
}
