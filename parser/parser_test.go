package parser

import (
	"strings"
	"testing"

	"ccfront/ast"
	"ccfront/lexer"
	"ccfront/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) *ast.TranslationUnit {
	t.Helper()
	lx := lexer.New("test.c", strings.NewReader(src))
	p := New("test.c", lx)
	return p.ParseTranslationUnit()
}

func TestParseSimpleFunctionDefinition(t *testing.T) {
	tu := parseSrc(t, `int add(int a, int b) { return a + b; }`)

	decls := tu.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, ast.FunctionDefinition, decls[0].Kind)

	declStmt, ok := decls[0].Node.(*ast.DeclStmt)
	require.True(t, ok)
	require.Len(t, declStmt.Decls, 1)

	obj := declStmt.Decls[0].Object
	assert.Equal(t, "add", obj.Identifier)
	require.Equal(t, types.KindFunction, obj.Type.Kind)
	assert.Equal(t, types.KindInt, obj.Type.Func.Return.Kind)
	require.NotNil(t, obj.Body)

	body, ok := obj.Body.(*ast.CompoundStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 1)

	ret, ok := body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.Plus, bin.Op)
}

func TestParseGlobalDeclarationWithInitializer(t *testing.T) {
	tu := parseSrc(t, `int x = 5;`)

	decls := tu.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, ast.PlainDeclaration, decls[0].Kind)

	declStmt := decls[0].Node.(*ast.DeclStmt)
	require.Len(t, declStmt.Decls, 1)
	assert.Equal(t, "x", declStmt.Decls[0].Object.Identifier)

	lit, ok := declStmt.Decls[0].Init.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, uint64(5), lit.Value)
}

func TestParsePointerDeclarator(t *testing.T) {
	tu := parseSrc(t, `int *const *volatile p;`)
	decls := tu.Declarations()
	obj := decls[0].Node.(*ast.DeclStmt).Decls[0].Object

	outer := obj.Type
	require.Equal(t, types.KindPointer, outer.Kind)
	assert.True(t, outer.IsQualified())
	assert.NotZero(t, outer.Flags&types.Volatile)

	inner := outer.Pointee
	require.Equal(t, types.KindPointer, inner.Kind)
	assert.NotZero(t, inner.Flags&types.Const)

	assert.Equal(t, types.KindInt, inner.Pointee.Kind)
}

func TestParseIfWhileForStatements(t *testing.T) {
	tu := parseSrc(t, `
void f(void) {
	int i;
	if (i) { i = 1; } else { i = 2; }
	while (i) { i = i - 1; }
	for (i = 0; i; i = i + 1) { }
}`)
	fn := tu.Declarations()[0].Node.(*ast.DeclStmt).Decls[0].Object
	body := fn.Body.(*ast.CompoundStmt)
	require.Len(t, body.Stmts, 4)

	_, ok := body.Stmts[1].(*ast.IfStmt)
	assert.True(t, ok)
	_, ok = body.Stmts[2].(*ast.WhileStmt)
	assert.True(t, ok)
	_, ok = body.Stmts[3].(*ast.ForStmt)
	assert.True(t, ok)
}

func TestParseDoWhileAndSwitch(t *testing.T) {
	tu := parseSrc(t, `
void f(int x) {
	do {
		x = x - 1;
	} while (x);

	switch (x) {
	case 1:
		break;
	default:
		break;
	}
}`)
	fn := tu.Declarations()[0].Node.(*ast.DeclStmt).Decls[0].Object
	body := fn.Body.(*ast.CompoundStmt)
	require.Len(t, body.Stmts, 2)

	_, ok := body.Stmts[0].(*ast.DoWhileStmt)
	assert.True(t, ok)
	_, ok = body.Stmts[1].(*ast.SwitchStmt)
	assert.True(t, ok)
}

func TestParseCallAndSubscriptExpressions(t *testing.T) {
	tu := parseSrc(t, `
int g(int x);
void f(int *arr) {
	g(arr[0]);
}`)
	fn := tu.Declarations()[1].Node.(*ast.DeclStmt).Decls[0].Object
	body := fn.Body.(*ast.CompoundStmt)
	exprStmt := body.Stmts[0].(*ast.ExprStmt)

	call, ok := exprStmt.Expr.(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 1)

	_, ok = call.Args[0].(*ast.IndexExpr)
	assert.True(t, ok)
}

func TestParseCastAndSizeof(t *testing.T) {
	tu := parseSrc(t, `
void f(void) {
	int a;
	a = (int)1;
	a = sizeof(int);
	a = sizeof a;
}`)
	fn := tu.Declarations()[0].Node.(*ast.DeclStmt).Decls[0].Object
	body := fn.Body.(*ast.CompoundStmt)

	assign1 := body.Stmts[1].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	_, ok := assign1.RHS.(*ast.CastExpr)
	assert.True(t, ok)

	assign2 := body.Stmts[2].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	sz := assign2.RHS.(*ast.SizeofExpr)
	require.NotNil(t, sz.OperandType)
	assert.Equal(t, types.KindInt, sz.OperandType.Kind)

	assign3 := body.Stmts[3].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	sz2 := assign3.RHS.(*ast.SizeofExpr)
	require.NotNil(t, sz2.Operand)
	assert.Nil(t, sz2.OperandType)
}

func TestParseTypedefDeclaration(t *testing.T) {
	tu := parseSrc(t, `
typedef int myint;
myint y;`)
	decls := tu.Declarations()
	require.Len(t, decls, 2)

	yObj := decls[1].Node.(*ast.DeclStmt).Decls[0].Object
	assert.Equal(t, "y", yObj.Identifier)
	assert.Equal(t, types.KindInt, yObj.Type.Kind)
}

func TestParseMalformedDeclarationPanics(t *testing.T) {
	assert.Panics(t, func() { parseSrc(t, `int int x;`) })
}
