package irgen_test

import (
	"strings"
	"testing"

	"ccfront/irgen"
	"ccfront/lexer"
	"ccfront/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emit(t *testing.T, src string) string {
	t.Helper()
	lex := lexer.New("test.c", strings.NewReader(src))
	p := parser.New("test.c", lex)
	tu := p.ParseTranslationUnit()
	mod := irgen.NewEmitter().Emit(tu)
	return mod.String()
}

func TestEmitTrivialReturn(t *testing.T) {
	ir := emit(t, `int main(void) { return 0; }`)
	assert.Contains(t, ir, "define i32 @main()")
	assert.Contains(t, ir, "ret i32 0")
}

func TestEmitLocalDeclarationAndArithmetic(t *testing.T) {
	ir := emit(t, `
int add(int a, int b) {
	int c = a + b;
	return c;
}`)
	assert.Contains(t, ir, "define i32 @add(i32 %0, i32 %1)")
	assert.Contains(t, ir, "alloca i32")
	assert.Contains(t, ir, "add i32")
}

func TestEmitIfElse(t *testing.T) {
	ir := emit(t, `
int max(int a, int b) {
	if (a > b) {
		return a;
	} else {
		return b;
	}
}`)
	assert.Contains(t, ir, "icmp sgt i32")
	assert.Contains(t, ir, "br i1")
}

func TestEmitWhileLoop(t *testing.T) {
	ir := emit(t, `
int sum(int n) {
	int total = 0;
	while (n > 0) {
		total = total + n;
		n = n - 1;
	}
	return total;
}`)
	assert.Contains(t, ir, "br label")
	assert.Contains(t, ir, "icmp sgt i32")
}

func TestEmitCastWidensToDouble(t *testing.T) {
	ir := emit(t, `
double halve(int n) {
	return (double)n / 2.0;
}`)
	assert.Contains(t, ir, "sitofp i32")
	assert.Contains(t, ir, "fdiv double")
}

func TestEmitStaticFunctionIsInternal(t *testing.T) {
	ir := emit(t, `static int helper(void) { return 1; }`)
	assert.Contains(t, ir, "internal")
	assert.Contains(t, ir, "@helper")
}

func TestEmitGlobalVariableWithInitializer(t *testing.T) {
	ir := emit(t, `int counter = 42;`)
	assert.Contains(t, ir, "@counter")
	assert.Contains(t, ir, "42")
}

func TestEmitUnaryNot(t *testing.T) {
	ir := emit(t, `
int zero(int x) {
	return !x;
}`)
	require.Contains(t, ir, "icmp")
	assert.Contains(t, ir, "xor i1")
}

func TestEmitPostfixIncrement(t *testing.T) {
	ir := emit(t, `
int next(int x) {
	int y = x++;
	return y;
}`)
	assert.Contains(t, ir, "add i32")
	assert.Contains(t, ir, "store")
}
