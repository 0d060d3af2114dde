package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []*Token {
	t.Helper()
	l := New("test.c", strings.NewReader(src))
	var toks []*Token
	for {
		tok := l.Advance()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	toks := lexAll(t, "a += 1 << 2 == 3 != 4 ... -> ++ --")
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{
		Identifier, PlusAssign, NumberLit, ShiftLeft, NumberLit,
		Equals, NumberLit, NotEquals, NumberLit, Ellipsis, Arrow,
		PlusPlus, MinusMinus, EOF,
	}, kinds)
}

func TestLexerKeywords(t *testing.T) {
	toks := lexAll(t, "int const static inline do default")
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{IntKw, ConstKw, StaticKw, InlineKw, Do, Default, EOF}, kinds)
}

func TestLexerIntegerSuffixes(t *testing.T) {
	toks := lexAll(t, "1 1u 1L 1ull 1LL")
	require.Len(t, toks, 6)
	assert.Equal(t, SuffixNone, toks[0].IntSuffix)
	assert.Equal(t, SuffixU, toks[1].IntSuffix)
	assert.Equal(t, SuffixL, toks[2].IntSuffix)
	assert.Equal(t, SuffixULL, toks[3].IntSuffix)
	assert.Equal(t, SuffixLL, toks[4].IntSuffix)
}

func TestLexerHexBinaryOctal(t *testing.T) {
	toks := lexAll(t, "0x1F 0b101 017")
	require.Len(t, toks, 4)
	assert.Equal(t, "0x1F", toks[0].Lexeme)
	assert.Equal(t, "0b101", toks[1].Lexeme)
	assert.Equal(t, "017", toks[2].Lexeme)
}

func TestLexerStringLiteral(t *testing.T) {
	toks := lexAll(t, `"hello\nworld"`)
	require.Len(t, toks, 2)
	assert.Equal(t, StringLit, toks[0].Kind)
	assert.Equal(t, `hello\nworld`, toks[0].Lexeme)
}

func TestLexerSkipsComments(t *testing.T) {
	toks := lexAll(t, "a // line comment\nb /* block */ c")
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{Identifier, Identifier, Identifier, EOF}, kinds)
}

func TestLexerUnterminatedStringPanics(t *testing.T) {
	l := New("test.c", strings.NewReader(`"abc`))
	assert.Panics(t, func() { l.Advance() })
}

func TestPeekSecondDoesNotConsume(t *testing.T) {
	l := New("test.c", strings.NewReader("a : b"))
	first := l.Advance()
	assert.Equal(t, Identifier, first.Kind)

	second := l.PeekSecond()
	assert.Equal(t, Colon, second.Kind)

	// Current token must be unchanged after peeking.
	assert.Equal(t, Identifier, l.PeekCurrent().Kind)

	next := l.Advance()
	assert.Same(t, second, next)
}
