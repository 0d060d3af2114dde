// Package parser implements a recursive-descent parser over the token
// stream produced by package lexer, building the ast package's tree.
package parser

import (
	"ccfront/ast"
	"ccfront/lexer"
	"ccfront/report"
	"ccfront/types"
)

// Parser drives a Lexer one token of lookahead at a time, building an
// ast.TranslationUnit. There is no error recovery: the first malformed
// construct panics a *report.CompileError, caught by the driver at the
// translation-unit boundary.
type Parser struct {
	absPath string
	lex     *lexer.Lexer
	cur     *lexer.Token
	arena   *ast.Arena
	scope   *ast.Scope
}

// New returns a Parser over lex, reporting diagnostics against absPath.
func New(absPath string, lex *lexer.Lexer) *Parser {
	p := &Parser{absPath: absPath, lex: lex, arena: ast.NewArena()}
	p.scope = ast.NewScope(nil)
	p.cur = lex.Advance()
	return p
}

// ParseTranslationUnit parses the whole input: a sequence of function
// definitions and declarations, terminated by EOF.
func (p *Parser) ParseTranslationUnit() *ast.TranslationUnit {
	var anchor, tail *ast.ExternalDeclaration

	for p.cur.Kind != lexer.EOF {
		if !p.isDeclarationSpecifier(p.cur) {
			p.fail("expected declaration specifier")
		}

		decl := p.parseExternalDeclaration()

		if anchor == nil {
			anchor = decl
			tail = decl
		} else {
			tail.Next = decl
			tail = decl
		}
	}

	return &ast.TranslationUnit{Decls: anchor, FileScope: p.scope}
}

// -----------------------------------------------------------------------------
// Token-class predicates, grounded on the same five-way split the source
// uses to recognize a declaration specifier: storage class, type specifier
// (including a typedef-name visible in scope), qualifier, function
// specifier, or alignment specifier.

func (p *Parser) isDeclarationSpecifier(tok *lexer.Token) bool {
	if tok.Kind.IsDeclarationSpecifier() {
		return true
	}
	if tok.Kind == lexer.Identifier {
		_, ok := p.scope.LookupTypedef(tok.Lexeme)
		return ok
	}
	return false
}

func isTypeQualifier(k lexer.Kind) bool {
	switch k {
	case lexer.ConstKw, lexer.RestrictKw, lexer.VolatileKw, lexer.AtomicKw:
		return true
	default:
		return false
	}
}

func isStorageClass(k lexer.Kind) bool {
	switch k {
	case lexer.TypedefKw, lexer.ExternKw, lexer.StaticKw, lexer.ThreadLocalKw, lexer.AutoKw, lexer.RegisterKw:
		return true
	default:
		return false
	}
}

func isFunctionSpecifier(k lexer.Kind) bool {
	return k == lexer.InlineKw || k == lexer.NoReturnKw
}

func isTypeSpecifierKeyword(k lexer.Kind) bool {
	switch k {
	case lexer.VoidKw, lexer.CharKw, lexer.ShortKw, lexer.IntKw, lexer.LongKw,
		lexer.FloatKw, lexer.DoubleKw, lexer.SignedKw, lexer.UnsignedKw,
		lexer.BoolKw, lexer.ComplexKw, lexer.StructKw, lexer.UnionKw, lexer.EnumKw:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

func (p *Parser) advance() *lexer.Token {
	p.cur = p.lex.Advance()
	return p.cur
}

func (p *Parser) expect(kind lexer.Kind, msg string) *lexer.Token {
	if p.cur.Kind != kind {
		p.fail(msg)
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *Parser) fail(format string, args ...interface{}) {
	panic(report.Raise(p.cur.Span, format, args...))
}

// pushScope opens a child scope and makes it current, returning it so the
// caller can restore the previous scope when the construct closes.
func (p *Parser) pushScope() *ast.Scope {
	p.scope = p.arena.NewScope(p.scope)
	return p.scope
}

func (p *Parser) popScope() {
	if p.scope.Parent != nil {
		p.scope = p.scope.Parent
	}
}

// canonicalFundamentalType resolves a Builder's accumulated flags to a
// *types.Type: the interned singleton for an unqualified arithmetic/bool
// kind, or a freshly qualified clone of it when const/volatile/restrict/
// atomic were present in the declaration specifiers.
func canonicalFundamentalType(b *types.Builder, span *report.TextSpan) *types.Type {
	kind := types.ResolveFundamental(b, span)
	return types.Qualify(types.FundamentalTypeFor(kind), b.Flags())
}
