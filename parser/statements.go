package parser

import (
	"ccfront/ast"
	"ccfront/lexer"
	"ccfront/types"
)

// parseStatement dispatches on the current token per C11 §6.8: labeled,
// compound, selection, iteration, jump, or (falling through) expression
// statement.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Kind {
	case lexer.Identifier:
		if p.peekIsLabelColon() {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	case lexer.Case, lexer.Default:
		return p.parseLabeledStatement()
	case lexer.LBrace:
		return p.parseCompoundStatement()
	case lexer.If, lexer.Switch:
		return p.parseSelectionStatement()
	case lexer.While, lexer.For, lexer.Do:
		return p.parseIterationStatement()
	case lexer.Goto, lexer.Continue, lexer.Break, lexer.Return:
		return p.parseJumpStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// peekIsLabelColon distinguishes `label:` from an ordinary identifier
// expression starting a statement, by looking one token past the current
// identifier for a ':'.
func (p *Parser) peekIsLabelColon() bool {
	return p.lex.PeekSecond().Kind == lexer.Colon
}

func (p *Parser) parseLabeledStatement() ast.Stmt {
	span := p.cur.Span
	switch p.cur.Kind {
	case lexer.Case:
		p.advance()
		caseExpr := p.parseConditionalExpression()
		p.expect(lexer.Colon, "expected ':' after case expression")
		stmt := p.parseStatement()
		return &ast.LabeledStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Case: caseExpr, Stmt: stmt}
	case lexer.Default:
		p.advance()
		p.expect(lexer.Colon, "expected ':' after default")
		stmt := p.parseStatement()
		return &ast.LabeledStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, IsDefault: true, Stmt: stmt}
	default:
		label := p.expect(lexer.Identifier, "expected label").Lexeme
		p.expect(lexer.Colon, "expected ':' after label")
		stmt := p.parseStatement()
		return &ast.LabeledStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Label: label, Stmt: stmt}
	}
}

// parseCompoundStatement opens a new scope for a `{ ... }` block and parses
// its mix of declarations and statements.
func (p *Parser) parseCompoundStatement() *ast.CompoundStmt {
	span := p.cur.Span
	p.expect(lexer.LBrace, "expected '{'")
	p.pushScope()
	scope := p.scope

	stmts := p.parseStatementsUntilRBrace()

	p.popScope()
	p.expect(lexer.RBrace, "expected '}' to close compound statement")
	return &ast.CompoundStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Scope: scope, Stmts: stmts}
}

// parseCompoundStatementBody parses a function body: the caller has
// already opened the function's scope (so parameters are visible), so this
// only consumes the brace-delimited statement list without opening a
// second nested scope for the outermost block.
func (p *Parser) parseCompoundStatementBody() *ast.CompoundStmt {
	span := p.cur.Span
	p.expect(lexer.LBrace, "expected '{' to start function body")
	scope := p.scope

	stmts := p.parseStatementsUntilRBrace()

	p.expect(lexer.RBrace, "expected '}' to close function body")
	return &ast.CompoundStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Scope: scope, Stmts: stmts}
}

func (p *Parser) parseStatementsUntilRBrace() []ast.Stmt {
	var stmts []ast.Stmt
	for p.cur.Kind != lexer.RBrace {
		if p.isDeclarationSpecifier(p.cur) {
			stmts = append(stmts, p.parseDeclarationStatement())
		} else {
			stmts = append(stmts, p.parseStatement())
		}
	}
	return stmts
}

// parseDeclarationStatement parses a declaration appearing inside a
// function body. Function declarators are rejected here: function
// declarations are permitted only at file scope.
func (p *Parser) parseDeclarationStatement() ast.Stmt {
	span := p.cur.Span
	b, typedefType := p.parseDeclarationSpecifiers()
	baseType := resolveBaseType(b, typedefType, span)

	var inits []*ast.InitDeclarator
	for {
		d := p.parseDeclarator()
		if d.isFunc {
			p.fail("a function declarator is only permitted at file scope")
		}
		declType := d.wrap(baseType)
		obj := p.arena.NewObject(d.name, declType)
		obj.Storage = b.Flags()
		if b.Has(types.TypeDef) {
			p.scope.DeclareTypedef(obj)
		} else {
			p.scope.Declare(obj)
		}
		inits = append(inits, p.finishInitDeclarator(obj))

		if p.cur.Kind != lexer.Comma {
			break
		}
		p.advance()
	}
	p.expect(lexer.Semicolon, "expected ';' after declaration")

	return &ast.DeclStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Decls: inits}
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	span := p.cur.Span
	if p.cur.Kind == lexer.Semicolon {
		p.advance()
		return &ast.ExprStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}}
	}
	expr := p.parseExpression()
	p.expect(lexer.Semicolon, "expected ';' after expression")
	return &ast.ExprStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Expr: expr}
}

func (p *Parser) parseSelectionStatement() ast.Stmt {
	span := p.cur.Span
	switch p.cur.Kind {
	case lexer.If:
		p.advance()
		p.expect(lexer.LParen, "expected '(' after if")
		cond := p.parseExpression()
		p.expect(lexer.RParen, "expected ')' after if condition")
		then := p.parseStatement()

		var elseStmt ast.Stmt
		if p.cur.Kind == lexer.Else {
			p.advance()
			elseStmt = p.parseStatement()
		}
		return &ast.IfStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Cond: cond, Then: then, Else: elseStmt}

	case lexer.Switch:
		p.advance()
		p.expect(lexer.LParen, "expected '(' after switch")
		cond := p.parseExpression()
		p.expect(lexer.RParen, "expected ')' after switch condition")
		body := p.parseStatement()
		return &ast.SwitchStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Cond: cond, Body: body}

	default:
		p.fail("expected 'if' or 'switch'")
		return nil
	}
}

func (p *Parser) parseIterationStatement() ast.Stmt {
	span := p.cur.Span
	switch p.cur.Kind {
	case lexer.While:
		p.advance()
		p.expect(lexer.LParen, "expected '(' after while")
		cond := p.parseExpression()
		p.expect(lexer.RParen, "expected ')' after while condition")
		body := p.parseStatement()
		return &ast.WhileStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Cond: cond, Body: body}

	case lexer.Do:
		p.advance()
		body := p.parseStatement()
		p.expect(lexer.While, "expected 'while' after do-statement")
		p.expect(lexer.LParen, "expected '(' after while")
		cond := p.parseExpression()
		p.expect(lexer.RParen, "expected ')' after do-while condition")
		p.expect(lexer.Semicolon, "expected ';' after do-while")
		return &ast.DoWhileStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Body: body, Cond: cond}

	case lexer.For:
		p.advance()
		p.expect(lexer.LParen, "expected '(' after for")
		p.pushScope()
		scope := p.scope

		var init ast.Stmt
		if p.cur.Kind == lexer.Semicolon {
			p.advance()
		} else if p.isDeclarationSpecifier(p.cur) {
			init = p.parseDeclarationStatement()
		} else {
			exprSpan := p.cur.Span
			expr := p.parseExpression()
			p.expect(lexer.Semicolon, "expected ';' after for-loop initializer")
			init = &ast.ExprStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(exprSpan)}, Expr: expr}
		}

		var cond ast.Expr
		if p.cur.Kind != lexer.Semicolon {
			cond = p.parseExpression()
		}
		p.expect(lexer.Semicolon, "expected ';' after for-loop condition")

		var post ast.Expr
		if p.cur.Kind != lexer.RParen {
			post = p.parseExpression()
		}
		p.expect(lexer.RParen, "expected ')' after for-loop clauses")

		body := p.parseStatement()
		p.popScope()
		return &ast.ForStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Scope: scope, Init: init, Cond: cond, Post: post, Body: body}

	default:
		p.fail("expected 'while', 'do', or 'for'")
		return nil
	}
}

func (p *Parser) parseJumpStatement() ast.Stmt {
	span := p.cur.Span
	switch p.cur.Kind {
	case lexer.Goto:
		p.advance()
		label := p.expect(lexer.Identifier, "expected identifier after goto").Lexeme
		p.expect(lexer.Semicolon, "expected ';' after goto")
		return &ast.GotoStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Label: label}

	case lexer.Continue:
		p.advance()
		p.expect(lexer.Semicolon, "expected ';' after continue")
		return &ast.ContinueStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}}

	case lexer.Break:
		p.advance()
		p.expect(lexer.Semicolon, "expected ';' after break")
		return &ast.BreakStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}}

	case lexer.Return:
		p.advance()
		var expr ast.Expr
		if p.cur.Kind != lexer.Semicolon {
			expr = p.parseExpression()
		}
		p.expect(lexer.Semicolon, "expected ';' after return")
		return &ast.ReturnStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Expr: expr, Scope: p.scope}

	default:
		p.fail("expected a jump statement")
		return nil
	}
}
