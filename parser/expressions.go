package parser

import (
	"ccfront/ast"
	"ccfront/lexer"
)

// The expression grammar is a chain of precedence levels, each either the
// next higher-precedence rule or a left-recursive alternative built
// iteratively rather than recursively: each level parses one operand at
// its own level, then loops while the current token is one of its
// operators, folding a new binary node around whatever it has so far.

// parseExpression parses the comma operator: the lowest-precedence level.
func (p *Parser) parseExpression() ast.Expr {
	root := p.parseAssignmentExpression()
	for p.cur.Kind == lexer.Comma {
		span := p.cur.Span
		p.advance()
		rhs := p.parseAssignmentExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: lexer.Comma, LHS: root, RHS: rhs}
	}
	return root
}

func isAssignmentOperator(k lexer.Kind) bool {
	switch k {
	case lexer.Assign, lexer.StarAssign, lexer.SlashAssign, lexer.PercentAssign,
		lexer.PlusAssign, lexer.MinusAssign, lexer.ShiftLeftAssign, lexer.ShiftRightAssign,
		lexer.AndAssign, lexer.XorAssign, lexer.OrAssign:
		return true
	default:
		return false
	}
}

// parseAssignmentExpression parses a conditional-expression, then — if an
// assignment operator follows — reinterprets it as the assignment target
// and recurses for the right-hand side, right-associatively.
func (p *Parser) parseAssignmentExpression() ast.Expr {
	lhs := p.parseConditionalExpression()
	if !isAssignmentOperator(p.cur.Kind) {
		return lhs
	}
	op := p.cur.Kind
	span := p.cur.Span
	p.advance()
	rhs := p.parseAssignmentExpression()
	return &ast.AssignExpr{ExprBase: ast.NewExprBase(span, nil), Op: op, LHS: lhs, RHS: rhs}
}

// parseConditionalExpression parses the ternary `cond ? then : else`,
// right-associative in its else-branch.
func (p *Parser) parseConditionalExpression() ast.Expr {
	cond := p.parseLogicalOrExpression()
	if p.cur.Kind != lexer.QuestionMark {
		return cond
	}
	span := p.cur.Span
	p.advance()
	then := p.parseExpression()
	p.expect(lexer.Colon, "expected ':' in conditional expression")
	elseExpr := p.parseConditionalExpression()
	return &ast.ConditionalExpr{ExprBase: ast.NewExprBase(span, nil), Cond: cond, Then: then, Else: elseExpr}
}

func (p *Parser) parseLogicalOrExpression() ast.Expr {
	root := p.parseLogicalAndExpression()
	for p.cur.Kind == lexer.LogicalOr {
		span := p.cur.Span
		p.advance()
		rhs := p.parseLogicalAndExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: lexer.LogicalOr, LHS: root, RHS: rhs}
	}
	return root
}

func (p *Parser) parseLogicalAndExpression() ast.Expr {
	root := p.parseBitwiseOrExpression()
	for p.cur.Kind == lexer.LogicalAnd {
		span := p.cur.Span
		p.advance()
		rhs := p.parseBitwiseOrExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: lexer.LogicalAnd, LHS: root, RHS: rhs}
	}
	return root
}

func (p *Parser) parseBitwiseOrExpression() ast.Expr {
	root := p.parseBitwiseXorExpression()
	for p.cur.Kind == lexer.Pipe {
		span := p.cur.Span
		p.advance()
		rhs := p.parseBitwiseXorExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: lexer.Pipe, LHS: root, RHS: rhs}
	}
	return root
}

func (p *Parser) parseBitwiseXorExpression() ast.Expr {
	root := p.parseBitwiseAndExpression()
	for p.cur.Kind == lexer.Caret {
		span := p.cur.Span
		p.advance()
		rhs := p.parseBitwiseAndExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: lexer.Caret, LHS: root, RHS: rhs}
	}
	return root
}

func (p *Parser) parseBitwiseAndExpression() ast.Expr {
	root := p.parseEqualityExpression()
	for p.cur.Kind == lexer.Ampersand {
		span := p.cur.Span
		p.advance()
		rhs := p.parseEqualityExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: lexer.Ampersand, LHS: root, RHS: rhs}
	}
	return root
}

// parseEqualityExpression checks '==' and '!=', not the shift operators —
// a plain transcription of the grammar, rather than the token check the
// original parser actually has at this level.
func (p *Parser) parseEqualityExpression() ast.Expr {
	root := p.parseRelationalExpression()
	for p.cur.Kind == lexer.Equals || p.cur.Kind == lexer.NotEquals {
		op := p.cur.Kind
		span := p.cur.Span
		p.advance()
		rhs := p.parseRelationalExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: op, LHS: root, RHS: rhs}
	}
	return root
}

func (p *Parser) parseRelationalExpression() ast.Expr {
	root := p.parseShiftExpression()
	for {
		switch p.cur.Kind {
		case lexer.LessThan, lexer.LessEqual, lexer.GreaterThan, lexer.GreaterEqual:
			op := p.cur.Kind
			span := p.cur.Span
			p.advance()
			rhs := p.parseShiftExpression()
			root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: op, LHS: root, RHS: rhs}
		default:
			return root
		}
	}
}

func (p *Parser) parseShiftExpression() ast.Expr {
	root := p.parseAdditiveExpression()
	for p.cur.Kind == lexer.ShiftLeft || p.cur.Kind == lexer.ShiftRight {
		op := p.cur.Kind
		span := p.cur.Span
		p.advance()
		rhs := p.parseAdditiveExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: op, LHS: root, RHS: rhs}
	}
	return root
}

func (p *Parser) parseAdditiveExpression() ast.Expr {
	root := p.parseMultiplicativeExpression()
	for p.cur.Kind == lexer.Plus || p.cur.Kind == lexer.Minus {
		op := p.cur.Kind
		span := p.cur.Span
		p.advance()
		rhs := p.parseMultiplicativeExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: op, LHS: root, RHS: rhs}
	}
	return root
}

func (p *Parser) parseMultiplicativeExpression() ast.Expr {
	root := p.parseCastExpression()
	for p.cur.Kind == lexer.Star || p.cur.Kind == lexer.Slash || p.cur.Kind == lexer.Percent {
		op := p.cur.Kind
		span := p.cur.Span
		p.advance()
		rhs := p.parseCastExpression()
		root = &ast.BinaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: op, LHS: root, RHS: rhs}
	}
	return root
}

// parseCastExpression distinguishes a parenthesized type-name cast from a
// parenthesized expression by checking whether the token after '(' starts a
// declaration-specifier list; if not, the '(' belongs to a primary
// expression and is left for parseUnaryExpression/parsePrimaryExpression.
func (p *Parser) parseCastExpression() ast.Expr {
	if p.cur.Kind == lexer.LParen && p.isDeclarationSpecifier(p.lex.PeekSecond()) {
		span := p.cur.Span
		p.advance()
		b, typedefType := p.parseDeclarationSpecifiers()
		targetType := resolveBaseType(b, typedefType, span)
		wrap := p.parsePointerChain()
		targetType = wrap(targetType)
		p.expect(lexer.RParen, "expected ')' to close cast")
		operand := p.parseCastExpression()
		return &ast.CastExpr{ExprBase: ast.NewExprBase(span, targetType), Operand: operand}
	}
	return p.parseUnaryExpression()
}

func isUnaryOperator(k lexer.Kind) bool {
	switch k {
	case lexer.Ampersand, lexer.Star, lexer.Plus, lexer.Minus, lexer.Tilde,
		lexer.Bang, lexer.PlusPlus, lexer.MinusMinus:
		return true
	default:
		return false
	}
}

// parseUnaryExpression parses a prefix unary operator applied to a
// cast-expression, sizeof applied to either an expression or a
// parenthesized type-name, or (absent any of those) a postfix-expression.
func (p *Parser) parseUnaryExpression() ast.Expr {
	span := p.cur.Span

	if p.cur.Kind == lexer.SizeOf {
		p.advance()
		if p.cur.Kind == lexer.LParen && p.isDeclarationSpecifier(p.lex.PeekSecond()) {
			p.advance()
			b, typedefType := p.parseDeclarationSpecifiers()
			targetType := resolveBaseType(b, typedefType, span)
			wrap := p.parsePointerChain()
			targetType = wrap(targetType)
			p.expect(lexer.RParen, "expected ')' to close sizeof type-name")
			return &ast.SizeofExpr{ExprBase: ast.NewExprBase(span, nil), OperandType: targetType}
		}
		operand := p.parseUnaryExpression()
		return &ast.SizeofExpr{ExprBase: ast.NewExprBase(span, nil), Operand: operand}
	}

	if isUnaryOperator(p.cur.Kind) {
		op := p.cur.Kind
		p.advance()
		operand := p.parseCastExpression()
		return &ast.UnaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: op, Operand: operand}
	}

	return p.parsePostfixExpression()
}

// parsePostfixExpression parses a primary expression followed by any
// number of subscript, call, or post-increment/decrement suffixes. Member
// access ('.' and '->') is not handled: struct and union member resolution
// is not implemented.
func (p *Parser) parsePostfixExpression() ast.Expr {
	root := p.parsePrimaryExpression()

	for {
		switch p.cur.Kind {
		case lexer.LBracket:
			span := p.cur.Span
			p.advance()
			index := p.parseExpression()
			p.expect(lexer.RBracket, "expected ']' after array subscript")
			root = &ast.IndexExpr{ExprBase: ast.NewExprBase(span, nil), Array: root, Index: index}

		case lexer.LParen:
			span := p.cur.Span
			p.advance()
			var args []ast.Expr
			if p.cur.Kind != lexer.RParen {
				for {
					args = append(args, p.parseAssignmentExpression())
					if p.cur.Kind != lexer.Comma {
						break
					}
					p.advance()
				}
			}
			p.expect(lexer.RParen, "expected ')' after call arguments")
			root = &ast.CallExpr{ExprBase: ast.NewExprBase(span, nil), Callee: root, Args: args}

		case lexer.PlusPlus, lexer.MinusMinus:
			op := p.cur.Kind
			span := p.cur.Span
			p.advance()
			root = &ast.UnaryExpr{ExprBase: ast.NewExprBase(span, nil), Op: op, Operand: root, Postfix: true}

		default:
			return root
		}
	}
}

// parsePrimaryExpression parses an identifier, a numeric or string
// literal, or a parenthesized expression.
func (p *Parser) parsePrimaryExpression() ast.Expr {
	span := p.cur.Span

	switch p.cur.Kind {
	case lexer.Identifier:
		name := p.cur.Lexeme
		p.advance()
		obj, _ := p.scope.Lookup(name)
		return &ast.VarRef{ExprBase: ast.NewExprBase(span, nil), Name: name, Object: obj}

	case lexer.NumberLit:
		return p.parseNumberLiteral()

	case lexer.StringLit:
		lexeme := p.cur.Lexeme
		p.advance()
		return &ast.VarRef{ExprBase: ast.NewExprBase(span, nil), Name: lexeme, IsStringLiteral: true}

	case lexer.LParen:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RParen, "expected ')' to close parenthesized expression")
		return expr

	default:
		p.fail("expected an expression")
		return nil
	}
}

// parseNumberLiteral classifies the current NumberLit token's lexeme by its
// base prefix and converts it, honoring an integer suffix when present; a
// literal containing '.' is parsed as a float regardless of suffix. The
// lexer leaves the suffix letters appended to the lexeme (lexer.go's
// scanNumber/scanIntSuffix), so they are trimmed off by the suffix's known
// length before the digits are converted — guessing at trailing letters
// instead would also eat a hex literal's own 'f'/'F' digits.
func (p *Parser) parseNumberLiteral() ast.Expr {
	tok := p.cur
	span := tok.Span
	p.advance()

	digits := tok.Lexeme[:len(tok.Lexeme)-intSuffixLen(tok.IntSuffix)]

	isFloat := false
	for _, c := range digits {
		if c == '.' {
			isFloat = true
			break
		}
	}
	if isFloat {
		v := parseFloatLexeme(digits)
		return &ast.FloatLit{ExprBase: ast.NewExprBase(span, nil), Value: v}
	}

	base, digits := baseAndDigits(digits)
	v := parseUintLexeme(digits, base)
	return &ast.IntLit{ExprBase: ast.NewExprBase(span, nil), Value: v, Suffix: tok.IntSuffix}
}

// intSuffixLen returns the number of trailing characters the lexer
// appended to a numeric lexeme to record kind.
func intSuffixLen(kind lexer.IntSuffixKind) int {
	switch kind {
	case lexer.SuffixU, lexer.SuffixL:
		return 1
	case lexer.SuffixUL, lexer.SuffixLL:
		return 2
	case lexer.SuffixULL:
		return 3
	default:
		return 0
	}
}

func baseAndDigits(lexeme string) (int, string) {
	if len(lexeme) >= 2 && lexeme[0] == '0' {
		switch lexeme[1] {
		case 'x', 'X':
			return 16, lexeme[2:]
		case 'b', 'B':
			return 2, lexeme[2:]
		default:
			if len(lexeme) > 1 {
				return 8, lexeme[1:]
			}
		}
	}
	return 10, lexeme
}

func parseUintLexeme(digits string, base int) uint64 {
	var v uint64
	for _, c := range digits {
		v = v*uint64(base) + uint64(hexDigitValue(c))
	}
	return v
}

func hexDigitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}

func parseFloatLexeme(lexeme string) float64 {
	var intPart, fracPart float64
	var fracScale float64 = 1
	seenDot := false
	for _, c := range lexeme {
		if c == '.' {
			seenDot = true
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		d := float64(c - '0')
		if !seenDot {
			intPart = intPart*10 + d
		} else {
			fracScale *= 10
			fracPart = fracPart*10 + d
		}
	}
	return intPart + fracPart/fracScale
}
