package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"ccfront/report"
)

// Lexer is a cursor over a source buffer: current position, the position at
// the start of the token in progress, and the current line/column (both
// tracked for the cursor and for the start of the in-progress token). The
// source buffer is borrowed, not owned. A Lexer's lifetime is a single
// translation unit.
type Lexer struct {
	absPath string
	src     *bufio.Reader
	buf     strings.Builder

	line, col           int
	startLine, startCol int

	current   *Token
	lookahead *Token
	sawEOF    bool
}

// New returns a Lexer reading from src, tagging any diagnostic with
// absPath. The lexer starts in the "not yet started" state; call Advance to
// produce the first token.
func New(absPath string, src io.Reader) *Lexer {
	return &Lexer{
		absPath: absPath,
		src:     bufio.NewReader(src),
		current: &Token{Kind: NotStarted},
	}
}

// PeekCurrent returns the cached current token without advancing.
func (l *Lexer) PeekCurrent() *Token {
	return l.current
}

// Advance consumes whitespace and comments, scans the next token, caches it
// as current, and returns it. Once EOF has been produced, subsequent calls
// idempotently return EOF.
func (l *Lexer) Advance() *Token {
	if l.lookahead != nil {
		l.current = l.lookahead
		l.lookahead = nil
		if l.current.Kind == EOF {
			l.sawEOF = true
		}
		return l.current
	}

	if l.sawEOF {
		return l.current
	}

	l.current = l.scanNext()
	if l.current.Kind == EOF {
		l.sawEOF = true
	}
	return l.current
}

// PeekSecond returns the token that would follow the current one, without
// consuming it: it scans one token ahead and caches it so the next Advance
// call returns it directly instead of re-scanning. Used by the parser to
// disambiguate a labeled statement ("identifier ':'") from an ordinary
// expression statement starting with an identifier.
func (l *Lexer) PeekSecond() *Token {
	if l.lookahead == nil {
		if l.sawEOF {
			return l.current
		}
		l.lookahead = l.scanNext()
	}
	return l.lookahead
}

// scanNext consumes whitespace and comments, then scans and returns one
// token. It does not touch l.current or l.lookahead; callers decide where
// the result is cached.
func (l *Lexer) scanNext() *Token {
	for {
		c, ok := l.peek()
		if !ok {
			return &Token{Kind: EOF, Span: l.mark()}
		}

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.eat()
		case c == '/' && l.peekAt(1) == '/':
			l.skipLineComment()
		case c == '/' && l.peekAt(1) == '*':
			l.skipBlockComment()
		default:
			return l.scanToken()
		}
	}
}

func (l *Lexer) scanToken() *Token {
	c, _ := l.peek()

	switch {
	case c == '"':
		return l.scanString()
	case isDigit(c):
		return l.scanNumber()
	case c == '.' && isDigit(l.peekAt(1)):
		return l.scanNumber()
	case isIdentStart(c):
		return l.scanIdentOrKeyword()
	default:
		return l.scanOperator()
	}
}

// -----------------------------------------------------------------------------

func (l *Lexer) scanString() *Token {
	start := l.startMark()
	l.eat() // opening quote

	for {
		c, ok := l.peek()
		if !ok {
			panic(report.Raise(l.spanFrom(start), "unterminated string literal"))
		}
		if c == '\n' {
			panic(report.Raise(l.spanFrom(start), "string literal may not contain a raw newline"))
		}
		if c == '"' {
			l.eat()
			break
		}
		if c == '\\' {
			l.eat()
			if _, ok := l.peek(); ok {
				l.eat()
			}
			continue
		}
		l.eat()
	}

	lexeme := l.takeBuf()
	return &Token{Kind: StringLit, Lexeme: lexeme[1 : len(lexeme)-1], Span: l.spanFrom(start)}
}

// scanNumber scans a numeric literal: base detection (0x/0b/0/decimal), a
// single optional '.', and an integer suffix. Exponent handling and
// float-suffix handling are not implemented; the lexer accepts the digit
// run and leaves anything else to terminate the literal.
func (l *Lexer) scanNumber() *Token {
	start := l.startMark()

	base := 10
	if c, _ := l.peek(); c == '0' {
		l.eat()
		switch n, _ := l.peek(); n {
		case 'x', 'X':
			l.eat()
			base = 16
		case 'b', 'B':
			l.eat()
			base = 2
		default:
			if isOctalDigit(n) {
				base = 8
			}
		}
	}

	dotCount := 0
	for {
		c, ok := l.peek()
		if !ok {
			break
		}

		if c == '.' {
			dotCount++
			if dotCount > 1 {
				panic(report.Raise(l.spanFrom(start), "numeric literal contains more than one '.'"))
			}
			l.eat()
			continue
		}

		if !digitValidForBase(c, base) {
			break
		}
		l.eat()
	}

	suffix := l.scanIntSuffix(start)

	lexeme := l.takeBuf()
	return &Token{Kind: NumberLit, Lexeme: lexeme, Span: l.spanFrom(start), IntSuffix: suffix}
}

func (l *Lexer) scanIntSuffix(start *report.TextSpan) IntSuffixKind {
	eatAnyOf := func(opts ...rune) (rune, bool) {
		c, ok := l.peek()
		if !ok {
			return 0, false
		}
		for _, o := range opts {
			if c == o {
				l.eat()
				return c, true
			}
		}
		return 0, false
	}

	if _, ok := eatAnyOf('u', 'U'); ok {
		if _, ok := eatAnyOf('l', 'L'); ok {
			if c2, _ := l.peek(); (c2 == 'l' || c2 == 'L') {
				l.eat()
				return SuffixULL
			}
			return SuffixUL
		}
		return SuffixU
	}

	if _, ok := eatAnyOf('l', 'L'); ok {
		if c2, _ := l.peek(); c2 == 'l' || c2 == 'L' {
			l.eat()
			if _, ok := eatAnyOf('u', 'U'); ok {
				return SuffixULL
			}
			return SuffixLL
		}
		if _, ok := eatAnyOf('u', 'U'); ok {
			return SuffixUL
		}
		return SuffixL
	}

	return SuffixNone
}

func (l *Lexer) scanIdentOrKeyword() *Token {
	start := l.startMark()
	l.eat()

	for {
		c, ok := l.peek()
		if !ok || !(isIdentStart(c) || isDigit(c)) {
			break
		}
		l.eat()
	}

	lexeme := l.takeBuf()
	if kind, ok := keywords[lexeme]; ok {
		return &Token{Kind: kind, Lexeme: lexeme, Span: l.spanFrom(start)}
	}
	return &Token{Kind: Identifier, Lexeme: lexeme, Span: l.spanFrom(start)}
}

// scanOperator disambiguates every multi-character operator by maximal
// munch: at each step it only extends the match when a longer operator
// starting with the text consumed so far actually exists.
func (l *Lexer) scanOperator() *Token {
	start := l.startMark()
	c, ok := l.eat()
	if !ok {
		panic(report.Raise(l.spanFrom(start), "unexpected end of input"))
	}

	kind, ok := singleCharOps[c]
	if !ok {
		panic(report.Raise(l.spanFrom(start), "unexpected character %q", c))
	}

	switch c {
	case '=':
		kind = l.extend('=', Equals, kind)
	case '!':
		kind = l.extend('=', NotEquals, kind)
	case '<':
		if n, _ := l.peek(); n == '<' {
			l.eat()
			kind = l.extend('=', ShiftLeftAssign, ShiftLeft)
		} else {
			kind = l.extend('=', LessEqual, kind)
		}
	case '>':
		if n, _ := l.peek(); n == '>' {
			l.eat()
			kind = l.extend('=', ShiftRightAssign, ShiftRight)
		} else {
			kind = l.extend('=', GreaterEqual, kind)
		}
	case '+':
		if n, _ := l.peek(); n == '+' {
			l.eat()
			kind = PlusPlus
		} else {
			kind = l.extend('=', PlusAssign, kind)
		}
	case '-':
		if n, _ := l.peek(); n == '-' {
			l.eat()
			kind = MinusMinus
		} else if n == '>' {
			l.eat()
			kind = Arrow
		} else {
			kind = l.extend('=', MinusAssign, kind)
		}
	case '*':
		kind = l.extend('=', StarAssign, kind)
	case '/':
		kind = l.extend('=', SlashAssign, kind)
	case '%':
		kind = l.extend('=', PercentAssign, kind)
	case '&':
		if n, _ := l.peek(); n == '&' {
			l.eat()
			kind = LogicalAnd
		} else {
			kind = l.extend('=', AndAssign, kind)
		}
	case '|':
		if n, _ := l.peek(); n == '|' {
			l.eat()
			kind = LogicalOr
		} else {
			kind = l.extend('=', OrAssign, kind)
		}
	case '^':
		kind = l.extend('=', XorAssign, kind)
	case '.':
		if n, _ := l.peek(); n == '.' {
			if l.peekAt(1) == '.' {
				l.eat()
				l.eat()
				kind = Ellipsis
			}
		}
	}

	lexeme := l.takeBuf()
	return &Token{Kind: kind, Lexeme: lexeme, Span: l.spanFrom(start)}
}

// extend consumes next if it equals want, returning extended; otherwise
// returns fallback without consuming.
func (l *Lexer) extend(want rune, extended, fallback Kind) Kind {
	if n, _ := l.peek(); n == want {
		l.eat()
		return extended
	}
	return fallback
}

var singleCharOps = map[rune]Kind{
	',': Comma, '.': Dot, '!': Bang, '(': LParen, ')': RParen,
	'[': LBracket, ']': RBracket, '{': LBrace, '}': RBrace,
	'*': Star, ';': Semicolon, '+': Plus, '-': Minus, '/': Slash,
	'>': GreaterThan, '<': LessThan, '=': Assign, '?': QuestionMark,
	':': Colon, '%': Percent, '^': Caret, '&': Ampersand, '|': Pipe,
	'~': Tilde,
}

// -----------------------------------------------------------------------------

func (l *Lexer) skipLineComment() {
	for {
		c, ok := l.peekRaw()
		if !ok || c == '\n' {
			return
		}
		l.advanceRaw()
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.mark()
	l.advanceRaw() // '/'
	l.advanceRaw() // '*'

	for {
		c, ok := l.peekRaw()
		if !ok {
			panic(report.Raise(start, "unterminated block comment"))
		}
		if c == '*' {
			l.advanceRaw()
			if n, ok := l.peekRaw(); ok && n == '/' {
				l.advanceRaw()
				return
			}
			continue
		}
		l.advanceRaw()
	}
}

// -----------------------------------------------------------------------------
// Low-level cursor operations. "Raw" variants bypass the token buffer, used
// for whitespace/comment skipping where no token is being accumulated.

func (l *Lexer) peekRaw() (rune, bool) {
	c, _, err := l.src.ReadRune()
	if err != nil {
		return 0, false
	}
	l.src.UnreadRune()
	return c, true
}

func (l *Lexer) advanceRaw() {
	c, _, err := l.src.ReadRune()
	if err != nil {
		return
	}
	l.updatePos(c)
}

func (l *Lexer) peek() (rune, bool) {
	return l.peekRaw()
}

// peekAt peeks n runes ahead (0 = next rune) without consuming. Only used
// for small constant lookaheads (comment/operator disambiguation).
func (l *Lexer) peekAt(n int) rune {
	bs, err := l.src.Peek(utf8MaxPeek(n + 1))
	if err != nil && len(bs) == 0 {
		return 0
	}
	runes := []rune(string(bs))
	if n >= len(runes) {
		return 0
	}
	return runes[n]
}

func utf8MaxPeek(nRunes int) int {
	return nRunes * 4
}

func (l *Lexer) eat() (rune, bool) {
	c, _, err := l.src.ReadRune()
	if err != nil {
		return 0, false
	}
	l.updatePos(c)
	l.buf.WriteRune(c)
	return c, true
}

// updatePos advances line/col bookkeeping. A newline resets the column and
// increments the line; every other character, including a tab, advances
// the column by one: a token's column is the 0-based coordinate of its
// first character in the source buffer, not a tab-stop-expanded screen
// column (§8).
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	default:
		l.col++
	}
}

func (l *Lexer) startMark() *report.TextSpan {
	l.buf.Reset()
	l.startLine, l.startCol = l.line, l.col
	return &report.TextSpan{StartLine: l.line, StartCol: l.col}
}

func (l *Lexer) mark() *report.TextSpan {
	return &report.TextSpan{StartLine: l.line, StartCol: l.col, EndLine: l.line, EndCol: l.col}
}

func (l *Lexer) spanFrom(start *report.TextSpan) *report.TextSpan {
	// l.col is one past the last consumed character; spans are inclusive.
	return &report.TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   l.line,
		EndCol:    l.col - 1,
	}
}

func (l *Lexer) takeBuf() string {
	s := l.buf.String()
	l.buf.Reset()
	return s
}

// -----------------------------------------------------------------------------

func isDigit(c rune) bool      { return c >= '0' && c <= '9' }
func isOctalDigit(c rune) bool { return c >= '0' && c <= '7' }

func digitValidForBase(c rune, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return isOctalDigit(c)
	case 16:
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return isDigit(c)
	}
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
