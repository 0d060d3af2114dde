// Package report handles diagnostics for the front-end: positioned error and
// warning messages, internal-compiler-error reporting, and the panic/recover
// idiom the lexer and parser use to abort on the first error.
package report

// TextSpan is a range of source text. Spans are inclusive on both ends: the
// starting position is the first character of the span and the ending
// position is the last. Lines and columns are zero-indexed.
type TextSpan struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// NewSpanOver returns a span that covers both given spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}
