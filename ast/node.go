// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the IR emitter: one Go type per node kind, each carrying only
// the fields that kind needs, plus the Object/Scope/ExternalDeclaration
// symbol-table types the tree is built alongside.
//
// Object, Scope, and ExternalDeclaration live in this package rather than a
// separate one: an Object's Body is a list of statement nodes, declaration
// nodes hold an *Object, and return-statement nodes hold a back-reference
// to the enclosing *Scope, so splitting them would create an import cycle.
package ast

import "ccfront/report"

// ASTNode is the uniform interface every tree node implements.
type ASTNode interface {
	Span() *report.TextSpan
}

// Base is embedded by every concrete node to supply Span().
type Base struct {
	span *report.TextSpan
}

// NewBaseOn returns a Base covering span.
func NewBaseOn(span *report.TextSpan) Base {
	return Base{span: span}
}

// NewBaseOver returns a Base covering both spans.
func NewBaseOver(start, end *report.TextSpan) Base {
	return Base{span: report.NewSpanOver(start, end)}
}

func (b Base) Span() *report.TextSpan {
	return b.span
}
