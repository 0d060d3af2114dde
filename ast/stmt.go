package ast

import "ccfront/types"

// Stmt is implemented by every statement node, including declarations
// (a declaration is a statement when it appears inside a function body).
type Stmt interface {
	ASTNode
}

// StmtBase is embedded by every statement node.
type StmtBase struct {
	Base
}

// ExprStmt is an expression evaluated for its side effects, terminated by
// ';'. A bare ';' is an ExprStmt with a nil Expr.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// DeclStmt is a declaration appearing inside a function body: one or more
// Objects introduced by a single declaration-specifier list, each
// optionally initialized.
type DeclStmt struct {
	StmtBase
	Decls []*InitDeclarator
}

// InitDeclarator pairs a declared Object with its optional initializer.
type InitDeclarator struct {
	Object *Object
	Init   Expr
}

// CompoundStmt is a `{ ... }` block: an ordered list of statements and the
// Scope opened for it.
type CompoundStmt struct {
	StmtBase
	Scope *Scope
	Stmts []Stmt
}

// LabeledStmt is `label: stmt`, `case expr: stmt`, or `default: stmt`.
type LabeledStmt struct {
	StmtBase
	Label     string
	Case      Expr // non-nil for a case label
	IsDefault bool
	Stmt      Stmt
}

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	StmtBase
	Cond       Expr
	Then, Else Stmt
}

// SwitchStmt is `switch (cond) body`; body is typically a CompoundStmt
// containing LabeledStmt case/default clauses.
type SwitchStmt struct {
	StmtBase
	Cond Expr
	Body Stmt
}

// ForStmt is `for (init; cond; post) body`. Init and Post may each be nil;
// Cond may be nil (meaning "true").
type ForStmt struct {
	StmtBase
	Scope      *Scope
	Init       Stmt
	Cond, Post Expr
	Body       Stmt
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	StmtBase
	Cond Expr
	Body Stmt
}

// DoWhileStmt is `do body while (cond);`.
type DoWhileStmt struct {
	StmtBase
	Body Stmt
	Cond Expr
}

// ReturnStmt is `return [expr];`. Scope is the innermost scope enclosing the
// statement; its ReturnType, inherited from the function's scope, is
// consulted by the IR emitter to recover the return type this expression
// must convert to.
type ReturnStmt struct {
	StmtBase
	Expr  Expr
	Scope *Scope
}

// BreakStmt is `break;`.
type BreakStmt struct{ StmtBase }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ StmtBase }

// GotoStmt is `goto label;`.
type GotoStmt struct {
	StmtBase
	Label string
}

// VoidStmt is a no-op statement node. The parser never builds one (an empty
// ';' becomes an ExprStmt with a nil Expr); the IR emitter treats it as a
// no-op.
type VoidStmt struct{ StmtBase }

// FunctionReturnType is a small helper the IR emitter uses on a
// ReturnStmt to avoid repeating the Scope walk inline.
func (r *ReturnStmt) FunctionReturnType() *types.Type {
	if r.Scope == nil {
		return nil
	}
	return r.Scope.ReturnType
}
