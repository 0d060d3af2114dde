// Package irgen lowers a parsed translation unit to a single LLVM IR
// module, per the front-end's IR-emitter component.
package irgen

import (
	"fmt"

	"ccfront/ast"
	"ccfront/report"
	"ccfront/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	llvmtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Emitter walks one translation unit's external-declaration list and
// lowers it into an *ir.Module. One Emitter is used per translation unit,
// matching the front-end's single-module-per-file granularity — there is
// no cross-translation-unit linking in scope.
type Emitter struct {
	mod *ir.Module

	enclosingFunc *ir.Func
	block         *ir.Block

	// locals maps a declared Object to the stack slot backing it. Keyed by
	// Object pointer rather than by name: the parser has already resolved
	// every VarRef to the Object it denotes, so there is no shadowing to
	// re-derive at emission time the way a name-keyed scope stack would
	// need to.
	locals map[*ast.Object]value.Value

	// globals maps a file-scope Object (a global variable or a function)
	// to its module-level value.
	globals map[*ast.Object]value.Value

	// labels maps a function's goto-target names to their (possibly not
	// yet positioned) block, pre-populated by a scan over the function
	// body before codegen so a goto can jump forward to a label not yet
	// reached.
	labels map[string]*ir.Block

	// breakTargets/continueTargets are stacks of the block a break/continue
	// inside the innermost enclosing loop or switch should jump to.
	breakTargets    []*ir.Block
	continueTargets []*ir.Block

	strCounter int
}

// NewEmitter returns an Emitter that will populate a fresh LLVM module.
func NewEmitter() *Emitter {
	return &Emitter{
		mod:     ir.NewModule(),
		locals:  make(map[*ast.Object]value.Value),
		globals: make(map[*ast.Object]value.Value),
	}
}

// Emit lowers every external declaration in tu, in source order, and
// returns the completed module. Declaration order in the source is
// preserved exactly; there is no dependency-graph reordering.
func (e *Emitter) Emit(tu *ast.TranslationUnit) *ir.Module {
	for _, decl := range tu.Declarations() {
		e.emitExternalDeclaration(decl)
	}
	return e.mod
}

func (e *Emitter) emitExternalDeclaration(decl *ast.ExternalDeclaration) {
	declStmt, ok := decl.Node.(*ast.DeclStmt)
	if !ok {
		report.ReportICE("external declaration node is not a DeclStmt: %T", decl.Node)
		return
	}

	switch decl.Kind {
	case ast.FunctionDefinition:
		e.emitFunction(declStmt.Decls[0].Object)
	case ast.PlainDeclaration:
		for _, init := range declStmt.Decls {
			e.emitFileScopeDecl(init)
		}
	}
}

// emitFileScopeDecl emits either a function prototype (no body: declared,
// not defined) or a global variable, depending on the Object's type.
func (e *Emitter) emitFileScopeDecl(init *ast.InitDeclarator) {
	obj := init.Object
	if obj.Type.Kind == types.KindFunction {
		e.declareFunc(obj)
		return
	}

	if obj.Storage&(types.TypeDef|types.Extern) != 0 {
		// A bare "extern int x;" or a typedef name introduces no storage
		// of its own; nothing to emit.
		return
	}

	glob := e.mod.NewGlobal(obj.Identifier, convType(obj.Type))
	glob.Init = constant.NewZeroInitializer(convType(obj.Type))
	if obj.Storage&types.Static != 0 {
		glob.Linkage = enum.LinkageInternal
	} else {
		glob.Linkage = enum.LinkageExternal
	}
	e.globals[obj] = glob

	if init.Init != nil {
		if lit, ok := constantInitializer(init.Init, obj.Type); ok {
			glob.Init = lit
		} else {
			report.ReportICE("global initializer for %q is not a compile-time constant", obj.Identifier)
		}
	}
}

// constantInitializer evaluates the handful of expression forms legal as a
// file-scope initializer without a running function to emit instructions
// into: numeric literals coerced to dst's IR type. Anything else (including
// most expressions involving other globals) is an open item per the
// source's stubbed initializer-list support. Literals carry no type of
// their own at parse time (§4.4), so the destination's declared type, not
// the literal, decides the IR constant's width.
func constantInitializer(expr ast.Expr, dst *types.Type) (constant.Constant, bool) {
	dstIR := convType(dst)
	switch v := expr.(type) {
	case *ast.IntLit:
		if it, ok := dstIR.(*llvmtypes.IntType); ok {
			return constant.NewInt(it, int64(v.Value)), true
		}
		if ft, ok := dstIR.(*llvmtypes.FloatType); ok {
			return constant.NewFloat(ft, float64(v.Value)), true
		}
	case *ast.FloatLit:
		if ft, ok := dstIR.(*llvmtypes.FloatType); ok {
			return constant.NewFloat(ft, v.Value), true
		}
		if it, ok := dstIR.(*llvmtypes.IntType); ok {
			return constant.NewInt(it, int64(v.Value)), true
		}
	}
	return nil, false
}

// declareFunc emits a function header only (no entry block), used both for
// a plain prototype declaration and by emitFunction before it lowers the
// body. The second result is true when obj already had a header emitted.
func (e *Emitter) declareFunc(obj *ast.Object) (*ir.Func, bool) {
	if f, ok := e.globals[obj]; ok {
		return f.(*ir.Func), true
	}

	fn := obj.Type.Func
	var irParams []*ir.Param
	for p := fn.Params; p != nil; p = p.Next {
		// Parameters are left unnamed so they print as positional
		// registers (%0, %1, ...).
		irParams = append(irParams, ir.NewParam("", convType(p.Type)))
	}

	llFunc := e.mod.NewFunc(obj.Identifier, convType(fn.Return), irParams...)
	// Only a static function gets an explicit linkage keyword; any other
	// function keeps LLVM's default (external) linkage and prints as a bare
	// "define"/"declare".
	if obj.Storage&types.Static != 0 {
		llFunc.Linkage = enum.LinkageInternal
	}
	e.globals[obj] = llFunc
	return llFunc, false
}

// emitFunction emits a full function definition: header, entry block, and
// the lowered body.
func (e *Emitter) emitFunction(obj *ast.Object) {
	llFunc, alreadyDeclared := e.declareFunc(obj)
	if alreadyDeclared {
		report.ReportICE("function %q defined after already being declared with a body", obj.Identifier)
	}

	body, ok := obj.Body.(*ast.CompoundStmt)
	if !ok {
		report.ReportICE("function %q has no compound-statement body", obj.Identifier)
		return
	}

	entry := llFunc.NewBlock("entry")
	e.enclosingFunc = llFunc
	e.block = entry
	e.locals = make(map[*ast.Object]value.Value)
	e.breakTargets = nil
	e.continueTargets = nil

	// Bind each named parameter to a fresh stack slot so it is mutable
	// like any other local, per §4.6's uniform stack-slot model for locals.
	fn := obj.Type.Func
	i := 0
	for p := fn.Params; p != nil; p = p.Next {
		if p.Name == "" {
			report.ReportICE("unnamed parameter in definition of function %q", obj.Identifier)
			continue
		}
		paramObj, found := body.Scope.Lookup(p.Name)
		if !found {
			report.ReportICE("parameter %q not present in function scope", p.Name)
			continue
		}
		slot := entry.NewAlloca(convType(p.Type))
		entry.NewStore(llFunc.Params[i], slot)
		e.locals[paramObj] = slot
		i++
	}

	e.labels = collectLabels(llFunc, body)

	e.emitStmt(body)

	// A function whose statement list falls off the end without an
	// explicit return gets an implicit `ret void`/zero return, matching
	// how a missing return at the end of a C function is undefined but
	// must still produce well-formed IR.
	if e.block.Term == nil {
		if fn.Return.Kind == types.KindVoid {
			e.block.NewRet(nil)
		} else {
			e.block.NewRet(constant.NewZeroInitializer(convType(fn.Return)))
		}
	}
}

// collectLabels pre-scans a function body for every plain label
// (identifier-colon, not case/default) so a goto can branch forward to a
// label the emitter has not lexically reached yet.
func collectLabels(fn *ir.Func, body ast.Stmt) map[string]*ir.Block {
	labels := make(map[string]*ir.Block)
	var walk func(ast.Stmt)
	walk = func(s ast.Stmt) {
		switch v := s.(type) {
		case *ast.LabeledStmt:
			if v.Label != "" {
				labels[v.Label] = fn.NewBlock(fmt.Sprintf("label.%s", v.Label))
			}
			walk(v.Stmt)
		case *ast.CompoundStmt:
			for _, inner := range v.Stmts {
				walk(inner)
			}
		case *ast.IfStmt:
			walk(v.Then)
			if v.Else != nil {
				walk(v.Else)
			}
		case *ast.SwitchStmt:
			walk(v.Body)
		case *ast.WhileStmt:
			walk(v.Body)
		case *ast.DoWhileStmt:
			walk(v.Body)
		case *ast.ForStmt:
			walk(v.Body)
		}
	}
	walk(body)
	return labels
}
