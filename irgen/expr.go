package irgen

import (
	"fmt"

	"ccfront/ast"
	"ccfront/lexer"
	"ccfront/report"
	"ccfront/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	llvmtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// intLitKind maps an integer literal's suffix to the fundamental type its
// value is held as. IntLit carries no type of its own at parse time (the
// suffix alone determines it, per §4.4), so the emitter derives it here.
func intLitKind(suffix lexer.IntSuffixKind) types.FundamentalType {
	switch suffix {
	case lexer.SuffixU:
		return types.KindUInt
	case lexer.SuffixL:
		return types.KindLong
	case lexer.SuffixUL:
		return types.KindULong
	case lexer.SuffixLL:
		return types.KindLongLong
	case lexer.SuffixULL:
		return types.KindULongLong
	default:
		return types.KindInt
	}
}

// emitExpr lowers expr to the value it evaluates to in the current block.
func (e *Emitter) emitExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.IntLit:
		kind := intLitKind(v.Suffix)
		return constant.NewInt(convType(types.FundamentalTypeFor(kind)).(*llvmtypes.IntType), int64(v.Value))

	case *ast.FloatLit:
		return constant.NewFloat(llvmtypes.Double, v.Value)

	case *ast.VarRef:
		return e.emitVarRef(v)

	case *ast.BinaryExpr:
		return e.emitBinaryExpr(v)

	case *ast.UnaryExpr:
		return e.emitUnaryExpr(v)

	case *ast.AssignExpr:
		return e.emitAssignExpr(v)

	case *ast.ConditionalExpr:
		return e.emitConditionalExpr(v)

	case *ast.CastExpr:
		return e.emitCastExpr(v)

	case *ast.CallExpr:
		return e.emitCallExpr(v)

	case *ast.IndexExpr:
		return e.block.NewLoad(convType(e.exprType(v)), e.emitLValue(v))

	case *ast.SizeofExpr:
		return e.emitSizeofExpr(v)
	}

	report.ReportICE("expression node %T has no IR lowering", expr)
	return nil
}

// exprType derives expr's front-end type without reading Expr.Type(): the
// parser never calls SetType and constructs VarRef/IntLit/UnaryExpr/
// IndexExpr with a nil type (only CastExpr is built with its type already
// known; a type-name SizeofExpr records its operand's type in OperandType
// instead). This mirrors how emitExpr's IntLit
// case and emitVarRef already derive a type at use site — from the
// declared Object for a name, or from the pointee of a pointer operand —
// instead of reading a type the parser never set.
func (e *Emitter) exprType(expr ast.Expr) *types.Type {
	switch v := expr.(type) {
	case *ast.VarRef:
		if v.Object != nil {
			return v.Object.Type
		}
	case *ast.IndexExpr:
		if base := e.exprType(v.Array); base != nil && base.Kind == types.KindPointer {
			return base.Pointee
		}
	case *ast.UnaryExpr:
		if v.Op == lexer.Star {
			if base := e.exprType(v.Operand); base != nil && base.Kind == types.KindPointer {
				return base.Pointee
			}
		}
	}
	return expr.Type()
}

func (e *Emitter) emitVarRef(v *ast.VarRef) value.Value {
	if v.IsStringLiteral {
		global := e.mod.NewGlobalDef(fmt.Sprintf("__str.%d", e.strCounter), constant.NewCharArrayFromString(v.Name+"\x00"))
		e.strCounter++
		return e.block.NewBitCast(global, llvmtypes.I8Ptr)
	}

	if v.Object == nil {
		report.ReportICE("identifier %q did not resolve to a declared object", v.Name)
		return nil
	}

	slot := e.lookupSlot(v.Object)
	if v.Object.Type.Kind == types.KindFunction {
		return slot
	}
	return e.block.NewLoad(convType(v.Object.Type), slot)
}

// lookupSlot returns the stack slot or global backing obj, checking local
// bindings before falling back to file scope.
func (e *Emitter) lookupSlot(obj *ast.Object) value.Value {
	if slot, ok := e.locals[obj]; ok {
		return slot
	}
	if slot, ok := e.globals[obj]; ok {
		return slot
	}
	report.ReportICE("object %q has no backing storage at use site", obj.Identifier)
	return nil
}

// emitLValue returns the address an assignable expression denotes, without
// loading through it.
func (e *Emitter) emitLValue(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.VarRef:
		if v.Object == nil {
			report.ReportICE("identifier %q did not resolve to a declared object", v.Name)
			return nil
		}
		return e.lookupSlot(v.Object)

	case *ast.UnaryExpr:
		if v.Op == lexer.Star {
			return e.emitExpr(v.Operand)
		}

	case *ast.IndexExpr:
		base := e.emitExpr(v.Array)
		idx := e.emitExpr(v.Index)
		elemType := convType(e.exprType(v))
		return e.block.NewGetElementPtr(elemType, base, idx)
	}

	report.ReportICE("expression %T is not an lvalue", expr)
	return nil
}

func (e *Emitter) emitBoolExpr(expr ast.Expr) value.Value {
	val := e.emitExpr(expr)
	if it, ok := val.Type().(*llvmtypes.IntType); ok && it.BitSize == 1 {
		return val
	}
	if ft, ok := val.Type().(*llvmtypes.FloatType); ok {
		return e.block.NewFCmp(enum.FPredONE, val, constant.NewFloat(ft, 0))
	}
	zero := constant.NewInt(val.Type().(*llvmtypes.IntType), 0)
	return e.block.NewICmp(enum.IPredNE, val, zero)
}

// coerce converts val to the IR type dst denotes, when the two fundamental
// kinds differ, following the conversions §4.6 establishes for casts.
func (e *Emitter) coerce(val value.Value, dst *types.Type) value.Value {
	dstIR := convType(dst)
	if val.Type().Equal(dstIR) {
		return val
	}
	return e.convertValue(val, dstIR, dst.Kind)
}

func (e *Emitter) convertValue(val value.Value, dstIR llvmtypes.Type, dstKind types.FundamentalType) value.Value {
	switch src := val.Type().(type) {
	case *llvmtypes.IntType:
		switch dst := dstIR.(type) {
		case *llvmtypes.IntType:
			if dst.BitSize > src.BitSize {
				if isUnsigned(dstKind) {
					return e.block.NewZExt(val, dst)
				}
				return e.block.NewSExt(val, dst)
			}
			if dst.BitSize < src.BitSize {
				return e.block.NewTrunc(val, dst)
			}
			return val
		case *llvmtypes.FloatType:
			if isUnsigned(dstKind) {
				return e.block.NewUIToFP(val, dst)
			}
			return e.block.NewSIToFP(val, dst)
		}
	case *llvmtypes.FloatType:
		switch dst := dstIR.(type) {
		case *llvmtypes.IntType:
			if isUnsigned(dstKind) {
				return e.block.NewFPToUI(val, dst)
			}
			return e.block.NewFPToSI(val, dst)
		case *llvmtypes.FloatType:
			if floatRank(dst) > floatRank(src) {
				return e.block.NewFPExt(val, dst)
			}
			return e.block.NewFPTrunc(val, dst)
		}
	case *llvmtypes.PointerType:
		return e.block.NewBitCast(val, dstIR)
	}
	report.ReportICE("no lowering for conversion of %v to %v", val.Type(), dstIR)
	return val
}

// floatRank orders the three floating-point IR types this front-end ever
// produces by width, since FloatType's own Kind enumeration is not
// guaranteed to sort by size.
func floatRank(t *llvmtypes.FloatType) int {
	switch t {
	case llvmtypes.Float:
		return 1
	case llvmtypes.Double:
		return 2
	case llvmtypes.FP128:
		return 3
	default:
		return 0
	}
}

func (e *Emitter) emitCastExpr(v *ast.CastExpr) value.Value {
	operand := e.emitExpr(v.Operand)
	return e.coerce(operand, v.Type())
}

func (e *Emitter) emitSizeofExpr(v *ast.SizeofExpr) value.Value {
	var t *types.Type
	if v.OperandType != nil {
		t = v.OperandType
	} else {
		t = v.Operand.Type()
		if t == nil {
			// The operand's own type was never resolved by the parser (no
			// semantic pass assigns one to arbitrary expressions, per
			// §4.4's open item); fall back to evaluating it purely for its
			// IR-type shape is not possible without that pass, so an
			// unannotated sizeof-expr of a non-literal is an open item.
			report.ReportICE("sizeof of an expression whose type was never resolved")
			return nil
		}
	}
	return constant.NewInt(llvmtypes.I32, typeSize(t))
}

func (e *Emitter) emitCallExpr(v *ast.CallExpr) value.Value {
	callee := e.emitExpr(v.Callee)
	args := make([]value.Value, 0, len(v.Args))
	for _, a := range v.Args {
		args = append(args, e.emitExpr(a))
	}
	return e.block.NewCall(callee, args...)
}

func (e *Emitter) emitConditionalExpr(v *ast.ConditionalExpr) value.Value {
	cond := e.emitBoolExpr(v.Cond)

	thenBlock := e.enclosingFunc.NewBlock("")
	elseBlock := e.enclosingFunc.NewBlock("")
	endBlock := e.enclosingFunc.NewBlock("")
	e.block.NewCondBr(cond, thenBlock, elseBlock)

	e.block = thenBlock
	thenVal := e.emitExpr(v.Then)
	thenExit := e.block
	thenExit.NewBr(endBlock)

	e.block = elseBlock
	elseVal := e.emitExpr(v.Else)
	elseExit := e.block
	elseExit.NewBr(endBlock)

	e.block = endBlock
	if thenVal == nil || elseVal == nil {
		return nil
	}
	return e.block.NewPhi(ir.NewIncoming(thenVal, thenExit), ir.NewIncoming(elseVal, elseExit))
}

// constantInt evaluates expr as a compile-time integer constant, used for
// switch-case labels. Only a bare integer literal is accepted; anything
// more elaborate (constant-folded arithmetic over literals) is an open
// item.
func constantInt(expr ast.Expr) (*constant.Int, bool) {
	lit, ok := expr.(*ast.IntLit)
	if !ok {
		return nil, false
	}
	kind := intLitKind(lit.Suffix)
	return constant.NewInt(convType(types.FundamentalTypeFor(kind)).(*llvmtypes.IntType), int64(lit.Value)), true
}

// emitBinaryExpr lowers every non-assignment binary operator. '&&' and '||'
// short-circuit via branching rather than lowering to a plain and/or on
// booleans, so the right operand is never evaluated when the left already
// decides the result.
func (e *Emitter) emitBinaryExpr(v *ast.BinaryExpr) value.Value {
	switch v.Op {
	case lexer.LogicalAnd:
		return e.emitShortCircuit(v, true)
	case lexer.LogicalOr:
		return e.emitShortCircuit(v, false)
	case lexer.Comma:
		e.emitExpr(v.LHS)
		return e.emitExpr(v.RHS)
	}

	lhs := e.emitExpr(v.LHS)
	rhs := e.emitExpr(v.RHS)
	rhs = e.matchArithmeticTypes(&lhs, rhs)

	if _, ok := lhs.Type().(*llvmtypes.FloatType); ok {
		if pred, ok := floatPredicate(v.Op); ok {
			return e.block.NewFCmp(pred, lhs, rhs)
		}
		switch v.Op {
		case lexer.Plus:
			return e.block.NewFAdd(lhs, rhs)
		case lexer.Minus:
			return e.block.NewFSub(lhs, rhs)
		case lexer.Star:
			return e.block.NewFMul(lhs, rhs)
		case lexer.Slash:
			return e.block.NewFDiv(lhs, rhs)
		}
		report.ReportICE("operator %v has no floating-point lowering", v.Op)
		return nil
	}

	lhsType := e.exprType(v.LHS)
	unsigned := lhsType != nil && isUnsigned(lhsType.Kind)
	if pred, ok := intPredicate(v.Op, unsigned); ok {
		return e.block.NewICmp(pred, lhs, rhs)
	}
	switch v.Op {
	case lexer.Plus:
		return e.block.NewAdd(lhs, rhs)
	case lexer.Minus:
		return e.block.NewSub(lhs, rhs)
	case lexer.Star:
		return e.block.NewMul(lhs, rhs)
	case lexer.Slash:
		if unsigned {
			return e.block.NewUDiv(lhs, rhs)
		}
		return e.block.NewSDiv(lhs, rhs)
	case lexer.Percent:
		if unsigned {
			return e.block.NewURem(lhs, rhs)
		}
		return e.block.NewSRem(lhs, rhs)
	case lexer.Ampersand:
		return e.block.NewAnd(lhs, rhs)
	case lexer.Pipe:
		return e.block.NewOr(lhs, rhs)
	case lexer.Caret:
		return e.block.NewXor(lhs, rhs)
	case lexer.ShiftLeft:
		return e.block.NewShl(lhs, rhs)
	case lexer.ShiftRight:
		if unsigned {
			return e.block.NewLShr(lhs, rhs)
		}
		return e.block.NewAShr(lhs, rhs)
	}

	report.ReportICE("operator %v has no IR lowering", v.Op)
	return nil
}

// matchArithmeticTypes widens the narrower of lhs/rhs to the other's IR type
// when they differ, approximating the usual arithmetic conversions without a
// full rank table: the wider type always wins. *lhs is updated in place so
// callers hold a single consistent pair afterward.
func (e *Emitter) matchArithmeticTypes(lhs *value.Value, rhs value.Value) value.Value {
	l, r := (*lhs).Type(), rhs.Type()
	if l.Equal(r) {
		return rhs
	}
	if lft, ok := l.(*llvmtypes.FloatType); ok {
		if _, ok := r.(*llvmtypes.IntType); ok {
			return e.block.NewSIToFP(rhs, lft)
		}
		if rft, ok := r.(*llvmtypes.FloatType); ok && floatRank(rft) > floatRank(lft) {
			*lhs = e.block.NewFPExt(*lhs, rft)
			return rhs
		}
		return e.block.NewFPExt(rhs, lft)
	}
	if rft, ok := r.(*llvmtypes.FloatType); ok {
		*lhs = e.block.NewSIToFP(*lhs, rft)
		return rhs
	}
	lit, lok := l.(*llvmtypes.IntType)
	rit, rok := r.(*llvmtypes.IntType)
	if lok && rok {
		if lit.BitSize < rit.BitSize {
			*lhs = e.block.NewSExt(*lhs, rit)
		} else {
			return e.block.NewSExt(rhs, lit)
		}
	}
	return rhs
}

func intPredicate(op lexer.Kind, unsigned bool) (enum.IPred, bool) {
	switch op {
	case lexer.Equals:
		return enum.IPredEQ, true
	case lexer.NotEquals:
		return enum.IPredNE, true
	case lexer.LessThan:
		if unsigned {
			return enum.IPredULT, true
		}
		return enum.IPredSLT, true
	case lexer.LessEqual:
		if unsigned {
			return enum.IPredULE, true
		}
		return enum.IPredSLE, true
	case lexer.GreaterThan:
		if unsigned {
			return enum.IPredUGT, true
		}
		return enum.IPredSGT, true
	case lexer.GreaterEqual:
		if unsigned {
			return enum.IPredUGE, true
		}
		return enum.IPredSGE, true
	}
	return 0, false
}

func floatPredicate(op lexer.Kind) (enum.FPred, bool) {
	switch op {
	case lexer.Equals:
		return enum.FPredOEQ, true
	case lexer.NotEquals:
		return enum.FPredONE, true
	case lexer.LessThan:
		return enum.FPredOLT, true
	case lexer.LessEqual:
		return enum.FPredOLE, true
	case lexer.GreaterThan:
		return enum.FPredOGT, true
	case lexer.GreaterEqual:
		return enum.FPredOGE, true
	}
	return 0, false
}

// emitShortCircuit lowers '&&' (isAnd) and '||' by branching rather than by
// evaluating both sides unconditionally: the right operand's side effects
// must not happen when the left operand already decides the result.
func (e *Emitter) emitShortCircuit(v *ast.BinaryExpr, isAnd bool) value.Value {
	lhs := e.emitBoolExpr(v.LHS)
	lhsBlock := e.block

	rhsBlock := e.enclosingFunc.NewBlock("")
	endBlock := e.enclosingFunc.NewBlock("")
	if isAnd {
		e.block.NewCondBr(lhs, rhsBlock, endBlock)
	} else {
		e.block.NewCondBr(lhs, endBlock, rhsBlock)
	}

	e.block = rhsBlock
	rhs := e.emitBoolExpr(v.RHS)
	rhsExit := e.block
	rhsExit.NewBr(endBlock)

	e.block = endBlock
	return e.block.NewPhi(ir.NewIncoming(lhs, lhsBlock), ir.NewIncoming(rhs, rhsExit))
}

// emitUnaryExpr lowers the prefix operators '-', '~', '!', '&', '*', and
// both prefix and postfix '++'/'--' (distinguished by Postfix).
func (e *Emitter) emitUnaryExpr(v *ast.UnaryExpr) value.Value {
	switch v.Op {
	case lexer.Ampersand:
		return e.emitLValue(v.Operand)

	case lexer.Star:
		ptr := e.emitExpr(v.Operand)
		elemType := convType(e.exprType(v))
		return e.block.NewLoad(elemType, ptr)

	case lexer.Minus:
		val := e.emitExpr(v.Operand)
		if _, ok := val.Type().(*llvmtypes.FloatType); ok {
			return e.block.NewFNeg(val)
		}
		return e.block.NewSub(constant.NewInt(val.Type().(*llvmtypes.IntType), 0), val)

	case lexer.Plus:
		return e.emitExpr(v.Operand)

	case lexer.Tilde:
		val := e.emitExpr(v.Operand)
		it := val.Type().(*llvmtypes.IntType)
		return e.block.NewXor(val, constant.NewInt(it, -1))

	case lexer.Bang:
		cond := e.emitBoolExpr(v.Operand)
		return e.block.NewXor(cond, constant.NewBool(true))

	case lexer.PlusPlus, lexer.MinusMinus:
		return e.emitIncDec(v)
	}

	report.ReportICE("unary operator %v has no IR lowering", v.Op)
	return nil
}

// emitIncDec lowers '++'/'--' in both prefix and postfix position: the
// operand must be an lvalue, since the updated value is stored back through
// it. A postfix operator yields the value read before the update; a prefix
// operator yields the value after it.
func (e *Emitter) emitIncDec(v *ast.UnaryExpr) value.Value {
	slot := e.emitLValue(v.Operand)
	elemType := convType(e.exprType(v.Operand))
	old := e.block.NewLoad(elemType, slot)

	var delta value.Value
	if it, ok := elemType.(*llvmtypes.IntType); ok {
		delta = constant.NewInt(it, 1)
	} else {
		delta = constant.NewFloat(elemType.(*llvmtypes.FloatType), 1)
	}

	var updated value.Value
	isInc := v.Op == lexer.PlusPlus
	if _, ok := elemType.(*llvmtypes.FloatType); ok {
		if isInc {
			updated = e.block.NewFAdd(old, delta)
		} else {
			updated = e.block.NewFSub(old, delta)
		}
	} else {
		if isInc {
			updated = e.block.NewAdd(old, delta)
		} else {
			updated = e.block.NewSub(old, delta)
		}
	}
	e.block.NewStore(updated, slot)

	if v.Postfix {
		return old
	}
	return updated
}

// emitAssignExpr lowers simple assignment and every compound-assignment
// operator by rewriting "a op= b" as "a = a op b" and reusing
// emitBinaryExpr's lowering for the op half.
func (e *Emitter) emitAssignExpr(v *ast.AssignExpr) value.Value {
	slot := e.emitLValue(v.LHS)
	lhsType := e.exprType(v.LHS)

	if v.Op == lexer.Assign {
		val := e.emitExpr(v.RHS)
		val = e.coerce(val, lhsType)
		e.block.NewStore(val, slot)
		return val
	}

	op, ok := compoundOpToBinaryOp(v.Op)
	if !ok {
		report.ReportICE("assignment operator %v has no IR lowering", v.Op)
		return nil
	}
	combined := e.emitBinaryExpr(&ast.BinaryExpr{Op: op, LHS: v.LHS, RHS: v.RHS})
	combined = e.coerce(combined, lhsType)
	e.block.NewStore(combined, slot)
	return combined
}

func compoundOpToBinaryOp(op lexer.Kind) (lexer.Kind, bool) {
	switch op {
	case lexer.PlusAssign:
		return lexer.Plus, true
	case lexer.MinusAssign:
		return lexer.Minus, true
	case lexer.StarAssign:
		return lexer.Star, true
	case lexer.SlashAssign:
		return lexer.Slash, true
	case lexer.PercentAssign:
		return lexer.Percent, true
	case lexer.AndAssign:
		return lexer.Ampersand, true
	case lexer.OrAssign:
		return lexer.Pipe, true
	case lexer.XorAssign:
		return lexer.Caret, true
	case lexer.ShiftLeftAssign:
		return lexer.ShiftLeft, true
	case lexer.ShiftRightAssign:
		return lexer.ShiftRight, true
	}
	return 0, false
}
