package irgen

import (
	"ccfront/report"
	"ccfront/types"

	llvmtypes "github.com/llir/llvm/ir/types"
)

// convType maps a front-end Type to its LLVM IR counterpart per the
// bit-exact table: sign is carried by the operation that consumes a value,
// never by the IR type itself.
func convType(t *types.Type) llvmtypes.Type {
	switch t.Kind {
	case types.KindVoid:
		return llvmtypes.Void
	case types.KindChar, types.KindSChar, types.KindUChar:
		return llvmtypes.I8
	case types.KindShort, types.KindUShort:
		return llvmtypes.I16
	case types.KindInt, types.KindUInt, types.KindLong, types.KindULong:
		return llvmtypes.I32
	case types.KindLongLong, types.KindULongLong:
		return llvmtypes.I64
	case types.KindFloat:
		return llvmtypes.Float
	case types.KindDouble:
		return llvmtypes.Double
	case types.KindLongDouble:
		return llvmtypes.FP128
	case types.KindBool:
		return llvmtypes.I1
	case types.KindPointer:
		return llvmtypes.NewPointer(convType(t.Pointee))
	case types.KindEnumeratedValue:
		return llvmtypes.I32
	default:
		report.ReportICE("type kind %v has no IR lowering (struct/union/enum/function-pointer lowering is unimplemented)", t.Kind)
		return nil
	}
}

// isUnsigned reports whether kind denotes an unsigned integer type, the one
// piece of sign information the IR type itself does not carry and which
// every arithmetic/comparison/cast lowering must consult separately.
func isUnsigned(kind types.FundamentalType) bool {
	switch kind {
	case types.KindUChar, types.KindUShort, types.KindUInt, types.KindULong, types.KindULongLong, types.KindBool:
		return true
	default:
		return false
	}
}

// typeSize returns the byte size of t's fundamental kind, used for sizeof;
// pointer arithmetic is not scaled by it. Pointers are sized for a 64-bit
// target, matching the target triple the ambient config manifest defaults
// to.
func typeSize(t *types.Type) int64 {
	switch t.Kind {
	case types.KindVoid:
		return 0
	case types.KindChar, types.KindSChar, types.KindUChar, types.KindBool:
		return 1
	case types.KindShort, types.KindUShort:
		return 2
	case types.KindInt, types.KindUInt, types.KindLong, types.KindULong, types.KindFloat:
		return 4
	case types.KindLongLong, types.KindULongLong, types.KindDouble:
		return 8
	case types.KindLongDouble:
		return 16
	case types.KindPointer:
		return 8
	default:
		report.ReportICE("sizeof has no lowering for type kind %v", t.Kind)
		return 0
	}
}
