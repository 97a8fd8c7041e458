package replay

import (
	"fmt"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
)

// Numeric codes follow the LLVM bitcode record encodings.

var castCodes = map[int64]ir.CastOperator{
	0: ir.CastTrunc, 1: ir.CastZExt, 2: ir.CastSExt,
	3: ir.CastFPToUI, 4: ir.CastFPToSI, 5: ir.CastUIToFP, 6: ir.CastSIToFP,
	7: ir.CastFPTrunc, 8: ir.CastFPExt,
	9: ir.CastPtrToInt, 10: ir.CastIntToPtr,
	11: ir.CastBitCast, 12: ir.CastAddrSpaceCast,
}

var binaryCodes = map[int64]ir.BinaryOperator{
	0: ir.OpAdd, 1: ir.OpSub, 2: ir.OpMul, 3: ir.OpUDiv, 4: ir.OpSDiv,
	5: ir.OpURem, 6: ir.OpSRem, 7: ir.OpShl, 8: ir.OpLShr, 9: ir.OpAShr,
	10: ir.OpAnd, 11: ir.OpOr, 12: ir.OpXor,
}

// floatBinaryCodes replace the integer opcode when the operand type is
// floating point.
var floatBinaryCodes = map[int64]ir.BinaryOperator{
	0: ir.OpFAdd, 1: ir.OpFSub, 2: ir.OpFMul, 4: ir.OpFDiv, 6: ir.OpFRem,
}

var floatPredicates = map[int64]enum.FPred{
	0: enum.FPredFalse, 1: enum.FPredOEQ, 2: enum.FPredOGT, 3: enum.FPredOGE,
	4: enum.FPredOLT, 5: enum.FPredOLE, 6: enum.FPredONE, 7: enum.FPredORD,
	8: enum.FPredUNO, 9: enum.FPredUEQ, 10: enum.FPredUGT, 11: enum.FPredUGE,
	12: enum.FPredULT, 13: enum.FPredULE, 14: enum.FPredUNE, 15: enum.FPredTrue,
}

var intPredicates = map[int64]enum.IPred{
	32: enum.IPredEQ, 33: enum.IPredNE,
	34: enum.IPredUGT, 35: enum.IPredUGE, 36: enum.IPredULT, 37: enum.IPredULE,
	38: enum.IPredSGT, 39: enum.IPredSGE, 40: enum.IPredSLT, 41: enum.IPredSLE,
}

var linkageCodes = map[int64]enum.Linkage{
	0: enum.LinkageNone, 2: enum.LinkageAppending, 3: enum.LinkageInternal,
	7: enum.LinkageExternWeak, 8: enum.LinkageCommon, 9: enum.LinkagePrivate,
	12: enum.LinkageAvailableExternally, 16: enum.LinkageWeak, 17: enum.LinkageWeakODR,
	18: enum.LinkageLinkOnce, 19: enum.LinkageLinkOnceODR,
}

var visibilityCodes = map[int64]enum.Visibility{
	0: enum.VisibilityNone, 1: enum.VisibilityHidden, 2: enum.VisibilityProtected,
}

var orderingCodes = map[int64]enum.AtomicOrdering{
	0: enum.AtomicOrderingNone, 1: enum.AtomicOrderingUnordered, 2: enum.AtomicOrderingMonotonic,
	3: enum.AtomicOrderingAcquire, 4: enum.AtomicOrderingRelease, 5: enum.AtomicOrderingAcquireRelease,
	6: enum.AtomicOrderingSequentiallyConsistent,
}

var rmwCodes = map[int64]enum.AtomicOp{
	0: enum.AtomicOpXChg, 1: enum.AtomicOpAdd, 2: enum.AtomicOpSub, 3: enum.AtomicOpAnd,
	4: enum.AtomicOpNAnd, 5: enum.AtomicOpOr, 6: enum.AtomicOpXor, 7: enum.AtomicOpMax,
	8: enum.AtomicOpMin, 9: enum.AtomicOpUMax, 10: enum.AtomicOpUMin,
	11: enum.AtomicOpFAdd, 12: enum.AtomicOpFSub,
}

var callingConvCodes = map[int64]enum.CallingConv{
	0: enum.CallingConvC, 8: enum.CallingConvFast, 9: enum.CallingConvCold,
}

func lookup[K comparable, V any](table map[K]V, what string, code K) (V, error) {
	v, ok := table[code]
	if !ok {
		return v, fmt.Errorf("unknown %s code %v", what, code)
	}
	return v, nil
}

func isFloat(t types.Type) bool {
	switch t := t.(type) {
	case *types.FloatType:
		return true
	case *types.VectorType:
		return isFloat(t.ElemType)
	}
	return false
}

func binaryOperator(code int64, t types.Type) (ir.BinaryOperator, error) {
	if isFloat(t) {
		return lookup(floatBinaryCodes, "floating point binary operator", code)
	}
	return lookup(binaryCodes, "binary operator", code)
}

// operationFlags decodes the optional flags word: bit 0 is exact for
// divisions and shifts right, nuw otherwise; bit 1 is nsw.
func operationFlags(op ir.BinaryOperator, word int64) ir.OperationFlags {
	var f ir.OperationFlags
	switch op {
	case ir.OpUDiv, ir.OpSDiv, ir.OpLShr, ir.OpAShr:
		if word&1 != 0 {
			f |= ir.FlagExact
		}
	default:
		if word&1 != 0 {
			f |= ir.FlagNoUnsignedWrap
		}
		if word&2 != 0 {
			f |= ir.FlagNoSignedWrap
		}
	}
	return f
}

func predicate(code int64) (ir.Predicate, error) {
	if p, ok := floatPredicates[code]; ok {
		return ir.FloatPredicate(p), nil
	}
	if p, ok := intPredicates[code]; ok {
		return ir.IntPredicate(p), nil
	}
	return ir.Predicate{}, fmt.Errorf("unknown predicate code %d", code)
}

// buildTypes materializes the type table in order.
func buildTypes(recs []TypeRecord) ([]types.Type, error) {
	out := make([]types.Type, len(recs))
	ref := func(i, at int) (types.Type, error) {
		if i < 0 || i >= at {
			return nil, fmt.Errorf("type %d: reference to type %d is not an earlier entry", at, i)
		}
		return out[i], nil
	}
	for i, r := range recs {
		var t types.Type
		switch r.Kind {
		case "void":
			t = types.Void
		case "label":
			t = types.Label
		case "metadata":
			t = types.Metadata
		case "int":
			t = types.NewInt(r.Width)
		case "half":
			t = types.Half
		case "float":
			t = types.Float
		case "double":
			t = types.Double
		case "x86_fp80":
			t = types.X86_FP80
		case "fp128":
			t = types.FP128
		case "pointer", "array", "vector":
			elem, err := ref(r.Elem, i)
			if err != nil {
				return nil, err
			}
			switch r.Kind {
			case "pointer":
				t = types.NewPointer(elem)
			case "array":
				t = types.NewArray(r.Len, elem)
			default:
				t = types.NewVector(r.Len, elem)
			}
		case "struct":
			fields := make([]types.Type, len(r.Fields))
			for j, f := range r.Fields {
				ft, err := ref(f, i)
				if err != nil {
					return nil, err
				}
				fields[j] = ft
			}
			st := types.NewStruct(fields...)
			st.Packed = r.Packed
			if r.Name != "" {
				st.SetName(r.Name)
			}
			t = st
		case "func":
			ret, err := ref(r.Ret, i)
			if err != nil {
				return nil, err
			}
			params := make([]types.Type, len(r.Params))
			for j, p := range r.Params {
				pt, err := ref(p, i)
				if err != nil {
					return nil, err
				}
				params[j] = pt
			}
			ft := types.NewFunc(ret, params...)
			ft.Variadic = r.Variadic
			t = ft
		default:
			return nil, fmt.Errorf("type %d: unknown kind %q", i, r.Kind)
		}
		out[i] = t
	}
	return out, nil
}
