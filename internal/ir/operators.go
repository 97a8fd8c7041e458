package ir

import "github.com/llir/llvm/ir/enum"

// BinaryOperator is a decoded binary opcode.
type BinaryOperator uint8

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpUDiv
	OpSDiv
	OpURem
	OpSRem
	OpShl
	OpLShr
	OpAShr
	OpAnd
	OpOr
	OpXor
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFRem
)

var binaryOperatorNames = [...]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpUDiv: "udiv", OpSDiv: "sdiv",
	OpURem: "urem", OpSRem: "srem", OpShl: "shl", OpLShr: "lshr", OpAShr: "ashr",
	OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpFAdd: "fadd", OpFSub: "fsub", OpFMul: "fmul", OpFDiv: "fdiv", OpFRem: "frem",
}

func (op BinaryOperator) String() string {
	if int(op) < len(binaryOperatorNames) {
		return binaryOperatorNames[op]
	}
	return "binop?"
}

// IsFloatingPoint reports whether op works on floating point operands.
func (op BinaryOperator) IsFloatingPoint() bool { return op >= OpFAdd && op <= OpFRem }

// OperationFlags carries the wrap/exact flags of a binary operation.
type OperationFlags uint8

const (
	FlagNoUnsignedWrap OperationFlags = 1 << iota
	FlagNoSignedWrap
	FlagExact
)

func (f OperationFlags) String() string {
	s := ""
	if f&FlagNoUnsignedWrap != 0 {
		s += " nuw"
	}
	if f&FlagNoSignedWrap != 0 {
		s += " nsw"
	}
	if f&FlagExact != 0 {
		s += " exact"
	}
	return s
}

// UnaryOperator is a decoded unary opcode.
type UnaryOperator uint8

const (
	OpFNeg UnaryOperator = iota
)

func (op UnaryOperator) String() string {
	if op == OpFNeg {
		return "fneg"
	}
	return "unop?"
}

// CastOperator is a decoded conversion opcode.
type CastOperator uint8

const (
	CastTrunc CastOperator = iota
	CastZExt
	CastSExt
	CastFPToUI
	CastFPToSI
	CastUIToFP
	CastSIToFP
	CastFPTrunc
	CastFPExt
	CastPtrToInt
	CastIntToPtr
	CastBitCast
	CastAddrSpaceCast
)

var castOperatorNames = [...]string{
	CastTrunc: "trunc", CastZExt: "zext", CastSExt: "sext",
	CastFPToUI: "fptoui", CastFPToSI: "fptosi", CastUIToFP: "uitofp", CastSIToFP: "sitofp",
	CastFPTrunc: "fptrunc", CastFPExt: "fpext",
	CastPtrToInt: "ptrtoint", CastIntToPtr: "inttoptr",
	CastBitCast: "bitcast", CastAddrSpaceCast: "addrspacecast",
}

func (op CastOperator) String() string {
	if int(op) < len(castOperatorNames) {
		return castOperatorNames[op]
	}
	return "cast?"
}

// Predicate is the condition of an integer or floating point comparison.
type Predicate struct {
	Float bool
	Int   enum.IPred
	FP    enum.FPred
}

// IntPredicate builds an integer comparison predicate.
func IntPredicate(p enum.IPred) Predicate { return Predicate{Int: p} }

// FloatPredicate builds a floating point comparison predicate.
func FloatPredicate(p enum.FPred) Predicate { return Predicate{Float: true, FP: p} }

// Opcode returns "icmp" or "fcmp".
func (p Predicate) Opcode() string {
	if p.Float {
		return "fcmp"
	}
	return "icmp"
}

func (p Predicate) String() string {
	if p.Float {
		return p.FP.String()
	}
	return p.Int.String()
}
