package ir

import (
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/metadata"
)

// Instruction is the closed set of instructions a block may hold.
type Instruction interface {
	Symbol
	// Operands lists the value operands in a fixed order.
	Operands() []Symbol
	// Location is the attached debug location, metadata.Void if none.
	Location() metadata.Reference
	SetLocation(ref metadata.Reference)
	isInstruction()
}

// ValueInstruction is an instruction that produces a named value.
type ValueInstruction interface {
	Instruction
	Name() string
	SetName(name string)
	HasName() bool
}

// Terminator is an instruction that ends a block.
type Terminator interface {
	Instruction
	Successors() []*InstructionBlock
}

type instrBase struct {
	loc metadata.Reference
}

func (b *instrBase) Location() metadata.Reference {
	if b.loc == nil {
		return metadata.Void
	}
	return b.loc
}

func (b *instrBase) SetLocation(ref metadata.Reference) { b.loc = ref }

func (*instrBase) isInstruction() {}

// voidInstr is the base of instructions without a result.
type voidInstr struct {
	instrBase
}

func (*voidInstr) Type() types.Type { return types.Void }

// valueInstr is the base of instructions with a named result.
type valueInstr struct {
	instrBase
	valueName
	Typ types.Type
}

func (v *valueInstr) Type() types.Type { return v.Typ }

// AllocateInstruction is alloca.
type AllocateInstruction struct {
	valueInstr
	ElemType types.Type
	Count    Symbol
	Align    uint32
}

// LoadInstruction is load; it is atomic when Ordering is not AtomicOrderingNone.
type LoadInstruction struct {
	valueInstr
	Source       Symbol
	Align        uint32
	Volatile     bool
	Ordering     enum.AtomicOrdering
	SingleThread bool
}

// StoreInstruction is store; it is atomic when Ordering is not AtomicOrderingNone.
type StoreInstruction struct {
	voidInstr
	Destination  Symbol
	Source       Symbol
	Align        uint32
	Volatile     bool
	Ordering     enum.AtomicOrdering
	SingleThread bool
}

// BinaryOperationInstruction is an arithmetic or bitwise operation.
type BinaryOperationInstruction struct {
	valueInstr
	Operator BinaryOperator
	Flags    OperationFlags
	LHS, RHS Symbol
}

// UnaryOperationInstruction is fneg.
type UnaryOperationInstruction struct {
	valueInstr
	Operator UnaryOperator
	Operand  Symbol
}

// CompareInstruction is icmp or fcmp.
type CompareInstruction struct {
	valueInstr
	Predicate Predicate
	LHS, RHS  Symbol
}

// CastInstruction is a conversion.
type CastInstruction struct {
	valueInstr
	Operator CastOperator
	Value    Symbol
}

// BranchInstruction is an unconditional br.
type BranchInstruction struct {
	voidInstr
	Successor *InstructionBlock
}

// ConditionalBranchInstruction is br i1.
type ConditionalBranchInstruction struct {
	voidInstr
	Condition      Symbol
	TrueSuccessor  *InstructionBlock
	FalseSuccessor *InstructionBlock
}

// IndirectBranchInstruction is indirectbr.
type IndirectBranchInstruction struct {
	voidInstr
	Address      Symbol
	Destinations []*InstructionBlock
}

// SwitchCase is one arm of a switch.
type SwitchCase struct {
	Value Symbol
	Block *InstructionBlock
}

// SwitchInstruction is switch with constant case values.
type SwitchInstruction struct {
	voidInstr
	Condition Symbol
	Default   *InstructionBlock
	Cases     []SwitchCase
}

// SwitchOldCase is one arm of the legacy switch record with literal values.
type SwitchOldCase struct {
	Value int64
	Block *InstructionBlock
}

// SwitchOldInstruction is the legacy switch encoding.
type SwitchOldInstruction struct {
	voidInstr
	Condition Symbol
	Default   *InstructionBlock
	Cases     []SwitchOldCase
}

// CallInstruction is a call whose result is used as a value.
type CallInstruction struct {
	valueInstr
	Callee      Symbol
	Arguments   []Symbol
	CallingConv enum.CallingConv
}

// VoidCallInstruction is a call to a function returning void.
type VoidCallInstruction struct {
	voidInstr
	Callee      Symbol
	Arguments   []Symbol
	CallingConv enum.CallingConv
}

// ExtractElementInstruction is extractelement.
type ExtractElementInstruction struct {
	valueInstr
	Vector Symbol
	Index  Symbol
}

// InsertElementInstruction is insertelement.
type InsertElementInstruction struct {
	valueInstr
	Vector Symbol
	Value  Symbol
	Index  Symbol
}

// ExtractValueInstruction is extractvalue.
type ExtractValueInstruction struct {
	valueInstr
	Aggregate Symbol
	Indices   []uint64
}

// InsertValueInstruction is insertvalue.
type InsertValueInstruction struct {
	valueInstr
	Aggregate Symbol
	Value     Symbol
	Indices   []uint64
}

// GetElementPointerInstruction is getelementptr.
type GetElementPointerInstruction struct {
	valueInstr
	Base     Symbol
	Indices  []Symbol
	InBounds bool
}

// PhiIncoming is one incoming edge of a phi.
type PhiIncoming struct {
	Value Symbol
	Block *InstructionBlock
}

// PhiInstruction is phi.
type PhiInstruction struct {
	valueInstr
	Incoming []PhiIncoming
}

// SelectInstruction is select.
type SelectInstruction struct {
	valueInstr
	Condition  Symbol
	TrueValue  Symbol
	FalseValue Symbol
}

// ShuffleVectorInstruction is shufflevector.
type ShuffleVectorInstruction struct {
	valueInstr
	Vector1 Symbol
	Vector2 Symbol
	Mask    Symbol
}

// ReturnInstruction is ret; Value is nil for ret void.
type ReturnInstruction struct {
	voidInstr
	Value Symbol
}

// UnreachableInstruction is unreachable.
type UnreachableInstruction struct {
	voidInstr
}

// FenceInstruction is fence.
type FenceInstruction struct {
	voidInstr
	Ordering     enum.AtomicOrdering
	SingleThread bool
}

// CompareExchangeInstruction is cmpxchg. Its type is { T, i1 }.
type CompareExchangeInstruction struct {
	valueInstr
	Address         Symbol
	Comparison      Symbol
	NewValue        Symbol
	SuccessOrdering enum.AtomicOrdering
	FailureOrdering enum.AtomicOrdering
	Volatile        bool
	Weak            bool
	SingleThread    bool
}

// ReadModifyWriteInstruction is atomicrmw.
type ReadModifyWriteInstruction struct {
	valueInstr
	Operation    enum.AtomicOp
	Address      Symbol
	Value        Symbol
	Ordering     enum.AtomicOrdering
	Volatile     bool
	SingleThread bool
}
