package ir

import (
	"fmt"

	"github.com/llir/llvm/ir/types"
)

// ModuleVisitor receives the top-level entities of a module.
type ModuleVisitor interface {
	VisitType(t types.Type)
	VisitGlobal(g GlobalValueSymbol)
	VisitFunctionDefinition(f *FunctionDefinition)
	VisitFunctionDeclaration(f *FunctionDeclaration)
}

// Walk visits types, globals, definitions and declarations of m in that order.
func Walk(m *Module, v ModuleVisitor) {
	if m == nil {
		return
	}
	for _, t := range m.Types {
		v.VisitType(t)
	}
	for _, g := range m.Globals {
		v.VisitGlobal(g)
	}
	for _, f := range m.Definitions {
		v.VisitFunctionDefinition(f)
	}
	for _, f := range m.Declarations {
		v.VisitFunctionDeclaration(f)
	}
}

// FunctionVisitor receives the blocks of a function.
type FunctionVisitor interface {
	VisitBlock(b *InstructionBlock)
}

// WalkFunction visits the blocks of f in index order.
func WalkFunction(f *FunctionDefinition, v FunctionVisitor) {
	if f == nil {
		return
	}
	for _, b := range f.Blocks {
		v.VisitBlock(b)
	}
}

// InstructionVisitor has one method per instruction variant.
type InstructionVisitor interface {
	VisitAllocate(i *AllocateInstruction)
	VisitLoad(i *LoadInstruction)
	VisitStore(i *StoreInstruction)
	VisitBinaryOperation(i *BinaryOperationInstruction)
	VisitUnaryOperation(i *UnaryOperationInstruction)
	VisitCompare(i *CompareInstruction)
	VisitCast(i *CastInstruction)
	VisitBranch(i *BranchInstruction)
	VisitConditionalBranch(i *ConditionalBranchInstruction)
	VisitIndirectBranch(i *IndirectBranchInstruction)
	VisitSwitch(i *SwitchInstruction)
	VisitSwitchOld(i *SwitchOldInstruction)
	VisitCall(i *CallInstruction)
	VisitVoidCall(i *VoidCallInstruction)
	VisitExtractElement(i *ExtractElementInstruction)
	VisitInsertElement(i *InsertElementInstruction)
	VisitExtractValue(i *ExtractValueInstruction)
	VisitInsertValue(i *InsertValueInstruction)
	VisitGetElementPointer(i *GetElementPointerInstruction)
	VisitPhi(i *PhiInstruction)
	VisitSelect(i *SelectInstruction)
	VisitShuffleVector(i *ShuffleVectorInstruction)
	VisitReturn(i *ReturnInstruction)
	VisitUnreachable(i *UnreachableInstruction)
	VisitFence(i *FenceInstruction)
	VisitCompareExchange(i *CompareExchangeInstruction)
	VisitReadModifyWrite(i *ReadModifyWriteInstruction)
}

// WalkBlock dispatches every instruction of b to v in order.
func WalkBlock(b *InstructionBlock, v InstructionVisitor) {
	if b == nil {
		return
	}
	for _, inst := range b.Instructions {
		VisitInstruction(inst, v)
	}
}

// VisitInstruction dispatches inst to the matching method of v.
func VisitInstruction(inst Instruction, v InstructionVisitor) {
	switch i := inst.(type) {
	case *AllocateInstruction:
		v.VisitAllocate(i)
	case *LoadInstruction:
		v.VisitLoad(i)
	case *StoreInstruction:
		v.VisitStore(i)
	case *BinaryOperationInstruction:
		v.VisitBinaryOperation(i)
	case *UnaryOperationInstruction:
		v.VisitUnaryOperation(i)
	case *CompareInstruction:
		v.VisitCompare(i)
	case *CastInstruction:
		v.VisitCast(i)
	case *BranchInstruction:
		v.VisitBranch(i)
	case *ConditionalBranchInstruction:
		v.VisitConditionalBranch(i)
	case *IndirectBranchInstruction:
		v.VisitIndirectBranch(i)
	case *SwitchInstruction:
		v.VisitSwitch(i)
	case *SwitchOldInstruction:
		v.VisitSwitchOld(i)
	case *CallInstruction:
		v.VisitCall(i)
	case *VoidCallInstruction:
		v.VisitVoidCall(i)
	case *ExtractElementInstruction:
		v.VisitExtractElement(i)
	case *InsertElementInstruction:
		v.VisitInsertElement(i)
	case *ExtractValueInstruction:
		v.VisitExtractValue(i)
	case *InsertValueInstruction:
		v.VisitInsertValue(i)
	case *GetElementPointerInstruction:
		v.VisitGetElementPointer(i)
	case *PhiInstruction:
		v.VisitPhi(i)
	case *SelectInstruction:
		v.VisitSelect(i)
	case *ShuffleVectorInstruction:
		v.VisitShuffleVector(i)
	case *ReturnInstruction:
		v.VisitReturn(i)
	case *UnreachableInstruction:
		v.VisitUnreachable(i)
	case *FenceInstruction:
		v.VisitFence(i)
	case *CompareExchangeInstruction:
		v.VisitCompareExchange(i)
	case *ReadModifyWriteInstruction:
		v.VisitReadModifyWrite(i)
	default:
		panic(fmt.Sprintf("ir: unexpected instruction %T", inst))
	}
}
