package irbuild

import (
	"fmt"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
)

// Atomic carries the memory ordering attributes of atomic instructions.
type Atomic struct {
	Ordering enum.AtomicOrdering
	// Failure is the failure ordering of cmpxchg.
	Failure      enum.AtomicOrdering
	Volatile     bool
	Weak         bool
	SingleThread bool
}

// BlockBuilder appends instructions to one block.
//
// Operands are symbol indices of the function table and may be forward
// references. Block operands are block indices and resolve immediately.
// Value instructions return the symbol index of their result.
type BlockBuilder struct {
	fn    *FunctionBuilder
	block *ir.InstructionBlock
}

// Block is the block being built.
func (b *BlockBuilder) Block() *ir.InstructionBlock { return b.block }

func (b *BlockBuilder) operand(index int, dep ir.Symbol) (ir.Symbol, error) {
	return b.fn.operand(index, dep)
}

func (b *BlockBuilder) target(index int) (*ir.InstructionBlock, error) {
	return b.fn.fn.Block(index)
}

func (b *BlockBuilder) targets(indices []int) ([]*ir.InstructionBlock, error) {
	out := make([]*ir.InstructionBlock, len(indices))
	for i, index := range indices {
		t, err := b.target(index)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// value appends a value instruction and defines its result.
func (b *BlockBuilder) value(inst ir.ValueInstruction) int {
	b.block.Append(inst)
	return b.fn.add(inst)
}

// void appends an instruction without result.
func (b *BlockBuilder) void(inst ir.Instruction) {
	b.block.Append(inst)
}

// CreateAllocate appends alloca of count elements of elem; typ is the
// pointer result type.
func (b *BlockBuilder) CreateAllocate(typ, elem types.Type, count int, align uint32) (int, error) {
	inst := &ir.AllocateInstruction{ElemType: elem, Align: align}
	inst.Typ = typ
	var err error
	if inst.Count, err = b.operand(count, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateLoad appends a non-atomic load of typ from source.
func (b *BlockBuilder) CreateLoad(typ types.Type, source int, align uint32, volatile bool) (int, error) {
	return b.CreateAtomicLoad(typ, source, align, Atomic{Ordering: enum.AtomicOrderingNone, Volatile: volatile})
}

// CreateAtomicLoad appends a load with ordering attributes.
func (b *BlockBuilder) CreateAtomicLoad(typ types.Type, source int, align uint32, at Atomic) (int, error) {
	inst := &ir.LoadInstruction{Align: align, Volatile: at.Volatile, Ordering: at.Ordering, SingleThread: at.SingleThread}
	inst.Typ = typ
	var err error
	if inst.Source, err = b.operand(source, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateStore appends a non-atomic store of source to destination.
func (b *BlockBuilder) CreateStore(destination, source int, align uint32, volatile bool) error {
	return b.CreateAtomicStore(destination, source, align, Atomic{Ordering: enum.AtomicOrderingNone, Volatile: volatile})
}

// CreateAtomicStore appends a store with ordering attributes.
func (b *BlockBuilder) CreateAtomicStore(destination, source int, align uint32, at Atomic) error {
	inst := &ir.StoreInstruction{Align: align, Volatile: at.Volatile, Ordering: at.Ordering, SingleThread: at.SingleThread}
	var err error
	if inst.Destination, err = b.operand(destination, inst); err != nil {
		return err
	}
	if inst.Source, err = b.operand(source, inst); err != nil {
		return err
	}
	b.void(inst)
	return nil
}

// CreateBinaryOperation appends an arithmetic or bitwise operation.
func (b *BlockBuilder) CreateBinaryOperation(typ types.Type, op ir.BinaryOperator, flags ir.OperationFlags, lhs, rhs int) (int, error) {
	inst := &ir.BinaryOperationInstruction{Operator: op, Flags: flags}
	inst.Typ = typ
	var err error
	if inst.LHS, err = b.operand(lhs, inst); err != nil {
		return 0, err
	}
	if inst.RHS, err = b.operand(rhs, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateUnaryOperation appends fneg.
func (b *BlockBuilder) CreateUnaryOperation(typ types.Type, op ir.UnaryOperator, operand int) (int, error) {
	inst := &ir.UnaryOperationInstruction{Operator: op}
	inst.Typ = typ
	var err error
	if inst.Operand, err = b.operand(operand, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateCompare appends icmp or fcmp.
func (b *BlockBuilder) CreateCompare(typ types.Type, pred ir.Predicate, lhs, rhs int) (int, error) {
	inst := &ir.CompareInstruction{Predicate: pred}
	inst.Typ = typ
	var err error
	if inst.LHS, err = b.operand(lhs, inst); err != nil {
		return 0, err
	}
	if inst.RHS, err = b.operand(rhs, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateCast appends a conversion of value to typ.
func (b *BlockBuilder) CreateCast(typ types.Type, op ir.CastOperator, value int) (int, error) {
	inst := &ir.CastInstruction{Operator: op}
	inst.Typ = typ
	var err error
	if inst.Value, err = b.operand(value, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateBranch appends br to block target.
func (b *BlockBuilder) CreateBranch(target int) error {
	t, err := b.target(target)
	if err != nil {
		return err
	}
	b.void(&ir.BranchInstruction{Successor: t})
	return nil
}

// CreateConditionalBranch appends br on condition.
func (b *BlockBuilder) CreateConditionalBranch(condition, ifTrue, ifFalse int) error {
	inst := &ir.ConditionalBranchInstruction{}
	var err error
	if inst.TrueSuccessor, err = b.target(ifTrue); err != nil {
		return err
	}
	if inst.FalseSuccessor, err = b.target(ifFalse); err != nil {
		return err
	}
	if inst.Condition, err = b.operand(condition, inst); err != nil {
		return err
	}
	b.void(inst)
	return nil
}

// CreateIndirectBranch appends indirectbr through address.
func (b *BlockBuilder) CreateIndirectBranch(address int, destinations []int) error {
	inst := &ir.IndirectBranchInstruction{}
	var err error
	if inst.Destinations, err = b.targets(destinations); err != nil {
		return err
	}
	if inst.Address, err = b.operand(address, inst); err != nil {
		return err
	}
	b.void(inst)
	return nil
}

// CreateSwitch appends switch; values[i] selects blocks[i].
func (b *BlockBuilder) CreateSwitch(condition, defaultBlock int, values, blocks []int) error {
	if len(values) != len(blocks) {
		return fmt.Errorf("switch: %d case values for %d blocks", len(values), len(blocks))
	}
	inst := &ir.SwitchInstruction{Cases: make([]ir.SwitchCase, len(values))}
	var err error
	if inst.Default, err = b.target(defaultBlock); err != nil {
		return err
	}
	if inst.Condition, err = b.operand(condition, inst); err != nil {
		return err
	}
	for i := range values {
		if inst.Cases[i].Block, err = b.target(blocks[i]); err != nil {
			return err
		}
		if inst.Cases[i].Value, err = b.operand(values[i], inst); err != nil {
			return err
		}
	}
	b.void(inst)
	return nil
}

// CreateSwitchOld appends the legacy switch with literal case values.
func (b *BlockBuilder) CreateSwitchOld(condition, defaultBlock int, values []int64, blocks []int) error {
	if len(values) != len(blocks) {
		return fmt.Errorf("switch: %d case values for %d blocks", len(values), len(blocks))
	}
	inst := &ir.SwitchOldInstruction{Cases: make([]ir.SwitchOldCase, len(values))}
	var err error
	if inst.Default, err = b.target(defaultBlock); err != nil {
		return err
	}
	if inst.Condition, err = b.operand(condition, inst); err != nil {
		return err
	}
	for i := range values {
		inst.Cases[i].Value = values[i]
		if inst.Cases[i].Block, err = b.target(blocks[i]); err != nil {
			return err
		}
	}
	b.void(inst)
	return nil
}

// CreateCall appends a call of callee returning typ. Calls returning void
// define no symbol and report index -1.
func (b *BlockBuilder) CreateCall(typ types.Type, callee int, args []int, cc enum.CallingConv) (int, error) {
	if _, void := typ.(*types.VoidType); void || typ == nil {
		inst := &ir.VoidCallInstruction{CallingConv: cc}
		var err error
		if inst.Callee, err = b.operand(callee, inst); err != nil {
			return 0, err
		}
		if inst.Arguments, err = b.fn.operands(args, inst); err != nil {
			return 0, err
		}
		b.void(inst)
		return -1, nil
	}
	inst := &ir.CallInstruction{CallingConv: cc}
	inst.Typ = typ
	var err error
	if inst.Callee, err = b.operand(callee, inst); err != nil {
		return 0, err
	}
	if inst.Arguments, err = b.fn.operands(args, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateExtractElement appends extractelement.
func (b *BlockBuilder) CreateExtractElement(typ types.Type, vector, index int) (int, error) {
	inst := &ir.ExtractElementInstruction{}
	inst.Typ = typ
	var err error
	if inst.Vector, err = b.operand(vector, inst); err != nil {
		return 0, err
	}
	if inst.Index, err = b.operand(index, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateInsertElement appends insertelement.
func (b *BlockBuilder) CreateInsertElement(typ types.Type, vector, value, index int) (int, error) {
	inst := &ir.InsertElementInstruction{}
	inst.Typ = typ
	var err error
	if inst.Vector, err = b.operand(vector, inst); err != nil {
		return 0, err
	}
	if inst.Value, err = b.operand(value, inst); err != nil {
		return 0, err
	}
	if inst.Index, err = b.operand(index, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateExtractValue appends extractvalue with literal indices.
func (b *BlockBuilder) CreateExtractValue(typ types.Type, aggregate int, indices []uint64) (int, error) {
	inst := &ir.ExtractValueInstruction{Indices: append([]uint64(nil), indices...)}
	inst.Typ = typ
	var err error
	if inst.Aggregate, err = b.operand(aggregate, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateInsertValue appends insertvalue with literal indices.
func (b *BlockBuilder) CreateInsertValue(typ types.Type, aggregate, value int, indices []uint64) (int, error) {
	inst := &ir.InsertValueInstruction{Indices: append([]uint64(nil), indices...)}
	inst.Typ = typ
	var err error
	if inst.Aggregate, err = b.operand(aggregate, inst); err != nil {
		return 0, err
	}
	if inst.Value, err = b.operand(value, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateGetElementPointer appends getelementptr.
func (b *BlockBuilder) CreateGetElementPointer(typ types.Type, base int, indices []int, inBounds bool) (int, error) {
	inst := &ir.GetElementPointerInstruction{InBounds: inBounds}
	inst.Typ = typ
	var err error
	if inst.Base, err = b.operand(base, inst); err != nil {
		return 0, err
	}
	if inst.Indices, err = b.fn.operands(indices, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreatePhi appends phi; values[i] flows in from blocks[i].
func (b *BlockBuilder) CreatePhi(typ types.Type, values, blocks []int) (int, error) {
	if len(values) != len(blocks) {
		return 0, fmt.Errorf("phi: %d values for %d blocks", len(values), len(blocks))
	}
	inst := &ir.PhiInstruction{Incoming: make([]ir.PhiIncoming, len(values))}
	inst.Typ = typ
	var err error
	for i := range values {
		if inst.Incoming[i].Block, err = b.target(blocks[i]); err != nil {
			return 0, err
		}
		if inst.Incoming[i].Value, err = b.operand(values[i], inst); err != nil {
			return 0, err
		}
	}
	return b.value(inst), nil
}

// CreateSelect appends select.
func (b *BlockBuilder) CreateSelect(typ types.Type, condition, ifTrue, ifFalse int) (int, error) {
	inst := &ir.SelectInstruction{}
	inst.Typ = typ
	var err error
	if inst.Condition, err = b.operand(condition, inst); err != nil {
		return 0, err
	}
	if inst.TrueValue, err = b.operand(ifTrue, inst); err != nil {
		return 0, err
	}
	if inst.FalseValue, err = b.operand(ifFalse, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateShuffleVector appends shufflevector.
func (b *BlockBuilder) CreateShuffleVector(typ types.Type, vector1, vector2, mask int) (int, error) {
	inst := &ir.ShuffleVectorInstruction{}
	inst.Typ = typ
	var err error
	if inst.Vector1, err = b.operand(vector1, inst); err != nil {
		return 0, err
	}
	if inst.Vector2, err = b.operand(vector2, inst); err != nil {
		return 0, err
	}
	if inst.Mask, err = b.operand(mask, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateReturn appends ret void.
func (b *BlockBuilder) CreateReturn() {
	b.void(&ir.ReturnInstruction{})
}

// CreateReturnValue appends ret of value.
func (b *BlockBuilder) CreateReturnValue(value int) error {
	inst := &ir.ReturnInstruction{}
	var err error
	if inst.Value, err = b.operand(value, inst); err != nil {
		return err
	}
	b.void(inst)
	return nil
}

// CreateUnreachable appends unreachable.
func (b *BlockBuilder) CreateUnreachable() {
	b.void(&ir.UnreachableInstruction{})
}

// CreateFence appends fence.
func (b *BlockBuilder) CreateFence(at Atomic) {
	b.void(&ir.FenceInstruction{Ordering: at.Ordering, SingleThread: at.SingleThread})
}

// CreateCompareExchange appends cmpxchg; typ is the { T, i1 } result type.
func (b *BlockBuilder) CreateCompareExchange(typ types.Type, address, comparison, newValue int, at Atomic) (int, error) {
	inst := &ir.CompareExchangeInstruction{
		SuccessOrdering: at.Ordering,
		FailureOrdering: at.Failure,
		Volatile:        at.Volatile,
		Weak:            at.Weak,
		SingleThread:    at.SingleThread,
	}
	inst.Typ = typ
	var err error
	if inst.Address, err = b.operand(address, inst); err != nil {
		return 0, err
	}
	if inst.Comparison, err = b.operand(comparison, inst); err != nil {
		return 0, err
	}
	if inst.NewValue, err = b.operand(newValue, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// CreateReadModifyWrite appends atomicrmw.
func (b *BlockBuilder) CreateReadModifyWrite(typ types.Type, op enum.AtomicOp, address, value int, at Atomic) (int, error) {
	inst := &ir.ReadModifyWriteInstruction{
		Operation:    op,
		Ordering:     at.Ordering,
		Volatile:     at.Volatile,
		SingleThread: at.SingleThread,
	}
	inst.Typ = typ
	var err error
	if inst.Address, err = b.operand(address, inst); err != nil {
		return 0, err
	}
	if inst.Value, err = b.operand(value, inst); err != nil {
		return 0, err
	}
	return b.value(inst), nil
}

// AttachLocation attaches the debug location at metadata index md to the
// last instruction of the block.
func (b *BlockBuilder) AttachLocation(md int) error {
	n := len(b.block.Instructions)
	if n == 0 {
		return fmt.Errorf("block %d: %w", b.block.Index, ErrNoInstruction)
	}
	ref, err := b.fn.md.ReferenceAt(md)
	if err != nil {
		return fmt.Errorf("block %d: debug location: %w", b.block.Index, err)
	}
	b.block.Instructions[n-1].SetLocation(ref)
	return nil
}
