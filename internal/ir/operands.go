package ir

func (i *AllocateInstruction) ReplaceOperand(old, repl Symbol) { replaceOperand(&i.Count, old, repl) }
func (i *AllocateInstruction) Operands() []Symbol              { return nonNil(i.Count) }

func (i *LoadInstruction) ReplaceOperand(old, repl Symbol) { replaceOperand(&i.Source, old, repl) }
func (i *LoadInstruction) Operands() []Symbol              { return []Symbol{i.Source} }

func (i *StoreInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Destination, old, repl)
	replaceOperand(&i.Source, old, repl)
}
func (i *StoreInstruction) Operands() []Symbol { return []Symbol{i.Destination, i.Source} }

func (i *BinaryOperationInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.LHS, old, repl)
	replaceOperand(&i.RHS, old, repl)
}
func (i *BinaryOperationInstruction) Operands() []Symbol { return []Symbol{i.LHS, i.RHS} }

func (i *UnaryOperationInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Operand, old, repl)
}
func (i *UnaryOperationInstruction) Operands() []Symbol { return []Symbol{i.Operand} }

func (i *CompareInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.LHS, old, repl)
	replaceOperand(&i.RHS, old, repl)
}
func (i *CompareInstruction) Operands() []Symbol { return []Symbol{i.LHS, i.RHS} }

func (i *CastInstruction) ReplaceOperand(old, repl Symbol) { replaceOperand(&i.Value, old, repl) }
func (i *CastInstruction) Operands() []Symbol              { return []Symbol{i.Value} }

func (*BranchInstruction) ReplaceOperand(_, _ Symbol) {}
func (*BranchInstruction) Operands() []Symbol         { return nil }
func (i *BranchInstruction) Successors() []*InstructionBlock {
	return []*InstructionBlock{i.Successor}
}

func (i *ConditionalBranchInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Condition, old, repl)
}
func (i *ConditionalBranchInstruction) Operands() []Symbol { return []Symbol{i.Condition} }
func (i *ConditionalBranchInstruction) Successors() []*InstructionBlock {
	return []*InstructionBlock{i.TrueSuccessor, i.FalseSuccessor}
}

func (i *IndirectBranchInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Address, old, repl)
}
func (i *IndirectBranchInstruction) Operands() []Symbol { return []Symbol{i.Address} }
func (i *IndirectBranchInstruction) Successors() []*InstructionBlock {
	return i.Destinations
}

func (i *SwitchInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Condition, old, repl)
	for j := range i.Cases {
		replaceOperand(&i.Cases[j].Value, old, repl)
	}
}
func (i *SwitchInstruction) Operands() []Symbol {
	ops := make([]Symbol, 0, len(i.Cases)+1)
	ops = append(ops, i.Condition)
	for _, c := range i.Cases {
		ops = append(ops, c.Value)
	}
	return ops
}
func (i *SwitchInstruction) Successors() []*InstructionBlock {
	out := make([]*InstructionBlock, 0, len(i.Cases)+1)
	out = append(out, i.Default)
	for _, c := range i.Cases {
		out = append(out, c.Block)
	}
	return out
}

func (i *SwitchOldInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Condition, old, repl)
}
func (i *SwitchOldInstruction) Operands() []Symbol { return []Symbol{i.Condition} }
func (i *SwitchOldInstruction) Successors() []*InstructionBlock {
	out := make([]*InstructionBlock, 0, len(i.Cases)+1)
	out = append(out, i.Default)
	for _, c := range i.Cases {
		out = append(out, c.Block)
	}
	return out
}

func (i *CallInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Callee, old, repl)
	replaceOperands(i.Arguments, old, repl)
}
func (i *CallInstruction) Operands() []Symbol {
	return append([]Symbol{i.Callee}, i.Arguments...)
}

func (i *VoidCallInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Callee, old, repl)
	replaceOperands(i.Arguments, old, repl)
}
func (i *VoidCallInstruction) Operands() []Symbol {
	return append([]Symbol{i.Callee}, i.Arguments...)
}

func (i *ExtractElementInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Vector, old, repl)
	replaceOperand(&i.Index, old, repl)
}
func (i *ExtractElementInstruction) Operands() []Symbol { return []Symbol{i.Vector, i.Index} }

func (i *InsertElementInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Vector, old, repl)
	replaceOperand(&i.Value, old, repl)
	replaceOperand(&i.Index, old, repl)
}
func (i *InsertElementInstruction) Operands() []Symbol {
	return []Symbol{i.Vector, i.Value, i.Index}
}

func (i *ExtractValueInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Aggregate, old, repl)
}
func (i *ExtractValueInstruction) Operands() []Symbol { return []Symbol{i.Aggregate} }

func (i *InsertValueInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Aggregate, old, repl)
	replaceOperand(&i.Value, old, repl)
}
func (i *InsertValueInstruction) Operands() []Symbol { return []Symbol{i.Aggregate, i.Value} }

func (i *GetElementPointerInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Base, old, repl)
	replaceOperands(i.Indices, old, repl)
}
func (i *GetElementPointerInstruction) Operands() []Symbol {
	return append([]Symbol{i.Base}, i.Indices...)
}

func (i *PhiInstruction) ReplaceOperand(old, repl Symbol) {
	for j := range i.Incoming {
		replaceOperand(&i.Incoming[j].Value, old, repl)
	}
}
func (i *PhiInstruction) Operands() []Symbol {
	ops := make([]Symbol, len(i.Incoming))
	for j, in := range i.Incoming {
		ops[j] = in.Value
	}
	return ops
}

func (i *SelectInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Condition, old, repl)
	replaceOperand(&i.TrueValue, old, repl)
	replaceOperand(&i.FalseValue, old, repl)
}
func (i *SelectInstruction) Operands() []Symbol {
	return []Symbol{i.Condition, i.TrueValue, i.FalseValue}
}

func (i *ShuffleVectorInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Vector1, old, repl)
	replaceOperand(&i.Vector2, old, repl)
	replaceOperand(&i.Mask, old, repl)
}
func (i *ShuffleVectorInstruction) Operands() []Symbol {
	return []Symbol{i.Vector1, i.Vector2, i.Mask}
}

func (i *ReturnInstruction) ReplaceOperand(old, repl Symbol) { replaceOperand(&i.Value, old, repl) }
func (i *ReturnInstruction) Operands() []Symbol              { return nonNil(i.Value) }
func (*ReturnInstruction) Successors() []*InstructionBlock   { return nil }

func (*UnreachableInstruction) ReplaceOperand(_, _ Symbol)      {}
func (*UnreachableInstruction) Operands() []Symbol              { return nil }
func (*UnreachableInstruction) Successors() []*InstructionBlock { return nil }

func (*FenceInstruction) ReplaceOperand(_, _ Symbol) {}
func (*FenceInstruction) Operands() []Symbol         { return nil }

func (i *CompareExchangeInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Address, old, repl)
	replaceOperand(&i.Comparison, old, repl)
	replaceOperand(&i.NewValue, old, repl)
}
func (i *CompareExchangeInstruction) Operands() []Symbol {
	return []Symbol{i.Address, i.Comparison, i.NewValue}
}

func (i *ReadModifyWriteInstruction) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&i.Address, old, repl)
	replaceOperand(&i.Value, old, repl)
}
func (i *ReadModifyWriteInstruction) Operands() []Symbol { return []Symbol{i.Address, i.Value} }

func nonNil(s Symbol) []Symbol {
	if s == nil {
		return nil
	}
	return []Symbol{s}
}
