package ir

// InstructionBlock is a basic block: an append-only list of instructions.
type InstructionBlock struct {
	valueName
	Index        int
	Instructions []Instruction
}

// NewInstructionBlock creates the empty block at index.
func NewInstructionBlock(index int) *InstructionBlock {
	return &InstructionBlock{Index: index}
}

// Append adds inst at the end of the block.
func (b *InstructionBlock) Append(inst Instruction) {
	b.Instructions = append(b.Instructions, inst)
}

// Terminated reports whether the last instruction ends the block.
func (b *InstructionBlock) Terminated() bool {
	if b == nil || len(b.Instructions) == 0 {
		return false
	}
	_, ok := b.Instructions[len(b.Instructions)-1].(Terminator)
	return ok
}

// Successors lists the blocks control may transfer to from b.
func (b *InstructionBlock) Successors() []*InstructionBlock {
	if !b.Terminated() {
		return nil
	}
	return b.Instructions[len(b.Instructions)-1].(Terminator).Successors()
}
