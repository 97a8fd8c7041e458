package irbuild

import (
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/symtab"
	"irmodel/internal/trace"
)

// FunctionBuilder builds the body of one function definition.
type FunctionBuilder struct {
	constants
	module *ModuleBuilder
	cursor int
	exited bool
	span   *trace.Span
}

// Function is the definition being built.
func (f *FunctionBuilder) Function() *ir.FunctionDefinition { return f.fn }

// AllocateBlocks creates the n blocks of the body. The count is fixed
// afterwards.
func (f *FunctionBuilder) AllocateBlocks(n int) error {
	if f.fn.Blocks != nil {
		return fmt.Errorf("function @%s: %w", f.fn.Name(), ErrBlocksAllocated)
	}
	if n < 0 {
		return fmt.Errorf("function @%s: negative block count %d", f.fn.Name(), n)
	}
	f.fn.Blocks = make([]*ir.InstructionBlock, n)
	for i := range f.fn.Blocks {
		f.fn.Blocks[i] = ir.NewInstructionBlock(i)
	}
	return nil
}

// CreateParameter appends a parameter of typ and returns its symbol index.
func (f *FunctionBuilder) CreateParameter(typ types.Type) int {
	p := &ir.FunctionParameter{Typ: typ, Index: len(f.fn.Params)}
	f.fn.Params = append(f.fn.Params, p)
	return f.add(p)
}

// GenerateBlock advances the cursor to the next block and returns a
// builder for it. Blocks are generated strictly in index order.
func (f *FunctionBuilder) GenerateBlock() (*BlockBuilder, error) {
	if f.cursor >= len(f.fn.Blocks) {
		return nil, fmt.Errorf("function @%s: block %d of %d: %w", f.fn.Name(), f.cursor, len(f.fn.Blocks), ErrBlockCursor)
	}
	b := f.fn.Blocks[f.cursor]
	f.cursor++
	return &BlockBuilder{fn: f, block: b}, nil
}

// Block returns the block at index for use as a reference, e.g. a branch target.
func (f *FunctionBuilder) Block(index int) (*ir.InstructionBlock, error) {
	return f.fn.Block(index)
}

// NameBlock names the block at index.
func (f *FunctionBuilder) NameBlock(index int, name string) error {
	b, err := f.fn.Block(index)
	if err != nil {
		return err
	}
	b.SetName(name)
	return nil
}

// ExitFunction finishes the body: every index must be defined, then
// blocks and values still unnamed receive default names. Calling it again
// changes nothing.
func (f *FunctionBuilder) ExitFunction() error {
	if unresolved := f.table.Unresolved(); len(unresolved) > 0 {
		return fmt.Errorf("function @%s: %w", f.fn.Name(),
			&symtab.UnresolvedIndexError{Index: unresolved[0], Size: f.table.Size()})
	}
	assignDefaultNames(f.fn)
	if !f.exited {
		f.exited = true
		f.span.
			WithExtra("params", strconv.Itoa(len(f.fn.Params))).
			WithExtra("symbols", strconv.Itoa(f.table.Defined())).
			End(strconv.Itoa(len(f.fn.Blocks)) + " blocks")
	}
	return nil
}

// assignDefaultNames names unnamed blocks by index, the entry block with
// the empty string, then unnamed values with one counter from 1 across
// the whole function.
func assignDefaultNames(fn *ir.FunctionDefinition) {
	for i, b := range fn.Blocks {
		if b.HasName() {
			continue
		}
		if i == 0 {
			b.SetName("")
		} else {
			b.SetName(strconv.Itoa(i))
		}
	}
	counter := 1
	for _, b := range fn.Blocks {
		for _, inst := range b.Instructions {
			v, ok := inst.(ir.ValueInstruction)
			if !ok || v.HasName() {
				continue
			}
			v.SetName(strconv.Itoa(counter))
			counter++
		}
	}
}
