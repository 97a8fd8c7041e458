package ir

import (
	"math/big"

	"github.com/llir/llvm/ir/types"

	"irmodel/internal/metadata"
)

// Constant is implemented by every constant symbol.
type Constant interface {
	Symbol
	isConstant()
}

// IntegerConstant is an integer that fits 64 bits.
type IntegerConstant struct {
	leaf
	Typ   types.Type
	Value int64
}

// BigIntegerConstant is an integer wider than 64 bits.
type BigIntegerConstant struct {
	leaf
	Typ   types.Type
	Value *big.Int
}

// FloatingPointConstant holds float and double values in Value; other
// formats keep their raw words in Raw.
type FloatingPointConstant struct {
	leaf
	Typ   types.Type
	Value float64
	Raw   []uint64
}

// NullConstant is null or zeroinitializer.
type NullConstant struct {
	leaf
	Typ types.Type
}

// UndefinedConstant is undef.
type UndefinedConstant struct {
	leaf
	Typ types.Type
}

// StringConstant is a constant character array.
type StringConstant struct {
	leaf
	Typ     types.Type
	Value   string
	CString bool
}

// BinaryOperationConstant is a constant binary expression.
type BinaryOperationConstant struct {
	Typ      types.Type
	Operator BinaryOperator
	LHS, RHS Symbol
}

// CastConstant is a constant conversion expression.
type CastConstant struct {
	Typ      types.Type
	Operator CastOperator
	Value    Symbol
}

// CompareConstant is a constant comparison.
type CompareConstant struct {
	Typ       types.Type
	Predicate Predicate
	LHS, RHS  Symbol
}

// GetElementPointerConstant is a constant address computation.
type GetElementPointerConstant struct {
	Typ      types.Type
	Base     Symbol
	Indices  []Symbol
	InBounds bool
}

// BlockAddressConstant is the address of a basic block of a function.
// It is only created inside function bodies, so Block is never nil.
type BlockAddressConstant struct {
	leaf
	Typ      types.Type
	Function Symbol
	Block    *InstructionBlock
}

// MetadataConstant passes a metadata node as a value, e.g. to llvm.dbg.declare.
type MetadataConstant struct {
	leaf
	Ref metadata.Reference
}

func (c *IntegerConstant) Type() types.Type           { return c.Typ }
func (c *BigIntegerConstant) Type() types.Type        { return c.Typ }
func (c *FloatingPointConstant) Type() types.Type     { return c.Typ }
func (c *NullConstant) Type() types.Type              { return c.Typ }
func (c *UndefinedConstant) Type() types.Type         { return c.Typ }
func (c *StringConstant) Type() types.Type            { return c.Typ }
func (c *BinaryOperationConstant) Type() types.Type   { return c.Typ }
func (c *CastConstant) Type() types.Type              { return c.Typ }
func (c *CompareConstant) Type() types.Type           { return c.Typ }
func (c *GetElementPointerConstant) Type() types.Type { return c.Typ }
func (c *BlockAddressConstant) Type() types.Type      { return c.Typ }
func (c *MetadataConstant) Type() types.Type          { return types.Metadata }

func (c *BinaryOperationConstant) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&c.LHS, old, repl)
	replaceOperand(&c.RHS, old, repl)
}

func (c *CastConstant) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&c.Value, old, repl)
}

func (c *CompareConstant) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&c.LHS, old, repl)
	replaceOperand(&c.RHS, old, repl)
}

func (c *GetElementPointerConstant) ReplaceOperand(old, repl Symbol) {
	replaceOperand(&c.Base, old, repl)
	replaceOperands(c.Indices, old, repl)
}

func (*IntegerConstant) isConstant()           {}
func (*BigIntegerConstant) isConstant()        {}
func (*FloatingPointConstant) isConstant()     {}
func (*NullConstant) isConstant()              {}
func (*UndefinedConstant) isConstant()         {}
func (*StringConstant) isConstant()            {}
func (*BinaryOperationConstant) isConstant()   {}
func (*CastConstant) isConstant()              {}
func (*CompareConstant) isConstant()           {}
func (*GetElementPointerConstant) isConstant() {}
func (*BlockAddressConstant) isConstant()      {}
func (*MetadataConstant) isConstant()          {}
func (*ArrayConstant) isConstant()             {}
func (*StructureConstant) isConstant()         {}
func (*VectorConstant) isConstant()            {}
