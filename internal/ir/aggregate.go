package ir

import "github.com/llir/llvm/ir/types"

// aggregate is the element storage shared by array, struct and vector constants.
type aggregate struct {
	Elements []Symbol
}

func (a *aggregate) Len() int { return len(a.Elements) }

func (a *aggregate) Element(i int) Symbol { return a.Elements[i] }

func (a *aggregate) SetElement(i int, s Symbol) { a.Elements[i] = s }

func (a *aggregate) ReplaceOperand(old, repl Symbol) {
	replaceOperands(a.Elements, old, repl)
}

// IsResolved reports whether every element is a concrete symbol.
func (a *aggregate) IsResolved() bool {
	for _, e := range a.Elements {
		if e == nil || IsPlaceholder(e) {
			return false
		}
	}
	return true
}

// ArrayConstant is a constant array.
type ArrayConstant struct {
	aggregate
	Typ *types.ArrayType
}

// StructureConstant is a constant struct.
type StructureConstant struct {
	aggregate
	Typ *types.StructType
}

// VectorConstant is a constant vector.
type VectorConstant struct {
	aggregate
	Typ *types.VectorType
}

// NewArrayConstant allocates an array constant with n unset elements.
func NewArrayConstant(t *types.ArrayType, n int) *ArrayConstant {
	return &ArrayConstant{aggregate: aggregate{Elements: make([]Symbol, n)}, Typ: t}
}

// NewStructureConstant allocates a struct constant with n unset elements.
func NewStructureConstant(t *types.StructType, n int) *StructureConstant {
	return &StructureConstant{aggregate: aggregate{Elements: make([]Symbol, n)}, Typ: t}
}

// NewVectorConstant allocates a vector constant with n unset elements.
func NewVectorConstant(t *types.VectorType, n int) *VectorConstant {
	return &VectorConstant{aggregate: aggregate{Elements: make([]Symbol, n)}, Typ: t}
}

func (c *ArrayConstant) Type() types.Type     { return c.Typ }
func (c *StructureConstant) Type() types.Type { return c.Typ }
func (c *VectorConstant) Type() types.Type    { return c.Typ }

// Packed reports whether the struct layout is packed.
func (c *StructureConstant) Packed() bool { return c.Typ.Packed }
