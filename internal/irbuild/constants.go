package irbuild

import (
	"fmt"
	"math/big"

	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/metadata"
	"irmodel/internal/symtab"
)

// constants creates constants into one symbol table. It is embedded by the
// module and function builders, which differ only in table, metadata block
// and function scope.
type constants struct {
	table *symtab.Table
	md    *metadata.Block
	// fn is the function whose body is being built, nil at module scope.
	fn *ir.FunctionDefinition
}

func (c *constants) add(sym ir.Symbol) int { return c.table.AddSymbol(sym) }

// operand resolves index for dep, installing a placeholder when needed.
func (c *constants) operand(index int, dep ir.Symbol) (ir.Symbol, error) {
	return c.table.GetSymbolFor(index, dep)
}

func (c *constants) operands(indices []int, dep ir.Symbol) ([]ir.Symbol, error) {
	out := make([]ir.Symbol, len(indices))
	for i, index := range indices {
		sym, err := c.operand(index, dep)
		if err != nil {
			return nil, err
		}
		out[i] = sym
	}
	return out, nil
}

// CreateInteger adds an integer constant of typ.
func (c *constants) CreateInteger(typ types.Type, value int64) int {
	return c.add(&ir.IntegerConstant{Typ: typ, Value: value})
}

// CreateBigInteger adds an integer constant wider than 64 bits.
func (c *constants) CreateBigInteger(typ types.Type, value *big.Int) int {
	return c.add(&ir.BigIntegerConstant{Typ: typ, Value: new(big.Int).Set(value)})
}

// CreateFloatingPoint adds a float or double constant.
func (c *constants) CreateFloatingPoint(typ types.Type, value float64) int {
	return c.add(&ir.FloatingPointConstant{Typ: typ, Value: value})
}

// CreateFloatingPointRaw adds a constant of a wide float format by its raw words.
func (c *constants) CreateFloatingPointRaw(typ types.Type, raw []uint64) int {
	return c.add(&ir.FloatingPointConstant{Typ: typ, Raw: append([]uint64(nil), raw...)})
}

// CreateNull adds null or zeroinitializer of typ.
func (c *constants) CreateNull(typ types.Type) int {
	return c.add(&ir.NullConstant{Typ: typ})
}

// CreateUndefined adds undef of typ.
func (c *constants) CreateUndefined(typ types.Type) int {
	return c.add(&ir.UndefinedConstant{Typ: typ})
}

// CreateString adds a character array constant.
func (c *constants) CreateString(typ types.Type, value string, cstring bool) int {
	return c.add(&ir.StringConstant{Typ: typ, Value: value, CString: cstring})
}

// CreateAggregate adds an array, struct or vector constant whose elements
// are the symbols at elems, any of which may still be undefined.
func (c *constants) CreateAggregate(typ types.Type, elems []int) (int, error) {
	agg, err := c.table.CreateAggregate(typ, elems)
	if err != nil {
		return 0, err
	}
	return c.add(agg), nil
}

// CreateBinaryOperationConstant adds a constant binary expression.
func (c *constants) CreateBinaryOperationConstant(typ types.Type, op ir.BinaryOperator, lhs, rhs int) (int, error) {
	k := &ir.BinaryOperationConstant{Typ: typ, Operator: op}
	var err error
	if k.LHS, err = c.operand(lhs, k); err != nil {
		return 0, err
	}
	if k.RHS, err = c.operand(rhs, k); err != nil {
		return 0, err
	}
	return c.add(k), nil
}

// CreateCastConstant adds a constant conversion.
func (c *constants) CreateCastConstant(typ types.Type, op ir.CastOperator, value int) (int, error) {
	k := &ir.CastConstant{Typ: typ, Operator: op}
	var err error
	if k.Value, err = c.operand(value, k); err != nil {
		return 0, err
	}
	return c.add(k), nil
}

// CreateCompareConstant adds a constant comparison.
func (c *constants) CreateCompareConstant(typ types.Type, pred ir.Predicate, lhs, rhs int) (int, error) {
	k := &ir.CompareConstant{Typ: typ, Predicate: pred}
	var err error
	if k.LHS, err = c.operand(lhs, k); err != nil {
		return 0, err
	}
	if k.RHS, err = c.operand(rhs, k); err != nil {
		return 0, err
	}
	return c.add(k), nil
}

// CreateGetElementPointerConstant adds a constant address computation.
func (c *constants) CreateGetElementPointerConstant(typ types.Type, base int, indices []int, inBounds bool) (int, error) {
	k := &ir.GetElementPointerConstant{Typ: typ, InBounds: inBounds}
	var err error
	if k.Base, err = c.operand(base, k); err != nil {
		return 0, err
	}
	if k.Indices, err = c.operands(indices, k); err != nil {
		return 0, err
	}
	return c.add(k), nil
}

// CreateBlockAddress adds the address of block in the function at index
// function. Only the function being built has blocks to point at, so the
// constant is rejected at module scope.
func (c *constants) CreateBlockAddress(typ types.Type, function, block int) (int, error) {
	if c.fn == nil {
		return 0, ErrBlockAddressScope
	}
	sym, err := c.table.GetSymbol(function)
	if err != nil {
		return 0, fmt.Errorf("block address: %w", err)
	}
	def, ok := sym.(*ir.FunctionDefinition)
	if !ok {
		return 0, fmt.Errorf("block address: symbol %d is %T, not a function definition", function, sym)
	}
	if def != c.fn {
		return 0, fmt.Errorf("block address into @%s: %w", def.Name(), ErrBlockAddressScope)
	}
	b, err := def.Block(block)
	if err != nil {
		return 0, fmt.Errorf("block address: %w", err)
	}
	return c.add(&ir.BlockAddressConstant{Typ: typ, Function: def, Block: b}), nil
}

// CreateMetadataConstant adds a value wrapping the metadata node at index md.
func (c *constants) CreateMetadataConstant(md int) (int, error) {
	ref, err := c.md.ReferenceAt(md)
	if err != nil {
		return 0, fmt.Errorf("metadata constant: %w", err)
	}
	return c.add(&ir.MetadataConstant{Ref: ref}), nil
}

// CreateValueMetadata adds a metadata node wrapping the defined symbol at index.
func (c *constants) CreateValueMetadata(index int) (int, error) {
	sym, err := c.table.GetSymbol(index)
	if err != nil {
		return 0, fmt.Errorf("value metadata: %w", err)
	}
	return c.md.Add(&metadata.ValueNode{Value: sym}), nil
}

// NameEntry names the symbol at index, deferring the name while the index
// is undefined.
func (c *constants) NameEntry(index int, name string) error {
	return c.table.SetSymbolName(index, name)
}

// Metadata is the metadata block of the current scope.
func (c *constants) Metadata() *metadata.Block { return c.md }

// Table exposes the symbol table of the current scope.
func (c *constants) Table() *symtab.Table { return c.table }
