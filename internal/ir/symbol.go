package ir

import "github.com/llir/llvm/ir/types"

// Symbol is any addressable, type-carrying program entity.
//
// ReplaceOperand swaps every operand equal to old for repl. Leaf symbols
// have no operands and ignore the call.
type Symbol interface {
	Type() types.Type
	ReplaceOperand(old, repl Symbol)
}

// ValueSymbol is a symbol with a name slot.
type ValueSymbol interface {
	Symbol
	Name() string
	SetName(name string)
	HasName() bool
}

// Aggregate is a composite constant whose elements are symbols.
type Aggregate interface {
	Symbol
	Len() int
	Element(i int) Symbol
	SetElement(i int, s Symbol)
	IsResolved() bool
}

// Placeholder is implemented by symbols that stand in for an entry that has
// not been defined yet.
type Placeholder interface {
	Symbol
	IsPlaceholder() bool
}

// IsPlaceholder reports whether s is an unresolved stand-in.
func IsPlaceholder(s Symbol) bool {
	p, ok := s.(Placeholder)
	return ok && p.IsPlaceholder()
}

// SymbolLookup resolves a symbol table index.
type SymbolLookup func(index int) (Symbol, error)

// valueName is the name slot shared by named entities. A value is unnamed
// until SetName is called, even with the empty string.
type valueName struct {
	name  string
	named bool
}

func (v *valueName) Name() string        { return v.name }
func (v *valueName) SetName(name string) { v.name, v.named = name, true }
func (v *valueName) HasName() bool       { return v.named }

// leaf provides the no-op operand replacement for symbols without operands.
type leaf struct{}

func (leaf) ReplaceOperand(_, _ Symbol) {}

func replaceOperand(slot *Symbol, old, repl Symbol) {
	if *slot == old {
		*slot = repl
	}
}

func replaceOperands(slots []Symbol, old, repl Symbol) {
	for i := range slots {
		if slots[i] == old {
			slots[i] = repl
		}
	}
}
