package symtab

import (
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
)

type aggregateDependent struct {
	aggregate ir.Aggregate
	element   int
}

// ForwardReference stands in for a symbol that has been used but not yet
// defined. Holders are recorded as dependents and patched by Replace.
type ForwardReference struct {
	index      int
	dependents []ir.Symbol
	aggregates []aggregateDependent
}

func newForwardReference(index int) *ForwardReference {
	return &ForwardReference{index: index}
}

// Type is unknown until the real symbol arrives.
func (*ForwardReference) Type() types.Type { return nil }

func (*ForwardReference) ReplaceOperand(_, _ ir.Symbol) {}

func (*ForwardReference) IsPlaceholder() bool { return true }

// Index is the table slot the placeholder occupies.
func (f *ForwardReference) Index() int { return f.index }

// AddDependent records a symbol holding f as an operand. A symbol that holds
// f several times may be recorded once per use.
func (f *ForwardReference) AddDependent(dep ir.Symbol) {
	f.dependents = append(f.dependents, dep)
}

// AddAggregateDependent records element i of agg as holding f.
func (f *ForwardReference) AddAggregateDependent(agg ir.Aggregate, i int) {
	f.aggregates = append(f.aggregates, aggregateDependent{aggregate: agg, element: i})
}

// Pending is the number of dependents still waiting for Replace.
func (f *ForwardReference) Pending() int {
	return len(f.dependents) + len(f.aggregates)
}

// Replace patches every dependent to point at sym and drains both lists.
// It returns the number of dependents patched.
func (f *ForwardReference) Replace(sym ir.Symbol) int {
	n := 0
	for _, d := range f.aggregates {
		if d.aggregate.Element(d.element) == ir.Symbol(f) {
			d.aggregate.SetElement(d.element, sym)
			n++
		}
	}
	for _, dep := range f.dependents {
		dep.ReplaceOperand(f, sym)
		n++
	}
	f.aggregates = nil
	f.dependents = nil
	return n
}
