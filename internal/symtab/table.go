package symtab

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/trace"
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotPlaceholder
	slotResolved
)

type slot struct {
	state slotState
	sym   ir.Symbol
	fwd   *ForwardReference
}

// Table maps symbol indices to symbols.
//
// Size is one past the highest occupied slot, defined or placeholder.
// Defined is the number of symbols added so far; AddSymbol always installs
// at that index.
type Table struct {
	slots []slot
	next  int
	names map[int]string

	tracer trace.Tracer
	span   uint64
}

// NewTable creates an empty table with an optional capacity hint.
func NewTable(capacity uint32) *Table {
	if capacity == 0 {
		capacity = 64
	}
	return &Table{
		slots:  make([]slot, 0, capacity),
		names:  make(map[int]string),
		tracer: trace.Nop,
	}
}

// SetTracer routes placeholder and patch events to t under span parent.
func (t *Table) SetTracer(tr trace.Tracer, parent uint64) {
	if tr == nil {
		tr = trace.Nop
	}
	t.tracer, t.span = tr, parent
}

// Size is one past the highest occupied index.
func (t *Table) Size() int { return len(t.slots) }

// Defined is the number of symbols added so far.
func (t *Table) Defined() int { return t.next }

// Unresolved lists the indices still holding a placeholder, ascending.
func (t *Table) Unresolved() []int {
	var out []int
	for i := range t.slots {
		if t.slots[i].state == slotPlaceholder {
			out = append(out, i)
		}
	}
	return out
}

// grow makes slot n-1 addressable, doubling the backing storage as needed.
func (t *Table) grow(n int) {
	if n <= len(t.slots) {
		return
	}
	if _, err := safecast.Conv[uint32](n); err != nil {
		panic(fmt.Errorf("symbol table overflow: %w", err))
	}
	if n > cap(t.slots) {
		c := max(cap(t.slots)*2, 1)
		for c < n {
			c *= 2
		}
		grown := make([]slot, len(t.slots), c)
		copy(grown, t.slots)
		t.slots = grown
	}
	t.slots = t.slots[:n]
}

// AddSymbol installs sym at the next definition index and returns it.
// A placeholder at that index is replaced first, then any name deferred for
// the index is applied when sym can carry one.
func (t *Table) AddSymbol(sym ir.Symbol) int {
	index := t.next
	t.grow(index + 1)
	s := &t.slots[index]
	if s.state == slotPlaceholder {
		patched := s.fwd.Replace(sym)
		t.point("resolve", index, map[string]string{"patched": strconv.Itoa(patched)})
	}
	if name, ok := t.names[index]; ok {
		delete(t.names, index)
		if v, ok := sym.(ir.ValueSymbol); ok {
			v.SetName(name)
		}
	}
	*s = slot{state: slotResolved, sym: sym}
	t.next++
	return index
}

// GetSymbol returns the defined symbol at index. Out of range and
// placeholder slots fail with *UnresolvedIndexError since the caller has no
// dependent to patch later.
func (t *Table) GetSymbol(index int) (ir.Symbol, error) {
	if index < 0 || index >= len(t.slots) || t.slots[index].state != slotResolved {
		return nil, &UnresolvedIndexError{Index: index, Size: len(t.slots)}
	}
	return t.slots[index].sym, nil
}

// GetSymbolFor returns the symbol at index, or a placeholder with dep
// registered when the index is not defined yet. dep must store the returned
// value as its operand.
func (t *Table) GetSymbolFor(index int, dep ir.Symbol) (ir.Symbol, error) {
	if index < 0 {
		return nil, &UnresolvedIndexError{Index: index, Size: len(t.slots)}
	}
	if index < len(t.slots) && t.slots[index].state == slotResolved {
		return t.slots[index].sym, nil
	}
	if dep == nil {
		return nil, fmt.Errorf("symbol %d: %w", index, ErrNilDependent)
	}
	fwd := t.placeholder(index)
	fwd.AddDependent(dep)
	return fwd, nil
}

// placeholder returns the forward reference at index, creating it if the
// slot is empty.
func (t *Table) placeholder(index int) *ForwardReference {
	t.grow(index + 1)
	s := &t.slots[index]
	if s.state == slotEmpty {
		s.state = slotPlaceholder
		s.fwd = newForwardReference(index)
		t.point("forward", index, nil)
	}
	return s.fwd
}

// CreateAggregate builds an array, struct or vector constant of typ from the
// symbols at elems. Undefined elements hold a placeholder that patches the
// element in place when its symbol is added. The aggregate is not added to
// the table.
func (t *Table) CreateAggregate(typ types.Type, elems []int) (ir.Aggregate, error) {
	var agg ir.Aggregate
	switch typ := typ.(type) {
	case *types.ArrayType:
		agg = ir.NewArrayConstant(typ, len(elems))
	case *types.StructType:
		agg = ir.NewStructureConstant(typ, len(elems))
	case *types.VectorType:
		agg = ir.NewVectorConstant(typ, len(elems))
	default:
		return nil, &UnsupportedTypeKindError{Type: typ}
	}
	for i, index := range elems {
		if index < 0 {
			return nil, &UnresolvedIndexError{Index: index, Size: len(t.slots)}
		}
		if index < len(t.slots) && t.slots[index].state == slotResolved {
			agg.SetElement(i, t.slots[index].sym)
			continue
		}
		fwd := t.placeholder(index)
		fwd.AddAggregateDependent(agg, i)
		agg.SetElement(i, fwd)
	}
	return agg, nil
}

// SetSymbolName names the symbol at index. Names for indices not defined yet
// are kept until AddSymbol fills the slot and dropped if the symbol cannot
// carry a name. Defined symbols without a name slot ignore the call.
func (t *Table) SetSymbolName(index int, name string) error {
	if index < 0 {
		return &UnresolvedIndexError{Index: index, Size: len(t.slots)}
	}
	if index < len(t.slots) && t.slots[index].state == slotResolved {
		if v, ok := t.slots[index].sym.(ir.ValueSymbol); ok {
			v.SetName(name)
		}
		return nil
	}
	t.names[index] = name
	return nil
}

// AddSymbols copies the defined entries of other into t at the same indices.
// The two tables share symbols but not storage. Placeholders cannot be
// copied: their dependents belong to other.
func (t *Table) AddSymbols(other *Table) error {
	for i := range other.slots {
		if other.slots[i].state == slotPlaceholder {
			return &UnresolvedIndexError{Index: i, Size: len(other.slots)}
		}
	}
	t.grow(len(other.slots))
	for i := range other.slots {
		if other.slots[i].state != slotResolved {
			continue
		}
		if t.slots[i].state == slotPlaceholder {
			t.slots[i].fwd.Replace(other.slots[i].sym)
		}
		t.slots[i] = other.slots[i]
	}
	t.next = max(t.next, other.next)
	return nil
}

func (t *Table) point(name string, index int, extra map[string]string) {
	if !t.tracer.Enabled() {
		return
	}
	trace.Point(t.tracer, trace.ScopeSymbol, name, "%"+strconv.Itoa(index), t.span, extra)
}
