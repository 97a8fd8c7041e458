package metadata

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// ErrEmptyReference is returned when the node behind the void reference is requested.
var ErrEmptyReference = errors.New("metadata: dereferencing the empty reference")

// ErrUnknownNode is returned by Get when no node is stored at the index.
var ErrUnknownNode = errors.New("metadata: no node at index")

// ErrNegativeIndex is returned by ReferenceAt for indices below 0.
var ErrNegativeIndex = errors.New("metadata: negative index")

// Block is an index space of metadata nodes.
//
// A root block starting at 0 reserves index 0 for the void reference.
// A function block starts where its parent ended and delegates lower
// indices to the parent.
type Block struct {
	start  int
	parent *Block
	nodes  []Node
	named  []NamedNode
}

// NewBlock creates a block whose first node receives index start.
func NewBlock(start int, parent *Block) *Block {
	b := &Block{start: max(start, 0), parent: parent}
	if b.reserved() {
		b.nodes = make([]Node, 1, 16) // index 0 reserved for the void reference
	}
	return b
}

func (b *Block) reserved() bool { return b.parent == nil && b.start == 0 }

// Start reports the index of the first node owned by this block.
func (b *Block) Start() int { return b.start }

// Size reports the number of index slots owned by this block.
func (b *Block) Size() int { return len(b.nodes) }

// End reports the first index past this block.
func (b *Block) End() int { return b.start + len(b.nodes) }

// Parent returns the enclosing block, nil for the module block.
func (b *Block) Parent() *Block { return b.parent }

// Add appends a node and returns its index.
func (b *Block) Add(n Node) int {
	if n == nil {
		panic("metadata.Add: nil node")
	}
	idx := b.End()
	if _, err := safecast.Conv[uint32](idx); err != nil {
		panic(fmt.Errorf("metadata block overflow: %w", err))
	}
	b.nodes = append(b.nodes, n)
	return idx
}

// Get returns the node stored at index.
func (b *Block) Get(index int) (Node, error) {
	if index < b.start {
		if b.parent == nil {
			return nil, fmt.Errorf("%w %d", ErrUnknownNode, index)
		}
		return b.parent.Get(index)
	}
	pos := index - b.start
	if pos >= len(b.nodes) || b.nodes[pos] == nil {
		return nil, fmt.Errorf("%w %d", ErrUnknownNode, index)
	}
	return b.nodes[pos], nil
}

// Nodes returns the nodes owned by this block in index order.
// The reserved void slot is skipped.
func (b *Block) Nodes() []Node {
	if b.reserved() {
		return b.nodes[1:]
	}
	return b.nodes
}

// has reports whether index is populated at the time of the call.
func (b *Block) has(index int) bool {
	if index < 0 {
		return false
	}
	if index < b.start {
		return b.parent != nil && b.parent.has(index)
	}
	return len(b.nodes) > index-b.start
}

// Reference returns a reference to index. Index 0 yields Void.
// Presence is checked when the reference is queried, not here.
// A negative index is never present; use ReferenceAt to reject it.
func (b *Block) Reference(index int) Reference {
	if index == 0 {
		return Void
	}
	return &lazyReference{block: b, index: index}
}

// ReferenceAt is Reference failing with ErrNegativeIndex for index < 0.
func (b *Block) ReferenceAt(index int) (Reference, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w %d", ErrNegativeIndex, index)
	}
	return b.Reference(index), nil
}

// ReferenceID is Reference for raw record values.
func (b *Block) ReferenceID(id uint64) (Reference, error) {
	index, err := safecast.Conv[int](id)
	if err != nil {
		return nil, fmt.Errorf("metadata reference %d: %w", id, err)
	}
	return b.ReferenceAt(index)
}

// AddNamed records a named node such as !llvm.dbg.cu.
func (b *Block) AddNamed(name string, operands ...Reference) {
	b.named = append(b.named, NamedNode{Name: name, Operands: operands})
}

// Named returns the named nodes in insertion order.
func (b *Block) Named() []NamedNode { return b.named }
