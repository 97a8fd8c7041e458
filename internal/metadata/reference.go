package metadata

// Reference points into a metadata index space.
//
// Unlike symbol table operands, references are never patched: absence is a
// valid state and consumers re-check IsPresent when they need the node.
type Reference interface {
	// Index is the referenced index, 0 for the void reference.
	Index() int
	// IsPresent reports whether the node exists right now.
	IsPresent() bool
	// Node returns the referenced node.
	Node() (Node, error)
}

type voidReference struct{}

func (voidReference) Index() int          { return 0 }
func (voidReference) IsPresent() bool     { return false }
func (voidReference) Node() (Node, error) { return nil, ErrEmptyReference }
func (voidReference) String() string      { return "null" }

// Void is the shared reference for index 0. It is never present.
var Void Reference = voidReference{}

// IsVoid reports whether r is nil or the void reference.
func IsVoid(r Reference) bool {
	return r == nil || r == Void
}

type lazyReference struct {
	block *Block
	index int
}

func (r *lazyReference) Index() int { return r.index }

func (r *lazyReference) IsPresent() bool { return r.block.has(r.index) }

func (r *lazyReference) Node() (Node, error) { return r.block.Get(r.index) }
