package metadata

import (
	"errors"
	"math"
	"testing"
)

func TestVoidReference(t *testing.T) {
	b := NewBlock(0, nil)
	ref := b.Reference(0)
	if ref != Void {
		t.Fatalf("expected index 0 to yield the shared void reference, got %#v", ref)
	}
	if ref.IsPresent() {
		t.Fatalf("void reference must never be present")
	}
	if _, err := ref.Node(); !errors.Is(err, ErrEmptyReference) {
		t.Fatalf("expected ErrEmptyReference, got %v", err)
	}
	b.Add(&StringNode{Value: "x"})
	if b.Reference(0).IsPresent() {
		t.Fatalf("void reference became present after adding nodes")
	}
}

func TestReferencePresenceIsLazy(t *testing.T) {
	b := NewBlock(0, nil)
	ref := b.Reference(2)

	if ref.IsPresent() {
		t.Fatalf("index 2 present in empty block")
	}
	// Querying twice must not change anything.
	if ref.IsPresent() || b.Size() != 1 {
		t.Fatalf("presence query mutated the block: size=%d", b.Size())
	}

	if got := b.Add(&StringNode{Value: "a"}); got != 1 {
		t.Fatalf("first node index = %d, want 1", got)
	}
	if ref.IsPresent() {
		t.Fatalf("index 2 present with only one node")
	}
	b.Add(&FileNode{Filename: "a.c", Directory: "/src"})
	if !ref.IsPresent() {
		t.Fatalf("index 2 not present after second node")
	}
	n, err := ref.Node()
	if err != nil {
		t.Fatalf("node: %v", err)
	}
	if f, ok := n.(*FileNode); !ok || f.Filename != "a.c" {
		t.Fatalf("unexpected node %#v", n)
	}
}

func TestChildBlockDelegatesBelowStart(t *testing.T) {
	mod := NewBlock(0, nil)
	mod.Add(&StringNode{Value: "module"})
	mod.Add(&StringNode{Value: "module-2"})

	fn := NewBlock(mod.End(), mod)
	if fn.Start() != 3 {
		t.Fatalf("function block start = %d, want 3", fn.Start())
	}

	local := fn.Reference(3)
	if local.IsPresent() {
		t.Fatalf("local node present before add")
	}
	if idx := fn.Add(&LocationNode{Line: 4, Column: 2, Scope: fn.Reference(1)}); idx != 3 {
		t.Fatalf("local index = %d, want 3", idx)
	}
	if !local.IsPresent() {
		t.Fatalf("local node missing after add")
	}

	outer := fn.Reference(2)
	if !outer.IsPresent() {
		t.Fatalf("module node not visible through function block")
	}
	n, err := outer.Node()
	if err != nil {
		t.Fatalf("node: %v", err)
	}
	if s := n.(*StringNode); s.Value != "module-2" {
		t.Fatalf("got %q", s.Value)
	}
}

func TestGetUnknownIndex(t *testing.T) {
	b := NewBlock(0, nil)
	if _, err := b.Get(0); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode for reserved slot, got %v", err)
	}
	if _, err := b.Get(5); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
}

func TestReferenceIDOverflow(t *testing.T) {
	b := NewBlock(0, nil)
	if _, err := b.ReferenceID(math.MaxUint64); err == nil {
		t.Fatalf("expected overflow error")
	}
	ref, err := b.ReferenceID(0)
	if err != nil || ref != Void {
		t.Fatalf("ReferenceID(0) = %v, %v", ref, err)
	}
}

func TestNegativeIndexIsNotVoid(t *testing.T) {
	b := NewBlock(0, nil)
	b.Add(&StringNode{Value: "a"})
	ref := b.Reference(-1)
	if ref == Void || ref.IsPresent() {
		t.Fatalf("Reference(-1) = %#v, want an absent non-void reference", ref)
	}
	if _, err := ref.Node(); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
	if _, err := b.ReferenceAt(-1); !errors.Is(err, ErrNegativeIndex) {
		t.Fatalf("expected ErrNegativeIndex, got %v", err)
	}
	if got, err := b.ReferenceAt(0); err != nil || got != Void {
		t.Fatalf("ReferenceAt(0) = %v, %v", got, err)
	}
}

func TestNamedNodes(t *testing.T) {
	b := NewBlock(0, nil)
	cu := b.Add(&CompileUnitNode{Producer: "clang"})
	b.AddNamed("llvm.dbg.cu", b.Reference(cu))

	named := b.Named()
	if len(named) != 1 || named[0].Name != "llvm.dbg.cu" {
		t.Fatalf("unexpected named nodes %#v", named)
	}
	if !named[0].Operands[0].IsPresent() {
		t.Fatalf("named operand not present")
	}
	if len(b.Nodes()) != 1 {
		t.Fatalf("Nodes() should skip the reserved slot, got %d", len(b.Nodes()))
	}
}

func TestRootBlockWithStartOffset(t *testing.T) {
	b := NewBlock(8, nil)
	if got := b.Add(&StringNode{Value: "a"}); got != 8 {
		t.Fatalf("first node index = %d, want 8", got)
	}
	if b.Reference(3).IsPresent() {
		t.Fatalf("index below start of a root block must be absent")
	}
	if !b.Reference(8).IsPresent() {
		t.Fatalf("index 8 should be present")
	}
	if len(b.Nodes()) != 1 {
		t.Fatalf("offset root block reserves no slot, got %d nodes", len(b.Nodes()))
	}
}
