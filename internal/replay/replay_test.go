package replay_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/llir/llvm/ir/enum"

	"irmodel/internal/ir"
	"irmodel/internal/irbuild"
	"irmodel/internal/metadata"
	"irmodel/internal/replay"
)

func loadCounter(t *testing.T) *replay.Stream {
	t.Helper()
	s, err := replay.Load("testdata/counter.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestRun_Counter(t *testing.T) {
	m, err := replay.Run(context.Background(), loadCounter(t), irbuild.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := ir.Validate(m); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if m.SourceFilename != "counter.c" {
		t.Fatalf("source filename = %q", m.SourceFilename)
	}

	g := m.Globals[0].(*ir.GlobalVariable)
	if g.Name() != "limit" || g.Linkage != enum.LinkageInternal || g.Align != 4 {
		t.Fatalf("global = %q linkage=%v align=%d", g.Name(), g.Linkage, g.Align)
	}
	if c, ok := g.Initializer.(*ir.IntegerConstant); !ok || c.Value != 10 {
		t.Fatalf("initializer = %#v, want i32 10", g.Initializer)
	}

	def := m.Definitions[0]
	if def.Name() != "count" || len(def.Blocks) != 3 {
		t.Fatalf("definition %q with %d blocks", def.Name(), len(def.Blocks))
	}
	phi := def.Blocks[1].Instructions[0].(*ir.PhiInstruction)
	add := def.Blocks[1].Instructions[1].(*ir.BinaryOperationInstruction)
	if phi.Incoming[1].Value != ir.Symbol(add) {
		t.Fatalf("phi back edge = %#v, want the add", phi.Incoming[1].Value)
	}
	if add.Flags != ir.FlagNoSignedWrap {
		t.Fatalf("add flags = %v, want nsw", add.Flags)
	}
	loc := add.Location()
	if loc.Index() != 3 || !loc.IsPresent() {
		t.Fatalf("add location = %d present=%v", loc.Index(), loc.IsPresent())
	}
	icmp := def.Blocks[1].Instructions[2].(*ir.CompareInstruction)
	if icmp.Predicate != ir.IntPredicate(enum.IPredSGE) {
		t.Fatalf("predicate = %v", icmp.Predicate)
	}
	if icmp.RHS != ir.Symbol(def.Params[0]) {
		t.Fatalf("icmp rhs is not the parameter")
	}

	named := m.Metadata.Named()
	if len(named) != 1 || named[0].Name != "irmodel.functions" {
		t.Fatalf("named metadata = %#v", named)
	}
}

func TestEncodeDecode_RunsSameModule(t *testing.T) {
	want := loadCounter(t)
	var buf bytes.Buffer
	if err := replay.Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := replay.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stream changed through msgpack (-want +got):\n%s", diff)
	}
	if _, err := replay.Run(context.Background(), got, irbuild.Options{}); err != nil {
		t.Fatalf("Run decoded: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := t.TempDir() + "/counter.irs"
	s := loadCounter(t)
	if err := replay.Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := replay.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "counter" || len(got.Ops) != len(s.Ops) {
		t.Fatalf("loaded %q with %d ops", got.Name, len(got.Ops))
	}
}

func TestDecode_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := replay.Encode(&buf, &replay.Stream{Name: "empty"}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := replay.Decode(&buf); !errors.Is(err, replay.ErrEmptyStream) {
		t.Fatalf("expected ErrEmptyStream, got %v", err)
	}
	_, err := replay.DecodeTOML(strings.NewReader("[[op]]\ncode = \"block\"\nbogus = 1\n"))
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func stream(name string, body string) *replay.Stream {
	s, err := replay.DecodeTOML(strings.NewReader(body))
	if err != nil {
		panic(err)
	}
	s.Name = name
	return s
}

const voidFunc = `
[[type]]
kind = "void"
[[type]]
kind = "func"
ret = 0
`

func TestRun_OpErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown", `[[op]]
code = "frobnicate"`, replay.ErrUnknownOp},
		{"no function", `[[op]]
code = "blocks"
args = [1]`, replay.ErrNoFunction},
		{"no block", voidFunc + `
[[op]]
code = "function"
type = 1
[[op]]
code = "function_begin"
[[op]]
code = "ret"`, replay.ErrNoBlock},
		{"missing argument", `[[op]]
code = "name"`, replay.ErrMissingArgument},
		{"missing body", voidFunc + `
[[op]]
code = "function"
type = 1`, irbuild.ErrMissingFunctionBody},
		{"odd switch cases", voidFunc + `
[[op]]
code = "function"
type = 1
[[op]]
code = "function_begin"
[[op]]
code = "blocks"
args = [1]
[[op]]
code = "block"
[[op]]
code = "switch_old"
args = [0, 0, 5]`, replay.ErrOddPairs},
		{"negative metadata", `[[op]]
code = "md_const"
args = [-1]`, metadata.ErrNegativeIndex},
		{"raw float without words", `[[type]]
kind = "fp128"
[[op]]
code = "float_raw"`, replay.ErrMissingArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := replay.Run(context.Background(), stream(tt.name, tt.body), irbuild.Options{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRun_Atomics(t *testing.T) {
	s := stream("atomics", `
[[type]]
kind = "int"
width = 32
[[type]]
kind = "pointer"
elem = 0
[[type]]
kind = "void"
[[type]]
kind = "func"
ret = 2
[[type]]
kind = "int"
width = 1
[[type]]
kind = "struct"
fields = [0, 4]

[[op]]
code = "function"
type = 3
[[op]]
code = "integer"
type = 0
args = [1]
[[op]]
code = "function_begin"
[[op]]
code = "blocks"
args = [1]
[[op]]
code = "block"
[[op]]
code = "alloca"
type = 1
args = [0, 1, 4]
[[op]]
code = "store"
args = [2, 1, 4, 0, 6]
[[op]]
code = "cmpxchg"
type = 5
args = [2, 1, 1, 6, 2, 0, 1]
[[op]]
code = "atomicrmw"
type = 0
args = [1, 2, 1, 5]
[[op]]
code = "fence"
args = [3]
[[op]]
code = "ret"
[[op]]
code = "function_end"
`)
	m, err := replay.Run(context.Background(), s, irbuild.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	insts := m.Definitions[0].Blocks[0].Instructions
	if len(insts) != 6 {
		t.Fatalf("got %d instructions", len(insts))
	}
	store := insts[1].(*ir.StoreInstruction)
	if store.Ordering != enum.AtomicOrderingSequentiallyConsistent || store.Align != 4 {
		t.Fatalf("store ordering=%v align=%d", store.Ordering, store.Align)
	}
	xchg := insts[2].(*ir.CompareExchangeInstruction)
	if xchg.SuccessOrdering != enum.AtomicOrderingSequentiallyConsistent || xchg.FailureOrdering != enum.AtomicOrderingMonotonic || !xchg.Weak || xchg.Volatile {
		t.Fatalf("cmpxchg = %+v", xchg)
	}
	rmw := insts[3].(*ir.ReadModifyWriteInstruction)
	if rmw.Operation != enum.AtomicOpAdd || rmw.Ordering != enum.AtomicOrderingAcquireRelease {
		t.Fatalf("atomicrmw op=%v ordering=%v", rmw.Operation, rmw.Ordering)
	}
	if f := insts[4].(*ir.FenceInstruction); f.Ordering != enum.AtomicOrderingAcquire {
		t.Fatalf("fence ordering = %v", f.Ordering)
	}
	if err := ir.Validate(m); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestBuildAll_CollectsErrors(t *testing.T) {
	streams := []*replay.Stream{
		loadCounter(t),
		stream("bad-op", `[[op]]
code = "frobnicate"`),
		stream("no-body", voidFunc+`
[[op]]
code = "function"
type = 1`),
	}
	modules, err := replay.BuildAll(context.Background(), streams, irbuild.Options{}, 2)
	if err == nil {
		t.Fatal("expected an error")
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) != 2 {
		t.Fatalf("expected two collected errors, got %v", err)
	}
	if !errors.Is(merr.Errors[0], replay.ErrUnknownOp) {
		t.Fatalf("first error = %v", merr.Errors[0])
	}
	if !errors.Is(merr.Errors[1], irbuild.ErrMissingFunctionBody) {
		t.Fatalf("second error = %v", merr.Errors[1])
	}
	if modules[0] == nil || modules[1] != nil || modules[2] != nil {
		t.Fatalf("modules = %v", modules)
	}
}

func TestBuildAll_Empty(t *testing.T) {
	modules, err := replay.BuildAll(context.Background(), nil, irbuild.Options{}, 0)
	if err != nil || len(modules) != 0 {
		t.Fatalf("BuildAll(nil) = %v, %v", modules, err)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events map[int][]replay.Status
}

func (s *recordingSink) OnEvent(evt replay.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[evt.Index] = append(s.events[evt.Index], evt.Status)
}

func TestBuildAllWithProgress(t *testing.T) {
	streams := []*replay.Stream{
		loadCounter(t),
		stream("bad-op", `[[op]]
code = "frobnicate"`),
	}
	sink := &recordingSink{events: make(map[int][]replay.Status)}
	_, _ = replay.BuildAllWithProgress(context.Background(), streams, irbuild.Options{}, 1, sink)

	want := map[int][]replay.Status{
		0: {replay.StatusQueued, replay.StatusWorking, replay.StatusDone},
		1: {replay.StatusQueued, replay.StatusWorking, replay.StatusError},
	}
	if diff := cmp.Diff(want, sink.events); diff != "" {
		t.Fatalf("progress events mismatch (-want +got):\n%s", diff)
	}
}

// dispatchStream exercises the branch, vector and aggregate handlers; symbol
// 13 is used by the first switch and by insertvalue before it is defined.
const dispatchStream = `
[[type]]
kind = "int"
width = 32
[[type]]
kind = "void"
[[type]]
kind = "func"
ret = 1
params = [0]
[[type]]
kind = "x86_fp80"
[[type]]
kind = "int"
width = 64
[[type]]
kind = "vector"
len = 4
elem = 0
[[type]]
kind = "struct"
fields = [0, 0]
[[type]]
kind = "pointer"
elem = 0

[[op]]
code = "function"
type = 2
[[op]]
code = "integer"
type = 0
args = [7]
[[op]]
code = "float_raw"
type = 3
args = [1, 16383]
[[op]]
code = "undef"
type = 5
[[op]]
code = "undef"
type = 6

[[op]]
code = "function_begin"
[[op]]
code = "blocks"
args = [4]
[[op]]
code = "param"
type = 0

[[op]]
code = "block"
[[op]]
code = "switch"
args = [5, 3, 1, 1, 13, 2]

[[op]]
code = "block"
[[op]]
code = "switch_old"
args = [5, 3, 5, 2, -4, 3]

[[op]]
code = "block"
[[op]]
code = "cast"
type = 4
args = [2, 5]
[[op]]
code = "fneg"
type = 3
args = [2]
[[op]]
code = "extractelement"
type = 0
args = [3, 1]
[[op]]
code = "insertelement"
type = 5
args = [3, 8, 1]
[[op]]
code = "shufflevector"
type = 5
args = [9, 3, 3]
[[op]]
code = "insertvalue"
type = 6
args = [4, 13, 1]
[[op]]
code = "extractvalue"
type = 0
args = [11, 1]
[[op]]
code = "integer"
type = 0
args = [9]
[[op]]
code = "select"
type = 0
args = [5, 12, 13]
[[op]]
code = "gep"
type = 7
args = [1, 5, 1]
[[op]]
code = "unreachable"

[[op]]
code = "block"
[[op]]
code = "indirectbr"
args = [15, 1, 2]
[[op]]
code = "function_end"
`

func TestRun_Dispatch(t *testing.T) {
	m, err := replay.Run(context.Background(), stream("dispatch", dispatchStream), irbuild.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := ir.Validate(m); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	fn := m.Definitions[0]
	param := fn.Params[0]

	sw := fn.Blocks[0].Instructions[0].(*ir.SwitchInstruction)
	if sw.Condition != param || sw.Default.Index != 3 || len(sw.Cases) != 2 {
		t.Fatalf("switch = %+v", sw)
	}
	nine, ok := sw.Cases[1].Value.(*ir.IntegerConstant)
	if !ok || nine.Value != 9 || sw.Cases[1].Block.Index != 2 {
		t.Fatalf("forward case = %#v -> %d", sw.Cases[1].Value, sw.Cases[1].Block.Index)
	}

	old := fn.Blocks[1].Instructions[0].(*ir.SwitchOldInstruction)
	var literals []int64
	var targets []int
	for _, c := range old.Cases {
		literals = append(literals, c.Value)
		targets = append(targets, c.Block.Index)
	}
	if diff := cmp.Diff([]int64{5, -4}, literals); diff != "" {
		t.Fatalf("switch_old literals (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3}, targets); diff != "" {
		t.Fatalf("switch_old targets (-want +got):\n%s", diff)
	}

	body := fn.Blocks[2].Instructions
	kinds := make([]string, len(body))
	for i, inst := range body {
		kinds[i] = fmt.Sprintf("%T", inst)
	}
	wantKinds := []string{
		"*ir.CastInstruction", "*ir.UnaryOperationInstruction",
		"*ir.ExtractElementInstruction", "*ir.InsertElementInstruction",
		"*ir.ShuffleVectorInstruction", "*ir.InsertValueInstruction",
		"*ir.ExtractValueInstruction", "*ir.SelectInstruction",
		"*ir.GetElementPointerInstruction", "*ir.UnreachableInstruction",
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("block 2 (-want +got):\n%s", diff)
	}
	if c := body[0].(*ir.CastInstruction); c.Operator != ir.CastSExt || c.Value != param {
		t.Fatalf("cast = %v of %#v", c.Operator, c.Value)
	}
	fp, ok := body[1].(*ir.UnaryOperationInstruction).Operand.(*ir.FloatingPointConstant)
	if !ok || !cmp.Equal([]uint64{1, 16383}, fp.Raw) {
		t.Fatalf("fneg operand = %#v", body[1].(*ir.UnaryOperationInstruction).Operand)
	}
	if iv := body[5].(*ir.InsertValueInstruction); iv.Value != sw.Cases[1].Value || !cmp.Equal([]uint64{1}, iv.Indices) {
		t.Fatalf("insertvalue = %+v", iv)
	}
	if ev := body[6].(*ir.ExtractValueInstruction); ev.Aggregate != body[5] {
		t.Fatalf("extractvalue aggregate = %#v", ev.Aggregate)
	}
	if sel := body[7].(*ir.SelectInstruction); sel.TrueValue != body[6] || sel.FalseValue != sw.Cases[1].Value {
		t.Fatalf("select = %+v", sel)
	}
	gep := body[8].(*ir.GetElementPointerInstruction)
	if !gep.InBounds || gep.Base != param || len(gep.Indices) != 1 {
		t.Fatalf("gep = %+v", gep)
	}

	br := fn.Blocks[3].Instructions[0].(*ir.IndirectBranchInstruction)
	if br.Address != gep || len(br.Destinations) != 2 || br.Destinations[1].Index != 2 {
		t.Fatalf("indirectbr = %+v", br)
	}
}
