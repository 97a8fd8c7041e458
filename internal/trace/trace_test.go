package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevel_ShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeModule, true},
		{LevelPhase, ScopeFunction, false},
		{LevelDetail, ScopeFunction, true},
		{LevelDetail, ScopeSymbol, false},
		{LevelDebug, ScopeSymbol, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracer_SpanText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	mod := Begin(tr, ScopeModule, "module:demo", 0)
	fn := Begin(tr, ScopeFunction, "function:@main", mod.ID())
	Point(tr, ScopeSymbol, "forward", "%7", fn.ID(), nil)
	fn.End("3 blocks")
	mod.WithExtra("globals", "2").End("")

	out := buf.String()
	for _, want := range []string{"→ module:demo", "→ function:@main", "← function:@main (3 blocks)", "{globals=2}"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "forward") {
		t.Errorf("symbol point leaked at detail level:\n%s", out)
	}
	if got := mod.End("again"); got != 0 {
		t.Errorf("second End returned %v", got)
	}
}

func TestStreamTracer_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeSymbol, "resolve", "%5", 9, map[string]string{"dependents": "2"})

	var ev struct {
		Kind     string            `json:"kind"`
		Scope    string            `json:"scope"`
		ParentID uint64            `json:"parent_id"`
		Name     string            `json:"name"`
		Detail   string            `json:"detail"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if ev.Scope != "symbol" || ev.Name != "resolve" || ev.Detail != "%5" || ev.ParentID != 9 || ev.Extra["dependents"] != "2" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestRingTracer_KeepsLatest(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeSymbol, name, "", 0, nil)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, ",") != "b,c" {
		t.Fatalf("snapshot = %v, want [b c]", names)
	}
}

func TestNew_Modes(t *testing.T) {
	if tr, err := New(Config{Level: LevelOff}); err != nil || tr != Nop {
		t.Fatalf("LevelOff = %v, %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok || multi.Ring() == nil {
		t.Fatalf("ModeBoth tracer = %T", tr)
	}
	Begin(tr, ScopeDriver, "replay", 0).End("")
	if buf.Len() == 0 || len(multi.Ring().Snapshot()) != 2 {
		t.Fatalf("stream got %d bytes, ring %d events", buf.Len(), len(multi.Ring().Snapshot()))
	}
}

func TestParse(t *testing.T) {
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel accepted junk")
	}
	if m, err := ParseMode("RING"); err != nil || m != ModeRing {
		t.Errorf("ParseMode(RING) = %v, %v", m, err)
	}
	if f, err := ParseFormat("jsonl"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(jsonl) = %v, %v", f, err)
	}
}

func TestRingTracer_Reset(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for range 5 {
		Point(ring, ScopeSymbol, "forward", "", 0, nil)
	}
	if ring.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ring.Len())
	}
	ring.Reset()
	if ring.Len() != 0 || len(ring.Snapshot()) != 0 {
		t.Fatalf("ring not empty after Reset")
	}
	var buf bytes.Buffer
	Point(ring, ScopeModule, "module:x", "", 0, nil)
	if err := ring.Dump(&buf, FormatText); err != nil || !strings.Contains(buf.String(), "module:x") {
		t.Fatalf("Dump = %q, %v", buf.String(), err)
	}
}
