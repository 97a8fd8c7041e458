package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"irmodel/internal/replay"
)

func TestProgressModel_ApplyEvents(t *testing.T) {
	m := NewProgressModel("replay", []string{"counter", "atomics"}, nil).(*progressModel)

	m.applyEvent(replay.Event{Index: 0, Status: replay.StatusWorking})
	if got := m.fraction(); got != 0.25 {
		t.Fatalf("fraction = %v, want 0.25", got)
	}
	m.applyEvent(replay.Event{Index: 1, Status: replay.StatusError, Err: errors.New("op 3 (frob): unknown op code")})
	m.applyEvent(replay.Event{Index: 7, Status: replay.StatusDone})
	if got := m.fraction(); got != 0.75 {
		t.Fatalf("fraction = %v, want 0.75", got)
	}

	view := m.View()
	for _, want := range []string{"replay", "counter", "working", "error", "unknown op code"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{})
	if !strings.Contains(m.View(), "done: replay") {
		t.Fatalf("finished view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"counter", 20, "counter"},
		{"abcdefghij", 6, "abc..."},
		{"abcdefghij", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		terminal bool
		want     bool
	}{
		{"", true, true},
		{"auto", false, false},
		{" ON ", false, true},
		{"off", true, false},
	}
	for _, tt := range tests {
		m, err := ParseMode(tt.in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", tt.in, err)
		}
		if got := m.Enabled(tt.terminal); got != tt.want {
			t.Errorf("ParseMode(%q).Enabled(%v) = %v, want %v", tt.in, tt.terminal, got, tt.want)
		}
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Error("ParseMode accepted an unknown value")
	}
}

func TestProgressModel_CtrlCInterrupts(t *testing.T) {
	m := NewProgressModel("replay", []string{"counter"}, nil)
	if Interrupted(m) {
		t.Fatal("fresh model reports an interrupt")
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !Interrupted(next) {
		t.Fatalf("ctrl+c did not quit the view")
	}
}
