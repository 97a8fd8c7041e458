package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	counterStream = "../../internal/replay/testdata/counter.toml"
	testConfig    = "testdata/irmodel.toml"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--color", "off", "--config", testConfig}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestReplayCommand(t *testing.T) {
	out, err := execute(t, "replay", "--ui", "off", "--timings", counterStream)
	if err != nil {
		t.Fatalf("replay: %v\n%s", err, out)
	}
	for _, want := range []string{"ok   counter: 1 globals, 1 functions, 0 declarations", "timings:", "validate"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDumpCommand(t *testing.T) {
	out, err := execute(t, "dump", "--metadata", counterStream)
	if err != nil {
		t.Fatalf("dump: %v\n%s", err, out)
	}
	for _, want := range []string{`source_filename = "counter.c"`, "@limit", "define", "phi"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestEncodeThenReplay(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "counter.irs")
	if out, err := execute(t, "encode", counterStream, dst); err != nil {
		t.Fatalf("encode: %v\n%s", err, out)
	}
	out, err := execute(t, "replay", "--ui", "off", "-j", "1", dst)
	if err != nil {
		t.Fatalf("replay encoded: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok   counter:") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestReplayCommand_MissingFile(t *testing.T) {
	if _, err := execute(t, "replay", "--ui", "off", "testdata/missing.toml"); err == nil {
		t.Fatal("expected an error for a missing stream")
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Tool != "irmodel" || payload.GitCommit != "unknown" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestReplayCommand_Profiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	out, err := execute(t, "--cpu-profile", cpu, "replay", "--ui", "off", counterStream)
	if err != nil {
		t.Fatalf("replay: %v\n%s", err, out)
	}
	if info, err := os.Stat(cpu); err != nil || info.Size() == 0 {
		t.Fatalf("cpu profile not written: %v", err)
	}
}
