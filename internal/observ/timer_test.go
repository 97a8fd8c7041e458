package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimer_Report(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin("load")
	tm.End(load, "2 streams")
	boom := errors.New("boom")
	if err := tm.Time("replay", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Time returned %v", err)
	}
	tm.End(42, "ignored")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("got %d phases", len(report.Phases))
	}
	if report.Phases[0].Note != "2 streams" || report.Phases[1].Note != "failed" {
		t.Fatalf("notes = %q, %q", report.Phases[0].Note, report.Phases[1].Note)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total %.3f below phase %.3f", report.TotalMS, report.Phases[0].DurationMS)
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 2 streams", "replay", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimer_Empty(t *testing.T) {
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("empty report = %+v", r)
	}
}
