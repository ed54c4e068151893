package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReportOrder(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	tm.Track("identifier-casing")("")
	stop := tm.Track("bracket-padding")
	stop("3 changes")
	stop("ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("want 2 phases, got %d", len(rep.Phases))
	}
	if rep.Phases[0].Name != "identifier-casing" || rep.Phases[1].Note != "3 changes" {
		t.Fatalf("unexpected phases: %+v", rep.Phases)
	}
	if rep.Phases[0].DurationMS != 1 || rep.TotalMS != 2 {
		t.Fatalf("unexpected durations: %+v", rep)
	}
}

func TestEmptyReport(t *testing.T) {
	if rep := NewTimer().Report(); len(rep.Phases) != 0 || rep.TotalMS != 0 {
		t.Fatalf("want empty report, got %+v", rep)
	}
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "x", DurationMS: 1}, {Name: "y", DurationMS: 2, Note: "n"}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "y", DurationMS: 4}, {Name: "z", DurationMS: 1}}}

	got := a.Merge(b)
	if got.TotalMS != 8 {
		t.Fatalf("total: want 8 got %v", got.TotalMS)
	}
	want := []PhaseReport{{Name: "x", DurationMS: 1}, {Name: "y", DurationMS: 6}, {Name: "z", DurationMS: 1}}
	if len(got.Phases) != len(want) {
		t.Fatalf("phases: want %+v got %+v", want, got.Phases)
	}
	for i := range want {
		if got.Phases[i] != want[i] {
			t.Fatalf("phase %d: want %+v got %+v", i, want[i], got.Phases[i])
		}
	}
	if a.Phases[1].DurationMS != 2 {
		t.Fatalf("Merge must not modify the receiver")
	}
}

func TestSummary(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)
	tm.Track("blank-lines")("")
	s := tm.Report().Summary()
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "blank-lines") || !strings.Contains(s, "100.0%") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
	if !strings.Contains(s, "total") {
		t.Fatalf("total row missing:\n%s", s)
	}
}
