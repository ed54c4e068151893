// Package observ measures how long each pipeline stage takes.
package observ

import (
	"fmt"
	"strings"
	"time"
)

type stageTime struct {
	name string
	dur  time.Duration
	note string
}

// Timer records stage durations for one run. Every file gets its own Timer;
// it is not safe for concurrent use.
type Timer struct {
	stages []stageTime
	now    func() time.Time
}

func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Track starts timing name. The returned func stops the clock and attaches
// an optional note; calling it twice has no further effect.
func (t *Timer) Track(name string) func(note string) {
	idx := len(t.stages)
	t.stages = append(t.stages, stageTime{name: name})
	started := t.now()
	done := false
	return func(note string) {
		if done {
			return
		}
		done = true
		t.stages[idx].dur = t.now().Sub(started)
		t.stages[idx].note = note
	}
}

// PhaseReport is one finished stage in milliseconds.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report lists stages in the order they started.
func (t *Timer) Report() Report {
	var r Report
	for _, s := range t.stages {
		ms := s.dur.Seconds() * 1e3
		r.TotalMS += ms
		r.Phases = append(r.Phases, PhaseReport{Name: s.name, DurationMS: ms, Note: s.note})
	}
	return r
}

// Merge sums other into a copy of r by stage name. Notes are dropped since
// they describe a single file.
func (r Report) Merge(other Report) Report {
	merged := Report{TotalMS: r.TotalMS + other.TotalMS}
	pos := map[string]int{}
	for _, list := range [][]PhaseReport{r.Phases, other.Phases} {
		for _, p := range list {
			if i, ok := pos[p.Name]; ok {
				merged.Phases[i].DurationMS += p.DurationMS
				continue
			}
			pos[p.Name] = len(merged.Phases)
			merged.Phases = append(merged.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
		}
	}
	return merged
}

// Summary renders r as an aligned table with each stage's share of the total.
func (r Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		share := 0.0
		if r.TotalMS > 0 {
			share = 100 * p.DurationMS / r.TotalMS
		}
		fmt.Fprintf(&sb, "  %-18s %8.3f ms %5.1f%%", p.Name, p.DurationMS, share)
		if p.Note != "" {
			fmt.Fprintf(&sb, "  (%s)", p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-18s %8.3f ms\n", "total", r.TotalMS)
	return sb.String()
}
