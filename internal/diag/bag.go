package diag

import (
	"cmp"
	"slices"
	"sync"
)

// Bag gathers diagnostics from concurrently processed files. A positive
// limit caps how many are kept; the rest are only counted.
type Bag struct {
	mu      sync.Mutex
	limit   int
	items   []Diagnostic
	dropped int
}

func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

// Add reports whether d was kept.
func (b *Bag) Add(d Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.limit > 0 && len(b.items) == b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Dropped counts diagnostics refused because of the limit.
func (b *Bag) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Items returns the kept diagnostics ordered by path and line, worst first
// within a line.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	out := slices.Clone(b.items)
	b.mu.Unlock()

	slices.SortStableFunc(out, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Path, y.Path),
			cmp.Compare(x.Line, y.Line),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
	return out
}
