package literal

import (
	"errors"
	"fmt"
)

var (
	// ErrLineCount means the texts no longer correspond line for line.
	ErrLineCount = errors.New("line count differs between original and filtered text")
	// ErrSpanCount means a line lost or gained literal spans during filtering.
	ErrSpanCount = errors.New("literal span count differs between original and filtered line")
)

// MismatchError describes a failed consistency check. For ErrLineCount, Line
// and Kind are zero and the counts are line counts.
type MismatchError struct {
	Line          int // 1-based
	Kind          Kind
	OriginalCount int
	FilteredCount int
	Original      string
	Filtered      string
	err           error
}

func (e *MismatchError) Error() string {
	if errors.Is(e.err, ErrLineCount) {
		return fmt.Sprintf("%v: %d lines in original, %d after filtering", e.err, e.OriginalCount, e.FilteredCount)
	}
	return fmt.Sprintf("line %d: %d %s literals in original, %d after filtering", e.Line, e.OriginalCount, e.Kind, e.FilteredCount)
}

func (e *MismatchError) Unwrap() error {
	return e.err
}
