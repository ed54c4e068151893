package diag

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"restyle/internal/filter"
	"restyle/internal/literal"
	"restyle/internal/pipeline"
)

// Note is a labelled source line shown under a diagnostic. Caret, when
// non-negative, is the byte offset in Text to point at.
type Note struct {
	Label string
	Text  string
	Caret int
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Path     string // "<stdin>" for standard input
	Line     uint32 // 1-based, 0 when unknown
	Stage    string
	Message  string
	Notes    []Note
}

// FromError classifies err into a Diagnostic for path.
func FromError(path string, err error) Diagnostic {
	d := Diagnostic{
		Severity: SevError,
		Code:     UnknownCode,
		Path:     path,
		Message:  err.Error(),
	}

	var se *pipeline.StageError
	if errors.As(err, &se) {
		d.Stage = se.Stage
		d.Code = FltStageFailed
		d.Message = se.Err.Error()
	}

	var mm *literal.MismatchError
	switch {
	case errors.As(err, &mm) && errors.Is(err, literal.ErrSpanCount):
		d.Code = LitSpanCount
		d.Message = fmt.Sprintf("%d %s literals in original line, %d after filtering", mm.OriginalCount, mm.Kind, mm.FilteredCount)
		if line, convErr := safecast.Conv[uint32](mm.Line); convErr == nil {
			d.Line = line
		}
		caret := firstDifference(mm.Original, mm.Filtered)
		d.Notes = []Note{
			{Label: "original", Text: mm.Original, Caret: -1},
			{Label: "filtered", Text: mm.Filtered, Caret: caret},
		}
	case errors.Is(err, literal.ErrLineCount):
		d.Code = LitLineCount
		if mm != nil {
			d.Message = mm.Error()
		}
	case errors.Is(err, filter.ErrMatch):
		d.Code = FltMatchAborted
	case errors.Is(err, ErrRead):
		d.Code = IOReadFailed
	case errors.Is(err, ErrWrite):
		d.Code = IOWriteFailed
	case errors.Is(err, ErrConfig):
		d.Code = CfgInvalid
	}
	return d
}

// firstDifference returns the byte offset of the first byte where a and b
// differ, on a rune boundary of b.
func firstDifference(a, b string) int {
	i := 0
	for _, r := range b {
		if i >= len(a) || !hasRuneAt(a, i, r) {
			return i
		}
		i += len(string(r))
	}
	return i
}

func hasRuneAt(s string, off int, r rune) bool {
	enc := string(r)
	return len(s)-off >= len(enc) && s[off:off+len(enc)] == enc
}
