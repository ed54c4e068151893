package literal

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Restore returns filtered with every literal span replaced by the span at the
// same position in original: double-quoted spans first, then single-quoted ones.
// Edits outside literals are kept. The result always ends with a line break,
// except that empty input on both sides restores to empty output.
func (r *Restorer) Restore(original, filtered string) (string, error) {
	if original == "" && filtered == "" {
		return "", nil
	}
	origLines := splitLines(original)
	lines := splitLines(filtered)
	if len(origLines) != len(lines) {
		return "", &MismatchError{
			OriginalCount: len(origLines),
			FilteredCount: len(lines),
			err:           ErrLineCount,
		}
	}

	for i := range lines {
		fixed, err := r.restoreLine(i+1, origLines[i], lines[i])
		if err != nil {
			return "", err
		}
		lines[i] = fixed
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func (r *Restorer) restoreLine(lineNo int, orig, line string) (string, error) {
	for _, kind := range Kinds {
		want, err := r.Spans(orig, kind)
		if err != nil {
			return "", err
		}
		have, err := r.Spans(line, kind)
		if err != nil {
			return "", err
		}
		if len(want) != len(have) {
			return "", &MismatchError{
				Line:          lineNo,
				Kind:          kind,
				OriginalCount: len(want),
				FilteredCount: len(have),
				Original:      orig,
				Filtered:      line,
				err:           ErrSpanCount,
			}
		}
		if len(want) == 0 {
			continue
		}
		next := 0
		line, err = r.spans[kind].ReplaceFunc(line, func(regexp2.Match) string {
			s := want[next]
			next++
			return s
		}, -1, -1)
		if err != nil {
			return "", fmt.Errorf("literal: line %d: %w", lineNo, err)
		}
	}
	return line, nil
}
