package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// RenderOptions configures Render.
type RenderOptions struct {
	Color bool
}

type palette struct {
	sev, code, loc, label, caret *color.Color
}

func newPalette(sev Severity, enabled bool) palette {
	sevColor := color.New(color.FgRed, color.Bold)
	switch sev {
	case SevWarning:
		sevColor = color.New(color.FgYellow, color.Bold)
	case SevInfo:
		sevColor = color.New(color.FgCyan)
	}
	p := palette{
		sev:   sevColor,
		code:  color.New(color.Bold),
		loc:   color.New(color.FgWhite, color.Bold),
		label: color.New(color.FgBlue),
		caret: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.sev, p.code, p.loc, p.label, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Render writes d in the form
//
//	path:line: ERROR LIT1001: message (stage name)
//	  original | s = "a" + "b"
//	  filtered | s = "a + "b"
//	           |        ^
func Render(w io.Writer, d Diagnostic, opts RenderOptions) error {
	p := newPalette(d.Severity, opts.Color)

	var sb strings.Builder
	loc := d.Path
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", d.Path, d.Line)
	}
	fmt.Fprintf(&sb, "%s: %s %s: %s", p.loc.Sprint(loc), p.sev.Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
	if d.Stage != "" {
		fmt.Fprintf(&sb, " (stage %s)", d.Stage)
	}
	sb.WriteString("\n")

	width := 0
	for _, n := range d.Notes {
		width = max(width, runewidth.StringWidth(n.Label))
	}
	for _, n := range d.Notes {
		label := n.Label + strings.Repeat(" ", width-runewidth.StringWidth(n.Label))
		fmt.Fprintf(&sb, "  %s | %s\n", p.label.Sprint(label), n.Text)
		if n.Caret >= 0 && n.Caret <= len(n.Text) {
			fmt.Fprintf(&sb, "  %s | %s%s\n", strings.Repeat(" ", width), caretPad(n.Text[:n.Caret]), p.caret.Sprint("^"))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// caretPad reproduces the display width of prefix, keeping tabs so the caret
// lines up under the text in a terminal.
func caretPad(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
