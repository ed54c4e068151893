// Package ui renders file progress for long runs in a terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"restyle/internal/driver"
)

// maxListed caps the file rows drawn under the bar.
const maxListed = 12

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	statusColor = map[driver.Status]lipgloss.Color{
		driver.StatusQueued:  "8",
		driver.StatusWorking: "6",
		driver.StatusCached:  "4",
		driver.StatusDone:    "2",
		driver.StatusError:   "1",
	}
)

type row struct {
	path   string
	status driver.Status
}

// board is the Bubble Tea model. Rows keep the order files were given in.
type board struct {
	title  string
	events <-chan driver.Event

	spin spinner.Model
	bar  progress.Model

	rows   []row
	byPath map[string]int
	tally  map[driver.Status]int

	width  int
	closed bool
}

type eventMsg driver.Event

type closedMsg struct{}

// NewProgressModel draws a tally, an overall bar and the files that need
// attention. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	b := &board{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(60)),
		rows:   make([]row, len(files)),
		byPath: make(map[string]int, len(files)),
		tally:  map[driver.Status]int{driver.StatusQueued: len(files)},
		width:  80,
	}
	b.spin.Style = lipgloss.NewStyle().Foreground(statusColor[driver.StatusWorking])
	for i, f := range files {
		b.rows[i] = row{path: f, status: driver.StatusQueued}
		b.byPath[f] = i
	}
	return b
}

func (b *board) Init() tea.Cmd {
	return tea.Batch(b.spin.Tick, b.next)
}

// next blocks for one driver event.
func (b *board) next() tea.Msg {
	ev, ok := <-b.events
	if !ok {
		return closedMsg{}
	}
	return eventMsg(ev)
}

func (b *board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return b, tea.Batch(b.apply(driver.Event(msg)), b.next)
	case closedMsg:
		b.closed = true
		return b, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			b.width = msg.Width
			b.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !b.closed {
			var cmd tea.Cmd
			b.spin, cmd = b.spin.Update(msg)
			return b, cmd
		}
	case progress.FrameMsg:
		m, cmd := b.bar.Update(msg)
		b.bar = m.(progress.Model)
		return b, cmd
	}
	return b, nil
}

// apply moves a row to its new status and keeps the tally in step.
func (b *board) apply(ev driver.Event) tea.Cmd {
	i, ok := b.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &b.rows[i]
	if r.status.Finished() {
		return nil
	}
	b.tally[r.status]--
	b.tally[ev.Status]++
	r.status = ev.Status
	return b.bar.SetPercent(b.fraction())
}

func (b *board) finished() int {
	return b.tally[driver.StatusDone] + b.tally[driver.StatusCached] + b.tally[driver.StatusError]
}

func (b *board) fraction() float64 {
	if len(b.rows) == 0 {
		return 1
	}
	return float64(b.finished()) / float64(len(b.rows))
}

func (b *board) header() string {
	var sb strings.Builder
	if b.closed {
		sb.WriteString("done ")
	} else {
		sb.WriteString(b.spin.View() + " ")
	}
	fmt.Fprintf(&sb, "%s %d/%d", b.title, b.finished(), len(b.rows))
	if n := b.tally[driver.StatusCached]; n > 0 {
		fmt.Fprintf(&sb, ", %d cached", n)
	}
	if n := b.tally[driver.StatusError]; n > 0 {
		fmt.Fprintf(&sb, ", %d failed", n)
	}
	return headerStyle.Render(sb.String())
}

func (b *board) View() string {
	if len(b.rows) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(b.header() + "\n")
	nameWidth := max(b.width-12, 20)
	for _, r := range b.listed() {
		label := lipgloss.NewStyle().Foreground(statusColor[r.status]).Render(fmt.Sprintf("%-7s", r.status))
		fmt.Fprintf(&sb, "  %s %s\n", label, truncate(r.path, nameWidth))
	}
	if b.closed {
		sb.WriteString(b.bar.ViewAs(1))
	} else {
		sb.WriteString(b.bar.View())
	}
	return sb.String() + "\n"
}

// listed shows every row for short runs. Long runs only show failures and
// files in flight, failures first.
func (b *board) listed() []row {
	if len(b.rows) <= maxListed {
		return b.rows
	}
	var failed, working []row
	for _, r := range b.rows {
		switch r.status {
		case driver.StatusError:
			failed = append(failed, r)
		case driver.StatusWorking:
			working = append(working, r)
		}
	}
	out := append(failed, working...)
	return out[:min(len(out), maxListed)]
}

// truncate shortens s to width terminal cells with an ellipsis.
func truncate(s string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(s) <= width:
		return s
	case width <= 3:
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
