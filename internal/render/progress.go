package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const barWidth = 30

// Progress draws a single-line progress bar that is redrawn in place.
// On anything but a terminal it prints one plain line per step instead.
type Progress struct {
	out         io.Writer
	interactive bool
	filled      lipgloss.Style
	drawn       bool
}

// NewProgress creates a Progress writing to out
func NewProgress(out io.Writer) *Progress {
	r := lipgloss.NewRenderer(out)
	return &Progress{
		out:         out,
		interactive: IsTerminal(out),
		filled:      r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// IsTerminal reports whether w is a terminal file
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Update draws the bar for current of total with a trailing label
func (p *Progress) Update(current, total int, label string) {
	if !p.interactive {
		_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", current, total, label)
		return
	}
	_, _ = fmt.Fprintf(p.out, "\r\033[K%s %d/%d %s", p.bar(current, total), current, total, label)
	p.drawn = true
}

// Done terminates the bar line
func (p *Progress) Done() {
	if p.drawn {
		_, _ = fmt.Fprintln(p.out)
		p.drawn = false
	}
}

func (p *Progress) bar(current, total int) string {
	n := 0
	if total > 0 {
		n = min(barWidth*current/total, barWidth)
	}
	return "[" + p.filled.Render(strings.Repeat("█", n)) + strings.Repeat("░", barWidth-n) + "]"
}
