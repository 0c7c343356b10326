package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes colored one-line notices. Colors are dropped automatically
// when out is not a terminal.
type Printer struct {
	out     io.Writer
	success lipgloss.Style
	warn    lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
}

// NewPrinter creates a Printer writing to out
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Writer returns the underlying output
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Success prints a confirmation line
func (p *Printer) Success(format string, args ...any) {
	p.line(p.success, format, args...)
}

// Warn prints a warning line
func (p *Printer) Warn(format string, args ...any) {
	p.line(p.warn, format, args...)
}

// Error prints an error line
func (p *Printer) Error(format string, args ...any) {
	p.line(p.failure, format, args...)
}

// Info prints a neutral highlighted line
func (p *Printer) Info(format string, args ...any) {
	p.line(p.info, format, args...)
}

func (p *Printer) line(style lipgloss.Style, format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...)))
}
