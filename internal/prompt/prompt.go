// Package prompt provides the interactive input capability used for manual
// plugin linking, bulk confirmations and the interactive shell.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ErrNoInput is returned when the input stream is closed while waiting for an answer
var ErrNoInput = errors.New("no input available")

// Prompter asks the user a question and returns the trimmed answer
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}

var questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

// LinePrompter reads answers line by line from a shared reader.
// The interactive shell reads its commands through the same LinePrompter, so
// a question asked in the middle of a command consumes exactly one line.
type LinePrompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from in and echoing prompts to out
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt implements Prompter
func (p *LinePrompter) Prompt(ctx context.Context, message string) (string, error) {
	return p.ReadLine(ctx, questionStyle.Render(message))
}

// ReadLine prints prefix verbatim and returns the next input line without its
// line terminator or surrounding whitespace.
func (p *LinePrompter) ReadLine(ctx context.Context, prefix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if prefix != "" {
		if _, err := fmt.Fprint(p.out, prefix); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrNoInput
			}
		} else {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only "y" and "yes" count as yes.
func Confirm(ctx context.Context, p Prompter, question string) (bool, error) {
	answer, err := p.Prompt(ctx, question+" (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
