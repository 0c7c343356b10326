package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/plugmanager/plugmanager/internal/prompt"
)

const shellPrompt = ">>> "

func newShellCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long: `Start an interactive shell that accepts the same commands as the command line,
for example "index -s", "list 1.21" or "dl update". Quote arguments that
contain spaces. Type "exit" to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), s)
		},
	}
}

// runShell reads commands until exit or end of input. Link prompts raised by
// a command read from the same LinePrompter, so they consume the next line
// instead of competing with the shell for it.
func runShell(ctx context.Context, s *session) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p := s.printer()
	p.Info("plugmanager shell, type 'help' for commands or 'exit' to quit")

	for {
		line, err := s.prompter.ReadLine(ctx, shellPrompt)
		if errors.Is(err, prompt.ErrNoInput) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}

		args, err := shlex.Split(line)
		if err != nil {
			p.Error("Invalid input: %v", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch strings.ToLower(args[0]) {
		case "exit", "quit":
			return nil
		}

		shellSession := *s
		shellSession.inShell = true
		root := newRootCmd(&shellSession)
		root.SilenceErrors = true
		root.SetArgs(args)
		if err := root.ExecuteContext(ctx); err != nil {
			p.Error("%v", err)
		}
	}
}
