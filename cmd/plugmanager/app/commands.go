// Package app provides the commands of the plugmanager CLI.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	pluginapp "github.com/plugmanager/plugmanager/internal/app"
	"github.com/plugmanager/plugmanager/internal/config"
	"github.com/plugmanager/plugmanager/internal/prompt"
	"github.com/plugmanager/plugmanager/internal/render"
	"github.com/plugmanager/plugmanager/internal/versions"
)

// EnvPrefix is the prefix of every environment variable plugmanager reads
const EnvPrefix = "PLUGMANAGER"

var logLevel = new(slog.LevelVar)

// LogLevel returns the level variable the default logger should use.
// --debug lowers it to debug for the current process.
func LogLevel() *slog.LevelVar {
	return logLevel
}

// session holds what every command run by one process shares: the output,
// the single line reader used for both shell input and prompts, and flag
// bindings.
type session struct {
	out      io.Writer
	prompter *prompt.LinePrompter
	v        *viper.Viper

	// stdinTerminal enables the shell when no subcommand is given
	stdinTerminal bool
	inShell       bool

	// appOpts are extra builder options, used by tests to stub registries
	appOpts []pluginapp.PluginAppOptions
}

func newSession(in io.Reader, out io.Writer, appOpts ...pluginapp.PluginAppOptions) *session {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return &session{
		out:           out,
		prompter:      prompt.NewLinePrompter(in, out),
		v:             v,
		stdinTerminal: render.IsTerminal(in),
		appOpts:       appOpts,
	}
}

// NewRootCmd creates a new root command for plugmanager.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newSession(os.Stdin, os.Stdout))
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "plugmanager",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Minecraft server plugin manager",
		Long: `plugmanager indexes the plugins installed on a Minecraft server, links each jar
to its SpigotMC or Modrinth project, and keeps them up to date.

Run without a subcommand on a terminal to start the interactive shell.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if s.v.GetBool("debug") {
				logLevel.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if s.stdinTerminal && !s.inShell {
				return runShell(cmd.Context(), s)
			}
			return cmd.Help()
		},
	}
	rootCmd.SetOut(s.out)
	rootCmd.SetErr(s.out)

	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("config", "", "Path to configuration file (default: user config dir)")
	flags.String("plugins-dir", "", "Plugins folder to act on instead of the selected server's")
	for _, name := range []string{"debug", "config", "plugins-dir"} {
		if err := s.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
		}
	}

	rootCmd.AddCommand(
		newIndexCmd(s),
		newAddCmd(s),
		newListCmd(s),
		newCheckCmd(s),
		newDownloadCmd(s),
		newUpdateCmd(s),
		newServerCmd(s),
		newLinksCmd(s),
		newVersionCmd(s),
	)
	if !s.inShell {
		rootCmd.AddCommand(newShellCmd(s))
	}

	return rootCmd
}

func newVersionCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetBuildInfo()
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}

			if format == "json" {
				output, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format version info as JSON: %w", err)
				}
				_, err = fmt.Fprintln(s.out, string(output))
				return err
			}
			_, err = fmt.Fprintf(s.out, "plugmanager %s (commit %s, built %s, %s %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
			return err
		},
	}
	cmd.Flags().String("format", "", "Output format (json)")
	return cmd
}

// loadConfig reads the configuration named by --config or the default location
func (s *session) loadConfig() (*config.Config, error) {
	var opts []config.Option
	if path := s.v.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigPath(path))
	}
	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadApp builds the application for one command run
func (s *session) loadApp(ctx context.Context, opts ...pluginapp.PluginAppOptions) (*pluginapp.PluginApp, string, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, "", err
	}
	folder, err := cfg.PluginsDir(s.v.GetString("plugins-dir"))
	if err != nil {
		return nil, "", err
	}

	all := []pluginapp.PluginAppOptions{
		pluginapp.WithConfig(cfg),
		pluginapp.WithPrompter(s.prompter),
	}
	all = append(all, s.appOpts...)
	all = append(all, opts...)

	a, err := pluginapp.NewPluginApp(ctx, all...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize: %w", err)
	}
	return a, folder, nil
}

func (s *session) printer() *render.Printer {
	return render.NewPrinter(s.out)
}
