package app

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newServerCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage the Minecraft servers plugmanager knows about",
		Long: `Manage the Minecraft servers plugmanager knows about.

Commands act on the plugins folder of the selected server unless --plugins-dir
is given.`,
	}
	cmd.AddCommand(
		newServerListCmd(s),
		newServerAddCmd(s),
		newServerUseCmd(s),
		newServerRemoveCmd(s),
	)
	return cmd
}

func newServerListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List configured servers",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := s.loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Servers) == 0 {
				s.printer().Info("No servers configured, add one with 'server add <name> <path>'")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(s.out)
			style := table.StyleLight
			style.Options.DrawBorder = false
			t.SetStyle(style)
			t.AppendHeader(table.Row{"", "Name", "Type", "Version", "Path"})
			for _, srv := range cfg.Servers {
				marker := ""
				if srv.Name == cfg.SelectedServer {
					marker = "*"
				}
				t.AppendRow(table.Row{marker, srv.Name, srv.Type, srv.Version, srv.Path})
			}
			t.Render()
			return nil
		},
	}
}

func newServerAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Register a server directory",
		Long: `Register the server directory at path. It must contain a plugins folder.
The server type and Minecraft version are read from a paper-<version>-<build>.jar
when one is present. The first server added becomes the selected one.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := s.loadConfig()
			if err != nil {
				return err
			}
			srv, err := cfg.AddServer(args[0], args[1])
			if err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			p := s.printer()
			if srv.Version != "" {
				p.Info("Detected %s server for Minecraft %s", srv.Type, srv.Version)
			} else {
				p.Warn("Could not detect the server version from a Paper jar")
			}
			p.Success("Server %q added", srv.Name)
			return nil
		},
	}
}

func newServerUseCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Select the server commands act on",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := s.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.UseServer(args[0]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			s.printer().Success("Selected server %q", args[0])
			return nil
		},
	}
}

func newServerRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Forget a server",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := s.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RemoveServer(args[0]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			s.printer().Success("Server %q removed", args[0])
			return nil
		},
	}
}
