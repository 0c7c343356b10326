package app

import (
	"github.com/spf13/cobra"

	"github.com/plugmanager/plugmanager/internal/registry"
	"github.com/plugmanager/plugmanager/internal/render"
	"github.com/plugmanager/plugmanager/internal/sync"
)

func newAddCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <plugin name>",
		Aliases: []string{"a"},
		Short:   "Add a plugin that is not installed yet to the index",
		Long: `Look plugins up by name and add them to the index so they can be downloaded.
A plugin already in the index has its latest version refreshed instead.
Words are joined with spaces, so "add Multi Verse" looks up "Multi Verse".
Use --registry spigot|modrinth (or s|m) to search only one registry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skip, err := cmd.Flags().GetBool("skip-unresolved")
			if err != nil {
				return err
			}

			opts := sync.AddOptions{AllowLinking: !skip}
			if name, _ := cmd.Flags().GetString("registry"); name != "" {
				if opts.Registry, err = registry.ParseKind(name); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			a, folder, err := s.loadApp(ctx)
			if err != nil {
				return err
			}

			result, err := a.Components().Manager.Add(ctx, folder, []string{joinName(args)}, opts)
			if err != nil {
				return err
			}

			p := s.printer()
			for _, rec := range result.Added {
				p.Success("Added %s to the index", rec.Name)
			}
			for _, rec := range result.Refreshed {
				p.Info("%s is already indexed, latest version refreshed", rec.Name)
			}
			for _, name := range result.Unresolved {
				p.Warn("Plugin %s was not found", name)
			}
			return render.Plugins(s.out, render.FormatTable, result.Index.Plugins)
		},
	}
	cmd.Flags().BoolP("skip-unresolved", "s", false, "Do not ask for links to unrecognised plugins")
	cmd.Flags().StringP("registry", "r", "", "Search only this registry (spigot or modrinth)")
	return cmd
}
