package app

import (
	"github.com/spf13/cobra"

	"github.com/plugmanager/plugmanager/internal/plugin"
	"github.com/plugmanager/plugmanager/internal/render"
	"github.com/plugmanager/plugmanager/internal/versions"
)

func newListCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [mc-version]",
		Short: "Show the plugin index",
		Long: `Show the plugin index of the plugins folder.

With a Minecraft version only plugins whose newest tested version fits it are
shown. "1.21.4" keeps 1.21.x from patch 4 up, "1.21" keeps 1.x from minor 21
up and "1" keeps every release from 1 up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(output)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, folder, err := s.loadApp(ctx)
			if err != nil {
				return err
			}
			idx, err := a.Components().Index.Load(ctx, folder)
			if err != nil {
				return err
			}

			records := idx.Plugins
			if len(args) == 1 {
				records = filterSupported(records, args[0])
			}
			return render.Plugins(s.out, format, records)
		},
	}
	cmd.Flags().StringP("output", "o", string(render.FormatTable), "Output format (table, json, yaml)")
	return cmd
}

func filterSupported(records []plugin.Record, mcVersion string) []plugin.Record {
	out := []plugin.Record{}
	for _, rec := range records {
		supported := ""
		if rec.SupportedVersion != nil {
			supported = *rec.SupportedVersion
		}
		if versions.SupportsPlatform(mcVersion, supported) {
			out = append(out, rec)
		}
	}
	return out
}
