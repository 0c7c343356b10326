package app

import (
	"github.com/spf13/cobra"

	"github.com/plugmanager/plugmanager/internal/render"
	"github.com/plugmanager/plugmanager/internal/sync"
)

func newIndexCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the plugin index from the jars in the plugins folder",
		Long: `Scan the plugins folder, match every jar against SpigotMC and Modrinth, and
replace the folder's .index.json with the result.

Plugins no registry recognises can be linked by hand: you are asked for the
project URL unless --skip-unresolved is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			skip, err := cmd.Flags().GetBool("skip-unresolved")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, folder, err := s.loadApp(ctx)
			if err != nil {
				return err
			}

			progress := render.NewProgress(s.out)
			result, err := a.Components().Manager.Reindex(ctx, folder, sync.ReindexOptions{
				SkipUnresolved: skip,
				Progress:       progress.Update,
			})
			progress.Done()
			if err != nil {
				return err
			}

			if err := render.Plugins(s.out, render.FormatTable, result.Index.Plugins); err != nil {
				return err
			}

			p := s.printer()
			for _, f := range result.Failures {
				p.Warn("Could not index %s: %v", f.FileName, f.Err)
			}
			if len(result.Ignored) > 0 {
				p.Info("Ignored %d files matching index patterns", len(result.Ignored))
			}
			p.Success("Indexed %d of %d plugins in %s (%d duplicates skipped)",
				len(result.Index.Plugins), result.Total, folder, len(result.Skipped))
			return nil
		},
	}
	cmd.Flags().BoolP("skip-unresolved", "s", false, "Do not ask for links to unrecognised plugins")
	return cmd
}
