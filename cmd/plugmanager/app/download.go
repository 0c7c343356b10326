package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pluginapp "github.com/plugmanager/plugmanager/internal/app"
	"github.com/plugmanager/plugmanager/internal/download"
	"github.com/plugmanager/plugmanager/internal/plugin"
	"github.com/plugmanager/plugmanager/internal/prompt"
	"github.com/plugmanager/plugmanager/internal/render"
)

func newDownloadCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "download <all|update|plugin name>",
		Aliases: []string{"dl"},
		Short:   "Download plugins listed in the index",
		Long: `Download plugins into the plugins folder.

  all      every plugin linked to SpigotMC or Modrinth
  update   every plugin with a newer version available
  <name>   the plugin with exactly that name; words are joined with spaces,
           so "download Multi Verse" selects the plugin "Multi Verse"

Files that already exist are left alone. Bulk downloads ask for confirmation
unless --yes is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return err
			}
			return s.download(cmd.Context(), parseSelectors(args), yes)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask before bulk downloads")
	return cmd
}

// parseSelectors turns command arguments into selectors. Arguments made only
// of the all/update keywords select in bulk; anything else is one plugin name.
func parseSelectors(args []string) []plugin.Selector {
	selectors := make([]plugin.Selector, 0, len(args))
	for _, arg := range args {
		sel := plugin.ParseSelector(arg)
		if !sel.Bulk() {
			return []plugin.Selector{plugin.ParseSelector(joinName(args))}
		}
		selectors = append(selectors, sel)
	}
	return selectors
}

// joinName joins the words of a plugin name given as separate arguments
func joinName(args []string) string {
	return strings.Join(strings.Fields(strings.Join(args, " ")), " ")
}

func newUpdateCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		Aliases: []string{"u"},
		Short:   "Check for new versions and download every outdated plugin",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, folder, err := s.loadApp(ctx)
			if err != nil {
				return err
			}
			result, err := a.Components().Manager.CheckUpdates(ctx, folder)
			if err != nil {
				return err
			}
			if result.UpdatedCount > 0 {
				s.printer().Info("Found %d new plugin versions", result.UpdatedCount)
			}

			return s.download(ctx, []plugin.Selector{plugin.SelectOutdated}, yes)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask before downloading")
	return cmd
}

func (s *session) download(ctx context.Context, selectors []plugin.Selector, yes bool) error {
	progress := render.NewProgress(s.out)
	a, folder, err := s.loadApp(ctx, pluginapp.WithDownloadOptions(
		download.WithProgress(func(current, total int, rec plugin.Record) {
			progress.Update(current, total, rec.Name)
		}),
	))
	if err != nil {
		return err
	}
	downloader := a.Components().Downloader

	var records []plugin.Record
	seen := map[string]bool{}
	bulk := false
	for _, sel := range selectors {
		selected, err := downloader.Plan(ctx, folder, sel)
		if err != nil {
			return err
		}
		bulk = bulk || sel.Bulk()
		for _, rec := range selected {
			if !seen[rec.Name] {
				seen[rec.Name] = true
				records = append(records, rec)
			}
		}
	}

	p := s.printer()
	if len(records) == 0 {
		p.Info("Nothing to download")
		return nil
	}

	if bulk && !yes {
		if err := render.Plugins(s.out, render.FormatTable, records); err != nil {
			return err
		}
		ok, err := prompt.Confirm(ctx, a.Prompter(), fmt.Sprintf("Download %d plugins?", len(records)))
		if errors.Is(err, prompt.ErrNoInput) {
			return fmt.Errorf("confirmation required, rerun with --yes")
		}
		if err != nil {
			return err
		}
		if !ok {
			p.Warn("Download cancelled")
			return nil
		}
	}

	summary := downloader.Download(ctx, folder, records)
	progress.Done()
	render.DownloadSummary(s.out, summary)

	if failed := len(summary.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, summary.Attempted)
	}
	return nil
}
