package app

import (
	"github.com/spf13/cobra"

	"github.com/plugmanager/plugmanager/internal/render"
)

func newCheckCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Look up the latest version of every linked plugin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, folder, err := s.loadApp(ctx)
			if err != nil {
				return err
			}

			result, err := a.Components().Manager.CheckUpdates(ctx, folder)
			if err != nil {
				return err
			}

			render.Updates(s.out, result.Updated)
			if result.UpdatedCount > 0 {
				s.printer().Success("Found %d new plugin versions", result.UpdatedCount)
			}
			return nil
		},
	}
}
