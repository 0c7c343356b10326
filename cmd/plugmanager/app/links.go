package app

import (
	"github.com/spf13/cobra"

	"github.com/plugmanager/plugmanager/internal/render"
	"github.com/plugmanager/plugmanager/internal/storage"
)

func newLinksCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List plugins linked to a repository by hand",
		Long: `List the links entered while indexing plugins no registry recognised.
They are reused on every later index run instead of asking again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.loadConfig()
			if err != nil {
				return err
			}
			links, err := storage.NewFileLinkStore(cfg.GetLinkStorePath()).List(cmd.Context())
			if err != nil {
				return err
			}
			render.Links(s.out, links)
			return nil
		},
	}
}
