package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pictree/pictree/internal/library"
	"github.com/pictree/pictree/internal/store"
)

func addStatus(topLevel *cobra.Command, configPath *string) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the library and its sync target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(*configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server:    %s/%s (document %q)\n",
				settings.ServerURL, settings.Resource, settings.DocumentID)

			client := store.NewClient(settings.ServerURL, settings.Resource, settings.Timeout())
			manager := library.NewManager(client, settings, nil)
			if err := manager.Load(cmd.Context()); err != nil {
				fmt.Fprintf(out, "State:     %s\n", manager.State())
				return fmt.Errorf("loading library: %w", err)
			}

			forest := manager.Forest()
			fmt.Fprintf(out, "State:     %s\n", manager.State())
			fmt.Fprintf(out, "Albums:    %d\n", forest.CountAlbums())
			fmt.Fprintf(out, "Images:    %d\n", forest.CountImages())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
