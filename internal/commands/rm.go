package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addRm(topLevel *cobra.Command, configPath *string) {
	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete an album and everything under it",
		Example: `
pictree rm Trips/Summer
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			manager, err := openLibrary(cmd.Context(), settings, printEvent(cmd))
			if err != nil {
				return err
			}

			path, err := resolveNamePath(manager, args[0])
			if err != nil {
				return err
			}
			if len(path) == 0 {
				return fmt.Errorf("refusing to delete the library root")
			}
			if !manager.DeleteAlbum(path[len(path)-1]) {
				return fmt.Errorf("deleting %q: %w", args[0], errNothingChanged)
			}
			manager.Wait()
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
