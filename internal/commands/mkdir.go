package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addMkdir(topLevel *cobra.Command, configPath *string) {
	var under string

	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a new album",
		Example: `
pictree mkdir Trips
pictree mkdir Summer --under Trips
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

			path, err := resolveNamePath(manager, under)
			if err != nil {
				return err
			}
			if !manager.CreateAlbum(path, args[0]) {
				return fmt.Errorf("cannot create album %q: %w", args[0], errNothingChanged)
			}
			manager.Wait()
			return nil
		},
	}
	cmd.Flags().StringVar(&under, "under", "", "parent album path (slash-separated names)")

	topLevel.AddCommand(cmd)
}
