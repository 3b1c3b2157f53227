package commands

import (
	"github.com/spf13/cobra"

	"github.com/pictree/pictree/internal/importer"
)

func addImport(topLevel *cobra.Command, configPath *string) {
	var into string

	cmd := &cobra.Command{
		Use:   "import <file-or-dir>...",
		Short: "Import images from disk into an album",
		Long:  "Import walks each given file or directory and merges it into the target album. Directories become sub-albums by name; files that are not images are skipped.",
		Example: `
pictree import ~/Pictures/rome --into Trips
pictree import photo.jpg --into Trips/Summer
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			manager, err := openLibrary(cmd.Context(), settings, printEvent(cmd))
			if err != nil {
				return err
			}

			path, err := resolveNamePath(manager, into)
			if err != nil {
				return err
			}

			entries := make([]importer.Entry, 0, len(args))
			for _, arg := range args {
				entry, err := importer.NewDirEntry(arg)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
			}

			if _, err := manager.Import(cmd.Context(), path, entries); err != nil {
				return err
			}
			manager.Wait()
			return nil
		},
	}
	cmd.Flags().StringVar(&into, "into", "", "target album path (slash-separated names; empty imports at the root)")

	topLevel.AddCommand(cmd)
}
