package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pictree/pictree/internal/library"
	"github.com/pictree/pictree/internal/model"
	"github.com/pictree/pictree/internal/tree"
)

func addRmImage(topLevel *cobra.Command, configPath *string) {
	var from string

	cmd := &cobra.Command{
		Use:   "rm-image <name>",
		Short: "Delete an image by name",
		Long:  "Delete an image from the album at --from, or by name anywhere in the library when --from is omitted. Names are matched case-sensitively; the first match wins.",
		Example: `
pictree rm-image IMG_2041.jpg --from Trips/Summer
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

			path, err := resolveNamePath(manager, from)
			if err != nil {
				return err
			}

			imageID, ok := findImageID(manager, path, args[0])
			if !ok {
				return fmt.Errorf("no image named %q", args[0])
			}
			if !manager.DeleteImage(imageID) {
				return fmt.Errorf("deleting %q: %w", args[0], errNothingChanged)
			}
			manager.Wait()
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "album path holding the image (slash-separated names)")

	topLevel.AddCommand(cmd)
}

// findImageID locates an image by display name, either within the album
// at path or anywhere in the library when path is empty.
func findImageID(manager *library.Manager, path []string, name string) (string, bool) {
	forest := manager.Forest()

	if len(path) > 0 {
		res, ok := tree.Resolve(forest, path)
		if !ok || res.Node == nil {
			return "", false
		}
		for _, img := range res.Node.Images {
			if img.Name == name {
				return img.ID, true
			}
		}
		return "", false
	}

	var id string
	found := false
	forest.Walk(func(album *model.Album) bool {
		for _, img := range album.Images {
			if img.Name == name {
				id = img.ID
				found = true
				return false
			}
		}
		return true
	})
	return id, found
}
