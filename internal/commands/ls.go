package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pictree/pictree/internal/model"
	"github.com/pictree/pictree/internal/tree"
)

var (
	albumColor = color.New(color.FgYellow, color.Bold)
	imageColor = color.New(color.FgCyan)
	dimColor   = color.New(color.Faint)
)

func addLs(topLevel *cobra.Command, configPath *string) {
	var showImages bool

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List the album tree",
		Example: `
pictree ls
pictree ls Trips/Summer --images
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			manager, err := openLibrary(cmd.Context(), settings, nil)
			if err != nil {
				return err
			}

			forest := manager.Forest()
			albums := []*model.Album(forest)
			if len(args) == 1 {
				path, err := resolveNamePath(manager, args[0])
				if err != nil {
					return err
				}
				res, _ := tree.Resolve(forest, path)
				if res.Node != nil {
					albums = []*model.Album{res.Node}
				}
			}

			if len(albums) == 0 {
				dimColor.Fprintln(cmd.OutOrStdout(), "(empty library)")
				return nil
			}
			for _, album := range albums {
				printAlbum(cmd, album, "", showImages)
			}
			shown := model.Forest(albums)
			dimColor.Fprintf(cmd.OutOrStdout(), "\n%d albums, %d images\n",
				shown.CountAlbums(), shown.CountImages())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showImages, "images", false, "list images inside each album")

	topLevel.AddCommand(cmd)
}

func printAlbum(cmd *cobra.Command, album *model.Album, indent string, showImages bool) {
	out := cmd.OutOrStdout()
	albumColor.Fprintf(out, "%s%s", indent, album.Name)
	dimColor.Fprintf(out, "  (%d images)\n", len(album.Images))

	if showImages {
		for _, img := range album.Images {
			imageColor.Fprintf(out, "%s  %s", indent, img.Name)
			if img.SizeLabel != "" {
				dimColor.Fprintf(out, "  %s", img.SizeLabel)
			}
			fmt.Fprintln(out)
		}
	}
	for _, sub := range album.SubAlbums {
		printAlbum(cmd, sub, indent+"  ", showImages)
	}
}
