package commands

import (
	"github.com/spf13/cobra"

	"github.com/pictree/pictree/internal/docserver"
)

func addServe(topLevel *cobra.Command, configPath *string) {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local document server",
		Long:  "Serve runs the document store the library syncs against, persisting documents to disk under the configured data path.",
		Example: `
pictree serve
pictree serve --addr :9000
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = settings.ListenAddr
			}

			srv := docserver.New(settings.DataPath, settings.Resource)
			return srv.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to the configured one)")

	topLevel.AddCommand(cmd)
}
