// Package commands wires the pictree command line interface. Each
// subcommand loads the library from the configured document server,
// applies one mutation, and waits for the background persist to finish
// before exiting.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pictree/pictree/internal/config"
	"github.com/pictree/pictree/internal/library"
	"github.com/pictree/pictree/internal/store"
	"github.com/pictree/pictree/internal/tree"
)

// New builds the root pictree command.
func New() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "pictree",
		Short:         "Manage a hierarchical photo library",
		Long:          "pictree organizes photos into nested albums backed by a remote document store.\nFor the interactive browser, use: pictree-tui",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	addLs(root, &configPath)
	addMkdir(root, &configPath)
	addImport(root, &configPath)
	addRm(root, &configPath)
	addRmImage(root, &configPath)
	addServe(root, &configPath)
	addStatus(root, &configPath)

	return root
}

// loadSettings reads the config file, falling back to defaults when no
// path is given and the default file does not exist.
func loadSettings(configPath string) (*config.Settings, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.Load(config.DefaultPath())
}

// openLibrary loads the forest from the document server. Commands that
// mutate must call manager.Wait() before returning so the persist
// completes within the process lifetime.
func openLibrary(ctx context.Context, settings *config.Settings, onEvent func(library.Event)) (*library.Manager, error) {
	client := store.NewClient(settings.ServerURL, settings.Resource, settings.Timeout())
	manager := library.NewManager(client, settings, onEvent)
	if err := manager.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading library from %s: %w", settings.ServerURL, err)
	}
	return manager, nil
}

// resolveNamePath turns a slash-separated album name path into an id
// path against the loaded forest. An empty argument addresses the root.
func resolveNamePath(manager *library.Manager, arg string) ([]string, error) {
	names := splitNamePath(arg)
	if len(names) == 0 {
		return nil, nil
	}
	path, ok := tree.PathByNames(manager.Forest(), names)
	if !ok {
		return nil, fmt.Errorf("no album at %q", arg)
	}
	return path, nil
}

func splitNamePath(arg string) []string {
	var names []string
	for _, part := range strings.Split(arg, "/") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

var errNothingChanged = errors.New("nothing changed")

// printEvent relays library events to the terminal. Verbose events are
// dropped; the CLI reports outcomes, not progress.
func printEvent(cmd *cobra.Command) func(library.Event) {
	return func(e library.Event) {
		switch e.Level {
		case library.LevelVerbose:
		case library.LevelError, library.LevelWarning:
			fmt.Fprintln(cmd.ErrOrStderr(), e.Message)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), e.Message)
		}
	}
}
