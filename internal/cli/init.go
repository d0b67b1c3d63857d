package cli

import (
	"errors"
	"io/fs"
	"os"

	"rem-cli/internal/config"
	"rem-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the task directories and a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := (store.Store{Dir: paths.TasksDir}).Ensure(); err != nil {
				return writeErr(cmd, err)
			}

			wrote := false
			if _, err := os.Stat(paths.ConfigPath); errors.Is(err, fs.ErrNotExist) {
				if err := config.Write(paths.ConfigPath, config.Default(paths)); err != nil {
					return writeErr(cmd, err)
				}
				wrote = true
			} else if err != nil {
				return writeErr(cmd, err)
			}

			return writeOut(cmd, a, map[string]any{
				"data": map[string]any{
					"tasks":        paths.TasksDir,
					"config":       paths.ConfigPath,
					"config_wrote": wrote,
				},
			})
		},
	}
}
