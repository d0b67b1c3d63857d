package cli

import (
	"rem-cli/internal/config"

	"github.com/spf13/cobra"
)

func newPathsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the resolved base, tasks, config and log paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := config.Load(paths.ConfigPath, config.Default(paths))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]any{
				"data": map[string]any{
					"base":   paths.BaseDir,
					"tasks":  paths.TasksDir,
					"config": paths.ConfigPath,
					"log":    cfg.Logging.File,
				},
			})
		},
	}
}
