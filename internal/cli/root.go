package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"rem-cli/internal/app"
	"rem-cli/internal/config"
	"rem-cli/internal/format"
	"rem-cli/internal/logging"
	"rem-cli/internal/store"
	"rem-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	ConfigPath string
	PrettyJSON bool
	Format     string
}

// session is everything a command needs once paths and config are resolved.
type session struct {
	paths config.Paths
	cfg   config.Config
	store store.Store
	log   *logging.Logger
}

func NewRootCmd(version string) *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:          "rem",
		Short:        "Markdown task board for the terminal",
		Version:      version,
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  rem

  # Scriptable commands
  rem list --all
  rem add Buy milk

  # Direct task lookup (shortcut for: rem show <task-id>)
  rem 0f8fad5b-d9cb-469f-a165-70867728950e
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a)
		},
	}
	cmd.SetVersionTemplate("rem {{.Version}}\n")
	cmd.Flags().BoolP("version", "V", false, "Print version and exit")

	cmd.PersistentFlags().StringVar(&a.Dir, "dir", "", "Base directory (default $REM_HOME or ~/.rem-cli)")
	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", "", "Config file (default $REM_CONFIG or <dir>/config.toml)")
	cmd.PersistentFlags().BoolVar(&a.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&a.Format, "format", envOr("REM_FORMAT", format.JSON), "Output format (json|edn)")

	cmd.AddCommand(newInitCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newPathsCmd(a))

	return cmd
}

func runTUI(cmd *cobra.Command, a *App) error {
	rt, err := openSession(cmd, a)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer rt.log.Close()

	state := app.New(rt.store, app.WithLogger(rt.log), app.WithShowDone(rt.cfg.UI.ShowDone))
	rt.log.Info("starting tui", "tasks", rt.paths.TasksDir)

	// The board owns the terminal; events still reach the log file.
	rt.log.SetConsoleEnabled(false)
	err = tui.Run(state, tui.Options{
		EditorCommand: rt.cfg.Editor.Command,
		MarkdownStyle: rt.cfg.UI.MarkdownStyle,
		Logger:        rt.log,
	})
	rt.log.SetConsoleEnabled(true)
	if err != nil {
		rt.log.Error("tui exited with error", "err", err)
		return writeErr(cmd, fmt.Errorf("run tui: %w", err))
	}
	rt.log.Info("tui exited")
	return nil
}

func resolvePaths(a *App) (config.Paths, error) {
	paths, err := config.ResolvePaths(a.Dir)
	if err != nil {
		return config.Paths{}, err
	}
	if p := strings.TrimSpace(a.ConfigPath); p != "" {
		paths.ConfigPath = p
	}
	return paths, nil
}

// openSession resolves paths, loads config, opens the log and makes sure the
// status directories exist. Any failure here is fatal for the command.
func openSession(cmd *cobra.Command, a *App) (*session, error) {
	paths, err := resolvePaths(a)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(paths.ConfigPath, config.Default(paths))
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		return nil, err
	}
	st := store.Store{Dir: paths.TasksDir}
	if err := st.Ensure(); err != nil {
		log.Error("create task directories failed", "dir", paths.TasksDir, "err", err)
		_ = log.Close()
		return nil, err
	}
	return &session{paths: paths, cfg: cfg, store: st, log: log}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, a *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, a.Format, a.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
