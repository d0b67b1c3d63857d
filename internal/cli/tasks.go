package cli

import (
	"strings"
	"time"

	"rem-cli/internal/model"
	"rem-cli/internal/store"

	"github.com/spf13/cobra"
)

// taskView is the wire shape of a task in command output.
type taskView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Path      string    `json:"path"`
	Body      *string   `json:"body,omitempty"`
}

func newTaskView(t store.Task, withBody bool) taskView {
	v := taskView{
		ID:        t.ID,
		Name:      t.Name,
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Path:      t.FilePath(),
	}
	if withBody {
		body := t.Body
		v.Body = &body
	}
	return v
}

func newListCmd(a *App) *cobra.Command {
	var status string
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (todo and doing unless --all or --status)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := []model.Status{model.StatusTodo, model.StatusDoing}
			if all {
				statuses = model.Statuses
			}
			if s := strings.TrimSpace(status); s != "" {
				st, err := model.ParseStatus(s)
				if err != nil {
					return writeErr(cmd, invalidFlagError{flag: "status", value: s, err: err})
				}
				statuses = []model.Status{st}
			}

			rt, err := openSession(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.log.Close()

			out := []taskView{}
			for _, st := range statuses {
				tasks, err := rt.store.List(st)
				if err != nil {
					return writeErr(cmd, err)
				}
				for _, t := range tasks {
					out = append(out, newTaskView(t, false))
				}
			}
			return writeOut(cmd, a, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only this status (todo|doing|done)")
	cmd.Flags().BoolVar(&all, "all", false, "Include done tasks")
	return cmd
}

func newAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Create a task in todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openSession(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.log.Close()

			t, err := rt.store.Create(strings.Join(args, " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			rt.log.Debug("task created", "id", t.ID, "path", t.FilePath())
			return writeOut(cmd, a, map[string]any{"data": newTaskView(t, true)})
		},
	}
}

func newShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show <task-id>",
		Short:   "Show a task including its body",
		Aliases: []string{"get"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			rt, err := openSession(cmd, a)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.log.Close()

			t, err := rt.store.Find(id)
			if err != nil {
				if isNotFound(err) {
					return writeErr(cmd, errNotFound("task", id))
				}
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, map[string]any{"data": newTaskView(t, true)})
		},
	}
}
