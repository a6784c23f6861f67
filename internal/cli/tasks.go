package cli

import (
	"strconv"

	"tasklist-cli/internal/model"
	"tasklist-cli/internal/statusutil"
	"tasklist-cli/internal/view"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// filterFlag parses --filter tokens (all|true|false, completed|missing).
type filterFlag struct {
	f model.Filter
}

var _ pflag.Value = (*filterFlag)(nil)

func (v *filterFlag) String() string {
	return statusutil.FilterToken(v.f)
}

func (v *filterFlag) Set(s string) error {
	f, err := statusutil.ParseFilter(s)
	if err != nil {
		return err
	}
	v.f = f
	return nil
}

func (v *filterFlag) Type() string { return "filter" }

func label(pos int, t model.Task) string {
	return "#" + strconv.Itoa(pos+1) + " " + t.ID + " " + strconv.Quote(t.Name)
}

func newAddCmd(app *App) *cobra.Command {
	var name, date, tm string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a task",
		Example: `  tasklist add --name "Pay bill" --date 2024-03-01 --time 09:00`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeStore()

			pos, err := st.Add(cmd.Context(), name, date, tm)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, _ := st.At(pos)
			return writeOut(cmd, app, result{
				message: "Added " + label(pos, t),
				data:    view.RowFor(pos, t, st.Now()),
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name (required)")
	cmd.Flags().StringVar(&date, "date", "", "Due date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&tm, "time", "", "Due time, HH:MM (required)")

	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var name, date, tm string

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Change a task's name, date or time",
		Long:  "Change a task's name, date or time. Fields not given keep their current value; the status is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeStore()

			pos, err := st.Resolve(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, _ := st.At(pos)
			if cmd.Flags().Changed("name") {
				t.Name = name
			}
			if cmd.Flags().Changed("date") {
				t.Date = date
			}
			if cmd.Flags().Changed("time") {
				t.Time = tm
			}
			if err := st.Update(cmd.Context(), pos, t.Name, t.Date, t.Time); err != nil {
				return writeErr(cmd, err)
			}
			t, _ = st.At(pos)
			return writeOut(cmd, app, result{
				message: "Updated " + label(pos, t),
				data:    view.RowFor(pos, t, st.Now()),
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&date, "date", "", "New due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&tm, "time", "", "New due time, HH:MM")

	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task>",
		Short: "Flip a task between remaining and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeStore()

			pos, err := st.Resolve(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.ToggleStatus(cmd.Context(), pos); err != nil {
				return writeErr(cmd, err)
			}
			t, _ := st.At(pos)
			row := view.RowFor(pos, t, st.Now())
			return writeOut(cmd, app, result{
				message: row.Label + " " + label(pos, t),
				data:    row,
			})
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <task>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeStore()

			pos, err := st.Resolve(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, _ := st.At(pos)
			if err := st.Delete(cmd.Context(), pos); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, result{
				message: "Deleted " + label(pos, t),
				data:    map[string]any{"deleted": t.ID, "position": pos, "remaining": st.Len()},
			})
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errConfirmRequired("clear"))
			}
			st, closeStore, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeStore()

			n := st.Len()
			if err := st.ClearAll(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, result{
				message: "Cleared " + strconv.Itoa(n) + " task(s)",
				data:    map[string]any{"cleared": n},
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deleting all tasks")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	filter := &filterFlag{f: model.FilterAll}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks in insertion order.

--filter takes all (every task), true (completed) or false (missing: still
remaining and dated before today). completed and missing are accepted too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeStore()

			now := st.Now()
			rows := []view.Row{}
			for pos, t := range st.List(filter.f) {
				rows = append(rows, view.RowFor(pos, t, now))
			}
			return writeOut(cmd, app, taskList{rows: rows, filter: filter.f, opts: renderOptions(app)})
		},
	}

	cmd.Flags().Var(filter, "filter", "Filter: all|true|false")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task>",
		Short: "Show one task (by id, id prefix or #position)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeStore()

			pos, err := st.Resolve(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := st.At(pos)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, taskShow{row: view.RowFor(pos, t, st.Now()), opts: renderOptions(app)})
		},
	}
}
