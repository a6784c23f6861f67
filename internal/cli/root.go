package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"tasklist-cli/internal/config"
	"tasklist-cli/internal/format"
	"tasklist-cli/internal/kv"
	"tasklist-cli/internal/store"
	"tasklist-cli/internal/tui"

	"github.com/spf13/cobra"
)

// annotation key for commands that run without loading the config file.
const skipConfig = "tasklist/skip-config"

type App struct {
	ConfigPath string
	Dir        string
	Backend    string
	Format     string
	Key        string
	PrettyJSON bool
	NoColor    bool
	Verbose    bool

	cfg    config.Config
	logger *log.Logger
	now    func() time.Time
	getenv func(string) string
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	if app.now == nil {
		app.now = time.Now
	}
	if app.getenv == nil {
		app.getenv = os.Getenv
	}
	app.logger = log.New(io.Discard, "", 0)

	cmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "A small to-do list (CLI + TUI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tasklist

  # Scriptable commands
  tasklist add --name "Pay bill" --date 2024-03-01 --time 09:00
  tasklist list --filter false
  tasklist toggle 1

  # Direct task lookup (shortcut for: tasklist show <task-id>)
  tasklist t-3f9a01bc
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if app.Verbose {
			app.logger = log.New(cmd.ErrOrStderr(), "tasklist: ", log.LstdFlags)
		}
		if cmd.Annotations[skipConfig] == "true" {
			return nil
		}
		if err := app.resolveConfig(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "Path to config file (default: $TASKLIST_CONFIG_DIR/config.json or ~/.tasklist/config.json)")
	pf.StringVar(&app.Dir, "dir", "", "Data directory (overrides config and TASKLIST_DIR)")
	pf.StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|file|memory)")
	pf.StringVar(&app.Format, "format", "", "Output format (table|json|yaml)")
	pf.StringVar(&app.Key, "key", "", "Storage slot holding the task list")
	pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	pf.BoolVar(&app.NoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&app.Verbose, "verbose", false, "Log storage activity to stderr")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

// resolveConfig layers defaults < config file < environment < flags.
func (app *App) resolveConfig(cmd *cobra.Command) error {
	cfg, loaded, err := config.Load(app.ConfigPath, app.getenv)
	if err != nil {
		return err
	}
	if loaded != "" {
		app.logger.Printf("config: loaded %s", loaded)
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = app.Dir
	}
	if flags.Changed("backend") {
		cfg.Backend = app.Backend
	}
	if flags.Changed("format") {
		cfg.Format = app.Format
	}
	if flags.Changed("key") {
		cfg.Key = app.Key
	}
	if app.NoColor {
		off := false
		cfg.Color = &off
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	app.cfg = cfg
	app.Dir = cfg.Dir
	app.Backend = cfg.Backend
	app.Format = cfg.Format
	app.Key = cfg.Key
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	st, closeStore, err := openStore(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeStore()

	return tui.Run(cmd.Context(), st, tui.Options{
		Color:     app.cfg.ColorEnabled(),
		NameWidth: app.cfg.NameWidth,
	})
}

// openStore opens the configured backend and loads the task list. The
// returned func closes the backend.
func openStore(ctx context.Context, app *App) (*store.TaskStore, func() error, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err := kv.ParseBackend(app.Backend)
	if err != nil {
		return nil, nil, err
	}
	if backend != kv.BackendMemory && strings.TrimSpace(app.Dir) == "" {
		return nil, nil, errors.New("no data directory; pass --dir or set TASKLIST_DIR")
	}

	slot, err := kv.Open(ctx, backend, app.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s backend: %w", backend, err)
	}
	if db, ok := slot.(*kv.SQLite); ok {
		app.logger.Printf("store: opened %s backend at %s", backend, db.Path())
	} else {
		app.logger.Printf("store: opened %s backend at %s", backend, app.Dir)
	}

	st := store.New(slot,
		store.WithKey(app.Key),
		store.WithClock(app.now),
		store.WithLogger(app.logger),
	)
	if err := st.Load(ctx); err != nil {
		_ = slot.Close()
		return nil, nil, err
	}
	app.logger.Printf("store: loaded %d task(s) from slot %q", st.Len(), st.Key())
	return st, slot.Close, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeErr prints err once and marks it as reported so main does not print
// it again. Bad input and unknown tasks print as a plain notice; everything
// else gets the "error:" prefix.
func writeErr(cmd *cobra.Command, err error) error {
	if err == nil || Reported(err) {
		return err
	}
	if store.IsUserError(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "error: "+err.Error())
	}
	return reportedError{err: err}
}
