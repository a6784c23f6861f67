package tui

import (
	"context"

	"tasklist-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive view on st and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, st *store.TaskStore, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := newAppModel(ctx, st, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
