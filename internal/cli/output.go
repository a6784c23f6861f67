package cli

import (
	"fmt"
	"io"

	"tasklist-cli/internal/model"
	"tasklist-cli/internal/statusutil"
	"tasklist-cli/internal/view"
)

// taskList is the output of list: a table for humans, an envelope with meta
// for json/yaml.
type taskList struct {
	rows   []view.Row
	filter model.Filter
	opts   view.RenderOptions
}

func (l taskList) WriteTable(w io.Writer) error {
	return view.Render(w, l.rows, l.opts)
}

func (l taskList) Payload() any {
	return map[string]any{
		"data": l.rows,
		"meta": map[string]any{
			"filter": statusutil.FilterToken(l.filter),
			"count":  len(l.rows),
		},
	}
}

// taskShow renders a single task; json/yaml get the row itself as data.
type taskShow struct {
	row  view.Row
	opts view.RenderOptions
}

func (s taskShow) WriteTable(w io.Writer) error {
	return view.Render(w, []view.Row{s.row}, s.opts)
}

func (s taskShow) Payload() any {
	return map[string]any{"data": s.row}
}

// result is a mutation outcome: one line of text, or data in an envelope.
type result struct {
	message string
	data    any
}

func (r result) WriteTable(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.message)
	return err
}

func (r result) Payload() any {
	return map[string]any{"data": r.data}
}

func renderOptions(app *App) view.RenderOptions {
	return view.RenderOptions{
		Color:     app.cfg.ColorEnabled(),
		NameWidth: app.cfg.NameWidth,
		Empty:     "No tasks.",
	}
}
