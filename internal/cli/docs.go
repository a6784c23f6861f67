package cli

import (
	"fmt"
	"io"
	"strings"

	"tasklist-cli/internal/docs"
	"tasklist-cli/internal/format"

	"github.com/spf13/cobra"
)

const docsWidth = 80

type docsTopics []string

func (t docsTopics) WriteTable(w io.Writer) error {
	_, err := fmt.Fprintln(w, strings.Join(t, "\n"))
	return err
}

func (t docsTopics) Payload() any {
	return map[string]any{"data": map[string]any{"topics": []string(t)}}
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, docsTopics(docs.Topics()))
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `tasklist docs` to list topics)", topic))
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if app.Format != "" && app.Format != format.FormatTable {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
			}

			style := "notty"
			if app.cfg.ColorEnabled() {
				style = "dark"
			}
			out, err := docs.Render(body, docsWidth, style)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")

	return cmd
}
