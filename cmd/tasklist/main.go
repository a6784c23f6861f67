package main

import (
	"fmt"
	"os"
	"strings"

	"tasklist-cli/internal/cli"
	"tasklist-cli/internal/store"
)

// rewriteDirectTaskLookupArgs makes `tasklist <task-id>` work like
// `tasklist show <task-id>`. Cobra treats the first non-flag token as a
// subcommand, so argv is rewritten before parsing. Persistent flags may come
// first, so this looks for the first positional token, not argv[1].
func rewriteDirectTaskLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without their value so the id is never consumed.
	valueFlags := map[string]bool{
		"--config":  true,
		"--dir":     true,
		"--backend": true,
		"--format":  true,
		"--key":     true,
	}
	boolFlags := map[string]bool{
		"--pretty":   true,
		"--no-color": true,
		"--verbose":  true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		// Cobra stops looking for subcommands at "--", so "show" goes before it.
		if a == "--" {
			if i+1 < len(argv) && store.LooksLikeID(argv[i+1]) {
				out := make([]string, 0, len(argv)+1)
				out = append(out, argv[:i]...)
				out = append(out, "show")
				out = append(out, argv[i:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if store.LooksLikeID(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectTaskLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "error: "+err.Error())
		}
		os.Exit(1)
	}
}
