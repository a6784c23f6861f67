package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"tasklist-cli/internal/cli"
	"tasklist-cli/internal/config"

	"github.com/google/go-cmp/cmp"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"tasklist"},
			want: []string{"tasklist"},
		},
		{
			name: "direct task id first token",
			in:   []string{"tasklist", "t-3f9a01bc"},
			want: []string{"tasklist", "show", "t-3f9a01bc"},
		},
		{
			name: "direct task id after value flag",
			in:   []string{"tasklist", "--dir", "./tmp-data", "t-3f9a01bc"},
			want: []string{"tasklist", "--dir", "./tmp-data", "show", "t-3f9a01bc"},
		},
		{
			name: "direct task id after equals flag",
			in:   []string{"tasklist", "--backend=file", "t-3f9a"},
			want: []string{"tasklist", "--backend=file", "show", "t-3f9a"},
		},
		{
			name: "direct task id after bool flags",
			in:   []string{"tasklist", "--pretty", "--no-color", "t-3f9a01bc"},
			want: []string{"tasklist", "--pretty", "--no-color", "show", "t-3f9a01bc"},
		},
		{
			name: "direct task id after double dash",
			in:   []string{"tasklist", "--key", "work", "--", "t-3f9a01bc"},
			want: []string{"tasklist", "--key", "work", "show", "--", "t-3f9a01bc"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"tasklist", "toggle", "t-3f9a01bc"},
			want: []string{"tasklist", "toggle", "t-3f9a01bc"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"tasklist", "t-"},
			want: []string{"tasklist", "t-"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"tasklist", "wat"},
			want: []string{"tasklist", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTaskLookupArgs(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("rewriteDirectTaskLookupArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRewrittenArgsRunShow(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())
	base := []string{"--dir", t.TempDir(), "--backend", "file", "--format", "json"}

	run := func(args ...string) []byte {
		t.Helper()
		cmd := cli.NewRootCmd()
		var out, errOut bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("tasklist %v: %v\nstderr:\n%s", args, err, errOut.String())
		}
		return out.Bytes()
	}

	var added struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	addArgs := append(append([]string{}, base...), "add", "--name", "Pay bill", "--date", "2030-03-01", "--time", "09:00")
	if err := json.Unmarshal(run(addArgs...), &added); err != nil {
		t.Fatalf("decode add output: %v", err)
	}

	for _, argv := range [][]string{
		append(append([]string{"tasklist"}, base...), added.Data.ID),
		append(append([]string{"tasklist"}, base...), "--", added.Data.ID),
	} {
		rewritten := rewriteDirectTaskLookupArgs(argv)
		var shown struct {
			Data struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"data"`
		}
		if err := json.Unmarshal(run(rewritten[1:]...), &shown); err != nil {
			t.Fatalf("decode show output for %v: %v", rewritten, err)
		}
		if shown.Data.ID != added.Data.ID || shown.Data.Name != "Pay bill" {
			t.Fatalf("%v: unexpected task %+v", rewritten, shown.Data)
		}
	}
}
