package format

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type tabular struct{ data sample }

func (t tabular) WriteTable(w io.Writer) error {
	_, err := io.WriteString(w, "TABLE "+t.data.Name+"\n")
	return err
}

func (t tabular) Payload() any { return map[string]any{"data": t.data} }

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": sample{Name: "a", Count: 2}}, FormatJSON, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"data":{"name":"a","count":2}}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestWrite_TableUsesTabular(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, tabular{data: sample{Name: "x"}}, FormatTable, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "TABLE x\n" {
		t.Fatalf("unexpected table output: %q", buf.String())
	}
}

func TestWrite_TableFallsBackToPrettyJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample{Name: "x", Count: 1}, "", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"name\": \"x\"") {
		t.Fatalf("expected indented json, got %q", buf.String())
	}
}

func TestWrite_PayloadUnwrapped(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, tabular{data: sample{Name: "x", Count: 3}}, FormatJSON, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	var env map[string]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if env["data"]["name"] != "x" {
		t.Fatalf("unexpected envelope: %v", env)
	}
}

func TestWrite_YAMLFollowsJSONTags(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []sample{{Name: "a", Count: 1}}}, FormatYAML, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got map[string][]map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml unmarshal: %v\n%s", err, buf.String())
	}
	if len(got["data"]) != 1 || got["data"][0]["name"] != "a" || got["data"][0]["count"] != 1 {
		t.Fatalf("unexpected yaml: %v", got)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(io.Discard, 1, "xml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if Valid("xml") || !Valid("yaml") {
		t.Fatalf("Valid() mismatch")
	}
}
