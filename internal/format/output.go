package format

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Tabular values render themselves for the table format.
type Tabular interface {
	WriteTable(w io.Writer) error
}

// Write writes output in the requested format.
//
// Supported formats:
// - table (default; values that are not Tabular fall back to pretty JSON)
// - json
// - yaml
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", FormatTable:
		if t, ok := v.(Tabular); ok {
			return t.WriteTable(w)
		}
		return WriteJSON(w, v, true)
	case FormatJSON:
		return WriteJSON(w, v, pretty)
	case FormatYAML:
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func Valid(format string) bool {
	switch format {
	case "", FormatTable, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Payload returns the JSON-facing value of v. Tabular wrappers expose their
// data through this so json/yaml output doesn't depend on the wrapper type.
type Payload interface {
	Payload() any
}

func unwrap(v any) any {
	if p, ok := v.(Payload); ok {
		return p.Payload()
	}
	return v
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	v = unwrap(v)
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteYAML writes v as YAML. Structs go through JSON first so field names
// follow the json tags, same as the JSON output.
func WriteYAML(w io.Writer, v any) error {
	b, err := json.Marshal(unwrap(v))
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(x); err != nil {
		return err
	}
	return enc.Close()
}
