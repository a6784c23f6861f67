package statusutil

import (
	"fmt"
	"strings"

	"tasklist-cli/internal/model"
)

// Persisted status values. There is deliberately no value for "missing".
const (
	WireRemaining = "none"
	WireCompleted = "true"

	// wireLegacyMissing was documented for the old page but never written.
	wireLegacyMissing = "false"
)

// StatusToWire encodes a status for the persisted slot.
func StatusToWire(s model.Status) string {
	if s == model.StatusCompleted {
		return WireCompleted
	}
	return WireRemaining
}

// StatusFromWire decodes a persisted status. The legacy "false" value is read
// as remaining since overdue-ness is always recomputed.
func StatusFromWire(s string) (model.Status, error) {
	switch s {
	case WireRemaining, wireLegacyMissing:
		return model.StatusRemaining, nil
	case WireCompleted:
		return model.StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid persisted status: %q", s)
	}
}

// ParseFilter maps the selector tokens all|true|false (plus readable aliases)
// to a filter.
func ParseFilter(s string) (model.Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return model.FilterAll, nil
	case "true", "completed":
		return model.FilterCompleted, nil
	case "false", "missing":
		return model.FilterMissing, nil
	default:
		return "", fmt.Errorf("invalid filter: %q (expected all|true|false)", s)
	}
}

// FilterToken returns the selector token for f.
func FilterToken(f model.Filter) string {
	switch f {
	case model.FilterCompleted:
		return "true"
	case model.FilterMissing:
		return "false"
	default:
		return "all"
	}
}

// NextFilter cycles all -> completed -> missing -> all.
func NextFilter(f model.Filter) model.Filter {
	switch f {
	case model.FilterAll:
		return model.FilterCompleted
	case model.FilterCompleted:
		return model.FilterMissing
	default:
		return model.FilterAll
	}
}
