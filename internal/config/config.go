// Package config resolves tasklist settings from defaults, the config file,
// the environment and (in the cli package) command-line flags, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tasklist-cli/internal/format"
	"tasklist-cli/internal/kv"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

const fileName = "config.json"

// Environment variables read by Load.
const (
	EnvConfigDir = "TASKLIST_CONFIG_DIR"
	EnvDir       = "TASKLIST_DIR"
	EnvBackend   = "TASKLIST_BACKEND"
	EnvFormat    = "TASKLIST_FORMAT"
	EnvKey       = "TASKLIST_KEY"
	EnvNoColor   = "NO_COLOR"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigInvalid  = errors.New("invalid config")
)

type Config struct {
	// Dir holds the data files (tasklist.sqlite or <key>.json).
	Dir string `json:"dir,omitempty"`
	// Backend is sqlite, file or memory.
	Backend string `json:"backend,omitempty"`
	// Format is the default output format (table|json|yaml).
	Format string `json:"format,omitempty"`
	// Key names the slot holding the task list.
	Key       string `json:"key,omitempty"`
	NameWidth int    `json:"nameWidth,omitempty"`
	Color     *bool  `json:"color,omitempty"`
}

func (c Config) ColorEnabled() bool { return c.Color == nil || *c.Color }

func boolPtr(b bool) *bool { return &b }

func Default() Config {
	dir := ""
	if d, err := Dir(); err == nil {
		dir = filepath.Join(d, "data")
	}
	return Config{
		Dir:       dir,
		Backend:   string(kv.BackendSQLite),
		Format:    format.FormatTable,
		Key:       "tasks",
		NameWidth: 40,
		Color:     boolPtr(true),
	}
}

// Dir is the config directory: $TASKLIST_CONFIG_DIR, else ~/.tasklist.
func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.tasklist).
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tasklist"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load returns defaults overlaid with the config file and the environment.
// An explicit path must exist; the default path is optional. The returned
// string is the file actually read ("" if none).
func Load(path string, getenv func(string) string) (Config, string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()

	mustExist := path != ""
	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, "", err
		}
		path = p
	}

	var loaded string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		fileCfg, err := Parse(data)
		if err != nil {
			return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
		}
		cfg = merge(cfg, fileCfg)
		loaded = path
	case errors.Is(err, os.ErrNotExist):
		if mustExist {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
	default:
		return Config{}, "", err
	}

	cfg = applyEnv(cfg, getenv)
	if err := Validate(cfg); err != nil {
		return Config{}, "", err
	}
	return cfg, loaded, nil
}

// Parse reads JSON with comments and trailing commas.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Dir != "" {
		base.Dir = overlay.Dir
	}
	if overlay.Backend != "" {
		base.Backend = overlay.Backend
	}
	if overlay.Format != "" {
		base.Format = overlay.Format
	}
	if overlay.Key != "" {
		base.Key = overlay.Key
	}
	if overlay.NameWidth != 0 {
		base.NameWidth = overlay.NameWidth
	}
	if overlay.Color != nil {
		base.Color = overlay.Color
	}
	return base
}

func applyEnv(cfg Config, getenv func(string) string) Config {
	env := func(k string) string { return strings.TrimSpace(getenv(k)) }
	cfg = merge(cfg, Config{
		Dir:     env(EnvDir),
		Backend: env(EnvBackend),
		Format:  env(EnvFormat),
		Key:     env(EnvKey),
	})
	// https://no-color.org: any non-empty value disables color.
	if env(EnvNoColor) != "" {
		cfg.Color = boolPtr(false)
	}
	return cfg
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Dir) == "" && cfg.Backend != string(kv.BackendMemory) {
		return fmt.Errorf("%w: dir is empty", ErrConfigInvalid)
	}
	if _, err := kv.ParseBackend(cfg.Backend); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	if !format.Valid(cfg.Format) {
		return fmt.Errorf("%w: unknown format %q (expected table|json|yaml)", ErrConfigInvalid, cfg.Format)
	}
	if cfg.NameWidth < 0 {
		return fmt.Errorf("%w: nameWidth must be >= 0, got %d", ErrConfigInvalid, cfg.NameWidth)
	}
	return nil
}

const template = `// tasklist configuration (JSON with comments).
{
  // Where task data lives.
  "dir": %s,
  // sqlite | file | memory
  "backend": "sqlite",
  // table | json | yaml
  "format": "table",
  // Slot holding the task list; use another key for a separate list.
  "key": "tasks",
  "nameWidth": 40,
  "color": true,
}
`

// WriteDefault writes a commented default config to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	dir, _ := json.Marshal(Default().Dir)
	content := fmt.Sprintf(template, dir)
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return err
	}
	return os.Chmod(path, 0o644)
}
