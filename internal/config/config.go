// Package config resolves gantry settings from defaults, an optional JSONC
// file and GANTRY_* environment variables, in that order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"
)

const (
	DefaultDueSoonDays = 7
	DefaultDayWidth    = 40
	DefaultRowHeight   = 50
	// DefaultDayCells is the width of one day column in the terminal planner.
	DefaultDayCells = 3
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all runtime settings.
type Config struct {
	DBPath        string `json:"db_path"`
	DayWidth      int    `json:"day_width"`
	RowHeight     int    `json:"row_height"`
	DueSoonDays   int    `json:"due_soon_days"`
	HolidayRegion string `json:"holiday_region"`
	TUIDayCells   int    `json:"tui_day_cells"`
	LogUseCases   bool   `json:"log_use_cases"`

	// Source is the config file that was applied, empty when none.
	Source string `json:"-"`
}

// DefaultConfig returns the built-in settings. DBPath is resolved against
// the home directory by Load.
func DefaultConfig() Config {
	return Config{
		DayWidth:    DefaultDayWidth,
		RowHeight:   DefaultRowHeight,
		DueSoonDays: DefaultDueSoonDays,
		TUIDayCells: DefaultDayCells,
	}
}

// Path returns $XDG_CONFIG_HOME/gantry/config.json, falling back to
// ~/.config/gantry/config.json. It returns "" if neither can be derived.
func Path(getenv func(string) string) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gantry", "config.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gantry", "config.json")
}

// Load builds the effective configuration. A missing config file is not
// an error; a malformed one is.
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := DefaultConfig()

	if path := Path(getenv); path != "" {
		loaded, err := LoadFile(path, cfg)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		if err == nil {
			cfg = loaded
			cfg.Source = path
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".gantry", "gantry.db")
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the JSONC file at path onto base. Keys absent from the
// file keep base's values. Comments and trailing commas are accepted.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data, base)
}

// Parse overlays JSONC data onto base.
func Parse(data []byte, base Config) (Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg := base
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("GANTRY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("GANTRY_DAY_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: GANTRY_DAY_WIDTH=%q", ErrInvalidConfig, v)
		}
		cfg.DayWidth = n
	}
	if v := getenv("GANTRY_DUE_SOON_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: GANTRY_DUE_SOON_DAYS=%q", ErrInvalidConfig, v)
		}
		cfg.DueSoonDays = n
	}
	if v, ok := lookup(getenv, "GANTRY_HOLIDAYS"); ok {
		cfg.HolidayRegion = v
	}
	if v := getenv("GANTRY_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	return nil
}

// lookup treats "none" as an explicit empty value so the environment can
// switch off a region set in the file.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return "", false
	}
	if strings.EqualFold(v, "none") {
		return "", true
	}
	return strings.ToLower(v), true
}

// Validate rejects settings the layout engine cannot use.
func (c Config) Validate() error {
	if c.DayWidth <= 0 {
		return fmt.Errorf("%w: day_width must be positive", ErrInvalidConfig)
	}
	if c.RowHeight <= 0 {
		return fmt.Errorf("%w: row_height must be positive", ErrInvalidConfig)
	}
	if c.TUIDayCells <= 0 {
		return fmt.Errorf("%w: tui_day_cells must be positive", ErrInvalidConfig)
	}
	if c.DueSoonDays < 0 {
		return fmt.Errorf("%w: due_soon_days must not be negative", ErrInvalidConfig)
	}
	switch c.HolidayRegion {
	case "", "us", "jp":
	default:
		return fmt.Errorf("%w: holiday_region %q (use us or jp)", ErrInvalidConfig, c.HolidayRegion)
	}
	return nil
}
