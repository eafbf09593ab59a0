// Package config resolves application configuration from the
// environment with the STUDYTRACK_ prefix.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"studytrack/internal/core"
)

// Config holds the tunable settings. Prayer windows accept "HH:MM-HH:MM"
// overrides; empty values keep the built-in defaults.
type Config struct {
	// DataDir overrides the state directory (default ~/.studytrack).
	DataDir string `envconfig:"DATA_DIR" default:""`

	// RetentionDays is the rolling history window in calendar days.
	RetentionDays int `envconfig:"RETENTION_DAYS" default:"30"`

	// Prayer window overrides, e.g. STUDYTRACK_WINDOW_FAJR=04:45-06:00.
	WindowFajr    string `envconfig:"WINDOW_FAJR" default:""`
	WindowDhuhr   string `envconfig:"WINDOW_DHUHR" default:""`
	WindowAsr     string `envconfig:"WINDOW_ASR" default:""`
	WindowMaghrib string `envconfig:"WINDOW_MAGHRIB" default:""`
	WindowIsha    string `envconfig:"WINDOW_ISHA" default:""`
}

// New parses the environment and validates the result.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("STUDYTRACK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and window syntax.
func (c *Config) Validate() error {
	if c.RetentionDays < 1 {
		return fmt.Errorf("retention days must be positive, got %d", c.RetentionDays)
	}
	if _, err := c.Windows(); err != nil {
		return err
	}
	return nil
}

// Windows merges configured overrides over the built-in defaults.
func (c *Config) Windows() (map[core.PrayerName]core.PrayerWindow, error) {
	overrides := map[core.PrayerName]string{
		core.PrayerFajr:    c.WindowFajr,
		core.PrayerDhuhr:   c.WindowDhuhr,
		core.PrayerAsr:     c.WindowAsr,
		core.PrayerMaghrib: c.WindowMaghrib,
		core.PrayerIsha:    c.WindowIsha,
	}

	windows := make(map[core.PrayerName]core.PrayerWindow, len(core.Prayers))
	for _, p := range core.Prayers {
		windows[p] = core.DefaultWindows[p]
		raw := overrides[p]
		if raw == "" {
			continue
		}
		w, err := parseWindow(raw)
		if err != nil {
			return nil, fmt.Errorf("window for %s: %w", p, err)
		}
		windows[p] = w
	}
	return windows, nil
}

// parseWindow parses "HH:MM-HH:MM" into a validated window.
func parseWindow(s string) (core.PrayerWindow, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return core.PrayerWindow{}, fmt.Errorf("invalid window %q, want HH:MM-HH:MM", s)
	}
	w := core.PrayerWindow{
		Start: strings.TrimSpace(parts[0]),
		End:   strings.TrimSpace(parts[1]),
	}
	if err := core.ValidateWindow(w); err != nil {
		return core.PrayerWindow{}, err
	}
	return w, nil
}
