package config

import (
	"testing"

	"studytrack/internal/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cfg.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", cfg.RetentionDays)
	}

	windows, err := cfg.Windows()
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	if got := windows[core.PrayerDhuhr]; got != core.DefaultWindows[core.PrayerDhuhr] {
		t.Errorf("dhuhr window = %v, want default %v", got, core.DefaultWindows[core.PrayerDhuhr])
	}
	if len(windows) != len(core.Prayers) {
		t.Errorf("got %d windows, want %d", len(windows), len(core.Prayers))
	}
}

func TestWindowOverride(t *testing.T) {
	t.Setenv("STUDYTRACK_WINDOW_FAJR", "04:45-06:00")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	windows, err := cfg.Windows()
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}

	want := core.PrayerWindow{Start: "04:45", End: "06:00"}
	if got := windows[core.PrayerFajr]; got != want {
		t.Errorf("fajr window = %v, want %v", got, want)
	}
	// Others keep their defaults.
	if got := windows[core.PrayerIsha]; got != core.DefaultWindows[core.PrayerIsha] {
		t.Errorf("isha window = %v, want default", got)
	}
}

func TestInvalidWindowRejected(t *testing.T) {
	tests := []string{
		"0445-0600",   // no colon
		"04:45",       // missing end
		"22:00-01:00", // crosses midnight
		"4:45-06:00",  // not zero-padded
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("STUDYTRACK_WINDOW_FAJR", raw)
			if _, err := New(); err == nil {
				t.Errorf("New with window %q should fail", raw)
			}
		})
	}
}

func TestInvalidRetentionRejected(t *testing.T) {
	t.Setenv("STUDYTRACK_RETENTION_DAYS", "0")
	if _, err := New(); err == nil {
		t.Error("retention of 0 days should fail validation")
	}
}
