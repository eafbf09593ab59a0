package core

import (
	"fmt"
	"regexp"
	"time"
)

// PrayerName identifies one of the five daily prayers.
type PrayerName string

const (
	PrayerFajr    PrayerName = "fajr"
	PrayerDhuhr   PrayerName = "dhuhr"
	PrayerAsr     PrayerName = "asr"
	PrayerMaghrib PrayerName = "maghrib"
	PrayerIsha    PrayerName = "isha"
)

// Prayers lists the five prayers in daily order.
var Prayers = []PrayerName{
	PrayerFajr,
	PrayerDhuhr,
	PrayerAsr,
	PrayerMaghrib,
	PrayerIsha,
}

// PrayerLabels maps each prayer to its display label.
var PrayerLabels = map[PrayerName]string{
	PrayerFajr:    "Fajr",
	PrayerDhuhr:   "Dhuhr",
	PrayerAsr:     "Asr",
	PrayerMaghrib: "Maghrib",
	PrayerIsha:    "Isha",
}

// Label returns the display label for a prayer, or the raw id if unknown.
func (p PrayerName) Label() string {
	if l, ok := PrayerLabels[p]; ok {
		return l
	}
	return string(p)
}

// PrayerState is the per-day state of one prayer.
type PrayerState string

const (
	// PrayerPending means the window has not opened yet.
	PrayerPending PrayerState = "pending"
	// PrayerActive means the window is open and the prayer is unmarked.
	PrayerActive PrayerState = "active"
	// PrayerMissed means the window closed without the prayer being marked.
	PrayerMissed PrayerState = "missed"
	// PrayerCompleted is the sticky user-marked terminal state.
	PrayerCompleted PrayerState = "completed"
)

// PrayerWindow is the daily recurring clock interval during which a
// prayer may be marked completed. Start and End are zero-padded "HH:MM"
// local clock strings; End must not precede Start (no date-crossing
// windows).
type PrayerWindow struct {
	Start string
	End   string
}

// DefaultWindows holds the configured window per prayer.
var DefaultWindows = map[PrayerName]PrayerWindow{
	PrayerFajr:    {Start: "04:30", End: "06:15"},
	PrayerDhuhr:   {Start: "12:15", End: "15:30"},
	PrayerAsr:     {Start: "15:45", End: "17:45"},
	PrayerMaghrib: {Start: "18:00", End: "19:15"},
	PrayerIsha:    {Start: "19:30", End: "23:30"},
}

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateWindow checks that a window uses well-formed zero-padded
// clock strings and does not cross midnight.
func ValidateWindow(w PrayerWindow) error {
	if !clockRe.MatchString(w.Start) {
		return fmt.Errorf("bad window start %q, want HH:MM", w.Start)
	}
	if !clockRe.MatchString(w.End) {
		return fmt.Errorf("bad window end %q, want HH:MM", w.End)
	}
	if w.End < w.Start {
		return fmt.Errorf("window end %s precedes start %s", w.End, w.Start)
	}
	return nil
}

// ClockString formats t's local wall-clock time as zero-padded "HH:MM".
func ClockString(t time.Time) string {
	return t.Format("15:04")
}

// deriveState computes the clock-derived state for a window. Both sides
// of the comparison are fixed-width zero-padded strings, so lexical
// order equals numeric order.
func deriveState(w PrayerWindow, clock string) PrayerState {
	switch {
	case clock > w.End:
		return PrayerMissed
	case clock >= w.Start:
		return PrayerActive
	default:
		return PrayerPending
	}
}

// evaluatePrayers rewrites every non-completed prayer state in the record
// from the current clock. Completed is sticky and never demoted here.
// Reports whether any state changed.
func evaluatePrayers(r DayRecord, windows map[PrayerName]PrayerWindow, clock string) bool {
	changed := false
	for _, p := range Prayers {
		if r.Prayers[p] == PrayerCompleted {
			continue
		}
		w, ok := windows[p]
		if !ok {
			continue
		}
		next := deriveState(w, clock)
		if r.Prayers[p] != next {
			r.Prayers[p] = next
			changed = true
		}
	}
	return changed
}

// markPrayer applies the only user-controlled prayer transition:
// active promotes to completed, completed demotes to active (undo).
// Pending and missed reject the action as a no-op. Reports whether the
// state changed.
func markPrayer(r DayRecord, p PrayerName) bool {
	switch r.Prayers[p] {
	case PrayerActive:
		r.Prayers[p] = PrayerCompleted
		return true
	case PrayerCompleted:
		r.Prayers[p] = PrayerActive
		return true
	default:
		return false
	}
}
