package app

import "time"

// displayTickMsg fires roughly once a second while a session runs.
// It only triggers a re-render; elapsed time is always recomputed from
// the session's absolute start timestamp.
type displayTickMsg time.Time

// prayerTickMsg fires every thirty seconds to re-derive prayer states
// from the wall clock.
type prayerTickMsg time.Time

// clearStatusMsg clears a transient status line after a timeout.
type clearStatusMsg struct{}
