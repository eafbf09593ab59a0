package core

import "time"

// ActiveSession is the single running activity, if any. StartedAt is a
// wall-clock epoch value in milliseconds, not a monotonic reading, so a
// session survives process restarts and arbitrary suspensions: elapsed
// time is always recomputed from the absolute start, never accumulated
// tick by tick.
type ActiveSession struct {
	Kind      ActivityKind `json:"kind"`
	StartedAt int64        `json:"startedAt"`
}

// ElapsedSeconds returns whole seconds since the session started.
// A clock set backwards yields 0, never a negative duration.
func (s ActiveSession) ElapsedSeconds(now time.Time) int {
	ms := now.UnixMilli() - s.StartedAt
	if ms < 0 {
		return 0
	}
	return int(ms / 1000)
}

// newSession starts a session for kind at now.
func newSession(kind ActivityKind, now time.Time) *ActiveSession {
	return &ActiveSession{Kind: kind, StartedAt: now.UnixMilli()}
}
