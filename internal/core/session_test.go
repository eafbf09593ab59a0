package core

import (
	"testing"
	"time"
)

// at builds a deterministic local timestamp for tests.
func at(day, hour, min, sec int) time.Time {
	return time.Date(2025, time.March, day, hour, min, sec, 0, time.Local)
}

func newTestTracker() *Tracker {
	return New(Options{State: NewAppState()})
}

func TestStartStopFoldsElapsed(t *testing.T) {
	tr := newTestTracker()

	start := at(10, 9, 0, 0)
	tr.Start(ActivitySelfStudy, start)

	if kind, ok := tr.ActiveKind(); !ok || kind != ActivitySelfStudy {
		t.Fatalf("ActiveKind = %v, %v, want self_study running", kind, ok)
	}

	stop := start.Add(95 * time.Second)
	tr.Stop(stop)

	if _, ok := tr.ActiveKind(); ok {
		t.Error("session should be cleared after Stop")
	}
	if got := tr.DisplaySeconds(ActivitySelfStudy, stop); got != 95 {
		t.Errorf("DisplaySeconds = %d, want 95", got)
	}
}

func TestDisplaySecondsLiveDoesNotWrite(t *testing.T) {
	tr := newTestTracker()

	start := at(10, 9, 0, 0)
	tr.Start(ActivityClass, start)

	// Many display reads while running must not accumulate anything.
	for i := 1; i <= 10; i++ {
		now := start.Add(time.Duration(i) * time.Second)
		if got := tr.DisplaySeconds(ActivityClass, now); got != i {
			t.Fatalf("DisplaySeconds at +%ds = %d, want %d", i, got, i)
		}
	}

	tr.Stop(start.Add(10 * time.Second))
	if got := tr.DisplaySeconds(ActivityClass, start.Add(11*time.Second)); got != 10 {
		t.Errorf("stored total = %d, want 10 (display ticks must not write)", got)
	}
}

func TestToggleSameKindStops(t *testing.T) {
	tr := newTestTracker()

	start := at(10, 9, 0, 0)
	tr.Start(ActivitySleep, start)
	tr.Start(ActivitySleep, start.Add(30*time.Second))

	if _, ok := tr.ActiveKind(); ok {
		t.Error("starting the same kind again should stop, not restart")
	}
	if got := tr.DisplaySeconds(ActivitySleep, start.Add(31*time.Second)); got != 30 {
		t.Errorf("total = %d, want 30", got)
	}
}

func TestToggleImmediatelyFoldsZero(t *testing.T) {
	tr := newTestTracker()

	now := at(10, 9, 0, 0)
	tr.Start(ActivityFood, now)
	tr.Start(ActivityFood, now) // no time elapsed

	if got := tr.DisplaySeconds(ActivityFood, now); got != 0 {
		t.Errorf("total = %d, want 0", got)
	}
	if _, ok := tr.ActiveKind(); ok {
		t.Error("session should be stopped")
	}
}

func TestSwitchFoldsAndRestarts(t *testing.T) {
	tr := newTestTracker()

	start := at(10, 9, 0, 0)
	tr.Start(ActivitySelfStudy, start)

	switchAt := start.Add(10 * time.Second)
	tr.Start(ActivityClass, switchAt)

	if kind, ok := tr.ActiveKind(); !ok || kind != ActivityClass {
		t.Fatalf("ActiveKind = %v, %v, want class running", kind, ok)
	}
	if got := tr.DisplaySeconds(ActivitySelfStudy, switchAt); got != 10 {
		t.Errorf("self_study total = %d, want exactly 10", got)
	}
	if got := tr.DisplaySeconds(ActivityClass, switchAt); got != 0 {
		t.Errorf("class elapsed = %d, want fresh 0", got)
	}
}

func TestElapsedResumesAfterSuspension(t *testing.T) {
	tr := newTestTracker()

	start := at(10, 9, 0, 0)
	tr.Start(ActivityOther, start)

	// No ticks happened for three hours; elapsed is still exact.
	later := start.Add(3 * time.Hour)
	if got := tr.DisplaySeconds(ActivityOther, later); got != 3*3600 {
		t.Errorf("DisplaySeconds = %d, want %d", got, 3*3600)
	}
}

func TestClockBackwardsClampsToZero(t *testing.T) {
	s := ActiveSession{Kind: ActivitySelfStudy, StartedAt: at(10, 12, 0, 0).UnixMilli()}
	if got := s.ElapsedSeconds(at(10, 11, 0, 0)); got != 0 {
		t.Errorf("ElapsedSeconds with backwards clock = %d, want 0", got)
	}

	tr := newTestTracker()
	tr.Start(ActivitySelfStudy, at(10, 12, 0, 0))
	tr.Stop(at(10, 11, 0, 0))
	if got := tr.DisplaySeconds(ActivitySelfStudy, at(10, 11, 0, 0)); got != 0 {
		t.Errorf("folded total = %d, want 0, never negative", got)
	}
}

func TestMidnightSessionAttributesToStopDate(t *testing.T) {
	tr := newTestTracker()

	start := at(10, 23, 30, 0)
	tr.Start(ActivitySleep, start)

	stop := at(11, 0, 30, 0) // next day
	tr.Stop(stop)

	day10 := tr.Record(DateKey(start))
	day11 := tr.Record(DateKey(stop))
	if got := day10.Activities[ActivitySleep]; got != 0 {
		t.Errorf("start-day total = %d, want 0", got)
	}
	if got := day11.Activities[ActivitySleep]; got != 3600 {
		t.Errorf("stop-day total = %d, want 3600", got)
	}
}

func TestAccumulationAcrossRuns(t *testing.T) {
	tr := newTestTracker()

	base := at(10, 8, 0, 0)
	runs := []struct{ startOff, stopOff time.Duration }{
		{0, 10 * time.Second},
		{1 * time.Minute, 1*time.Minute + 25*time.Second},
		{2 * time.Hour, 2*time.Hour + 5*time.Second},
	}
	want := 0
	for _, r := range runs {
		tr.Start(ActivitySports, base.Add(r.startOff))
		tr.Stop(base.Add(r.stopOff))
		want += int((r.stopOff - r.startOff).Seconds())
	}

	if got := tr.DisplaySeconds(ActivitySports, base.Add(3*time.Hour)); got != want {
		t.Errorf("total = %d, want %d", got, want)
	}
}

func TestStartUnknownKindIgnored(t *testing.T) {
	tr := newTestTracker()
	tr.Start(ActivityKind("gaming"), at(10, 9, 0, 0))
	if _, ok := tr.ActiveKind(); ok {
		t.Error("unknown kind must not start a session")
	}
}
