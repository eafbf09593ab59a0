package core

import (
	"errors"
	"testing"
	"time"
)

// recordingSaver captures every flushed snapshot.
type recordingSaver struct {
	saves []AppState
	err   error
}

func (s *recordingSaver) Save(state AppState) error {
	s.saves = append(s.saves, state)
	return s.err
}

// recordingNotifier captures dispatched notifications.
type recordingNotifier struct {
	titles []string
}

func (n *recordingNotifier) Notify(title, body string) {
	n.titles = append(n.titles, title)
}

func TestEveryMutationPersists(t *testing.T) {
	saver := &recordingSaver{}
	tr := New(Options{State: NewAppState(), Store: saver})
	now := at(10, 9, 0, 0)

	tr.Start(ActivitySelfStudy, now)
	tr.Stop(now.Add(time.Second))
	tr.MarkPrayer(PrayerFajr, at(10, 5, 0, 0))
	tr.SetProfile(UserProfile{Name: "Rafi", Class: "9"}, now)
	tr.AddTask("revise algebra", now)
	tr.SetNotificationsEnabled(false, now)

	if len(saver.saves) != 6 {
		t.Errorf("got %d saves, want 6 (one per mutation)", len(saver.saves))
	}
}

func TestRejectedMarkStillPersistsDerivedStates(t *testing.T) {
	saver := &recordingSaver{}
	tr := New(Options{State: NewAppState(), Store: saver})

	// 13:00: the re-derivation inside MarkPrayer moves fajr to missed
	// and dhuhr to active before rejecting the fajr mark. That movement
	// must be flushed even though the mark itself is a no-op.
	now := at(10, 13, 0, 0)
	if tr.MarkPrayer(PrayerFajr, now) {
		t.Fatal("marking a missed prayer should be rejected")
	}
	if len(saver.saves) != 1 {
		t.Fatalf("got %d saves, want 1 for the derived-state change", len(saver.saves))
	}
	last := saver.saves[0]
	if got := last.History[DateKey(now)].Prayers[PrayerFajr]; got != PrayerMissed {
		t.Errorf("flushed fajr = %s, want missed", got)
	}

	// A rejected mark with nothing re-derived flushes nothing.
	if tr.MarkPrayer(PrayerFajr, now) {
		t.Fatal("marking a missed prayer should stay rejected")
	}
	if len(saver.saves) != 1 {
		t.Errorf("got %d saves, want still 1 when no state changed", len(saver.saves))
	}
}

func TestSaveFailureDoesNotFailMutation(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	tr := New(Options{State: NewAppState(), Store: saver})
	now := at(10, 9, 0, 0)

	tr.Start(ActivitySelfStudy, now)
	tr.Stop(now.Add(10 * time.Second))

	// The in-memory state carries on regardless of the failed flush.
	if got := tr.DisplaySeconds(ActivitySelfStudy, now.Add(11*time.Second)); got != 10 {
		t.Errorf("total = %d, want 10 despite save errors", got)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	tr := newTestTracker()
	now := at(10, 9, 0, 0)
	tr.Start(ActivityClass, now)
	tr.Stop(now.Add(5 * time.Second))

	snap := tr.Snapshot()
	snap.History[DateKey(now)].Activities[ActivityClass] = 9999

	if got := tr.DisplaySeconds(ActivityClass, now.Add(6*time.Second)); got != 5 {
		t.Errorf("mutating a snapshot leaked into the tracker: total = %d, want 5", got)
	}
}

func TestSnapshotPreservesActiveSession(t *testing.T) {
	tr := newTestTracker()
	now := at(10, 9, 0, 0)
	tr.Start(ActivitySelfStudy, now)

	snap := tr.Snapshot()
	if snap.ActiveSession == nil {
		t.Fatal("snapshot should carry the active session")
	}

	// A tracker rebuilt from the snapshot recomputes elapsed correctly.
	restored := New(Options{State: snap})
	if got := restored.DisplaySeconds(ActivitySelfStudy, now.Add(42*time.Second)); got != 42 {
		t.Errorf("restored elapsed = %d, want 42", got)
	}
}

func TestSessionNotifications(t *testing.T) {
	notifier := &recordingNotifier{}
	tr := New(Options{State: NewAppState(), Notifier: notifier})
	now := at(10, 9, 0, 0)

	tr.Start(ActivitySelfStudy, now)
	tr.Stop(now.Add(time.Second))
	tr.MarkPrayer(PrayerDhuhr, at(10, 13, 0, 0))

	want := []string{"Tracking started", "Tracking stopped", "Prayer completed"}
	if len(notifier.titles) != len(want) {
		t.Fatalf("got %d notifications %v, want %d", len(notifier.titles), notifier.titles, len(want))
	}
	for i := range want {
		if notifier.titles[i] != want[i] {
			t.Errorf("notification[%d] = %q, want %q", i, notifier.titles[i], want[i])
		}
	}
}

func TestNotificationsRespectPreference(t *testing.T) {
	notifier := &recordingNotifier{}
	tr := New(Options{State: NewAppState(), Notifier: notifier})
	now := at(10, 9, 0, 0)

	tr.SetNotificationsEnabled(false, now)
	tr.Start(ActivitySelfStudy, now)
	tr.Stop(now.Add(time.Second))

	if len(notifier.titles) != 0 {
		t.Errorf("got notifications %v with preference off, want none", notifier.titles)
	}

	// The explicit test notification bypasses the flag.
	tr.TestNotification()
	if len(notifier.titles) != 1 {
		t.Errorf("test notification should always dispatch, got %v", notifier.titles)
	}
}

func TestTaskLifecycle(t *testing.T) {
	tr := newTestTracker()
	now := at(10, 9, 0, 0)

	if tr.AddTask("   ", now) {
		t.Error("blank task text should be rejected")
	}
	tr.AddTask("first", now)
	tr.AddTask("second", now.Add(time.Minute))

	tasks := tr.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Text != "second" {
		t.Errorf("tasks[0].Text = %q, want newest first", tasks[0].Text)
	}
	if tasks[0].ID == tasks[1].ID {
		t.Error("task ids must be unique")
	}

	tr.ToggleTask(tasks[0].ID, now)
	if got := tr.Tasks()[0]; !got.Completed {
		t.Error("toggle should mark the task completed")
	}

	tr.DeleteTask(tasks[1].ID, now)
	if got := tr.Tasks(); len(got) != 1 || got[0].Text != "second" {
		t.Errorf("after delete got %v, want only %q left", got, "second")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	tr := newTestTracker()

	if _, ok := tr.Profile(); ok {
		t.Error("fresh state should have no profile")
	}

	tr.SetProfile(UserProfile{Name: "Nusrat", Class: "10"}, at(10, 9, 0, 0))
	p, ok := tr.Profile()
	if !ok || p.Name != "Nusrat" || p.Class != "10" {
		t.Errorf("Profile = %+v, %v", p, ok)
	}
}

func TestPersistPrunesLedger(t *testing.T) {
	state := NewAppState()
	now := at(10, 9, 0, 0)
	state.History.Ensure(DateKey(now.AddDate(0, 0, -40)))
	saver := &recordingSaver{}
	tr := New(Options{State: state, Store: saver})

	tr.Start(ActivitySelfStudy, now)

	if len(saver.saves) == 0 {
		t.Fatal("expected a save")
	}
	last := saver.saves[len(saver.saves)-1]
	if _, ok := last.History[DateKey(now.AddDate(0, 0, -40))]; ok {
		t.Error("save cycle should prune entries past the retention window")
	}
}
