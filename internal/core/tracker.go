package core

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"studytrack/internal/timeutil"
)

// Saver persists the full application state as one record.
// Implementations must not be relied on for correctness: a failed save
// degrades to "unsaved since last success".
type Saver interface {
	Save(state AppState) error
}

// Notifier delivers a best-effort user notification. Implementations
// must swallow delivery failures.
type Notifier interface {
	Notify(title, body string)
}

// Options configures a Tracker.
type Options struct {
	State         AppState
	Store         Saver    // nil disables persistence
	Notifier      Notifier // nil disables notifications
	Windows       map[PrayerName]PrayerWindow
	RetentionDays int
	Logger        zerolog.Logger
}

// Tracker owns the application state and serializes every mutation and
// persistence flush behind one mutex. Callers pass now explicitly so
// behavior is a pure function of wall-clock input.
type Tracker struct {
	mu        sync.Mutex
	state     AppState
	store     Saver
	notifier  Notifier
	windows   map[PrayerName]PrayerWindow
	retention int
	log       zerolog.Logger
}

// New builds a Tracker around a loaded state.
func New(opts Options) *Tracker {
	opts.State.Normalize()
	if opts.Windows == nil {
		opts.Windows = DefaultWindows
	}
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = DefaultRetentionDays
	}
	return &Tracker{
		state:     opts.State,
		store:     opts.Store,
		notifier:  opts.Notifier,
		windows:   opts.Windows,
		retention: opts.RetentionDays,
		log:       opts.Logger,
	}
}

// Start starts, switches or toggle-stops an activity session.
//
// Idle → starts kind. Running another kind → folds the current session
// into today and starts kind. Running the same kind → stops it (toggle
// semantics; re-invoking an activity never restarts its clock).
func (t *Tracker) Start(kind ActivityKind, now time.Time) {
	if !kind.Valid() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if s := t.state.ActiveSession; s != nil {
		if s.Kind == kind {
			t.stopLocked(now)
			t.persistLocked(now)
			return
		}
		t.stopLocked(now)
	}
	t.state.ActiveSession = newSession(kind, now)
	t.persistLocked(now)
	t.notify("Tracking started", kind.Label())
}

// Stop ends the running session, folding its elapsed seconds into the
// day record for now's date. No-op when idle.
func (t *Tracker) Stop(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.ActiveSession == nil {
		return
	}
	t.stopLocked(now)
	t.persistLocked(now)
}

// stopLocked folds the active session and clears it. The elapsed time is
// attributed to the date of now, not the date the session started; a
// session spanning midnight lands entirely on the stop-time's day.
func (t *Tracker) stopLocked(now time.Time) {
	s := t.state.ActiveSession
	if s == nil {
		return
	}
	elapsed := s.ElapsedSeconds(now)
	rec := t.state.History.Ensure(DateKey(now))
	rec.Activities[s.Kind] += elapsed
	t.state.ActiveSession = nil
	t.notify("Tracking stopped", s.Kind.Label()+" · "+timeutil.Clock(rec.Activities[s.Kind])+" today")
}

// ActiveKind returns the running activity, or false when idle.
func (t *Tracker) ActiveKind() (ActivityKind, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.ActiveSession == nil {
		return "", false
	}
	return t.state.ActiveSession.Kind, true
}

// DisplaySeconds returns the seconds to render for kind today: the
// stored total plus, when kind is running, the live elapsed time.
// Read-only; it never writes totals.
func (t *Tracker) DisplaySeconds(kind ActivityKind, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := t.state.History.GetOrDefault(DateKey(now)).Activities[kind]
	if s := t.state.ActiveSession; s != nil && s.Kind == kind {
		total += s.ElapsedSeconds(now)
	}
	return total
}

// TotalTrackedSeconds returns the sum of all activity seconds for
// today, including the live session.
func (t *Tracker) TotalTrackedSeconds(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := t.state.History.GetOrDefault(DateKey(now)).TotalSeconds()
	if s := t.state.ActiveSession; s != nil {
		total += s.ElapsedSeconds(now)
	}
	return total
}

// EvaluatePrayers re-derives today's prayer states from the clock.
// Completed stays completed. Reports whether anything changed.
func (t *Tracker) EvaluatePrayers(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec := t.state.History.Ensure(DateKey(now))
	changed := evaluatePrayers(rec, t.windows, ClockString(now))
	if changed {
		t.persistLocked(now)
	}
	return changed
}

// MarkPrayer toggles a prayer between active and completed. Pending and
// missed prayers reject the action. States are re-derived first so the
// decision always uses the current clock.
func (t *Tracker) MarkPrayer(p PrayerName, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec := t.state.History.Ensure(DateKey(now))
	changed := evaluatePrayers(rec, t.windows, ClockString(now))
	if !markPrayer(rec, p) {
		// The re-derivation may itself have moved states; flush it even
		// though the mark was rejected.
		if changed {
			t.persistLocked(now)
		}
		return false
	}
	t.persistLocked(now)
	if rec.Prayers[p] == PrayerCompleted {
		t.notify("Prayer completed", p.Label())
	}
	return true
}

// PrayerState returns the state of one prayer on the given day key.
func (t *Tracker) PrayerState(dateKey string, p PrayerName) PrayerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.History.GetOrDefault(dateKey).Prayers[p]
}

// Record returns a copy of the day record for dateKey. The copy is safe
// for callers to hold across later mutations.
func (t *Tracker) Record(dateKey string) DayRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyRecord(t.state.History.GetOrDefault(dateKey))
}

// Dates lists known day keys within the retention window, newest first.
func (t *Tracker) Dates(now time.Time) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.History.Dates(now, t.retention)
}

// Window returns the configured window for a prayer.
func (t *Tracker) Window(p PrayerName) PrayerWindow {
	return t.windows[p]
}

// ResetToday replaces today's record with the default record and clears
// any running session.
func (t *Tracker) ResetToday(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.History.ResetDay(DateKey(now))
	t.state.ActiveSession = nil
	t.persistLocked(now)
}

// Profile returns the user profile, or false when none is saved.
func (t *Tracker) Profile() (UserProfile, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Profile == nil {
		return UserProfile{}, false
	}
	return *t.state.Profile, true
}

// SetProfile stores the user profile.
func (t *Tracker) SetProfile(p UserProfile, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Profile = &p
	t.persistLocked(now)
}

// Tasks returns a copy of the task list, newest first.
func (t *Tracker) Tasks() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Task, len(t.state.Tasks))
	copy(out, t.state.Tasks)
	return out
}

// AddTask prepends a new task. Blank text is rejected.
func (t *Tracker) AddTask(text string, now time.Time) bool {
	task, ok := NewTask(text, now)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Tasks = append([]Task{task}, t.state.Tasks...)
	t.persistLocked(now)
	return true
}

// ToggleTask flips a task's completed flag.
func (t *Tracker) ToggleTask(id string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.state.Tasks {
		if t.state.Tasks[i].ID == id {
			t.state.Tasks[i].Completed = !t.state.Tasks[i].Completed
			t.persistLocked(now)
			return
		}
	}
}

// DeleteTask removes a task by id.
func (t *Tracker) DeleteTask(id string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.state.Tasks {
		if t.state.Tasks[i].ID == id {
			t.state.Tasks = append(t.state.Tasks[:i], t.state.Tasks[i+1:]...)
			t.persistLocked(now)
			return
		}
	}
}

// NotificationsEnabled reports the notification preference.
func (t *Tracker) NotificationsEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.NotificationsEnabled
}

// SetNotificationsEnabled stores the notification preference.
func (t *Tracker) SetNotificationsEnabled(enabled bool, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.NotificationsEnabled = enabled
	t.persistLocked(now)
}

// TestNotification sends a sample notification regardless of the
// preference flag, so the user can verify delivery works.
func (t *Tracker) TestNotification() {
	if t.notifier != nil {
		t.notifier.Notify("Study Tracker", "Notifications are working")
	}
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() AppState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() AppState {
	out := AppState{
		History:              make(Ledger, len(t.state.History)),
		Tasks:                make([]Task, len(t.state.Tasks)),
		NotificationsEnabled: t.state.NotificationsEnabled,
	}
	if t.state.Profile != nil {
		p := *t.state.Profile
		out.Profile = &p
	}
	if t.state.ActiveSession != nil {
		s := *t.state.ActiveSession
		out.ActiveSession = &s
	}
	for key, rec := range t.state.History {
		out.History[key] = copyRecord(rec)
	}
	copy(out.Tasks, t.state.Tasks)
	return out
}

// persistLocked prunes the ledger and flushes the whole state. Failures
// are logged, never propagated: the triggering mutation has already
// been applied in memory.
func (t *Tracker) persistLocked(now time.Time) {
	t.state.History.Prune(now, t.retention)
	if t.store == nil {
		return
	}
	if err := t.store.Save(t.snapshotLocked()); err != nil {
		t.log.Warn().Err(err).Msg("state not persisted this cycle")
	}
}

// notify delivers a notification when the preference allows it.
// Callers hold the mutex; the notifier must not call back into Tracker.
func (t *Tracker) notify(title, body string) {
	if t.notifier == nil || !t.state.NotificationsEnabled {
		return
	}
	t.notifier.Notify(title, body)
}

func copyRecord(r DayRecord) DayRecord {
	out := DayRecord{
		Activities: make(map[ActivityKind]int, len(r.Activities)),
		Prayers:    make(map[PrayerName]PrayerState, len(r.Prayers)),
	}
	for k, v := range r.Activities {
		out.Activities[k] = v
	}
	for p, s := range r.Prayers {
		out.Prayers[p] = s
	}
	return out
}
