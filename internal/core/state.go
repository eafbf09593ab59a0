package core

// UserProfile describes the user. Purely descriptive; no bearing on
// timer or prayer logic.
type UserProfile struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

// AppState is the full persisted application state. It is serialized as
// a single record and overwritten wholesale on every mutation.
type AppState struct {
	Profile              *UserProfile   `json:"profile"`
	History              Ledger         `json:"history"`
	ActiveSession        *ActiveSession `json:"activeSession"`
	Tasks                []Task         `json:"tasks"`
	NotificationsEnabled bool           `json:"notificationsEnabled"`
}

// NewAppState returns an empty default state.
func NewAppState() AppState {
	return AppState{
		History:              Ledger{},
		NotificationsEnabled: true,
	}
}

// Normalize repairs a deserialized state: a nil history map and any
// missing per-day keys are backfilled, and an active session with an
// unknown kind is discarded.
func (s *AppState) Normalize() {
	if s.History == nil {
		s.History = Ledger{}
	}
	for key := range s.History {
		r := s.History[key]
		r.normalize()
		s.History[key] = r
	}
	if s.ActiveSession != nil && !s.ActiveSession.Kind.Valid() {
		s.ActiveSession = nil
	}
}
