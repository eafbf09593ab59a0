package core

import (
	"sort"
	"time"
)

// DateLayout is the canonical day key format (local time).
const DateLayout = "2006-01-02"

// DefaultRetentionDays is the rolling history window.
const DefaultRetentionDays = 30

// DateKey returns the canonical day key for t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// DayRecord holds one calendar day's accumulated activity seconds and
// prayer states. Every activity kind and every prayer is always present.
type DayRecord struct {
	Activities map[ActivityKind]int       `json:"activities"`
	Prayers    map[PrayerName]PrayerState `json:"prayers"`
}

// NewDayRecord returns a record with all totals zero and all prayers pending.
func NewDayRecord() DayRecord {
	r := DayRecord{
		Activities: make(map[ActivityKind]int, len(Activities)),
		Prayers:    make(map[PrayerName]PrayerState, len(Prayers)),
	}
	for _, k := range Activities {
		r.Activities[k] = 0
	}
	for _, p := range Prayers {
		r.Prayers[p] = PrayerPending
	}
	return r
}

// normalize backfills any keys missing from a loaded record so the
// every-key-present invariant survives deserialization of older state.
func (r *DayRecord) normalize() {
	if r.Activities == nil {
		r.Activities = make(map[ActivityKind]int, len(Activities))
	}
	for _, k := range Activities {
		if _, ok := r.Activities[k]; !ok {
			r.Activities[k] = 0
		}
	}
	if r.Prayers == nil {
		r.Prayers = make(map[PrayerName]PrayerState, len(Prayers))
	}
	for _, p := range Prayers {
		if _, ok := r.Prayers[p]; !ok {
			r.Prayers[p] = PrayerPending
		}
	}
}

// TotalSeconds sums all activity totals in the record.
func (r DayRecord) TotalSeconds() int {
	total := 0
	for _, s := range r.Activities {
		total += s
	}
	return total
}

// Ledger maps day keys to day records.
type Ledger map[string]DayRecord

// GetOrDefault returns the stored record for key, or a fresh default.
// It never stores the default; creation happens on first mutation.
func (l Ledger) GetOrDefault(key string) DayRecord {
	if r, ok := l[key]; ok {
		return r
	}
	return NewDayRecord()
}

// Ensure returns the stored record for key, creating it lazily.
func (l Ledger) Ensure(key string) DayRecord {
	if r, ok := l[key]; ok {
		return r
	}
	r := NewDayRecord()
	l[key] = r
	return r
}

// ResetDay replaces a single day's record with the default record.
func (l Ledger) ResetDay(key string) {
	l[key] = NewDayRecord()
}

// Prune removes entries whose calendar-day distance from now exceeds
// retentionDays. The distance is counted on calendar dates, ignoring
// time of day, so today's entry is never pruned. Unparseable keys are
// dropped.
func (l Ledger) Prune(now time.Time, retentionDays int) {
	for key := range l {
		d, err := time.ParseInLocation(DateLayout, key, now.Location())
		if err != nil {
			delete(l, key)
			continue
		}
		if daysBetween(now, d) > retentionDays {
			delete(l, key)
		}
	}
}

// Dates returns the known day keys within the retention window,
// sorted descending.
func (l Ledger) Dates(now time.Time, retentionDays int) []string {
	keys := make([]string, 0, len(l))
	for key := range l {
		d, err := time.ParseInLocation(DateLayout, key, now.Location())
		if err != nil {
			continue
		}
		if daysBetween(now, d) <= retentionDays {
			keys = append(keys, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// daysBetween counts whole calendar days between a and b, ignoring
// time of day. Always non-negative. Both dates are rebuilt at UTC
// midnight so every day is exactly 24h and a DST transition inside the
// span cannot shift the count.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(ua.Sub(ub).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
