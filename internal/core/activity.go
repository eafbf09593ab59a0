// Package core implements the day ledger, the session reconciler and the
// prayer window state machine, coordinated behind a single Tracker.
package core

import "fmt"

// ActivityKind identifies one of the fixed trackable categories.
// The set is closed; user-defined kinds are not supported.
type ActivityKind string

const (
	ActivitySelfStudy    ActivityKind = "self_study"
	ActivityClass        ActivityKind = "class"
	ActivityMobileScroll ActivityKind = "mobile_scroll"
	ActivityPrayer       ActivityKind = "prayer"
	ActivityFood         ActivityKind = "food"
	ActivitySleep        ActivityKind = "sleep"
	ActivitySports       ActivityKind = "sports"
	ActivityOther        ActivityKind = "other"
)

// Activities lists every kind in display order.
var Activities = []ActivityKind{
	ActivitySelfStudy,
	ActivityClass,
	ActivityMobileScroll,
	ActivityPrayer,
	ActivityFood,
	ActivitySleep,
	ActivitySports,
	ActivityOther,
}

// ActivityLabels maps each kind to its display label.
var ActivityLabels = map[ActivityKind]string{
	ActivitySelfStudy:    "Self Study",
	ActivityClass:        "Class",
	ActivityMobileScroll: "Mobile scroll",
	ActivityPrayer:       "Prayer",
	ActivityFood:         "Food",
	ActivitySleep:        "Sleep",
	ActivitySports:       "Sports",
	ActivityOther:        "Other",
}

// Label returns the display label for a kind, or the raw id if unknown.
func (k ActivityKind) Label() string {
	if l, ok := ActivityLabels[k]; ok {
		return l
	}
	return string(k)
}

// Valid reports whether k is part of the closed set.
func (k ActivityKind) Valid() bool {
	_, ok := ActivityLabels[k]
	return ok
}

// ParseActivity converts a raw id into an ActivityKind.
func ParseActivity(s string) (ActivityKind, error) {
	k := ActivityKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown activity %q", s)
	}
	return k, nil
}
