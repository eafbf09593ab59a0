// Package timeutil converts elapsed seconds into display strings.
package timeutil

import "fmt"

// Clock formats whole seconds as H:MM:SS (hours unpadded, no cap).
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Human formats whole seconds as a compact duration such as
// "1 hr 5 mins", "2 hrs", "1 min" or "0 mins".
func Human(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := seconds / 60
	h := mins / 60
	m := mins % 60
	hrUnit := "hrs"
	if h == 1 {
		hrUnit = "hr"
	}
	minUnit := "mins"
	if m == 1 {
		minUnit = "min"
	}
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d %s %d %s", h, hrUnit, m, minUnit)
	case h > 0:
		return fmt.Sprintf("%d %s", h, hrUnit)
	default:
		return fmt.Sprintf("%d %s", m, minUnit)
	}
}
