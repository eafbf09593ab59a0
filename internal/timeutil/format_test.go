package timeutil

import "testing"

func TestClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00:00"},
		{59, "0:00:59"},
		{60, "0:01:00"},
		{3599, "0:59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{36000, "10:00:00"},
		{-5, "0:00:00"}, // negative input clamps to zero
	}

	for _, tt := range tests {
		if got := Clock(tt.seconds); got != tt.want {
			t.Errorf("Clock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestHuman(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0 mins"},
		{59, "0 mins"},
		{60, "1 min"},
		{120, "2 mins"},
		{3600, "1 hr"},
		{3660, "1 hr 1 min"},
		{7200, "2 hrs"},
		{7800, "2 hrs 10 mins"},
		{7260, "2 hrs 1 min"},
	}

	for _, tt := range tests {
		if got := Human(tt.seconds); got != tt.want {
			t.Errorf("Human(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
