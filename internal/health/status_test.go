package health

import (
	"testing"
	"time"
)

func TestDeriveBuckets(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		age  time.Duration
		want Status
	}{
		{"just seen", 0, Online},
		{"one minute", time.Minute, Online},
		{"exactly two minutes", 2 * time.Minute, Online},
		{"three minutes", 3 * time.Minute, Warning},
		{"exactly five minutes", 5 * time.Minute, Warning},
		{"just past five minutes", 5*time.Minute + time.Second, Offline},
		{"six minutes", 6 * time.Minute, Offline},
		{"one day", 24 * time.Hour, Offline},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen := now.Add(-tc.age)
			if got := Derive(&seen, now); got != tc.want {
				t.Errorf("Derive(now-%v) = %v, want %v", tc.age, got, tc.want)
			}
		})
	}
}

func TestDeriveNeverOnline(t *testing.T) {
	for _, now := range []time.Time{
		{},
		time.Now(),
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		if got := Derive(nil, now); got != NeverOnline {
			t.Errorf("Derive(nil, %v) = %v, want NeverOnline", now, got)
		}
	}
}

func TestStatusLabels(t *testing.T) {
	labels := map[Status]string{
		NeverOnline: "Never online",
		Offline:     "Offline",
		Warning:     "Warning",
		Online:      "Online",
	}
	for s, want := range labels {
		if got := s.Label(); got != want {
			t.Errorf("Status(%d).Label() = %q, want %q", s, got, want)
		}
	}
}
