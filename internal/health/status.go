// Package health derives a device's display status from the staleness of
// its last-seen timestamp. The derivation is pure: status is never stored,
// every caller recomputes it from the timestamps it holds.
package health

import "time"

// Status is the tri-state (plus never-seen) health classification of a
// device.
type Status int

const (
	NeverOnline Status = iota
	Offline
	Warning
	Online
)

// Staleness thresholds. A device seen within warnAfter is Online, within
// offlineAfter is Warning, and beyond that Offline. Boundaries are
// inclusive of the healthier bucket: an age of exactly offlineAfter is
// still Warning, exactly warnAfter still Online.
const (
	warnAfter    = 2 * time.Minute
	offlineAfter = 5 * time.Minute
)

// Derive classifies a device from its last liveness confirmation. A nil
// lastOnline means the device has never been seen, regardless of now.
func Derive(lastOnline *time.Time, now time.Time) Status {
	if lastOnline == nil {
		return NeverOnline
	}
	age := now.Sub(*lastOnline)
	switch {
	case age > offlineAfter:
		return Offline
	case age > warnAfter:
		return Warning
	default:
		return Online
	}
}

// Label returns the display text for the status.
func (s Status) Label() string {
	switch s {
	case Offline:
		return "Offline"
	case Warning:
		return "Warning"
	case Online:
		return "Online"
	default:
		return "Never online"
	}
}

// Icon returns a single-cell marker for compact table rows.
func (s Status) Icon() string {
	switch s {
	case Offline:
		return "✗"
	case Warning:
		return "!"
	case Online:
		return "✓"
	default:
		return "-"
	}
}
