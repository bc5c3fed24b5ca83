package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/tui/styles"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadedAlertsView() AlertsView {
	v := NewAlertsView(styles.DefaultTheme)
	v.SetSize(80, 24)
	v.SetAlerts([]api.Alert{
		{ID: 3, Severity: "warning", Message: "ISIS: adjacency down", CreatedAt: time.Now()},
		{ID: 7, Severity: "critical", Message: "BGP: neighbors down", CreatedAt: time.Now()},
	})
	return v
}

func TestAlertsRefreshIgnoredBeforeFirstLoad(t *testing.T) {
	v := NewAlertsView(styles.DefaultTheme)
	v.SetSize(80, 24)

	v, _, action := v.Update(keyRune('r'))
	if action != AlertsNone {
		t.Errorf("refresh before first load returned %v, want AlertsNone", action)
	}
}

func TestAlertsOneRequestInFlight(t *testing.T) {
	v := loadedAlertsView()

	v, _, action := v.Update(keyRune('r'))
	if action != AlertsRefresh {
		t.Fatalf("first refresh returned %v, want AlertsRefresh", action)
	}

	// Everything queued behind the in-flight request is dropped.
	v, _, action = v.Update(keyRune('r'))
	if action != AlertsNone {
		t.Errorf("refresh while busy returned %v, want AlertsNone", action)
	}
	v, _, action = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if action != AlertsNone {
		t.Errorf("acknowledge while busy returned %v, want AlertsNone", action)
	}

	// The response lands and clears the flag.
	v.SetAlerts(v.alerts)
	v, _, action = v.Update(keyRune('r'))
	if action != AlertsRefresh {
		t.Errorf("refresh after response returned %v, want AlertsRefresh", action)
	}
}

func TestAlertsRefreshBlockedWhileAckInFlight(t *testing.T) {
	v := loadedAlertsView()

	v, _, action := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if action != AlertsAck {
		t.Fatalf("acknowledge returned %v, want AlertsAck", action)
	}
	v, _, action = v.Update(keyRune('r'))
	if action != AlertsNone {
		t.Errorf("refresh during acknowledge returned %v, want AlertsNone", action)
	}

	v.SetError("timeout")
	v, _, action = v.Update(keyRune('r'))
	if action != AlertsRefresh {
		t.Errorf("refresh after failed acknowledge returned %v, want AlertsRefresh", action)
	}
}

func TestAlertsAckSkipsAcknowledgedEntries(t *testing.T) {
	v := NewAlertsView(styles.DefaultTheme)
	v.SetSize(80, 24)
	v.SetAlerts([]api.Alert{
		{ID: 9, Severity: "info", Message: "device added", Acknowledged: true, CreatedAt: time.Now()},
	})

	v, _, action := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if action != AlertsNone {
		t.Errorf("acknowledge on acked alert returned %v, want AlertsNone", action)
	}
}
