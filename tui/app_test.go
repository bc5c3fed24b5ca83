package tui

import (
	"testing"

	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/internal/config"
)

func newTestAppModel(t *testing.T) AppModel {
	t.Helper()
	client, err := api.NewClient("http://localhost:8000")
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	client.SetToken("tok-abc")
	return NewAppModel(AppParams{
		Config:        config.DefaultConfig(),
		Client:        client,
		Email:         "noc@example.com",
		Authenticated: true,
	})
}

// A credential rejected mid-session reads the same as any other failed
// call; only the startup session restore tears the vault down.
func TestMidSessionAuthFailureStaysOnView(t *testing.T) {
	m := newTestAppModel(t)
	if m.state != StateDashboard {
		t.Fatalf("initial state = %v, want StateDashboard", m.state)
	}

	for name, msg := range map[string]interface{}{
		"devices": devicesMsg{err: api.ErrAuth},
		"alerts":  alertsMsg{err: api.ErrAuth},
		"ack":     alertAckMsg{err: api.ErrAuth},
		"mutate":  deviceMutatedMsg{err: api.ErrAuth},
	} {
		model, _ := m.Update(msg)
		got := model.(AppModel)
		if got.state == StateLogin {
			t.Errorf("%s: auth failure forced the login screen", name)
		}
		if got.email != "noc@example.com" {
			t.Errorf("%s: session identity dropped", name)
		}
	}
}

func TestAlertMutationsApplyOnEventLoop(t *testing.T) {
	m := newTestAppModel(t)
	fetched := []api.Alert{
		{ID: 3, Severity: "warning", Message: "ISIS: adjacency down"},
		{ID: 7, Severity: "critical", Message: "BGP: neighbors down"},
	}

	model, _ := m.Update(alertsMsg{alerts: fetched})
	m = model.(AppModel)
	if got := len(m.store.Alerts()); got != 2 {
		t.Fatalf("snapshot has %d alerts after fetch, want 2", got)
	}

	model, _ = m.Update(alertAckMsg{id: 7})
	m = model.(AppModel)
	for _, a := range m.store.Alerts() {
		if a.ID == 7 && !a.Acknowledged {
			t.Error("ack response did not flip the stored record")
		}
	}
}

func TestStaleAlertResponseDropped(t *testing.T) {
	m := newTestAppModel(t)
	m.bump()

	model, _ := m.Update(alertsMsg{gen: 0, alerts: []api.Alert{{ID: 3}}})
	m = model.(AppModel)
	if len(m.store.Alerts()) != 0 {
		t.Error("response from a previous generation was applied")
	}
}
