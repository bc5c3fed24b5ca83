package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/tui/keys"
	"github.com/junowatch/junowatch/tui/styles"
)

// AlertsAction describes what the app should do after an alerts view update.
type AlertsAction int

const (
	// AlertsNone means no action needed.
	AlertsNone AlertsAction = iota
	// AlertsClose means the user wants to leave the view.
	AlertsClose
	// AlertsAck means the user wants to acknowledge the selected alert.
	AlertsAck
	// AlertsRefresh means the user requested a refetch.
	AlertsRefresh
)

// AlertsView lists alerts with severity badges and an acknowledge action.
type AlertsView struct {
	theme  styles.Theme
	sty    *styles.Styles
	alerts []api.Alert
	loaded bool
	cursor int
	width  int
	height int
	busy   bool
	err    string
}

// NewAlertsView creates a new AlertsView with the given theme.
func NewAlertsView(theme styles.Theme) AlertsView {
	return AlertsView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetSize updates the available dimensions for the view.
func (v *AlertsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetAlerts replaces the alert snapshot.
func (v *AlertsView) SetAlerts(alerts []api.Alert) {
	v.alerts = alerts
	v.loaded = true
	v.busy = false
	v.err = ""
	if v.cursor >= len(alerts) && len(alerts) > 0 {
		v.cursor = len(alerts) - 1
	}
	if len(alerts) == 0 {
		v.cursor = 0
	}
}

// SetError shows a failure in the footer line; the stale snapshot stays.
func (v *AlertsView) SetError(msg string) {
	v.err = msg
	v.loaded = true
	v.busy = false
}

// SelectedAlert returns the alert under the cursor, or nil when empty.
func (v AlertsView) SelectedAlert() *api.Alert {
	if v.cursor < 0 || v.cursor >= len(v.alerts) {
		return nil
	}
	a := v.alerts[v.cursor]
	return &a
}

// Update handles key messages for the alerts view.
func (v AlertsView) Update(msg tea.Msg) (AlertsView, tea.Cmd, AlertsAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil, AlertsNone
	}

	switch {
	case key.Matches(keyMsg, keys.DefaultKeyMap.Escape):
		return v, nil, AlertsClose

	case key.Matches(keyMsg, keys.DefaultKeyMap.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case key.Matches(keyMsg, keys.DefaultKeyMap.Down):
		if v.cursor < len(v.alerts)-1 {
			v.cursor++
		}

	case key.Matches(keyMsg, keys.DefaultKeyMap.Enter):
		// Acknowledging an already-acknowledged alert is pointless; the
		// binding only fires on unacknowledged entries.
		if a := v.SelectedAlert(); a != nil && !a.Acknowledged && !v.busy {
			v.busy = true
			v.err = ""
			return v, nil, AlertsAck
		}

	case key.Matches(keyMsg, keys.DefaultKeyMap.Refresh):
		// One request at a time; refresh and acknowledge share the flag,
		// and the initial fetch counts until it lands.
		if v.loaded && !v.busy {
			v.busy = true
			v.err = ""
			return v, nil, AlertsRefresh
		}
	}
	return v, nil, AlertsNone
}

// View renders the alerts view.
func (v AlertsView) View() string {
	var lines []string
	lines = append(lines, v.sty.SectionHeader.Render("  Alerts"))
	lines = append(lines, "")

	switch {
	case !v.loaded:
		lines = append(lines, v.sty.TableCellDim.Render("  Loading alerts..."))
	case len(v.alerts) == 0:
		lines = append(lines, v.sty.TableCellDim.Render("  No alerts"))
	default:
		visible := v.height - 4
		if visible < 1 {
			visible = 1
		}
		start := 0
		if v.cursor >= visible {
			start = v.cursor - visible + 1
		}
		end := start + visible
		if end > len(v.alerts) {
			end = len(v.alerts)
		}
		for i := start; i < end; i++ {
			lines = append(lines, v.renderAlertRow(v.alerts[i], i == v.cursor))
		}
	}

	lines = append(lines, "")
	if v.err != "" {
		lines = append(lines, v.sty.FormError.Render("  "+v.err))
	} else if v.busy {
		lines = append(lines, v.sty.TableCellDim.Render("  Working..."))
	} else {
		lines = append(lines, v.sty.FooterDesc.Render("  [enter] acknowledge  [r] refresh  [esc] back"))
	}

	return strings.Join(lines, "\n")
}

func (v AlertsView) renderAlertRow(a api.Alert, selected bool) string {
	badge := v.severityBadge(a.Severity)

	rowStyle := v.sty.TableRow
	if selected {
		rowStyle = v.sty.TableRowSel
	}

	ackStr := "    "
	if a.Acknowledged {
		ackStr = v.sty.TableCellDim.Render("ack ")
	}

	when := a.CreatedAt.Format("01-02 15:04")
	return fmt.Sprintf("  %s %s %s%s",
		badge,
		ackStr,
		rowStyle.Render(padRight(truncate(a.Message, 60), 62)),
		v.sty.TableCellDim.Render(when))
}

func (v AlertsView) severityBadge(severity string) string {
	switch severity {
	case "critical":
		return v.sty.SeverityCritical.Render("CRIT")
	case "warning":
		return v.sty.SeverityWarning.Render("WARN")
	default:
		return v.sty.SeverityInfo.Render("INFO")
	}
}
