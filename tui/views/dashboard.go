package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/internal/health"
	"github.com/junowatch/junowatch/tui/keys"
	"github.com/junowatch/junowatch/tui/styles"
)

// DashboardAction describes what the app should do after a dashboard update.
type DashboardAction int

const (
	// DashboardNone means no action needed.
	DashboardNone DashboardAction = iota
	// DashboardOpen means the user selected a device; read SelectedDevice.
	DashboardOpen
	// DashboardRefresh means the user requested a refetch.
	DashboardRefresh
)

// Column width constants (minimum widths).
const (
	colHostname = 20
	colAddress  = 16
	colStatus   = 14
	colModel    = 14
	colSerial   = 14
	colSeen     = 12
)

// DashboardView is the main device grid showing derived status per device.
type DashboardView struct {
	theme   styles.Theme
	sty     *styles.Styles
	devices []api.Device
	loaded  bool
	cursor  int
	width   int
	height  int
	offset  int // scroll offset for vertical scrolling
	err     string
}

// NewDashboardView creates a new DashboardView with the given theme.
func NewDashboardView(theme styles.Theme) DashboardView {
	return DashboardView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// Update handles key messages for cursor navigation within the dashboard.
func (v DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd, DashboardAction) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if v.cursor > 0 {
				v.cursor--
				v.ensureVisible()
			}
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if v.cursor < len(v.devices)-1 {
				v.cursor++
				v.ensureVisible()
			}
		case key.Matches(msg, keys.DefaultKeyMap.Enter):
			if len(v.devices) > 0 {
				return v, nil, DashboardOpen
			}
		case key.Matches(msg, keys.DefaultKeyMap.Refresh):
			return v, nil, DashboardRefresh
		}
	}
	return v, nil, DashboardNone
}

// SetDevices replaces the device list. The cursor is clamped if needed.
func (v *DashboardView) SetDevices(devices []api.Device) {
	v.devices = devices
	v.loaded = true
	v.err = ""
	if v.cursor >= len(devices) && len(devices) > 0 {
		v.cursor = len(devices) - 1
	}
	if len(devices) == 0 {
		v.cursor = 0
	}
}

// SetError shows a fetch failure in place of (or alongside) stale data.
func (v *DashboardView) SetError(msg string) {
	v.err = msg
	v.loaded = true
}

// SelectedDevice returns the device under the cursor, or nil when empty.
func (v DashboardView) SelectedDevice() *api.Device {
	if v.cursor < 0 || v.cursor >= len(v.devices) {
		return nil
	}
	d := v.devices[v.cursor]
	return &d
}

// Devices returns the current snapshot.
func (v DashboardView) Devices() []api.Device {
	return v.devices
}

// SetSize updates the available dimensions for the view.
func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the dashboard view.
func (v DashboardView) View() string {
	if !v.loaded {
		return v.renderMessage("Loading devices...")
	}
	if len(v.devices) == 0 {
		return v.renderEmpty()
	}
	return v.renderTable()
}

// ensureVisible adjusts the scroll offset so the cursor row is visible.
func (v *DashboardView) ensureVisible() {
	// Account for the table header row in available space.
	visible := v.height - 1
	if visible < 1 {
		visible = 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// renderTable renders the device grid with derived status per row.
func (v DashboardView) renderTable() string {
	now := time.Now()

	var lines []string

	headerStyle := v.sty.TableHeader
	header := fmt.Sprintf(
		"%s%s%s%s%s%s",
		headerStyle.Render(padRight("Hostname", colHostname)),
		headerStyle.Render(padRight("Address", colAddress)),
		headerStyle.Render(padRight("Status", colStatus)),
		headerStyle.Render(padRight("Model", colModel)),
		headerStyle.Render(padRight("Serial", colSerial)),
		headerStyle.Render(padRight("Last Check", colSeen)),
	)
	lines = append(lines, header)

	visible := v.height - 1
	if visible < 1 {
		visible = 1
	}
	end := v.offset + visible
	if end > len(v.devices) {
		end = len(v.devices)
	}

	for i := v.offset; i < end; i++ {
		lines = append(lines, v.renderDeviceRow(v.devices[i], now, i == v.cursor))
	}

	if v.err != "" {
		lines = append(lines, v.sty.FormError.Render("  "+v.err))
	}

	return strings.Join(lines, "\n")
}

// renderDeviceRow renders a single device row with status coloring.
func (v DashboardView) renderDeviceRow(d api.Device, now time.Time, selected bool) string {
	rowStyle := v.sty.TableRow
	if selected {
		rowStyle = v.sty.TableRowSel
	}

	hostname := rowStyle.Render(padRight(truncate(d.Hostname, colHostname-1), colHostname))
	address := rowStyle.Render(padRight(truncate(d.IPAddress, colAddress-1), colAddress))

	status := health.Derive(d.LastOnline, now)
	st := v.statusStyle(status)
	if selected {
		st = st.Background(v.theme.Base02)
	}
	statusStr := st.Render(padRight(status.Label(), colStatus))

	model := rowStyle.Render(padRight(truncate(d.Model, colModel-1), colModel))
	serial := rowStyle.Render(padRight(truncate(d.SerialNumber, colSerial-1), colSerial))

	seen := "never"
	if d.LastCheck != nil {
		seen = d.LastCheck.Format("15:04:05")
	}
	seenStr := rowStyle.Render(padRight(seen, colSeen))

	return fmt.Sprintf("%s%s%s%s%s%s", hostname, address, statusStr, model, serial, seenStr)
}

func (v DashboardView) statusStyle(s health.Status) lipgloss.Style {
	switch s {
	case health.Online:
		return v.sty.StatusOnline
	case health.Warning:
		return v.sty.StatusWarn
	case health.Offline:
		return v.sty.StatusOffline
	default:
		return v.sty.StatusNever
	}
}

// renderEmpty renders a centered message when no devices are registered.
func (v DashboardView) renderEmpty() string {
	msgStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base04).
		Align(lipgloss.Center)

	keyStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0D).
		Bold(true)

	msg := lipgloss.JoinVertical(lipgloss.Center,
		"",
		msgStyle.Render("No devices registered"),
		"",
		msgStyle.Render(fmt.Sprintf(
			"Press %s to manage devices",
			keyStyle.Render("[d]"),
		)),
		"",
	)

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
}

func (v DashboardView) renderMessage(msg string) string {
	style := lipgloss.NewStyle().Foreground(v.theme.Base04)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, style.Render(msg))
}

// padRight pads s with spaces on the right to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads s with spaces on the left to the given width.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// truncate shortens s to maxLen characters, adding an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
