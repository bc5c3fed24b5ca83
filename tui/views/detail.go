package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/internal/checks"
	"github.com/junowatch/junowatch/internal/health"
	"github.com/junowatch/junowatch/tui/components"
	"github.com/junowatch/junowatch/tui/keys"
	"github.com/junowatch/junowatch/tui/styles"
)

// DetailAction describes what the app should do after a detail view update.
type DetailAction int

const (
	// DetailNone means no action needed.
	DetailNone DetailAction = iota
	// DetailBack means the user wants to return to the dashboard.
	DetailBack
	// DetailPing means the user requested a liveness probe.
	DetailPing
	// DetailPoll means the user requested a fresh diagnostic pass.
	DetailPoll
	// DetailRefresh means the user requested a plain check refetch.
	DetailRefresh
)

const latencyHistoryMax = 60

// DetailView shows one device: its header, diagnostic check list with
// expandable normalized tables, ping results, and a raw output toggle.
type DetailView struct {
	theme  styles.Theme
	sty    *styles.Styles
	width  int
	height int

	device  *api.Device
	checks  []api.CheckResult
	loaded  bool
	cursor  int
	showRaw bool

	pinging bool
	polling bool

	lastPing    *api.PingResult
	latencyHist []float64

	err string
}

// NewDetailView creates a new DetailView with the given theme.
func NewDetailView(theme styles.Theme) DetailView {
	return DetailView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetDevice resets the view for a newly opened device. All per-device state
// (checks, ping history, toggles, in-flight flags) starts fresh.
func (v *DetailView) SetDevice(d *api.Device) {
	v.device = d
	v.checks = nil
	v.loaded = false
	v.cursor = 0
	v.showRaw = false
	v.pinging = false
	v.polling = false
	v.lastPing = nil
	v.latencyHist = nil
	v.err = ""
}

// SetChecks replaces the check snapshot. The loading gate opens on the
// first call, whether it carries data or not.
func (v *DetailView) SetChecks(results []api.CheckResult) {
	v.checks = results
	v.loaded = true
	v.polling = false
	v.err = ""
	if v.cursor >= len(results) && len(results) > 0 {
		v.cursor = len(results) - 1
	}
	if len(results) == 0 {
		v.cursor = 0
	}
}

// SetChecksError reports a failed fetch or poll. The previous snapshot, if
// any, stays on screen.
func (v *DetailView) SetChecksError(msg string) {
	v.err = msg
	v.loaded = true
	v.polling = false
}

// SetPingResult records a probe outcome and extends the latency trend.
func (v *DetailView) SetPingResult(pr *api.PingResult) {
	v.pinging = false
	v.lastPing = pr
	v.err = ""
	if pr != nil && pr.Online && pr.LatencyMS != nil {
		v.latencyHist = append(v.latencyHist, *pr.LatencyMS)
		if len(v.latencyHist) > latencyHistoryMax {
			v.latencyHist = v.latencyHist[len(v.latencyHist)-latencyHistoryMax:]
		}
	}
}

// SetPingError reports a failed probe without touching the trend.
func (v *DetailView) SetPingError(msg string) {
	v.pinging = false
	v.err = msg
}

// Device returns the device being shown, or nil.
func (v DetailView) Device() *api.Device {
	return v.device
}

// SetSize updates the available dimensions for the view.
func (v *DetailView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Update handles key messages for the detail view.
func (v DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd, DetailAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil, DetailNone
	}

	switch {
	case key.Matches(keyMsg, keys.DefaultKeyMap.Escape):
		return v, nil, DetailBack

	case key.Matches(keyMsg, keys.DefaultKeyMap.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case key.Matches(keyMsg, keys.DefaultKeyMap.Down):
		if v.cursor < len(v.checks)-1 {
			v.cursor++
		}

	case key.Matches(keyMsg, keys.DefaultKeyMap.Raw):
		v.showRaw = !v.showRaw

	case key.Matches(keyMsg, keys.DefaultKeyMap.Ping):
		// One probe at a time; a second press while in flight is ignored.
		if v.loaded && !v.pinging {
			v.pinging = true
			v.err = ""
			return v, nil, DetailPing
		}

	case key.Matches(keyMsg, keys.DefaultKeyMap.Poll):
		if v.loaded && !v.polling {
			v.polling = true
			v.err = ""
			return v, nil, DetailPoll
		}

	case key.Matches(keyMsg, keys.DefaultKeyMap.Refresh):
		if v.loaded {
			return v, nil, DetailRefresh
		}
	}
	return v, nil, DetailNone
}

// View renders the detail view.
func (v DetailView) View() string {
	if v.device == nil {
		msg := lipgloss.NewStyle().
			Foreground(v.theme.Base04).
			Render("No device selected")
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
	}

	sections := []string{v.renderHeader()}

	if !v.loaded {
		sections = append(sections, "", v.sty.TableCellDim.Render("  Loading checks..."))
	} else {
		sections = append(sections, "", v.renderChecks())
	}

	if v.err != "" {
		sections = append(sections, "", v.sty.FormError.Render("  "+v.err))
	}

	sections = append(sections, "", v.renderFooter())
	return strings.Join(sections, "\n")
}

// renderHeader renders the device info panel with derived status and the
// latest ping outcome.
func (v DetailView) renderHeader() string {
	d := v.device
	labelStyle := lipgloss.NewStyle().Foreground(v.theme.Base04).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(v.theme.Base05)
	highlightStyle := lipgloss.NewStyle().Foreground(v.theme.Base0D).Bold(true)

	status := health.Derive(d.LastOnline, time.Now())
	statusStyle := v.sty.StatusNever
	switch status {
	case health.Online:
		statusStyle = v.sty.StatusOnline
	case health.Warning:
		statusStyle = v.sty.StatusWarn
	case health.Offline:
		statusStyle = v.sty.StatusOffline
	}

	seen := "never"
	if d.LastCheck != nil {
		seen = d.LastCheck.Format("2006-01-02 15:04:05")
	}

	rows := []string{
		"",
		fmt.Sprintf("  %s%s", labelStyle.Render("Hostname:"), highlightStyle.Render(d.Hostname)),
		fmt.Sprintf("  %s%s", labelStyle.Render("Address:"), valueStyle.Render(fmt.Sprintf("%s:%d", d.IPAddress, d.SSHPort))),
		fmt.Sprintf("  %s%s", labelStyle.Render("Model:"), valueStyle.Render(orDash(d.Model))),
		fmt.Sprintf("  %s%s", labelStyle.Render("Serial:"), valueStyle.Render(orDash(d.SerialNumber))),
		fmt.Sprintf("  %s%s %s", labelStyle.Render("Status:"), statusStyle.Render(status.Icon()), statusStyle.Render(status.Label())),
		fmt.Sprintf("  %s%s", labelStyle.Render("Last check:"), valueStyle.Render(seen)),
	}

	rows = append(rows, v.renderPingRow(labelStyle))
	return strings.Join(rows, "\n")
}

func (v DetailView) renderPingRow(labelStyle lipgloss.Style) string {
	label := labelStyle.Render("Ping:")
	switch {
	case v.pinging:
		return fmt.Sprintf("  %s%s", label, v.sty.TableCellDim.Render("probing..."))
	case v.lastPing == nil:
		return fmt.Sprintf("  %s%s", label, v.sty.TableCellDim.Render("not probed"))
	case !v.lastPing.Online:
		return fmt.Sprintf("  %s%s", label, v.sty.CellBad.Render("unreachable"))
	default:
		latency := "-"
		if v.lastPing.LatencyMS != nil {
			latency = components.FormatLatency(*v.lastPing.LatencyMS)
		}
		trend := ""
		if len(v.latencyHist) > 1 {
			trend = "  " + v.sty.SparklineStyle.Render(components.Sparkline(v.latencyHist, 20))
		}
		return fmt.Sprintf("  %s%s%s",
			label,
			v.sty.CellGood.Render("online "+latency),
			trend)
	}
}

// renderChecks renders the check list with the selected entry expanded.
func (v DetailView) renderChecks() string {
	if len(v.checks) == 0 {
		return v.sty.TableCellDim.Render("  No checks recorded for this device")
	}

	var lines []string
	lines = append(lines, v.sty.SectionHeader.Render("  Diagnostics"))

	for i, c := range v.checks {
		rowStyle := v.sty.TableRow
		if i == v.cursor {
			rowStyle = v.sty.TableRowSel
		}

		marker := v.checkMarker(c.Status, i == v.cursor)
		when := c.CreatedAt.Format("15:04:05")
		line := fmt.Sprintf("  %s %s%s%s",
			marker,
			rowStyle.Render(padRight(c.Category, 14)),
			rowStyle.Render(padRight(truncate(c.Message, 44), 46)),
			v.sty.TableCellDim.Render(when))
		lines = append(lines, line)

		if i == v.cursor {
			lines = append(lines, v.renderExpanded(c)...)
		}
	}
	return strings.Join(lines, "\n")
}

// renderExpanded renders the normalized table (or raw output) for the
// selected check, indented under its row.
func (v DetailView) renderExpanded(c api.CheckResult) []string {
	var lines []string

	if v.showRaw {
		lines = append(lines, v.sty.TableCellDim.Render("    -- raw output --"))
		raw := strings.TrimRight(c.RawOutput, "\n")
		if raw == "" {
			lines = append(lines, v.sty.TableCellDim.Render("    (none)"))
		} else {
			for _, l := range strings.Split(raw, "\n") {
				lines = append(lines, "    "+v.sty.TableRow.Render(l))
			}
		}
		return lines
	}

	table, ok := checks.Normalize(c.Category, c.Details)
	if !ok {
		lines = append(lines, v.sty.TableCellDim.Render("    (no renderable details; press o for raw output)"))
		return lines
	}
	rendered := components.RenderCheckTable(v.theme, table, v.width-4)
	for _, l := range strings.Split(rendered, "\n") {
		lines = append(lines, "    "+l)
	}
	return lines
}

func (v DetailView) checkMarker(status string, selected bool) string {
	var st lipgloss.Style
	var marker string
	switch status {
	case "ok":
		st, marker = v.sty.CellGood, "+"
	case "warn":
		st, marker = v.sty.StatusWarn, "!"
	case "error":
		st, marker = v.sty.CellBad, "x"
	default:
		st, marker = v.sty.TableCellDim, "?"
	}
	if selected {
		st = st.Background(v.theme.Base02)
	}
	return st.Render(marker)
}

func (v DetailView) renderFooter() string {
	if v.polling {
		return v.sty.TableCellDim.Render("  polling device...")
	}
	return v.sty.FooterDesc.Render("  [p] ping  [P] poll now  [o] raw  [r] refresh  [esc] back")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
