package tui

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junowatch/junowatch/internal/alerts"
	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/internal/config"
	"github.com/junowatch/junowatch/internal/health"
	"github.com/junowatch/junowatch/internal/livesync"
	"github.com/junowatch/junowatch/internal/logging"
	"github.com/junowatch/junowatch/internal/session"
	"github.com/junowatch/junowatch/tui/components"
	"github.com/junowatch/junowatch/tui/keys"
	"github.com/junowatch/junowatch/tui/styles"
	"github.com/junowatch/junowatch/tui/views"
)

// AppState represents the current screen/view of the application.
type AppState int

const (
	StateLogin AppState = iota
	StateDashboard
	StateDevices
	StateDetail
	StateAlerts
	StateSettings
)

// TickMsg triggers a periodic UI refresh to pick up sync state and stale data.
type TickMsg struct{}

// Result messages carry the generation they were issued under; responses for
// a generation the user has already left are dropped.
type devicesMsg struct {
	gen     int
	devices []api.Device
	err     error
}

type checksMsg struct {
	gen      int
	deviceID int
	results  []api.CheckResult
	err      error
}

type pingMsg struct {
	gen      int
	deviceID int
	result   *api.PingResult
	err      error
}

type alertsMsg struct {
	gen    int
	alerts []api.Alert
	err    error
}

type alertAckMsg struct {
	gen int
	id  int
	err error
}

type deviceMutatedMsg struct {
	gen int
	err error
}

type loginMsg struct {
	email string
	err   error
}

// AppParams carries everything main hands the root model.
type AppParams struct {
	Config        *config.Config
	Client        *api.Client
	Sync          *livesync.Channel
	Email         string
	Authenticated bool
	VaultKey      []byte
	Version       string
	Build         string
}

// AppModel is the root Bubble Tea model that manages all views and state.
type AppModel struct {
	state  AppState
	theme  styles.Theme
	config *config.Config
	client *api.Client
	store  *alerts.Store
	sync   *livesync.Channel

	login     views.LoginView
	dashboard views.DashboardView
	devices   views.DevicesView
	detail    views.DetailView
	alertsV   views.AlertsView
	settings  views.SettingsView
	help      views.HelpView

	email    string
	vaultKey []byte
	version  string
	build    string

	width       int
	height      int
	lastRefresh time.Time

	// gen counts view transitions; reqCancel tears down the previous view's
	// in-flight requests on each bump.
	gen       int
	reqCtx    context.Context
	reqCancel context.CancelFunc
}

// NewAppModel creates a new AppModel.
func NewAppModel(p AppParams) AppModel {
	theme := styles.DefaultTheme
	if t := styles.GetThemeByName(p.Config.Theme); t != nil {
		theme = *t
	}

	state := StateLogin
	if p.Authenticated {
		state = StateDashboard
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := AppModel{
		state:     state,
		theme:     theme,
		config:    p.Config,
		client:    p.Client,
		store:     alerts.NewStore(p.Client),
		sync:      p.Sync,
		login:     views.NewLoginView(theme, p.Config.ServerURL),
		dashboard: views.NewDashboardView(theme),
		devices:   views.NewDevicesView(theme),
		detail:    views.NewDetailView(theme),
		alertsV:   views.NewAlertsView(theme),
		settings:  views.NewSettingsView(theme, p.Config),
		help:      views.NewHelpView(theme),
		email:     p.Email,
		vaultKey:  p.VaultKey,
		version:   p.Version,
		build:     p.Build,
		reqCtx:    ctx,
		reqCancel: cancel,
	}
	return m
}

// Init returns the initial commands: tick loop plus, when a session was
// restored, the first device fetch.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.state == StateDashboard {
		cmds = append(cmds, m.fetchDevicesCmd())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// bump cancels the previous view's in-flight requests and starts a new
// request generation.
func (m *AppModel) bump() {
	m.reqCancel()
	m.reqCtx, m.reqCancel = context.WithCancel(context.Background())
	m.gen++
}

func (m *AppModel) enter(state AppState) {
	m.bump()
	m.state = state
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Body height = total - 1 (header) - 2 (status bar lines)
		body := msg.Height - 3
		m.login.SetSize(msg.Width, msg.Height)
		m.dashboard.SetSize(msg.Width, body)
		m.devices.SetSize(msg.Width, body)
		m.detail.SetSize(msg.Width, body)
		m.alertsV.SetSize(msg.Width, body)
		m.settings.SetSize(msg.Width, body)
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		var cmd tea.Cmd
		if m.state == StateDashboard && !m.lastRefresh.IsZero() &&
			time.Since(m.lastRefresh) >= m.config.RefreshInterval {
			cmd = m.fetchDevicesCmd()
		}
		return m, tea.Batch(tickCmd(), cmd)

	case loginMsg:
		return m.handleLogin(msg)

	case devicesMsg:
		return m.handleDevices(msg)

	case checksMsg:
		return m.handleChecks(msg)

	case pingMsg:
		return m.handlePing(msg)

	case alertsMsg:
		return m.handleAlerts(msg)

	case alertAckMsg:
		return m.handleAlertAck(msg)

	case deviceMutatedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.devices.SetError(msg.err.Error())
			return m, nil
		}
		m.devices.Saved()
		return m, m.fetchDevicesCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The help overlay swallows everything except its dismiss keys.
	if m.help.IsVisible() {
		if key.Matches(msg, keys.DefaultKeyMap.Help) ||
			key.Matches(msg, keys.DefaultKeyMap.Escape) ||
			key.Matches(msg, keys.DefaultKeyMap.Quit) {
			m.help.Toggle()
		}
		return m, nil
	}

	if m.state == StateLogin {
		var cmd tea.Cmd
		var action views.LoginAction
		m.login, cmd, action = m.login.Update(msg)
		switch action {
		case views.LoginQuit:
			return m, tea.Quit
		case views.LoginSubmit:
			return m, tea.Batch(cmd, m.loginCmd(m.login.Email(), m.login.Password()))
		}
		return m, cmd
	}

	// Global bindings outside text-entry states.
	if m.state != StateDevices && m.state != StateSettings {
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Quit):
			return m.quit()
		case key.Matches(msg, keys.DefaultKeyMap.Help):
			m.help.Toggle()
			return m, nil
		}
	} else if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.state {
	case StateDashboard:
		return m.updateDashboard(msg)
	case StateDevices:
		return m.updateDevices(msg)
	case StateDetail:
		return m.updateDetail(msg)
	case StateAlerts:
		return m.updateAlerts(msg)
	case StateSettings:
		return m.updateSettings(msg)
	}
	return m, nil
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.reqCancel()
	if m.sync != nil {
		m.sync.Stop()
	}
	return m, tea.Quit
}

func (m AppModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Dashboard-only navigation keys.
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.DefaultKeyMap.Devices):
			m.enter(StateDevices)
			m.devices.SetDevices(m.dashboard.Devices())
			return m, nil
		case key.Matches(keyMsg, keys.DefaultKeyMap.Alerts):
			m.enter(StateAlerts)
			return m, m.fetchAlertsCmd()
		case key.Matches(keyMsg, keys.DefaultKeyMap.Settings):
			m.enter(StateSettings)
			m.settings = views.NewSettingsView(m.theme, m.config)
			m.settings.SetSize(m.width, m.height-3)
			return m, nil
		}
	}

	var cmd tea.Cmd
	var action views.DashboardAction
	m.dashboard, cmd, action = m.dashboard.Update(msg)
	switch action {
	case views.DashboardOpen:
		d := m.dashboard.SelectedDevice()
		if d != nil {
			m.enter(StateDetail)
			m.detail.SetDevice(d)
			return m, tea.Batch(cmd, m.fetchChecksCmd(d.ID))
		}
	case views.DashboardRefresh:
		return m, tea.Batch(cmd, m.fetchDevicesCmd())
	}
	return m, cmd
}

func (m AppModel) updateDevices(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action views.DevicesAction
	m.devices, cmd, action = m.devices.Update(msg)
	switch action {
	case views.DevicesClose:
		m.enter(StateDashboard)
		return m, tea.Batch(cmd, m.fetchDevicesCmd())
	case views.DevicesCreate:
		return m, tea.Batch(cmd, m.createDeviceCmd(m.devices.PendingCreate()))
	case views.DevicesDelete:
		if d := m.devices.SelectedDevice(); d != nil {
			return m, tea.Batch(cmd, m.deleteDeviceCmd(d.ID))
		}
	case views.DevicesRefresh:
		return m, tea.Batch(cmd, m.fetchDevicesCmd())
	}
	return m, cmd
}

func (m AppModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action views.DetailAction
	m.detail, cmd, action = m.detail.Update(msg)

	d := m.detail.Device()
	switch action {
	case views.DetailBack:
		m.enter(StateDashboard)
		return m, tea.Batch(cmd, m.fetchDevicesCmd())
	case views.DetailPing:
		if d != nil {
			return m, tea.Batch(cmd, m.pingCmd(d.ID))
		}
	case views.DetailPoll:
		if d != nil {
			return m, tea.Batch(cmd, m.pollCmd(d.ID))
		}
	case views.DetailRefresh:
		if d != nil {
			return m, tea.Batch(cmd, m.fetchChecksCmd(d.ID))
		}
	}
	return m, cmd
}

func (m AppModel) updateAlerts(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action views.AlertsAction
	m.alertsV, cmd, action = m.alertsV.Update(msg)
	switch action {
	case views.AlertsClose:
		m.enter(StateDashboard)
		return m, tea.Batch(cmd, m.fetchDevicesCmd())
	case views.AlertsAck:
		if a := m.alertsV.SelectedAlert(); a != nil {
			return m, tea.Batch(cmd, m.ackAlertCmd(a.ID))
		}
	case views.AlertsRefresh:
		return m, tea.Batch(cmd, m.fetchAlertsCmd())
	}
	return m, cmd
}

func (m AppModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action views.SettingsAction
	m.settings, cmd, action = m.settings.Update(msg)
	switch action {
	case views.SettingsClose:
		m.enter(StateDashboard)
		return m, cmd
	case views.SettingsSaved:
		if t := styles.GetThemeByName(m.settings.SavedTheme); t != nil {
			m.applyTheme(*t)
		}
		m.enter(StateDashboard)
		return m, tea.Batch(cmd, m.fetchDevicesCmd())
	}
	return m, cmd
}

// applyTheme rebuilds every view with the new theme, carrying data over
// where the view exposes it.
func (m *AppModel) applyTheme(theme styles.Theme) {
	m.theme = theme
	devices := m.dashboard.Devices()

	m.login = views.NewLoginView(theme, m.config.ServerURL)
	m.dashboard = views.NewDashboardView(theme)
	m.dashboard.SetDevices(devices)
	m.devices = views.NewDevicesView(theme)
	m.devices.SetDevices(devices)
	m.detail = views.NewDetailView(theme)
	m.alertsV = views.NewAlertsView(theme)
	m.alertsV.SetAlerts(m.store.Alerts())
	m.help = views.NewHelpView(theme)

	body := m.height - 3
	m.login.SetSize(m.width, m.height)
	m.dashboard.SetSize(m.width, body)
	m.devices.SetSize(m.width, body)
	m.detail.SetSize(m.width, body)
	m.alertsV.SetSize(m.width, body)
	m.help.SetSize(m.width, m.height)
}

// --- result message handlers ---

func (m AppModel) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.login.SetError(loginErrText(msg.err))
		return m, nil
	}
	m.email = msg.email
	m.enter(StateDashboard)
	return m, m.fetchDevicesCmd()
}

func loginErrText(err error) string {
	if errors.Is(err, api.ErrAuth) {
		return "invalid email or password"
	}
	return err.Error()
}

func (m AppModel) handleDevices(msg devicesMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.err != nil {
		logging.L().Warn().Err(msg.err).Msg("device fetch failed")
		m.dashboard.SetError(msg.err.Error())
		m.devices.SetError(msg.err.Error())
		return m, nil
	}
	m.lastRefresh = time.Now()
	m.dashboard.SetDevices(msg.devices)
	m.devices.SetDevices(msg.devices)
	return m, nil
}

func (m AppModel) handleChecks(msg checksMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	d := m.detail.Device()
	if d == nil || d.ID != msg.deviceID {
		return m, nil
	}
	if msg.err != nil {
		m.detail.SetChecksError(msg.err.Error())
		return m, nil
	}
	m.detail.SetChecks(msg.results)
	return m, nil
}

func (m AppModel) handlePing(msg pingMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	d := m.detail.Device()
	if d == nil || d.ID != msg.deviceID {
		return m, nil
	}
	if msg.err != nil {
		m.detail.SetPingError(msg.err.Error())
		return m, nil
	}
	m.detail.SetPingResult(msg.result)
	return m, nil
}

func (m AppModel) handleAlerts(msg alertsMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.err != nil {
		m.alertsV.SetError(msg.err.Error())
		return m, nil
	}
	m.store.Replace(msg.alerts)
	m.alertsV.SetAlerts(m.store.Alerts())
	return m, nil
}

func (m AppModel) handleAlertAck(msg alertAckMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.err != nil {
		m.alertsV.SetError(msg.err.Error())
		return m, nil
	}
	if err := m.store.MarkAcknowledged(msg.id); err != nil {
		m.alertsV.SetError(err.Error())
		return m, nil
	}
	m.alertsV.SetAlerts(m.store.Alerts())
	return m, nil
}

// --- commands ---

func (m AppModel) loginCmd(email, password string) tea.Cmd {
	ctx := m.reqCtx
	client := m.client
	cfg := m.config
	vaultKey := m.vaultKey
	return func() tea.Msg {
		tok, err := client.Login(ctx, email, password)
		if err != nil {
			return loginMsg{err: err}
		}
		sess := session.Session{
			ServerURL: cfg.ServerURL,
			Email:     email,
			Token:     tok.AccessToken,
			SavedAt:   time.Now(),
		}
		if path, perr := config.GetSessionPath(); perr == nil {
			if serr := session.Save(path, vaultKey, sess); serr != nil {
				logging.L().Warn().Err(serr).Msg("session save failed")
			}
		}
		return loginMsg{email: email}
	}
}

func (m AppModel) fetchDevicesCmd() tea.Cmd {
	ctx, gen, client := m.reqCtx, m.gen, m.client
	return func() tea.Msg {
		devices, err := client.Devices(ctx)
		return devicesMsg{gen: gen, devices: devices, err: err}
	}
}

func (m AppModel) fetchChecksCmd(deviceID int) tea.Cmd {
	ctx, gen, client := m.reqCtx, m.gen, m.client
	return func() tea.Msg {
		results, err := client.Checks(ctx, deviceID)
		return checksMsg{gen: gen, deviceID: deviceID, results: results, err: err}
	}
}

func (m AppModel) pollCmd(deviceID int) tea.Cmd {
	ctx, gen, client := m.reqCtx, m.gen, m.client
	return func() tea.Msg {
		results, err := client.RunChecks(ctx, deviceID)
		return checksMsg{gen: gen, deviceID: deviceID, results: results, err: err}
	}
}

func (m AppModel) pingCmd(deviceID int) tea.Cmd {
	ctx, gen, client := m.reqCtx, m.gen, m.client
	return func() tea.Msg {
		pr, err := client.Ping(ctx, deviceID)
		return pingMsg{gen: gen, deviceID: deviceID, result: pr, err: err}
	}
}

// The alert commands only talk to the server; the store snapshot is
// mutated by the handlers on the event loop.
func (m AppModel) fetchAlertsCmd() tea.Cmd {
	ctx, gen, store := m.reqCtx, m.gen, m.store
	return func() tea.Msg {
		alerts, err := store.Fetch(ctx)
		return alertsMsg{gen: gen, alerts: alerts, err: err}
	}
}

func (m AppModel) ackAlertCmd(id int) tea.Cmd {
	ctx, gen, store := m.reqCtx, m.gen, m.store
	return func() tea.Msg {
		err := store.SendAck(ctx, id)
		return alertAckMsg{gen: gen, id: id, err: err}
	}
}

func (m AppModel) createDeviceCmd(dc api.DeviceCreate) tea.Cmd {
	ctx, gen, client := m.reqCtx, m.gen, m.client
	return func() tea.Msg {
		_, err := client.CreateDevice(ctx, dc)
		return deviceMutatedMsg{gen: gen, err: err}
	}
}

func (m AppModel) deleteDeviceCmd(id int) tea.Cmd {
	ctx, gen, client := m.reqCtx, m.gen, m.client
	return func() tea.Msg {
		err := client.DeleteDevice(ctx, id)
		return deviceMutatedMsg{gen: gen, err: err}
	}
}

// --- rendering ---

var stateTitles = map[AppState]string{
	StateDashboard: "Dashboard",
	StateDevices:   "Devices",
	StateDetail:    "Device Detail",
	StateAlerts:    "Alerts",
	StateSettings:  "Settings",
}

// View renders the full application UI by composing header, body, and status.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.state == StateLogin {
		return m.login.View()
	}
	if m.help.IsVisible() {
		return m.help.View()
	}

	serverHost := m.config.ServerURL
	if u, err := url.Parse(m.config.ServerURL); err == nil && u.Host != "" {
		serverHost = u.Host
	}
	header := components.RenderHeader(
		m.theme,
		stateTitles[m.state],
		serverHost,
		len(m.dashboard.Devices()),
		m.width,
		m.version,
		m.build,
	)

	var body string
	switch m.state {
	case StateDashboard:
		body = m.dashboard.View()
	case StateDevices:
		body = m.devices.View()
	case StateDetail:
		body = m.detail.View()
	case StateAlerts:
		body = m.alertsV.View()
	case StateSettings:
		body = m.settings.View()
	}

	now := time.Now()
	online, total := 0, 0
	for _, d := range m.dashboard.Devices() {
		total++
		if health.Derive(d.LastOnline, now) == health.Online {
			online++
		}
	}

	synced := m.sync != nil && m.sync.Connected()
	statusBar := components.RenderStatusBar(
		m.theme, synced, m.lastRefresh, online, total, m.width, m.stateHints())

	// Fill body to the available height between header and status bar
	bodyHeight := m.height - 1 - 2 // 1 header line, 2 status bar lines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}

func (m AppModel) stateHints() []components.KeyHint {
	switch m.state {
	case StateDetail:
		return []components.KeyHint{
			{Key: "p", Desc: "ping"},
			{Key: "P", Desc: "poll"},
			{Key: "o", Desc: "raw"},
			{Key: "r", Desc: "refresh"},
			{Key: "esc", Desc: "back"},
		}
	case StateDevices:
		return []components.KeyHint{
			{Key: "n", Desc: "add"},
			{Key: "x", Desc: "delete"},
			{Key: "esc", Desc: "back"},
		}
	case StateAlerts:
		return []components.KeyHint{
			{Key: "enter", Desc: "ack"},
			{Key: "r", Desc: "refresh"},
			{Key: "esc", Desc: "back"},
		}
	case StateSettings:
		return []components.KeyHint{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	default:
		return []components.KeyHint{
			{Key: "enter", Desc: "detail"},
			{Key: "d", Desc: "devices"},
			{Key: "a", Desc: "alerts"},
			{Key: "s", Desc: "settings"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	}
}
