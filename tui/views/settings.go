package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junowatch/junowatch/internal/config"
	"github.com/junowatch/junowatch/tui/keys"
	"github.com/junowatch/junowatch/tui/styles"
)

// SettingsAction describes what the app should do after a settings update.
type SettingsAction int

const (
	// SettingsNone means continue in the settings view.
	SettingsNone SettingsAction = iota
	// SettingsClose means the user cancelled without saving.
	SettingsClose
	// SettingsSaved means the config was saved; the app should apply changes.
	SettingsSaved
)

// Settings field indices.
const (
	settingsFieldTheme    = 0
	settingsFieldInterval = 1
	settingsFieldCount    = 2
)

// SettingsView is a full-screen settings editor with a live theme preview.
type SettingsView struct {
	theme  styles.Theme
	sty    *styles.Styles
	config *config.Config

	themeIndex int // index into styles.ListThemes()
	cursor     int // which setting row is focused

	width  int
	height int

	intervalInput textinput.Model

	err string

	// SavedTheme holds the theme slug after save, so the app can apply it.
	SavedTheme string
}

// NewSettingsView creates a fresh SettingsView populated from the current config.
func NewSettingsView(theme styles.Theme, cfg *config.Config) SettingsView {
	themeIdx := styles.GetThemeIndex(cfg.Theme)
	if themeIdx < 0 {
		themeIdx = 0
	}

	intervalInput := textinput.New()
	intervalInput.Placeholder = "30s"
	intervalInput.CharLimit = 16
	intervalInput.Width = 20
	intervalInput.SetValue(cfg.RefreshInterval.String())

	return SettingsView{
		theme:         theme,
		sty:           styles.NewStyles(theme),
		config:        cfg,
		themeIndex:    themeIdx,
		intervalInput: intervalInput,
	}
}

// SetSize updates the available dimensions for the view.
func (v *SettingsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Update handles key messages for the settings view.
func (v SettingsView) Update(msg tea.Msg) (SettingsView, tea.Cmd, SettingsAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v.updateInput(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.DefaultKeyMap.Escape):
		return v, nil, SettingsClose

	case keyMsg.Type == tea.KeyUp, keyMsg.Type == tea.KeyShiftTab:
		v.setCursor((v.cursor + settingsFieldCount - 1) % settingsFieldCount)
		return v, nil, SettingsNone

	case keyMsg.Type == tea.KeyDown, key.Matches(keyMsg, keys.DefaultKeyMap.Tab):
		v.setCursor((v.cursor + 1) % settingsFieldCount)
		return v, nil, SettingsNone

	case keyMsg.Type == tea.KeyLeft && v.cursor == settingsFieldTheme:
		v.themeIndex = (v.themeIndex + styles.GetThemeCount() - 1) % styles.GetThemeCount()
		return v, nil, SettingsNone

	case keyMsg.Type == tea.KeyRight && v.cursor == settingsFieldTheme:
		v.themeIndex = (v.themeIndex + 1) % styles.GetThemeCount()
		return v, nil, SettingsNone

	case key.Matches(keyMsg, keys.DefaultKeyMap.Enter):
		return v.save()
	}

	return v.updateInput(msg)
}

func (v SettingsView) updateInput(msg tea.Msg) (SettingsView, tea.Cmd, SettingsAction) {
	if v.cursor != settingsFieldInterval {
		return v, nil, SettingsNone
	}
	var cmd tea.Cmd
	v.intervalInput, cmd = v.intervalInput.Update(msg)
	return v, cmd, SettingsNone
}

func (v *SettingsView) setCursor(idx int) {
	v.cursor = idx
	if idx == settingsFieldInterval {
		v.intervalInput.Focus()
	} else {
		v.intervalInput.Blur()
	}
}

func (v SettingsView) save() (SettingsView, tea.Cmd, SettingsAction) {
	interval, err := time.ParseDuration(strings.TrimSpace(v.intervalInput.Value()))
	if err != nil || interval < time.Second {
		v.err = "refresh interval must be a duration of at least 1s"
		return v, nil, SettingsNone
	}

	slugs := styles.ListThemes()
	slug := slugs[v.themeIndex]

	v.config.Theme = slug
	v.config.RefreshInterval = interval

	path, err := config.GetConfigPath()
	if err == nil {
		err = config.SaveConfig(v.config, path)
	}
	if err != nil {
		v.err = "save failed: " + err.Error()
		return v, nil, SettingsNone
	}

	v.SavedTheme = slug
	return v, nil, SettingsSaved
}

// View renders the settings editor with a preview swatch for the selected theme.
func (v SettingsView) View() string {
	slugs := styles.ListThemes()
	slug := slugs[v.themeIndex]
	preview := styles.Themes[slug]

	rowStyle := func(idx int) lipgloss.Style {
		if idx == v.cursor {
			return v.sty.TableRowSel
		}
		return v.sty.TableRow
	}

	swatch := ""
	for _, c := range []lipgloss.Color{preview.Base08, preview.Base0A, preview.Base0B, preview.Base0C, preview.Base0D, preview.Base0E} {
		swatch += lipgloss.NewStyle().Foreground(c).Render("██")
	}

	var lines []string
	lines = append(lines, v.sty.SectionHeader.Render("  Settings"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %s %s  %s",
		rowStyle(settingsFieldTheme).Render(padRight("Theme:", 18)),
		padRight(preview.Name, 20),
		swatch))
	lines = append(lines, fmt.Sprintf("  %s %s",
		rowStyle(settingsFieldInterval).Render(padRight("Refresh interval:", 18)),
		v.intervalInput.View()))
	lines = append(lines, "")
	if v.err != "" {
		lines = append(lines, v.sty.FormError.Render("  "+v.err))
	} else {
		lines = append(lines, v.sty.FooterDesc.Render("  [left/right] theme  [enter] save  [esc] cancel"))
	}

	return strings.Join(lines, "\n")
}
