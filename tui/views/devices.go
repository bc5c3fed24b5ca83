package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junowatch/junowatch/internal/api"
	"github.com/junowatch/junowatch/tui/keys"
	"github.com/junowatch/junowatch/tui/styles"
)

// DevicesMode represents the current mode of the devices view.
type DevicesMode int

const (
	// DevicesList shows the table of registered devices.
	DevicesList DevicesMode = iota
	// DevicesForm shows the add-device form.
	DevicesForm
)

// DevicesAction describes what the app should do after a devices view update.
type DevicesAction int

const (
	// DevicesNone means no action needed.
	DevicesNone DevicesAction = iota
	// DevicesClose means the user wants to leave the view.
	DevicesClose
	// DevicesCreate means the add form was submitted; read PendingCreate.
	DevicesCreate
	// DevicesDelete means the user wants to remove the selected device.
	DevicesDelete
	// DevicesRefresh means the user requested a refetch.
	DevicesRefresh
)

// Add-device form field indices.
const (
	devFieldHostname = 0
	devFieldAddress  = 1
	devFieldPort     = 2
	devFieldUser     = 3
	devFieldPassword = 4
	devFieldCount    = 5
)

// DevicesView manages the device list and the add-device form.
type DevicesView struct {
	theme styles.Theme
	sty   *styles.Styles
	mode  DevicesMode

	devices []api.Device
	cursor  int
	width   int
	height  int

	fields []textinput.Model
	focus  int
	busy   bool
	err    string
}

// NewDevicesView creates a new DevicesView with the given theme.
func NewDevicesView(theme styles.Theme) DevicesView {
	return DevicesView{
		theme: theme,
		sty:   styles.NewStyles(theme),
		mode:  DevicesList,
	}
}

// SetSize updates the available dimensions for the view.
func (v *DevicesView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetDevices replaces the device list and leaves any in-flight flags alone.
func (v *DevicesView) SetDevices(devices []api.Device) {
	v.devices = devices
	v.busy = false
	if v.cursor >= len(devices) && len(devices) > 0 {
		v.cursor = len(devices) - 1
	}
	if len(devices) == 0 {
		v.cursor = 0
	}
}

// SetError shows a failure in the footer line and re-enables the view.
func (v *DevicesView) SetError(msg string) {
	v.err = msg
	v.busy = false
}

// Saved closes the form after a successful create.
func (v *DevicesView) Saved() {
	v.mode = DevicesList
	v.busy = false
	v.err = ""
}

// SelectedDevice returns the device under the cursor, or nil when empty.
func (v DevicesView) SelectedDevice() *api.Device {
	if v.cursor < 0 || v.cursor >= len(v.devices) {
		return nil
	}
	d := v.devices[v.cursor]
	return &d
}

// PendingCreate builds the create payload from the form fields.
func (v DevicesView) PendingCreate() api.DeviceCreate {
	port := 22
	if p, err := strconv.Atoi(strings.TrimSpace(v.fields[devFieldPort].Value())); err == nil && p > 0 {
		port = p
	}
	return api.DeviceCreate{
		Hostname:    strings.TrimSpace(v.fields[devFieldHostname].Value()),
		IPAddress:   strings.TrimSpace(v.fields[devFieldAddress].Value()),
		SSHPort:     port,
		SSHUsername: strings.TrimSpace(v.fields[devFieldUser].Value()),
		SSHPassword: v.fields[devFieldPassword].Value(),
	}
}

// Update handles messages for the devices view and dispatches by mode.
func (v DevicesView) Update(msg tea.Msg) (DevicesView, tea.Cmd, DevicesAction) {
	switch v.mode {
	case DevicesForm:
		return v.updateForm(msg)
	default:
		return v.updateList(msg)
	}
}

func (v DevicesView) updateList(msg tea.Msg) (DevicesView, tea.Cmd, DevicesAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil, DevicesNone
	}
	switch {
	case key.Matches(keyMsg, keys.DefaultKeyMap.Escape):
		return v, nil, DevicesClose
	case key.Matches(keyMsg, keys.DefaultKeyMap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(keyMsg, keys.DefaultKeyMap.Down):
		if v.cursor < len(v.devices)-1 {
			v.cursor++
		}
	case key.Matches(keyMsg, keys.DefaultKeyMap.New):
		v.openForm()
	case key.Matches(keyMsg, keys.DefaultKeyMap.Delete):
		if !v.busy && len(v.devices) > 0 {
			v.busy = true
			v.err = ""
			return v, nil, DevicesDelete
		}
	case key.Matches(keyMsg, keys.DefaultKeyMap.Refresh):
		return v, nil, DevicesRefresh
	}
	return v, nil, DevicesNone
}

func (v DevicesView) updateForm(msg tea.Msg) (DevicesView, tea.Cmd, DevicesAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v.updateFormFields(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.DefaultKeyMap.Escape):
		v.mode = DevicesList
		v.err = ""
		return v, nil, DevicesNone

	case key.Matches(keyMsg, keys.DefaultKeyMap.Tab),
		keyMsg.Type == tea.KeyDown:
		v.setFocus((v.focus + 1) % devFieldCount)
		return v, nil, DevicesNone

	case keyMsg.Type == tea.KeyUp, keyMsg.Type == tea.KeyShiftTab:
		v.setFocus((v.focus + devFieldCount - 1) % devFieldCount)
		return v, nil, DevicesNone

	case key.Matches(keyMsg, keys.DefaultKeyMap.Enter):
		if v.busy {
			return v, nil, DevicesNone
		}
		if v.focus < devFieldCount-1 {
			v.setFocus(v.focus + 1)
			return v, nil, DevicesNone
		}
		dc := v.PendingCreate()
		if dc.Hostname == "" || dc.IPAddress == "" {
			v.err = "hostname and address are required"
			return v, nil, DevicesNone
		}
		v.err = ""
		v.busy = true
		return v, nil, DevicesCreate
	}

	return v.updateFormFields(msg)
}

func (v DevicesView) updateFormFields(msg tea.Msg) (DevicesView, tea.Cmd, DevicesAction) {
	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd, DevicesNone
}

func (v *DevicesView) openForm() {
	labels := []struct {
		placeholder string
		limit       int
		echo        bool
	}{
		{"hostname", 128, false},
		{"ip address", 64, false},
		{"22", 8, false},
		{"ssh username", 64, false},
		{"ssh password", 128, true},
	}
	v.fields = make([]textinput.Model, devFieldCount)
	for i, l := range labels {
		ti := textinput.New()
		ti.Placeholder = l.placeholder
		ti.CharLimit = l.limit
		ti.Width = 36
		if l.echo {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		v.fields[i] = ti
	}
	v.focus = 0
	v.fields[0].Focus()
	v.mode = DevicesForm
	v.err = ""
}

func (v *DevicesView) setFocus(idx int) {
	v.fields[v.focus].Blur()
	v.focus = idx
	v.fields[v.focus].Focus()
}

// View renders the devices view.
func (v DevicesView) View() string {
	if v.mode == DevicesForm {
		return v.renderForm()
	}
	return v.renderList()
}

func (v DevicesView) renderList() string {
	var lines []string

	lines = append(lines, v.sty.SectionHeader.Render("  Registered devices"))
	lines = append(lines, "")

	header := fmt.Sprintf("  %s%s%s%s",
		v.sty.TableHeader.Render(padRight("Hostname", colHostname)),
		v.sty.TableHeader.Render(padRight("Address", colAddress)),
		v.sty.TableHeader.Render(padLeft("SSH Port", 10)),
		v.sty.TableHeader.Render(padRight("  User", 18)),
	)
	lines = append(lines, header)

	if len(v.devices) == 0 {
		lines = append(lines, v.sty.TableCellDim.Render("  (none)"))
	}
	for i, d := range v.devices {
		rowStyle := v.sty.TableRow
		if i == v.cursor {
			rowStyle = v.sty.TableRowSel
		}
		lines = append(lines, "  "+rowStyle.Render(fmt.Sprintf("%s%s%s%s",
			padRight(truncate(d.Hostname, colHostname-1), colHostname),
			padRight(truncate(d.IPAddress, colAddress-1), colAddress),
			padLeft(strconv.Itoa(d.SSHPort), 10),
			padRight("  "+d.SSHUsername, 18),
		)))
	}

	lines = append(lines, "")
	if v.err != "" {
		lines = append(lines, v.sty.FormError.Render("  "+v.err))
	} else if v.busy {
		lines = append(lines, v.sty.TableCellDim.Render("  working..."))
	} else {
		lines = append(lines, v.sty.FooterDesc.Render("  [n] add  [x] delete  [r] refresh  [esc] back"))
	}

	return strings.Join(lines, "\n")
}

func (v DevicesView) renderForm() string {
	labels := []string{"Hostname:", "Address:", "SSH port:", "Username:", "Password:"}

	var lines []string
	lines = append(lines, v.sty.ModalTitle.Render("Add device"))
	lines = append(lines, "")
	for i, label := range labels {
		lines = append(lines, fmt.Sprintf("%s %s",
			v.sty.FormLabel.Render(padRight(label, 10)),
			v.fields[i].View()))
	}
	lines = append(lines, "")
	switch {
	case v.busy:
		lines = append(lines, v.sty.TableCellDim.Render("saving..."))
	case v.err != "":
		lines = append(lines, v.sty.FormError.Render(v.err))
	default:
		lines = append(lines, v.sty.FooterDesc.Render("[enter] save  [esc] cancel"))
	}

	modal := v.sty.ModalBorder.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, modal)
}
