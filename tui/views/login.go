package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junowatch/junowatch/tui/keys"
	"github.com/junowatch/junowatch/tui/styles"
)

// LoginAction describes what the app should do after a login view update.
type LoginAction int

const (
	// LoginNone means continue in the login view.
	LoginNone LoginAction = iota
	// LoginSubmit means the user submitted credentials; read Email/Password.
	LoginSubmit
	// LoginQuit means the user wants to leave the application.
	LoginQuit
)

// Login form field indices.
const (
	loginFieldEmail    = 0
	loginFieldPassword = 1
	loginFieldCount    = 2
)

// LoginView is the credential entry screen shown before a session exists.
type LoginView struct {
	theme  styles.Theme
	sty    *styles.Styles
	width  int
	height int

	serverURL string
	fields    []textinput.Model
	focus     int
	busy      bool
	err       string
}

// NewLoginView creates a LoginView pointed at the given server.
func NewLoginView(theme styles.Theme, serverURL string) LoginView {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return LoginView{
		theme:     theme,
		sty:       styles.NewStyles(theme),
		serverURL: serverURL,
		fields:    []textinput.Model{email, password},
	}
}

// SetSize updates the available dimensions for the view.
func (v *LoginView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetError shows a failure message under the form and re-enables the form.
func (v *LoginView) SetError(msg string) {
	v.err = msg
	v.busy = false
}

// Email returns the entered email address.
func (v LoginView) Email() string {
	return strings.TrimSpace(v.fields[loginFieldEmail].Value())
}

// Password returns the entered password.
func (v LoginView) Password() string {
	return v.fields[loginFieldPassword].Value()
}

// Update handles key messages for the login form.
func (v LoginView) Update(msg tea.Msg) (LoginView, tea.Cmd, LoginAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v.updateFields(msg)
	}

	switch {
	case keyMsg.Type == tea.KeyCtrlC:
		return v, nil, LoginQuit

	case key.Matches(keyMsg, keys.DefaultKeyMap.Tab),
		keyMsg.Type == tea.KeyDown:
		v.setFocus((v.focus + 1) % loginFieldCount)
		return v, nil, LoginNone

	case keyMsg.Type == tea.KeyUp, keyMsg.Type == tea.KeyShiftTab:
		v.setFocus((v.focus + loginFieldCount - 1) % loginFieldCount)
		return v, nil, LoginNone

	case key.Matches(keyMsg, keys.DefaultKeyMap.Enter):
		if v.busy {
			return v, nil, LoginNone
		}
		if v.focus < loginFieldCount-1 {
			v.setFocus(v.focus + 1)
			return v, nil, LoginNone
		}
		if v.Email() == "" || v.Password() == "" {
			v.err = "email and password are required"
			return v, nil, LoginNone
		}
		v.err = ""
		v.busy = true
		return v, nil, LoginSubmit
	}

	return v.updateFields(msg)
}

func (v LoginView) updateFields(msg tea.Msg) (LoginView, tea.Cmd, LoginAction) {
	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd, LoginNone
}

func (v *LoginView) setFocus(idx int) {
	v.fields[v.focus].Blur()
	v.focus = idx
	v.fields[v.focus].Focus()
}

// View renders the login form as a centered modal box.
func (v LoginView) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0D).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base04)

	var lines []string
	lines = append(lines, titleStyle.Render("junowatch"))
	lines = append(lines, dimStyle.Render(v.serverURL))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s %s",
		v.sty.FormLabel.Render(padRight("Email:", 10)),
		v.fields[loginFieldEmail].View()))
	lines = append(lines, fmt.Sprintf("%s %s",
		v.sty.FormLabel.Render(padRight("Password:", 10)),
		v.fields[loginFieldPassword].View()))
	lines = append(lines, "")
	switch {
	case v.busy:
		lines = append(lines, dimStyle.Render("signing in..."))
	case v.err != "":
		lines = append(lines, v.sty.FormError.Render(v.err))
	default:
		lines = append(lines, dimStyle.Render("[enter] sign in  [ctrl+c] quit"))
	}

	modal := v.sty.ModalBorder.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, modal)
}
