package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/junowatch/junowatch/tui/styles"
)

// RenderHeader renders the top header bar with app name, view title,
// server host, device count, and version.
func RenderHeader(theme styles.Theme, viewTitle, serverHost string, deviceCount, width int, ver, build string) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Base0D).
		Background(theme.Base01).
		Bold(true).
		Render("junowatch")

	title := lipgloss.NewStyle().
		Foreground(theme.Base05).
		Background(theme.Base01).
		Render(viewTitle)

	host := serverHost
	if host == "" {
		host = "(not connected)"
	}
	server := lipgloss.NewStyle().
		Foreground(theme.Base0C).
		Background(theme.Base01).
		Render(host)

	devices := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render(fmt.Sprintf("%d devices", deviceCount))

	versionStr := "v" + ver
	if build != "" {
		versionStr += "  " + build
	}
	versionSeg := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render(versionStr)

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s  |  %s ", left, title, server, devices, versionSeg)

	return lipgloss.NewStyle().
		Background(theme.Base01).
		Width(width).
		Render(content)
}
