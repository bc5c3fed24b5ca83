package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/junowatch/junowatch/tui/styles"
)

// KeyHint is a single key/description pair shown in the footer line.
type KeyHint struct {
	Key  string
	Desc string
}

// RenderStatusBar renders the two-line status/footer bar showing the live
// sync badge, refresh info, device health summary, and key hints.
func RenderStatusBar(theme styles.Theme, synced bool, lastRefresh time.Time, onlineCount, totalCount, width int, hints []KeyHint) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")

	badge := "OFFLINE"
	badgeColor := theme.Base08
	if synced {
		badge = "SYNC"
		badgeColor = theme.Base0B
	}
	badgeSeg := lipgloss.NewStyle().Foreground(badgeColor).Background(bg).Bold(true).Render(badge)

	lastStr := "never"
	if !lastRefresh.IsZero() {
		lastStr = lastRefresh.Format("15:04:05")
	}
	lastSeg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).
		Render(fmt.Sprintf("refreshed: %s", lastStr))

	healthColor := theme.Base0B
	if onlineCount < totalCount {
		healthColor = theme.Base0A
	}
	healthSeg := lipgloss.NewStyle().Foreground(healthColor).Background(bg).
		Render(fmt.Sprintf("%d/%d online", onlineCount, totalCount))

	topContent := bgStyle.Render(" ") + badgeSeg + sep + lastSeg + sep + healthSeg
	topWidth := lipgloss.Width(topContent)
	if topWidth < width {
		topContent += bgStyle.Render(strings.Repeat(" ", width-topWidth))
	}

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")

	keys := bgStyle.Render(" ")
	for i, h := range hints {
		if i > 0 {
			keys += spacer
		}
		keys += keyStyle.Render(h.Key) + descStyle.Render(":"+h.Desc)
	}

	keysWidth := lipgloss.Width(keys)
	if keysWidth < width {
		keys += bgStyle.Render(strings.Repeat(" ", width-keysWidth))
	}

	return lipgloss.JoinVertical(lipgloss.Left, topContent, keys)
}
