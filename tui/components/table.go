package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junowatch/junowatch/internal/checks"
	"github.com/junowatch/junowatch/tui/styles"
)

const tableMaxColWidth = 40

// RenderCheckTable renders a normalized check table with one header row and
// per-cell good/bad coloring. Columns are sized to their widest cell, capped
// at tableMaxColWidth, and the whole table is clipped to maxWidth.
func RenderCheckTable(theme styles.Theme, table checks.Table, maxWidth int) string {
	sty := styles.NewStyles(theme)

	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = len(col)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if l := len(cell.Text); l > widths[i] {
				widths[i] = l
			}
		}
	}
	for i := range widths {
		if widths[i] > tableMaxColWidth {
			widths[i] = tableMaxColWidth
		}
	}

	var lines []string

	var hdr strings.Builder
	for i, col := range table.Columns {
		hdr.WriteString(sty.TableHeader.Render(cellPad(col, widths[i])))
		hdr.WriteString("  ")
	}
	lines = append(lines, clipLine(hdr.String(), maxWidth))

	for _, row := range table.Rows {
		var sb strings.Builder
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			text := cellPad(cell.Text, widths[i])
			switch cell.Health {
			case checks.HealthGood:
				sb.WriteString(sty.CellGood.Render(text))
			case checks.HealthBad:
				sb.WriteString(sty.CellBad.Render(text))
			default:
				sb.WriteString(sty.TableRow.Render(text))
			}
			sb.WriteString("  ")
		}
		lines = append(lines, clipLine(sb.String(), maxWidth))
	}

	return strings.Join(lines, "\n")
}

func cellPad(s string, width int) string {
	if len(s) > width {
		if width <= 3 {
			return s[:width]
		}
		return s[:width-3] + "..."
	}
	return s + strings.Repeat(" ", width-len(s))
}

func clipLine(s string, maxWidth int) string {
	if maxWidth <= 0 || lipgloss.Width(s) <= maxWidth {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(maxWidth).Render(s)
}
