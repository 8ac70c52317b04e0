package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column widths.
const (
	colMarker    = 2
	colDirection = 9
	colLabel     = 26
	colTime      = 12
	colStatus    = 6
)

func eventStatus(ev capturedEvent) string {
	if ev.Bursted {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("BURST")
	}
	return ""
}

func (m Model) renderList(maxRows int) string {
	innerWidth := max(m.width-4, 20)
	colSummary := max(innerWidth-colMarker-colDirection-colLabel-colTime-colStatus-4, 10)

	title := fmt.Sprintf(" zbproto-inspectd (%d events) ", len(m.events))

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(innerWidth)

	dataRows := max(maxRows-1, 1) // -1 for header row

	start := 0
	if len(m.events) > dataRows {
		start = max(m.cursor-dataRows/2, 0)
		if start+dataRows > len(m.events) {
			start = len(m.events) - dataRows
		}
	}
	end := min(start+dataRows, len(m.events))

	header := fmt.Sprintf("   %-*s %-*s %-*s %*s %-*s",
		colDirection, "Dir",
		colLabel, "Message",
		colSummary, "Summary",
		colTime, "Time",
		colStatus, "",
	)

	var rows []string
	rows = append(rows, lipgloss.NewStyle().Bold(true).Render(header))
	for i := start; i < end; i++ {
		rows = append(rows, m.renderEventRow(i, i == m.cursor, colSummary))
	}

	borderColor := lipgloss.Color("240")
	border = border.BorderForeground(borderColor)
	content := strings.Join(rows, "\n")

	box := border.Render(content)
	lines := strings.Split(box, "\n")
	if len(lines) > 0 {
		borderFg := lipgloss.NewStyle().Foreground(borderColor)
		titleStyle := lipgloss.NewStyle().Bold(true)
		dashes := max(innerWidth-len([]rune(title)), 0)
		lines[0] = borderFg.Render("╭") +
			titleStyle.Render(title) +
			borderFg.Render(strings.Repeat("─", dashes)+"╮")
		box = strings.Join(lines, "\n")
	}

	return box
}

func (m Model) renderEventRow(idx int, isCursor bool, colSummary int) string {
	ev := m.events[idx]

	marker := "  "
	if isCursor {
		marker = "▶ "
	}

	row := fmt.Sprintf("%s%-*s %-*s %-*s %*s %-*s",
		marker,
		colDirection, ev.Direction,
		colLabel, truncate(ev.Label, colLabel),
		colSummary, truncate(ev.Summary, colSummary),
		colTime, formatTime(ev.At),
		colStatus, eventStatus(ev),
	)

	if isCursor {
		return lipgloss.NewStyle().Reverse(true).Render(row)
	}
	return row
}
