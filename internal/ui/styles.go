package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todobox/internal/view"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	doneTextStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderFilters draws "All (3)  Active (2)  Completed (1)" with the
// selected tab highlighted.
func renderFilters(tabs []view.FilterTab) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.Selected {
			parts = append(parts, selectedStyle.Render(t.Label))
			continue
		}
		parts = append(parts, mutedStyle.Render(t.Label))
	}
	return strings.Join(parts, "  ")
}

// renderPages draws the numbered strip, e.g. "1 [2] 3". An empty list
// has no pages and renders nothing.
func renderPages(pages []view.PageButton) string {
	if len(pages) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.Current {
			parts = append(parts, selectedStyle.Render(fmt.Sprintf("[%d]", p.Number)))
			continue
		}
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("%d", p.Number)))
	}
	return "Pages: " + strings.Join(parts, " ")
}

func renderMaster(allDone bool) string {
	if allDone {
		return doneStyle.Render("[x]") + " all completed"
	}
	return "[ ] mark all completed"
}
