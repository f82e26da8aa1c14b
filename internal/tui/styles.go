package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/powmod/internal/ui"
)

// Style variables for the form.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	labelStyle      lipgloss.Style
	focusedStyle    lipgloss.Style
	resultStyle     lipgloss.Style
	annotationStyle lipgloss.Style
	durationStyle   lipgloss.Style
	errorStyle      lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.CurrentFormTheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Width(10)

	focusedStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Width(10)

	resultStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	annotationStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	durationStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)
}
