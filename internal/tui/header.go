package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// HeaderModel renders the top bar: title, version and arithmetic settings.
type HeaderModel struct {
	version  string
	settings string
	width    int
}

// NewHeaderModel creates a new header. settings describes the arithmetic
// mode and modulus, e.g. "standard, modulus unset".
func NewHeaderModel(version, settings string) HeaderModel {
	return HeaderModel{version: version, settings: settings}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "powmod"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	row := titleStyle.Render(titleText) + versionStyle.Render(" | "+h.settings)

	gap := h.width - 2 - lipgloss.Width(row)
	row += spaces(gap)

	if h.width > 0 {
		return headerStyle.Width(h.width).Render(row)
	}
	return headerStyle.Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
