// Package ui provides theme and color support for the application's user
// interface. It defines the ANSI palette used by the prompt session and the
// lipgloss palette used by the terminal form, and honours NO_COLOR.
package ui
