// Package tui implements the interactive terminal form: two operand inputs,
// an evaluation history and key help, built on bubbletea.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/powmod/internal/cli"
	"github.com/agbru/powmod/internal/config"
	apperrors "github.com/agbru/powmod/internal/errors"
	"github.com/agbru/powmod/internal/format"
	"github.com/agbru/powmod/internal/powmod"
)

// HistoryLimit is the number of results kept on screen.
const HistoryLimit = 10

// EvalFunc evaluates base^exponent with the session's arithmetic settings.
type EvalFunc func(base, exponent uint64) powmod.Result

// HistoryEntry is one evaluated line.
type HistoryEntry struct {
	Result   powmod.Result
	Duration time.Duration
}

const (
	fieldBase = iota
	fieldExponent
	fieldCount
)

// Model is the root bubbletea model of the form.
type Model struct {
	header HeaderModel
	inputs [fieldCount]textinput.Model
	focus  int
	help   help.Model
	keymap KeyMap

	eval    EvalFunc
	history []HistoryEntry
	err     error
}

// NewModel creates the form. settings is shown in the header.
func NewModel(eval EvalFunc, version, settings string) Model {
	m := Model{
		header: NewHeaderModel(version, settings),
		help:   help.New(),
		keymap: DefaultKeyMap(),
		eval:   eval,
	}
	for i, name := range [fieldCount]string{"base", "exponent"} {
		in := textinput.New()
		in.Placeholder = name
		in.Prompt = ""
		in.CharLimit = 21
		in.Width = 24
		m.inputs[i] = in
	}
	m.inputs[fieldBase].Focus()
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.NextField):
		cmd := m.setFocus((m.focus + 1) % fieldCount)
		return m, cmd

	case key.Matches(msg, m.keymap.PrevField):
		cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd

	case key.Matches(msg, m.keymap.Clear):
		m.history = nil
		m.err = nil
		return m, nil

	case key.Matches(msg, m.keymap.Evaluate):
		if m.focus == fieldBase && strings.TrimSpace(m.inputs[fieldExponent].Value()) == "" {
			cmd := m.setFocus(fieldExponent)
			return m, cmd
		}
		return m.evaluate()
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves the cursor to field i.
func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// evaluate parses both inputs and prepends the result to the history.
func (m Model) evaluate() (tea.Model, tea.Cmd) {
	base, err := config.ParseOperand("base", strings.TrimSpace(m.inputs[fieldBase].Value()))
	if err != nil {
		m.err = err
		cmd := m.setFocus(fieldBase)
		return m, cmd
	}
	exponent, err := config.ParseOperand("exponent", strings.TrimSpace(m.inputs[fieldExponent].Value()))
	if err != nil {
		m.err = err
		cmd := m.setFocus(fieldExponent)
		return m, cmd
	}

	start := time.Now()
	r := m.eval(base, exponent)
	entry := HistoryEntry{Result: r, Duration: time.Since(start)}

	m.history = append([]HistoryEntry{entry}, m.history...)
	if len(m.history) > HistoryLimit {
		m.history = m.history[:HistoryLimit]
	}
	m.err = nil
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	cmd := m.setFocus(fieldBase)
	return m, cmd
}

// History returns the evaluated entries, newest first.
func (m Model) History() []HistoryEntry { return m.history }

// Err returns the last input error, if any.
func (m Model) Err() error { return m.err }

// View renders the form.
func (m Model) View() string {
	var form strings.Builder
	for i, label := range [fieldCount]string{"Base", "Exponent"} {
		style := labelStyle
		if i == m.focus {
			style = focusedStyle
		}
		form.WriteString(style.Render(label) + m.inputs[i].View())
		if i < fieldCount-1 {
			form.WriteByte('\n')
		}
	}
	if m.err != nil {
		form.WriteString("\n" + errorStyle.Render(inputErrorText(m.err)))
	}

	sections := []string{m.header.View(), panelStyle.Render(form.String())}
	if len(m.history) > 0 {
		sections = append(sections, panelStyle.Render(m.renderHistory()))
	}
	sections = append(sections, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHistory() string {
	lines := make([]string, 0, len(m.history))
	for _, e := range m.history {
		r := e.Result
		line := resultStyle.Render(cli.FormatResult(powmod.Result{
			Base: r.Base, Exponent: r.Exponent, Value: r.Value, Undefined: r.Undefined,
		}))
		if note := r.Annotation(); note != "" {
			line += annotationStyle.Render(" (" + note + ")")
		}
		line += durationStyle.Render("  " + format.FormatExecutionDuration(e.Duration))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// inputErrorText returns the message of a ValidationError without its
// "validation error for" prefix.
func inputErrorText(err error) string {
	var verr apperrors.ValidationError
	if errors.As(err, &verr) {
		return verr.Field + ": " + verr.Message
	}
	return err.Error()
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, eval EvalFunc, version, settings string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	p := tea.NewProgram(NewModel(eval, version, settings), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
