package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRefreshRate is the animation interval of the exact-mode spinner.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner abstracts the terminal spinner so callers can be tested without
// a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// WithSpinner runs fn while a spinner labelled with suffix animates on out.
// out should be stderr so the result stream stays clean.
func WithSpinner(out io.Writer, suffix string, fn func()) {
	s := newSpinner(out)
	s.UpdateSuffix(" " + suffix)
	s.Start()
	defer s.Stop()
	fn()
}
