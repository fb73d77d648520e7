// The cli package provides functions for building a command-line interface
// (CLI) for the benchmark suite. It handles the live display of trial
// progress and formats the results for a clear and readable presentation.
package cli

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/pffbench/internal/benchmark"
	"github.com/agbru/pffbench/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
)

// Color functions return ANSI escape codes from the current theme.
// They delegate to the ui package to reduce coupling.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return ui.GetCurrentTheme().Error }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.GetCurrentTheme().Warning }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return ui.GetCurrentTheme().Primary }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.GetCurrentTheme().Bold }

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows the progress reporter to be decoupled from a specific spinner
// implementation, facilitating easier testing and maintenance. It defines
// the essential controls for a spinner: starting, stopping, and updating its
// status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// noopSpinner satisfies Spinner without producing any output. Used in quiet
// mode and when output is not a terminal.
type noopSpinner struct{}

func (noopSpinner) Start()                     {}
func (noopSpinner) Stop()                      {}
func (noopSpinner) UpdateSuffix(suffix string) {}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressReporter displays live benchmark progress on a spinner. It
// implements benchmark.TrialObserver so it can be registered directly on an
// engine. Not safe for concurrent engines; create one reporter per run.
type ProgressReporter struct {
	spinner   Spinner
	succeeded int
	failed    int
}

// NewProgressReporter creates a reporter writing to out. When quiet is true
// the reporter is inert and produces no output.
//
// Parameters:
//   - out: The writer the spinner renders to.
//   - quiet: Suppresses all progress output when true.
//
// Returns:
//   - *ProgressReporter: The reporter, ready for Start.
func NewProgressReporter(out io.Writer, quiet bool) *ProgressReporter {
	if quiet {
		return &ProgressReporter{spinner: noopSpinner{}}
	}
	return &ProgressReporter{spinner: newSpinner(spinner.WithWriter(out))}
}

// Start begins the progress display.
func (p *ProgressReporter) Start() {
	p.spinner.Start()
}

// Stop ends the progress display and frees the terminal line.
func (p *ProgressReporter) Stop() {
	p.spinner.Stop()
}

// TrialStarted updates the spinner with the trial about to run.
func (p *ProgressReporter) TrialStarted(trial, total int, n *big.Int) {
	p.spinner.UpdateSuffix(fmt.Sprintf(" Trial %d/%d: factoring N=%s (%d bits)",
		trial, total, n, n.BitLen()))
}

// TrialFinished updates the running success/failure tally.
func (p *ProgressReporter) TrialFinished(trial, total int, outcome benchmark.TrialOutcome) {
	if outcome.Success {
		p.succeeded++
	} else {
		p.failed++
	}
	p.spinner.UpdateSuffix(fmt.Sprintf(" Trial %d/%d done (%d ok, %d failed)",
		trial, total, p.succeeded, p.failed))
}
