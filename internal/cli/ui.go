// Package cli renders isolation progress and certified roots on a terminal.
// It drives a spinner from the round events of the isolation loop and
// prints the result in text, quiet or JSON form.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/polyroots/internal/ball"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/internal/ui"
)

// FormatExecutionDuration formats a time.Duration for display: microseconds
// below a millisecond, milliseconds below a second, the default string
// otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the isolation bar.
	ProgressBarWidth = 24
)

// Color functions return ANSI escape codes from the current theme.

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

// ColorMuted returns the color for secondary text.
func ColorMuted() string { return ui.GetCurrentTheme().Muted }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.GetCurrentTheme().Bold }

// Spinner abstracts the terminal spinner so DisplayRounds can be tested
// without a terminal.
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

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressBar renders progress in [0, 1] as a bar of the given width.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatRoundLine renders a finished round as "prec=P: K isolated roots | T".
func FormatRoundLine(e roots.RoundEvent) string {
	return fmt.Sprintf("prec=%d: %d isolated roots | %s", e.Precision, e.Isolated, FormatExecutionDuration(e.Elapsed))
}

// PrintSearchHeader announces the root counts before the first round.
func PrintSearchHeader(out io.Writer, degree, deflatedDegree int) {
	fmt.Fprintf(out, "searching for %s%d%s roots, %s%d%s deflated\n",
		ColorBlue(), degree, ColorReset(), ColorBlue(), deflatedDegree, ColorReset())
}

// DisplayRounds consumes round events until the channel is closed. It
// prints one line per finished round and, when animate is set, keeps a
// spinner running whose suffix shows the isolation bar of the last round
// and the estimated duration of the next one. It is designed to run in
// its own goroutine.
//
// Parameters:
//   - wg: Signaled when the channel is drained.
//   - events: Round events, typically fed by a roots.ChannelObserver.
//   - out: The writer the lines and the spinner are rendered to.
//   - animate: Whether to show the spinner.
func DisplayRounds(wg *sync.WaitGroup, events <-chan roots.RoundEvent, out io.Writer, animate bool) {
	defer wg.Done()

	tracker := NewRoundTracker()
	var s Spinner
	if animate {
		s = newSpinner(spinner.WithWriter(out))
		s.UpdateSuffix(" isolating...")
		s.Start()
	}
	stop := func() {
		if s != nil {
			s.Stop()
			s = nil
		}
	}
	defer stop()

	for e := range events {
		tracker.Observe(e)
		if s != nil {
			// The spinner redraws its own line, so stop it while printing.
			s.Stop()
		}
		line := FormatRoundLine(e)
		if e.Outcome == roots.OutcomeCertified {
			fmt.Fprintf(out, "%s\n", line)
			fmt.Fprintf(out, "%sdone!%s\n", ColorGreen(), ColorReset())
			s = nil
			continue
		}
		fmt.Fprintf(out, "%s %s(%s)%s\n", line, ColorMuted(), e.Outcome, ColorReset())
		if s != nil {
			s.UpdateSuffix(" " + tracker.Status())
			s.Start()
		}
	}
}

// DisplayRoots prints the enclosures in display order with the given
// number of digits, one per line, colored by whether they are real.
func DisplayRoots(out io.Writer, zs []ball.Complex, digits int) {
	if digits <= 0 {
		return
	}
	th := ui.GetCurrentTheme()
	for _, z := range roots.Pretty(zs) {
		color := th.Complex
		if z.IsReal() {
			color = th.Real
		}
		fmt.Fprintln(out, ui.Paint(color, z.Format(digits)))
	}
}

// DisplaySummary prints the statistics of a certified result.
func DisplaySummary(out io.Writer, res *roots.Result) {
	realCount := 0
	for _, z := range res.Roots {
		if z.IsReal() {
			realCount++
		}
	}
	fmt.Fprintf(out, "%s%d%s roots (%d real) certified to 2^-%d in %s%s%s after %d round(s), final precision %d bits\n",
		ColorBold(), len(res.Roots), ColorReset(), realCount, res.TargetBits,
		ColorYellow(), FormatExecutionDuration(res.Duration), ColorReset(),
		res.Rounds, res.FinalPrecision)
}
