package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/agbru/polyroots/internal/roots"
)

// defaultGrowth is the assumed ratio between the durations of consecutive
// rounds until two rounds have been observed. Doubling the precision
// slightly more than doubles the cost of big.Float multiplication.
const defaultGrowth = 2.5

// maxGrowth caps the observed ratio. The first rounds are short and noisy.
const maxGrowth = 16.0

// RoundTracker estimates the duration of the next precision round from the
// durations of the previous ones.
type RoundTracker struct {
	last     roots.RoundEvent
	rounds   int
	growth   float64 // smoothed duration ratio between consecutive rounds
	total    time.Duration
	prevSpan time.Duration
}

// NewRoundTracker creates an empty tracker.
func NewRoundTracker() *RoundTracker {
	return &RoundTracker{growth: defaultGrowth}
}

// Observe records a finished round. The duration ratio is smoothed
// exponentially, 70% old and 30% new.
func (t *RoundTracker) Observe(e roots.RoundEvent) {
	if t.rounds > 0 && t.prevSpan > 0 && e.Elapsed > 0 {
		ratio := min(float64(e.Elapsed)/float64(t.prevSpan), maxGrowth)
		if t.rounds == 1 {
			t.growth = ratio
		} else {
			t.growth = 0.7*t.growth + 0.3*ratio
		}
	}
	t.last = e
	t.rounds++
	t.total += e.Elapsed
	t.prevSpan = e.Elapsed
}

// Rounds returns the number of observed rounds.
func (t *RoundTracker) Rounds() int { return t.rounds }

// Progress returns the fraction of roots isolated in the last round.
func (t *RoundTracker) Progress() float64 {
	if t.last.Degree <= 0 {
		return 0
	}
	return float64(t.last.Isolated) / float64(t.last.Degree)
}

// NextRoundETA estimates how long the next round will take, or 0 before
// any round has finished.
func (t *RoundTracker) NextRoundETA() time.Duration {
	if t.rounds == 0 || t.prevSpan <= 0 {
		return 0
	}
	eta := time.Duration(math.Round(float64(t.prevSpan) * t.growth))
	return min(eta, 24*time.Hour)
}

// Status renders the spinner suffix for the round in progress.
func (t *RoundTracker) Status() string {
	if t.rounds == 0 {
		return "isolating..."
	}
	return fmt.Sprintf("prec=%d [%s] %d/%d isolated | next round ETA: %s",
		t.last.Precision*2, progressBar(t.Progress(), ProgressBarWidth),
		t.last.Isolated, t.last.Degree, FormatETA(t.NextRoundETA()))
}

// FormatETA formats a duration into a human-readable ETA string.
//
// Parameters:
//   - eta: The duration to format.
//
// Returns:
//   - string: A formatted string like "< 1s", "2m30s", "1h15m".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}

	if eta < time.Second {
		return "< 1s"
	}

	if eta < time.Minute {
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	}

	if eta < time.Hour {
		minutes := int(eta.Minutes())
		seconds := int(eta.Seconds()) % 60
		if seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}

	hours := int(eta.Hours())
	minutes := int(eta.Minutes()) % 60
	if minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}
