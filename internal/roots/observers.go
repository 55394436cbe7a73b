package roots

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver forwards round events to a channel, for UI consumers.
type ChannelObserver struct {
	channel chan<- RoundEvent
}

// NewChannelObserver creates an observer that sends events to ch. The
// channel should be buffered; events are dropped when it is full.
func NewChannelObserver(ch chan<- RoundEvent) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// OnRound implements RoundObserver with a non-blocking send.
func (o *ChannelObserver) OnRound(event RoundEvent) {
	if o.channel == nil {
		return
	}
	select {
	case o.channel <- event:
	default:
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs every round at debug level using zerolog.
type LoggingObserver struct {
	logger zerolog.Logger
}

// NewLoggingObserver creates an observer that logs to logger.
func NewLoggingObserver(logger zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnRound implements RoundObserver.
func (o *LoggingObserver) OnRound(event RoundEvent) {
	o.logger.Debug().
		Int("round", event.Round).
		Uint("prec", event.Precision).
		Int("isolated", event.Isolated).
		Int("degree", event.Degree).
		Str("outcome", string(event.Outcome)).
		Dur("elapsed", event.Elapsed).
		Msg("precision round")
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	// Registered once globally to avoid duplicate registration errors.
	roundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polyroots_rounds_total",
			Help: "The total number of precision rounds, by outcome",
		},
		[]string{"outcome"},
	)
	workingPrecision = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "polyroots_working_precision_bits",
			Help: "Working precision of the most recent precision round",
		},
	)
	roundDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "polyroots_round_duration_seconds",
			Help:    "The duration of precision rounds in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)
)

// MetricsObserver exports round events to Prometheus.
type MetricsObserver struct{}

// NewMetricsObserver creates an observer that updates Prometheus metrics.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnRound implements RoundObserver.
func (o *MetricsObserver) OnRound(event RoundEvent) {
	roundsTotal.WithLabelValues(string(event.Outcome)).Inc()
	workingPrecision.Set(float64(event.Precision))
	roundDuration.Observe(event.Elapsed.Seconds())
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer (Null Object Pattern)
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver discards all events.
type NoOpObserver struct{}

// OnRound implements RoundObserver by doing nothing.
func (NoOpObserver) OnRound(RoundEvent) {}
