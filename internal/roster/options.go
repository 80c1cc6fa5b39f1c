package roster

import (
	"log/slog"
	"time"

	"github.com/UnknownOlympus/hestia/internal/events"
	"github.com/UnknownOlympus/hestia/internal/metrics"
)

// Option configures a Company.
type Option func(*Company)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Company) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Company) {
		c.metrics = m
	}
}

// WithDispatcher publishes a change event after every committed mutation.
func WithDispatcher(d events.Dispatcher) Option {
	return func(c *Company) {
		c.dispatcher = d
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Company) {
		if now != nil {
			c.now = now
		}
	}
}
