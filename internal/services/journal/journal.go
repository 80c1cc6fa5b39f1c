package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/hestia/internal/events"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

// Journal appends every committed change to an audit trail. It is never read back; the
// in-memory records stay authoritative when a write fails.
type Journal struct {
	log     *slog.Logger
	repo    repository.JournalRepoIface
	metrics *metrics.Metrics
	timeout time.Duration
}

func NewJournal(log *slog.Logger, repo repository.JournalRepoIface, m *metrics.Metrics, timeout time.Duration) *Journal {
	return &Journal{log: log, repo: repo, metrics: m, timeout: timeout}
}

func (j *Journal) initLogger(opn string) *slog.Logger {
	return j.log.With(
		slog.String("op", opn),
		slog.String("division", "journal"),
	)
}

// Subscribe registers the journal for every event kind.
func (j *Journal) Subscribe(dispatcher events.Dispatcher) {
	for _, kind := range events.Kinds() {
		dispatcher.Subscribe(kind, j.Record)
	}
}

// Record writes a single event, giving up after the configured timeout.
func (j *Journal) Record(ctx context.Context, event events.Event) error {
	const opn = "Journal.Record"
	log := j.initLogger(opn)

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	if err := j.repo.SaveEvent(ctx, event); err != nil {
		j.metrics.JournalWrites.WithLabelValues(metrics.StatusFailure).Inc()
		log.ErrorContext(ctx, "Failed to journal change",
			slog.String("kind", string(event.Kind)),
			slog.String("department", event.Department),
			sl.Err(err),
		)

		return fmt.Errorf("failed to journal %s: %w", event.Kind, err)
	}

	j.metrics.JournalWrites.WithLabelValues(metrics.StatusSuccess).Inc()
	log.DebugContext(ctx, "Change journaled", slog.String("kind", string(event.Kind)))

	return nil
}
