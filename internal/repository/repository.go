package repository

import (
	"context"

	"github.com/UnknownOlympus/hestia/internal/events"
	"github.com/UnknownOlympus/hestia/internal/metrics"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// JournalRepoIface represents the interface for appending change events to the journal.
type JournalRepoIface interface {
	SaveEvent(ctx context.Context, event events.Event) error
}

func NewJournalRepository(db Database, m *metrics.Metrics) JournalRepoIface {
	return &Repository{db: db, metrics: m}
}
