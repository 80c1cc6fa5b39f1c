package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/events"
)

// SaveEvent appends a change event to the record_events table.
// Department events are stored with a NULL employee_id.
func (r *Repository) SaveEvent(ctx context.Context, event events.Event) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("save_event").Observe(duration)
	}()
	query := `
		INSERT INTO record_events (kind, employee_id, department, occurred_at)
		VALUES ($1, NULLIF($2, ''), $3, $4);
	`

	_, err := r.db.Exec(ctx, query, string(event.Kind), event.EmployeeID, event.Department, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}
