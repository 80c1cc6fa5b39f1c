package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/hestia/internal/events"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const saveEventQuery = `
		INSERT INTO record_events (kind, employee_id, department, occurred_at)
		VALUES ($1, NULLIF($2, ''), $3, $4);
	`

var occurredAt = time.Date(2025, time.May, 4, 12, 0, 0, 0, time.UTC)

func TestSaveEvent_Success(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	reg := prometheus.NewRegistry()
	repo := repository.NewJournalRepository(mock, metrics.NewMetrics(reg))

	mock.ExpectExec(regexp.QuoteMeta(saveEventQuery)).
		WithArgs("employee_added", "E1", "Eng", occurredAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.SaveEvent(context.Background(), events.Event{
		Kind:       events.KindEmployeeAdded,
		EmployeeID: "E1",
		Department: "Eng",
		OccurredAt: occurredAt,
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	count, err := testutil.GatherAndCount(reg, "hestia_db_query_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveEvent_DepartmentEvent(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := repository.NewJournalRepository(mock, metrics.NewMetrics(prometheus.NewRegistry()))

	mock.ExpectExec(regexp.QuoteMeta(saveEventQuery)).
		WithArgs("department_removed", "", "QA", occurredAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.SaveEvent(context.Background(), events.Event{
		Kind:       events.KindDepartmentRemoved,
		Department: "QA",
		OccurredAt: occurredAt,
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEvent_QueryError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := repository.NewJournalRepository(mock, metrics.NewMetrics(prometheus.NewRegistry()))

	mock.ExpectExec(regexp.QuoteMeta(saveEventQuery)).
		WithArgs("employee_removed", "E2", "QA", occurredAt).
		WillReturnError(assert.AnError)

	err = repo.SaveEvent(context.Background(), events.Event{
		Kind:       events.KindEmployeeRemoved,
		EmployeeID: "E2",
		Department: "QA",
		OccurredAt: occurredAt,
	})

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "failed to save event: "+assert.AnError.Error(), err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

type execOnlyDatabase struct {
	statements []string
}

func (d *execOnlyDatabase) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	d.statements = append(d.statements, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestSaveEvent_ExecOnlyDatabase(t *testing.T) {
	t.Parallel()

	db := &execOnlyDatabase{}
	repo := repository.NewJournalRepository(db, metrics.NewMetrics(prometheus.NewRegistry()))

	err := repo.SaveEvent(context.Background(), events.Event{
		Kind:       events.KindDepartmentAdded,
		Department: "Eng",
		OccurredAt: occurredAt,
	})

	require.NoError(t, err)
	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0], "INSERT INTO record_events")
}
