package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
)

type DBPinger interface {
	Ping(ctx context.Context) error
}

// ConsistencyChecker reports whether the in-memory records agree with themselves.
type ConsistencyChecker interface {
	Verify() error
}

const pingTimeout = 2 * time.Second

type HealthChecker struct {
	db      DBPinger
	records ConsistencyChecker
	log     *slog.Logger
}

// NewHealthChecker returns a /healthz handler. A nil db reports the journal as disabled.
func NewHealthChecker(db DBPinger, records ConsistencyChecker, log *slog.Logger) *HealthChecker {
	return &HealthChecker{
		db:      db,
		records: records,
		log:     log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	var err error
	status := make(map[string]string)
	overallStatus := http.StatusOK

	switch {
	case h.db == nil:
		status["journal"] = "disabled"
	default:
		ctx, cancel := context.WithTimeout(req.Context(), pingTimeout)
		err = h.db.Ping(ctx)
		cancel()
		if err != nil {
			status["journal"] = "unavailable"
			overallStatus = http.StatusServiceUnavailable
			h.log.WarnContext(req.Context(), "Health check failed: journal ping", sl.Err(err))
		} else {
			status["journal"] = "ok"
		}
	}

	if err = h.records.Verify(); err != nil {
		status["records"] = "inconsistent"
		overallStatus = http.StatusServiceUnavailable
		h.log.ErrorContext(req.Context(), "Health check failed: records", sl.Err(err))
	} else {
		status["records"] = "ok"
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err = json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", sl.Err(err))
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
