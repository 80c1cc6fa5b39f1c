package client

import (
	"log/slog"
	"net/http"
	"time"
)

// UserAgent identifies roster downloads.
const UserAgent = "hestia-roster-import/1.0"

// CreateHTTPClient initializes an HTTP client for roster downloads. Redirects are followed
// and logged.
func CreateHTTPClient(log *slog.Logger, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}
}
