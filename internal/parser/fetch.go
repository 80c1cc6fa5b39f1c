package parser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/UnknownOlympus/hestia/internal/client"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// ErrFetchRoster is returned when a roster URL does not answer with 200 OK.
var ErrFetchRoster = errors.New("failed to fetch roster")

// IsRosterURL reports whether source names an http or https roster rather than a file.
func IsRosterURL(source string) bool {
	parsed, err := url.Parse(source)
	if err != nil {
		return false
	}

	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// FetchRoster downloads an HTML roster and parses it with ParseRoster.
func FetchRoster(
	ctx context.Context,
	httpClient *http.Client,
	rosterURL string,
	metric *metrics.Metrics,
) ([]models.Employee, error) {
	resp, err := getHTMLResponse(ctx, httpClient, rosterURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return ParseRoster(resp.Body, metric)
}

func getHTMLResponse(ctx context.Context, httpClient *http.Client, destURL string) (*http.Response, error) {
	reqURL, err := url.Parse(destURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse destination URL %s: %w", destURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", reqURL.String(), err)
	}

	req.Header.Set("User-Agent", client.UserAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", destURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w, received status code: %d", ErrFetchRoster, resp.StatusCode)
	}

	return resp, nil
}
