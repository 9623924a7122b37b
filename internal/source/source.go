// Package source holds the live collaborators the report engine fetches raw
// data from. Each fetcher returns raw row maps; normalization into canonical
// records happens in the core, never here.
package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ads-report-service/internal/model"
)

// FetchError wraps any failure of a live fetch. The facade treats it as a
// whole-source failure and falls back to synthetic data.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// LeadSource fetches raw lead rows keyed by spreadsheet column header.
type LeadSource interface {
	FetchLeads(ctx context.Context, dateRange model.DateRange) ([]map[string]string, error)
}

// StatsSource fetches raw campaign stat records for one advertising
// platform, keyed by the canonical stat field names.
type StatsSource interface {
	Platform() model.Platform
	FetchStats(ctx context.Context, dateRange model.DateRange) ([]map[string]any, error)
}

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns the default transport with a hard timeout. Timeouts
// are this layer's responsibility; the core treats a timed-out fetch as an
// ordinary fetch failure.
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}
