package model

import "time"

// ReportSnapshot is one archived campaign row from a live report, persisted
// so the dashboard keeps history across cache expiries.
type ReportSnapshot struct {
	ID          string    `json:"id"`
	CapturedAt  time.Time `json:"captured_at"`
	RangeStart  time.Time `json:"range_start"`
	RangeEnd    time.Time `json:"range_end"`
	GroupKey    string    `json:"group_key"`
	Platform    string    `json:"platform"`
	Spend       float64   `json:"spend"`
	Leads       int64     `json:"leads"`
	Clicks      int64     `json:"clicks"`
	Impressions int64     `json:"impressions"`
}
