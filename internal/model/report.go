package model

import "time"

// UnattributedKey labels the campaign group for leads that carry no
// resolvable campaign name. It contributes to totals but never to a named
// campaign row.
const UnattributedKey = "Unattributed"

// OverallKey labels the totals row.
const OverallKey = "TOTAL"

// AggregatedMetrics is one row of the report at any grouping level.
// Derived metrics are nil when their denominator is zero: a nil CPL means
// "no leads yet", which is not the same thing as free leads.
type AggregatedMetrics struct {
	GroupKey        string   `json:"group_key"`
	Platform        Platform `json:"platform,omitempty"`
	Spend           float64  `json:"spend"`
	LeadCount       int64    `json:"lead_count"`
	ClickCount      int64    `json:"click_count"`
	ImpressionCount int64    `json:"impression_count"`
	CPL             *float64 `json:"cpl"`
	CTR             *float64 `json:"ctr"`
	CPC             *float64 `json:"cpc"`
	ConversionRate  *float64 `json:"conversion_rate"`
}

// Report is the top-level aggregation result. It is built fresh per
// aggregation call and never mutated afterwards; cache expiry or an explicit
// refresh replaces it wholesale.
type Report struct {
	DateRange   DateRange                      `json:"date_range"`
	Overall     AggregatedMetrics              `json:"overall"`
	ByPlatform  map[Platform]AggregatedMetrics `json:"by_platform"`
	ByCampaign  []AggregatedMetrics            `json:"by_campaign"`
	Leads       []LeadRecord                   `json:"leads"`
	Tally       Tally                          `json:"tally"`
	GeneratedAt time.Time                      `json:"generated_at"`
	IsDemoData  bool                           `json:"is_demo_data"`
}
