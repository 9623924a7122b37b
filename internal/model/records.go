package model

import "time"

// Platform identifies the advertising platform a stat or lead came from.
type Platform string

const (
	PlatformMeta   Platform = "meta"
	PlatformGoogle Platform = "google"
)

// Platforms lists every supported platform in report order.
func Platforms() []Platform {
	return []Platform{PlatformMeta, PlatformGoogle}
}

// DateRange is an inclusive day range. Times are compared at day
// granularity in UTC.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

// Days returns the number of days covered by the range, minimum 1.
func (r DateRange) Days() int {
	n := int(Day(r.End).Sub(Day(r.Start)).Hours()/24) + 1
	if n < 1 {
		return 1
	}
	return n
}

// Day truncates a timestamp to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Canonical lead field names resolved through the column mapping.
const (
	FieldTimestamp     = "timestamp"
	FieldSourceChannel = "source_channel"
	FieldCampaignName  = "campaign_name"
	FieldAdSetName     = "ad_set_name"
	FieldCreativeName  = "creative_name"
	FieldContactName   = "contact_name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldExternalID    = "external_id"
)

// ColumnMapping resolves canonical lead fields to the column headers the
// spreadsheet actually uses.
type ColumnMapping map[string]string

// LeadRecord is one captured lead in canonical shape.
type LeadRecord struct {
	Timestamp     time.Time `json:"timestamp"`
	SourceChannel string    `json:"source_channel"`
	CampaignName  string    `json:"campaign_name,omitempty"`
	AdSetName     string    `json:"ad_set_name,omitempty"`
	CreativeName  string    `json:"creative_name,omitempty"`
	ContactName   string    `json:"contact_name,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	ExternalID    string    `json:"external_id,omitempty"`
}

// CampaignStat is one (campaign, ad-set, day) spend/engagement observation.
// AdSetName is empty for platforms that report at campaign granularity only.
type CampaignStat struct {
	Platform     Platform  `json:"platform"`
	CampaignName string    `json:"campaign_name"`
	AdSetName    string    `json:"ad_set_name,omitempty"`
	Date         time.Time `json:"date"`
	Spend        float64   `json:"spend"`
	Impressions  int64     `json:"impressions"`
	Clicks       int64     `json:"clicks"`
}

// Tally accumulates recoverable per-row issues found during normalization.
// These are observability counters, never failures.
type Tally struct {
	RowsDropped     int `json:"rows_dropped"`
	ValuesClamped   int `json:"values_clamped"`
	QualityWarnings int `json:"quality_warnings"`
}

// Add merges another tally into this one.
func (t *Tally) Add(other Tally) {
	t.RowsDropped += other.RowsDropped
	t.ValuesClamped += other.ValuesClamped
	t.QualityWarnings += other.QualityWarnings
}
