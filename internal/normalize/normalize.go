package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ads-report-service/internal/model"
)

// SchemaMismatchError means a required canonical field has no resolvable
// source column. It fails the whole normalization call: partial results for
// a structurally broken source would be misleading.
type SchemaMismatchError struct {
	Source string
	Field  string
	Column string
}

func (e *SchemaMismatchError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema mismatch in %s: required field %q has no column %q", e.Source, e.Field, e.Column)
	}
	return fmt.Sprintf("schema mismatch in %s: required field %q is not mapped", e.Source, e.Field)
}

// timestampLayouts is the whitelist of accepted date/time formats: ISO-8601
// with and without time, plus the two slash-delimited locales the sheet has
// been seen to contain. Day-first is tried before month-first; the source
// spreadsheet is pt-BR.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"01/02/2006",
}

// ParseTimestamp parses a raw date/time string against the layout whitelist.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}

// Leads converts raw spreadsheet rows into canonical LeadRecords using the
// column mapping. Rows with unparseable timestamps are dropped and tallied;
// a missing timestamp column fails the whole call.
func Leads(rows []map[string]string, mapping model.ColumnMapping) ([]model.LeadRecord, model.Tally, error) {
	var tally model.Tally

	tsCol, ok := mapping[model.FieldTimestamp]
	if !ok || tsCol == "" {
		return nil, tally, &SchemaMismatchError{Source: "leads", Field: model.FieldTimestamp}
	}
	if len(rows) == 0 {
		return []model.LeadRecord{}, tally, nil
	}
	if _, ok := rows[0][tsCol]; !ok {
		return nil, tally, &SchemaMismatchError{Source: "leads", Field: model.FieldTimestamp, Column: tsCol}
	}

	leads := make([]model.LeadRecord, 0, len(rows))
	for _, row := range rows {
		ts, err := ParseTimestamp(row[tsCol])
		if err != nil {
			tally.RowsDropped++
			continue
		}
		leads = append(leads, model.LeadRecord{
			Timestamp:     ts,
			SourceChannel: cell(row, mapping, model.FieldSourceChannel),
			CampaignName:  cell(row, mapping, model.FieldCampaignName),
			AdSetName:     cell(row, mapping, model.FieldAdSetName),
			CreativeName:  cell(row, mapping, model.FieldCreativeName),
			ContactName:   cell(row, mapping, model.FieldContactName),
			Email:         cell(row, mapping, model.FieldEmail),
			Phone:         cell(row, mapping, model.FieldPhone),
			ExternalID:    cell(row, mapping, model.FieldExternalID),
		})
	}
	return leads, tally, nil
}

// statFields every platform record must carry. Values may still be absent
// per row (tallied); absence from the record shape itself is a mismatch.
var requiredStatFields = []string{"campaign_name", "date", "spend"}

// CampaignStats converts raw platform records into canonical CampaignStats.
// Records use the canonical lowercase keys the source fetchers emit:
// campaign_name, ad_set_name, date, spend, impressions, clicks.
func CampaignStats(records []map[string]any, platform model.Platform) ([]model.CampaignStat, model.Tally, error) {
	var tally model.Tally

	if len(records) == 0 {
		return []model.CampaignStat{}, tally, nil
	}
	for _, field := range requiredStatFields {
		if _, ok := records[0][field]; !ok {
			return nil, tally, &SchemaMismatchError{Source: string(platform), Field: field, Column: field}
		}
	}

	stats := make([]model.CampaignStat, 0, len(records))
	for _, rec := range records {
		date, err := ParseTimestamp(asString(rec["date"]))
		if err != nil {
			tally.RowsDropped++
			continue
		}

		spend, clamped := parseMoney(rec["spend"])
		impressions, c2 := parseCount(rec["impressions"])
		clicks, c3 := parseCount(rec["clicks"])
		tally.ValuesClamped += clamped + c2 + c3

		// Platforms sometimes report clicks above impressions; that is a
		// data-quality warning, not an error.
		if impressions > 0 && clicks > impressions {
			tally.QualityWarnings++
		}

		stats = append(stats, model.CampaignStat{
			Platform:     platform,
			CampaignName: strings.TrimSpace(asString(rec["campaign_name"])),
			AdSetName:    strings.TrimSpace(asString(rec["ad_set_name"])),
			Date:         model.Day(date),
			Spend:        spend,
			Impressions:  impressions,
			Clicks:       clicks,
		})
	}
	return stats, tally, nil
}

func cell(row map[string]string, mapping model.ColumnMapping, field string) string {
	col, ok := mapping[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parseMoney leniently parses a spend value, stripping currency symbols and
// thousands separators. Negative values clamp to zero and count as clamped.
func parseMoney(v any) (float64, int) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(cleanNumeric(val), 64)
		if err != nil {
			return 0, 0
		}
		f = parsed
	default:
		return 0, 0
	}
	if f < 0 {
		return 0, 1
	}
	return f, 0
}

// parseCount parses an integer count with the same leniency as parseMoney.
func parseCount(v any) (int64, int) {
	f, clamped := parseMoney(v)
	return int64(f), clamped
}

// cleanNumeric reduces a formatted number ("R$ 1.234,56", "1,234.56") to a
// plain decimal string.
func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// The later separator is the decimal mark, the other is thousands.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Comma-only: exactly three trailing digits reads as a thousands
		// separator, anything else as a decimal comma.
		if strings.Count(s, ",") > 1 || len(s)-lastComma-1 == 3 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		// Repeated dots can only be thousands separators.
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
