package aggregate

import (
	"sort"

	"ads-report-service/internal/model"
)

// Aggregate joins normalized leads and campaign stats over an inclusive date
// range and derives the report metrics at every grouping level. It never
// inspects platform-specific fields: both inputs are already canonical.
//
// Leads join stats at campaign granularity only. Ad-set names on leads are
// carried for display, not used as a join key.
func Aggregate(leads []model.LeadRecord, stats []model.CampaignStat, dateRange model.DateRange) model.Report {
	leads = filterLeads(leads, dateRange)
	stats = filterStats(stats, dateRange)

	overall := model.AggregatedMetrics{GroupKey: model.OverallKey}
	byPlatform := map[model.Platform]*model.AggregatedMetrics{}
	for _, p := range model.Platforms() {
		byPlatform[p] = &model.AggregatedMetrics{GroupKey: string(p), Platform: p}
	}
	byCampaign := map[string]*model.AggregatedMetrics{}

	campaignRow := func(name string) *model.AggregatedMetrics {
		row, ok := byCampaign[name]
		if !ok {
			row = &model.AggregatedMetrics{GroupKey: name}
			byCampaign[name] = row
		}
		return row
	}

	for _, st := range stats {
		overall.Spend += st.Spend
		overall.ClickCount += st.Clicks
		overall.ImpressionCount += st.Impressions

		if p, ok := byPlatform[st.Platform]; ok {
			p.Spend += st.Spend
			p.ClickCount += st.Clicks
			p.ImpressionCount += st.Impressions
		}

		if st.CampaignName != "" {
			row := campaignRow(st.CampaignName)
			row.Spend += st.Spend
			row.ClickCount += st.Clicks
			row.ImpressionCount += st.Impressions
			if row.Platform == "" {
				row.Platform = st.Platform
			}
		}
	}

	for _, lead := range leads {
		overall.LeadCount++

		if platform, ok := model.PlatformForChannel(lead.SourceChannel); ok {
			byPlatform[platform].LeadCount++
		}

		name := lead.CampaignName
		if name == "" {
			name = model.UnattributedKey
		}
		campaignRow(name).LeadCount++
	}

	derive(&overall)
	platformRows := map[model.Platform]model.AggregatedMetrics{}
	for p, row := range byPlatform {
		derive(row)
		platformRows[p] = *row
	}

	campaignRows := make([]model.AggregatedMetrics, 0, len(byCampaign))
	for _, row := range byCampaign {
		derive(row)
		campaignRows = append(campaignRows, *row)
	}
	sort.Slice(campaignRows, func(i, j int) bool {
		if campaignRows[i].Spend != campaignRows[j].Spend {
			return campaignRows[i].Spend > campaignRows[j].Spend
		}
		return campaignRows[i].GroupKey < campaignRows[j].GroupKey
	})

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].Timestamp.Before(leads[j].Timestamp)
	})

	return model.Report{
		DateRange:  dateRange,
		Overall:    overall,
		ByPlatform: platformRows,
		ByCampaign: campaignRows,
		Leads:      leads,
	}
}

// derive fills the computed metrics of a row. Denominator of zero yields nil,
// not zero: "no leads yet" is not "free leads".
func derive(m *model.AggregatedMetrics) {
	if m.LeadCount > 0 {
		m.CPL = round2(m.Spend / float64(m.LeadCount))
	}
	if m.ImpressionCount > 0 {
		m.CTR = round2(float64(m.ClickCount) / float64(m.ImpressionCount) * 100)
	}
	if m.ClickCount > 0 {
		m.CPC = round2(m.Spend / float64(m.ClickCount))
		m.ConversionRate = round2(float64(m.LeadCount) / float64(m.ClickCount) * 100)
	}
}

func filterLeads(leads []model.LeadRecord, dateRange model.DateRange) []model.LeadRecord {
	out := make([]model.LeadRecord, 0, len(leads))
	for _, lead := range leads {
		if dateRange.Contains(lead.Timestamp) {
			out = append(out, lead)
		}
	}
	return out
}

func filterStats(stats []model.CampaignStat, dateRange model.DateRange) []model.CampaignStat {
	out := make([]model.CampaignStat, 0, len(stats))
	for _, st := range stats {
		if dateRange.Contains(st.Date) {
			out = append(out, st)
		}
	}
	return out
}

func round2(f float64) *float64 {
	v := float64(int64(f*100+0.5)) / 100
	return &v
}
