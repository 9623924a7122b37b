package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ads-report-service/internal/model"
)

var testMapping = model.ColumnMapping{
	model.FieldTimestamp:     "DATA / HORA",
	model.FieldSourceChannel: "ORIGEM",
	model.FieldCampaignName:  "CAMPANHA",
	model.FieldAdSetName:     "CONJUNTO DE ANÚNCIOS",
	model.FieldContactName:   "NOME",
	model.FieldEmail:         "E-MAIL",
}

func TestLeads_MapsColumns(t *testing.T) {
	rows := []map[string]string{
		{
			"DATA / HORA":          "27/06/2024 14:30",
			"ORIGEM":               "Facebook",
			"CAMPANHA":             " Campanha X ",
			"CONJUNTO DE ANÚNCIOS": "Lookalike 1%",
			"NOME":                 "Ana Souza",
			"E-MAIL":               "ana@example.com",
		},
	}

	leads, tally, err := Leads(rows, testMapping)
	require.NoError(t, err)
	require.Equal(t, model.Tally{}, tally)
	require.Len(t, leads, 1)

	lead := leads[0]
	require.Equal(t, time.Date(2024, 6, 27, 14, 30, 0, 0, time.UTC), lead.Timestamp)
	require.Equal(t, "Facebook", lead.SourceChannel)
	require.Equal(t, "Campanha X", lead.CampaignName)
	require.Equal(t, "Lookalike 1%", lead.AdSetName)
	require.Equal(t, "ana@example.com", lead.Email)
}

func TestLeads_DropsUnparseableTimestamps(t *testing.T) {
	rows := []map[string]string{
		{"DATA / HORA": "2024-06-27", "CAMPANHA": "X"},
		{"DATA / HORA": "not a date", "CAMPANHA": "Y"},
		{"DATA / HORA": "", "CAMPANHA": "Z"},
	}

	leads, tally, err := Leads(rows, testMapping)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.Equal(t, 2, tally.RowsDropped)
}

func TestLeads_SchemaMismatch(t *testing.T) {
	rows := []map[string]string{{"Carimbo": "2024-06-27"}}

	_, _, err := Leads(rows, testMapping)
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, model.FieldTimestamp, mismatch.Field)

	// Mapping without the required field fails before looking at rows.
	_, _, err = Leads(rows, model.ColumnMapping{model.FieldEmail: "E-MAIL"})
	require.ErrorAs(t, err, &mismatch)
}

func TestLeads_EmptyInput(t *testing.T) {
	leads, tally, err := Leads(nil, testMapping)
	require.NoError(t, err)
	require.Empty(t, leads)
	require.Equal(t, model.Tally{}, tally)
}

func TestCampaignStats_Normalizes(t *testing.T) {
	records := []map[string]any{
		{
			"campaign_name": " Campanha X ",
			"ad_set_name":   "Lookalike 1%",
			"date":          "2024-06-27",
			"spend":         "R$ 1.234,56",
			"impressions":   "10,000",
			"clicks":        "120",
		},
	}

	stats, tally, err := CampaignStats(records, model.PlatformMeta)
	require.NoError(t, err)
	require.Equal(t, model.Tally{}, tally)
	require.Len(t, stats, 1)

	st := stats[0]
	require.Equal(t, model.PlatformMeta, st.Platform)
	require.Equal(t, "Campanha X", st.CampaignName)
	require.Equal(t, 1234.56, st.Spend)
	require.Equal(t, int64(10000), st.Impressions)
	require.Equal(t, int64(120), st.Clicks)
}

func TestCampaignStats_ClampsNegatives(t *testing.T) {
	records := []map[string]any{
		{"campaign_name": "X", "date": "2024-06-27", "spend": -12.5, "impressions": "100", "clicks": -3},
	}

	stats, tally, err := CampaignStats(records, model.PlatformGoogle)
	require.NoError(t, err)
	require.Equal(t, 0.0, stats[0].Spend)
	require.Equal(t, int64(0), stats[0].Clicks)
	require.Equal(t, 2, tally.ValuesClamped)
}

func TestCampaignStats_QualityWarningOnClicksAboveImpressions(t *testing.T) {
	records := []map[string]any{
		{"campaign_name": "X", "date": "2024-06-27", "spend": 10.0, "impressions": "50", "clicks": "80"},
	}

	stats, tally, err := CampaignStats(records, model.PlatformMeta)
	require.NoError(t, err)
	// Inconsistent platform data passes through, flagged.
	require.Equal(t, int64(80), stats[0].Clicks)
	require.Equal(t, 1, tally.QualityWarnings)
}

func TestCampaignStats_DropsBadDates(t *testing.T) {
	records := []map[string]any{
		{"campaign_name": "X", "date": "??", "spend": 1.0},
		{"campaign_name": "X", "date": "2024-06-27", "spend": 1.0},
	}

	stats, tally, err := CampaignStats(records, model.PlatformMeta)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, 1, tally.RowsDropped)
}

func TestCampaignStats_SchemaMismatch(t *testing.T) {
	records := []map[string]any{{"name": "X", "cost": 1.0}}

	_, _, err := CampaignStats(records, model.PlatformGoogle)
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, string(model.PlatformGoogle), mismatch.Source)
}

func TestParseTimestamp_Whitelist(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-06-27T14:30:05Z", time.Date(2024, 6, 27, 14, 30, 5, 0, time.UTC)},
		{"2024-06-27T14:30:05", time.Date(2024, 6, 27, 14, 30, 5, 0, time.UTC)},
		{"2024-06-27 14:30:05", time.Date(2024, 6, 27, 14, 30, 5, 0, time.UTC)},
		{"2024-06-27", time.Date(2024, 6, 27, 0, 0, 0, 0, time.UTC)},
		{"27/06/2024 14:30", time.Date(2024, 6, 27, 14, 30, 0, 0, time.UTC)},
		{"27/06/2024", time.Date(2024, 6, 27, 0, 0, 0, 0, time.UTC)},
		// Only valid month-first: falls through to the second locale.
		{"06/27/2024", time.Date(2024, 6, 27, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.raw)
		require.NoError(t, err, tt.raw)
		require.Equal(t, tt.want, got, tt.raw)
	}

	_, err := ParseTimestamp("June 27th")
	require.Error(t, err)
}

func TestCleanNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R$ 1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"$1,234", "1234"},
		{"12,5", "12.5"},
		{"1.000.000", "1000000"},
		{" 42 ", "42"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, cleanNumeric(tt.in), tt.in)
	}
}
