package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ads-report-service/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPPort)
	require.Equal(t, "dev", cfg.AppMode)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.Equal(t, int64(42), cfg.DemoSeed)
	require.Equal(t, 20.0, cfg.DemoCPLMin)
	require.Equal(t, 80.0, cfg.DemoCPLMax)
	require.Equal(t, "Leads", cfg.SheetName)
	require.False(t, cfg.ArchiveEnabled)
	require.Equal(t, "DATA / HORA", cfg.ColumnMap[model.FieldTimestamp])
	require.Equal(t, "CAMPANHA", cfg.ColumnMap[model.FieldCampaignName])
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9000")
	t.Setenv("APP_MODE", "PROD")
	t.Setenv("REPORT_CACHE_TTL", "90s")
	t.Setenv("DEMO_SEED", "7")
	t.Setenv("LEADS_COL_TIMESTAMP", "Submitted At")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTPPort)
	require.Equal(t, "prod", cfg.AppMode)
	require.Equal(t, 90*time.Second, cfg.CacheTTL)
	require.Equal(t, int64(7), cfg.DemoSeed)
	require.Equal(t, "Submitted At", cfg.ColumnMap[model.FieldTimestamp])
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REPORT_CACHE_TTL", "soon")
	t.Setenv("DEMO_SEED", "abc")
	t.Setenv("DEMO_MODE", "maybe")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.Equal(t, int64(42), cfg.DemoSeed)
	require.False(t, cfg.DemoMode)
}

func TestLoad_NormalizesAccountIDs(t *testing.T) {
	t.Setenv("META_AD_ACCOUNT_ID", "12345")
	t.Setenv("GOOGLE_ADS_CUSTOMER_ID", "123-456-7890")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "act_12345", cfg.MetaAdAccountID)
	require.Equal(t, "1234567890", cfg.GoogleAdsCustomerID)

	t.Setenv("META_AD_ACCOUNT_ID", "act_999")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "act_999", cfg.MetaAdAccountID)
}

func TestLoad_ArchiveFollowsClickHouseAddr(t *testing.T) {
	t.Setenv("CLICKHOUSE_ADDR", "localhost:9000")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.ArchiveEnabled)

	t.Setenv("ARCHIVE_ENABLED", "false")
	cfg, err = Load()
	require.NoError(t, err)
	require.False(t, cfg.ArchiveEnabled)
}

func TestSourceConfiguredHelpers(t *testing.T) {
	cfg := &Config{}
	require.False(t, cfg.MetaConfigured())
	require.False(t, cfg.GoogleAdsConfigured())
	require.False(t, cfg.SheetsConfigured())

	cfg.MetaAccessToken = "token"
	cfg.MetaAdAccountID = "act_1"
	require.True(t, cfg.MetaConfigured())

	cfg.SpreadsheetID = "sheet-id"
	require.True(t, cfg.SheetsConfigured())

	cfg.GoogleAdsDeveloperToken = "dev"
	cfg.GoogleAdsClientID = "id"
	cfg.GoogleAdsClientSecret = "secret"
	cfg.GoogleAdsRefreshToken = "refresh"
	require.False(t, cfg.GoogleAdsConfigured())
	cfg.GoogleAdsCustomerID = "123"
	require.True(t, cfg.GoogleAdsConfigured())
}
