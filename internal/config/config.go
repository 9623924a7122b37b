package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"ads-report-service/internal/model"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort     string
	AppMode      string
	FiberPrefork bool

	// Report engine.
	CacheTTL    time.Duration
	DemoMode    bool
	DemoSeed    int64
	DemoCPLMin  float64
	DemoCPLMax  float64
	ColumnMap   model.ColumnMapping
	HTTPTimeout time.Duration

	// Google Sheets (lead source).
	SheetsCredentialsFile string
	SpreadsheetID         string
	SheetName             string

	// Meta Ads.
	MetaAccessToken string
	MetaAdAccountID string

	// Google Ads.
	GoogleAdsDeveloperToken string
	GoogleAdsClientID       string
	GoogleAdsClientSecret   string
	GoogleAdsRefreshToken   string
	GoogleAdsCustomerID     string

	// Snapshot archive.
	ArchiveEnabled   bool
	ClickHouseAddr   string
	ClickHouseDB     string
	ClickHouseUser   string
	ClickHousePass   string
	WorkerBufferSize int
	WorkerBatchSize  int
	WorkerFlushEvery time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", ":8080"),
		AppMode:      strings.ToLower(getEnv("APP_MODE", "dev")),
		FiberPrefork: parseBoolEnv("FIBER_PREFORK", false),

		CacheTTL:    parseDurationEnv("REPORT_CACHE_TTL", 5*time.Minute),
		DemoMode:    parseBoolEnv("DEMO_MODE", false),
		DemoSeed:    parseInt64Env("DEMO_SEED", 42),
		DemoCPLMin:  parseFloatEnv("DEMO_CPL_MIN", 20),
		DemoCPLMax:  parseFloatEnv("DEMO_CPL_MAX", 80),
		ColumnMap:   loadColumnMapping(),
		HTTPTimeout: parseDurationEnv("SOURCE_HTTP_TIMEOUT", 30*time.Second),

		SheetsCredentialsFile: getEnv("GOOGLE_SHEETS_CREDENTIALS_FILE", "credentials.json"),
		SpreadsheetID:         os.Getenv("SPREADSHEET_ID"),
		SheetName:             getEnv("SHEET_NAME_LEADS", "Leads"),

		MetaAccessToken: os.Getenv("META_ACCESS_TOKEN"),
		MetaAdAccountID: os.Getenv("META_AD_ACCOUNT_ID"),

		GoogleAdsDeveloperToken: os.Getenv("GOOGLE_ADS_DEVELOPER_TOKEN"),
		GoogleAdsClientID:       os.Getenv("GOOGLE_ADS_CLIENT_ID"),
		GoogleAdsClientSecret:   os.Getenv("GOOGLE_ADS_CLIENT_SECRET"),
		GoogleAdsRefreshToken:   os.Getenv("GOOGLE_ADS_REFRESH_TOKEN"),
		GoogleAdsCustomerID:     strings.ReplaceAll(os.Getenv("GOOGLE_ADS_CUSTOMER_ID"), "-", ""),

		ClickHouseAddr:   os.Getenv("CLICKHOUSE_ADDR"),
		ClickHouseDB:     getEnv("CLICKHOUSE_DB", "default"),
		ClickHouseUser:   getEnv("CLICKHOUSE_USER", "default"),
		ClickHousePass:   os.Getenv("CLICKHOUSE_PASSWORD"),
		WorkerBufferSize: parseIntEnv("WORKER_BUFFER_SIZE", 1024),
		WorkerBatchSize:  parseIntEnv("WORKER_BATCH_SIZE", 100),
		WorkerFlushEvery: parseDurationEnv("WORKER_FLUSH_EVERY", 10*time.Second),
	}
	cfg.ArchiveEnabled = parseBoolEnv("ARCHIVE_ENABLED", cfg.ClickHouseAddr != "")

	// The Meta API requires the account id prefix.
	if cfg.MetaAdAccountID != "" && !strings.HasPrefix(cfg.MetaAdAccountID, "act_") {
		cfg.MetaAdAccountID = "act_" + cfg.MetaAdAccountID
	}

	return cfg, nil
}

// MetaConfigured reports whether the Meta stats source has usable credentials.
func (c *Config) MetaConfigured() bool {
	return c.MetaAccessToken != "" && c.MetaAdAccountID != ""
}

// GoogleAdsConfigured reports whether the Google Ads stats source has usable
// credentials.
func (c *Config) GoogleAdsConfigured() bool {
	return c.GoogleAdsDeveloperToken != "" && c.GoogleAdsClientID != "" &&
		c.GoogleAdsClientSecret != "" && c.GoogleAdsRefreshToken != "" &&
		c.GoogleAdsCustomerID != ""
}

// SheetsConfigured reports whether the lead spreadsheet source has usable
// credentials.
func (c *Config) SheetsConfigured() bool {
	return c.SpreadsheetID != ""
}

// loadColumnMapping resolves the spreadsheet header for each canonical lead
// field. Defaults match the sheet this dashboard was built for; each header
// can be overridden independently.
func loadColumnMapping() model.ColumnMapping {
	return model.ColumnMapping{
		model.FieldTimestamp:     getEnv("LEADS_COL_TIMESTAMP", "DATA / HORA"),
		model.FieldSourceChannel: getEnv("LEADS_COL_SOURCE_CHANNEL", "ORIGEM"),
		model.FieldCampaignName:  getEnv("LEADS_COL_CAMPAIGN", "CAMPANHA"),
		model.FieldAdSetName:     getEnv("LEADS_COL_AD_SET", "CONJUNTO DE ANÚNCIOS"),
		model.FieldCreativeName:  getEnv("LEADS_COL_CREATIVE", "CRIATIVO"),
		model.FieldContactName:   getEnv("LEADS_COL_NAME", "NOME"),
		model.FieldEmail:         getEnv("LEADS_COL_EMAIL", "E-MAIL"),
		model.FieldPhone:         getEnv("LEADS_COL_PHONE", "TELEFONE"),
		model.FieldExternalID:    getEnv("LEADS_COL_EXTERNAL_ID", "ID DO FACEBOOK"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseInt64Env(key string, fallback int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloatEnv(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
