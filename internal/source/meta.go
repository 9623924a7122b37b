package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ads-report-service/internal/model"
)

const defaultMetaBaseURL = "https://graph.facebook.com/v21.0"

// MetaSource pulls daily ad-set level insights from the Meta Graph API.
type MetaSource struct {
	client      HTTPClient
	accessToken string
	adAccountID string
	baseURL     string
}

// NewMeta builds a MetaSource for the given ad account. The account id must
// already carry the act_ prefix (config normalizes it).
func NewMeta(client HTTPClient, accessToken, adAccountID string) *MetaSource {
	return &MetaSource{
		client:      client,
		accessToken: accessToken,
		adAccountID: adAccountID,
		baseURL:     defaultMetaBaseURL,
	}
}

func (s *MetaSource) Platform() model.Platform { return model.PlatformMeta }

type metaInsight struct {
	CampaignName string `json:"campaign_name"`
	AdsetName    string `json:"adset_name"`
	DateStart    string `json:"date_start"`
	Spend        string `json:"spend"`
	Impressions  string `json:"impressions"`
	Clicks       string `json:"clicks"`
}

type metaInsightsResponse struct {
	Data   []metaInsight `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// FetchStats pages through /{account}/insights at ad-set level with daily
// increments and emits canonical raw records.
func (s *MetaSource) FetchStats(ctx context.Context, dateRange model.DateRange) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("access_token", s.accessToken)
	params.Set("level", "adset")
	params.Set("fields", "campaign_name,adset_name,spend,impressions,clicks")
	params.Set("time_range", fmt.Sprintf(`{"since":%q,"until":%q}`,
		model.Day(dateRange.Start).Format("2006-01-02"),
		model.Day(dateRange.End).Format("2006-01-02")))
	params.Set("time_increment", "1")
	params.Set("limit", "500")

	next := fmt.Sprintf("%s/%s/insights?%s", s.baseURL, s.adAccountID, params.Encode())

	var records []map[string]any
	for next != "" {
		pageURL := next
		var page metaInsightsResponse
		err := doJSON(ctx, s.client, func() (*http.Request, error) {
			return http.NewRequest(http.MethodGet, pageURL, nil)
		}, &page)
		if err != nil {
			return nil, &FetchError{Source: "meta", Err: err}
		}
		if page.Error != nil {
			return nil, &FetchError{Source: "meta", Err: fmt.Errorf("api error %d: %s", page.Error.Code, page.Error.Message)}
		}

		for _, row := range page.Data {
			records = append(records, map[string]any{
				"campaign_name": row.CampaignName,
				"ad_set_name":   row.AdsetName,
				"date":          row.DateStart,
				"spend":         row.Spend,
				"impressions":   row.Impressions,
				"clicks":        row.Clicks,
			})
		}
		next = page.Paging.Next
	}
	return records, nil
}
