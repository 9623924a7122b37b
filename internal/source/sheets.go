package source

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"ads-report-service/internal/model"
)

// SheetsSource reads lead rows from the configured Google Sheets worksheet
// using a service account. The sheet has no server-side date filter, so the
// whole sheet is read and filtering happens in the aggregator.
type SheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheets authenticates against the Sheets API with the service-account
// credentials file.
func NewSheets(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*SheetsSource, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, &FetchError{Source: "sheets", Err: err}
	}
	return &SheetsSource{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// FetchLeads returns every data row as a header-keyed map. The first row is
// taken as the header row, matching how the form integration writes the
// sheet.
func (s *SheetsSource) FetchLeads(ctx context.Context, _ model.DateRange) ([]map[string]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, &FetchError{Source: "sheets", Err: err}
	}
	if len(resp.Values) == 0 {
		return []map[string]string{}, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, h := range resp.Values[0] {
		headers[i] = fmt.Sprintf("%v", h)
	}

	rows := make([]map[string]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(raw) {
				row[header] = fmt.Sprintf("%v", raw[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
