package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Reader reads whole sheets through the Sheets v4 values API. It only needs
// an API key, so it keeps working when the script endpoint is down.
type Reader struct {
	service       *gsheets.Service
	spreadsheetID string
}

func NewReader(ctx context.Context, spreadsheetID, apiKey string, opts ...option.ClientOption) (*Reader, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is not set")
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	clientOpts = append(clientOpts, opts...)

	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Reader{
		service:       svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Rows returns all values of the sheet, header row included.
func (r *Reader) Rows(ctx context.Context, sheet string) ([][]interface{}, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return resp.Values, nil
}
