package sheetstore

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/spec-kit/sheet-ticket-service/internal/config"
)

// GoogleSheetsStore implements TableStore against the Google Sheets API.
type GoogleSheetsStore struct {
	service *sheets.Service
	logger  *zap.Logger
}

// NewGoogleSheetsStore builds an authenticated Sheets client from service
// account credentials on disk.
func NewGoogleSheetsStore(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetsStore, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
		option.WithUserAgent(cfg.ApplicationName),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}
	logger.Info("sheets client initialized",
		zap.String("credentials_path", cfg.CredentialsPath),
		zap.String("application_name", cfg.ApplicationName),
	)
	return &GoogleSheetsStore{service: service, logger: logger}, nil
}

// ReadAllRows fetches every populated row of the tab, header included. Cells
// come back from the API as untyped values and are flattened to strings.
func (s *GoogleSheetsStore) ReadAllRows(ctx context.Context, spreadsheetID, tabName string) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.Get(spreadsheetID, tabName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read rows from tab %q: %w", tabName, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, value := range raw {
			row = append(row, fmt.Sprint(value))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends a single row after the last populated row of the tab.
// RAW keeps the API from reinterpreting cell text.
func (s *GoogleSheetsStore) AppendRow(ctx context.Context, spreadsheetID, tabName string, row []string) error {
	values := make([]interface{}, len(row))
	for i, cellValue := range row {
		values[i] = cellValue
	}
	body := &sheets.ValueRange{Values: [][]interface{}{values}}

	_, err := s.service.Spreadsheets.Values.
		Append(spreadsheetID, tabName+"!A1", body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to tab %q: %w", tabName, err)
	}
	return nil
}

// Ping verifies the spreadsheet is reachable with the configured credentials.
func (s *GoogleSheetsStore) Ping(ctx context.Context, spreadsheetID string) error {
	_, err := s.service.Spreadsheets.Get(spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}
