package exports

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// SheetsSyncer переносит таблицу выгрузки на лист Google таблицы.
type SheetsSyncer struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

// NewSheetsSyncerFromFile авторизуется по JSON ключу сервисного аккаунта.
func NewSheetsSyncerFromFile(ctx context.Context, serviceAccountJSONPath, spreadsheetID string) (*SheetsSyncer, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	return NewSheetsSyncer(ctx, spreadsheetID,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
}

func NewSheetsSyncer(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsSyncer, error) {
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsSyncer{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (s *SheetsSyncer) SpreadsheetID() string { return s.spreadsheetID }

// Sync заменяет содержимое листа t.SheetName заголовком и строками t и создает
// лист, если его нет. Возвращает число записанных строк данных.
func (s *SheetsSyncer) Sync(ctx context.Context, t Table) (int, error) {
	if err := s.ensureSheet(ctx, t.SheetName); err != nil {
		return 0, err
	}

	if _, err := s.srv.Spreadsheets.Values.Clear(s.spreadsheetID, t.SheetName+"!A:Z", &sheetsv4.ClearValuesRequest{}).
		Context(ctx).
		Do(); err != nil {
		return 0, fmt.Errorf("clear sheet %s: %w", t.SheetName, err)
	}

	values := make([][]interface{}, 0, len(t.Rows)+1)
	values = append(values, toRow(t.Header))
	for _, r := range t.Rows {
		values = append(values, toRow(r))
	}
	vr := &sheetsv4.ValueRange{Values: values}
	if _, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, t.SheetName+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return 0, fmt.Errorf("update sheet %s: %w", t.SheetName, err)
	}
	return len(t.Rows), nil
}

func (s *SheetsSyncer) ensureSheet(ctx context.Context, title string) error {
	ss, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return nil
		}
	}

	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{Properties: &sheetsv4.SheetProperties{Title: title}},
		}},
	}
	if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", title, err)
	}
	return nil
}

func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
