package timetable

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// SheetsSource reads the timetable from a Google Spreadsheet.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	startCell     string
	endCell       string
}

// NewSheetsSource creates a Sheets-backed timetable source using the provided
// authenticated HTTP client. startCell and endCell are the A1 references of
// the term-start and term-end cells (e.g. "G9" and "H9").
func NewSheetsSource(ctx context.Context, httpClient *http.Client, spreadsheetID, sheetName, startCell, endCell string) (*SheetsSource, error) {
	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsSource{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		startCell:     startCell,
		endCell:       endCell,
	}, nil
}

// Rows fetches the full data range of the timetable sheet. Values are
// requested as FORMATTED_VALUE so cells arrive as the sheet displays them,
// which is what the time parser expects.
func (s *SheetsSource) Rows(ctx context.Context) ([]Row, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", s.sheetName, err)
	}

	return RowsFromValues(resp.Values), nil
}

// TermBounds reads the two designated term-bound cells as display text.
func (s *SheetsSource) TermBounds(ctx context.Context) (string, string, error) {
	resp, err := s.service.Spreadsheets.Values.BatchGet(s.spreadsheetID).
		Ranges(s.cellRange(s.startCell), s.cellRange(s.endCell)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to read term bounds: %w", err)
	}

	if len(resp.ValueRanges) != 2 {
		return "", "", fmt.Errorf("expected 2 term bound ranges, got %d", len(resp.ValueRanges))
	}

	return firstCellText(resp.ValueRanges[0]), firstCellText(resp.ValueRanges[1]), nil
}

func (s *SheetsSource) cellRange(cell string) string {
	return fmt.Sprintf("%s!%s", s.sheetName, cell)
}

func firstCellText(vr *sheets.ValueRange) string {
	if vr == nil || len(vr.Values) == 0 || len(vr.Values[0]) == 0 {
		return ""
	}
	return fmt.Sprint(vr.Values[0][0])
}

// RowsFromValues maps a raw value grid into Rows. Short rows are padded with
// empty cells; row numbers are 1-based.
func RowsFromValues(values [][]any) []Row {
	rows := make([]Row, 0, len(values))
	for i, cells := range values {
		row := Row{Num: i + 1}
		if len(cells) > 0 {
			row.Day = cellText(cells[0])
		}
		if len(cells) > 1 {
			row.Subject = cellText(cells[1])
		}
		if len(cells) > 2 {
			row.Room = cellText(cells[2])
		}
		if len(cells) > 3 {
			row.StartRaw = cells[3]
		}
		if len(cells) > 4 {
			row.EndRaw = cells[4]
		}
		rows = append(rows, row)
	}
	return rows
}

func cellText(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
