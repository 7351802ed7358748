// Package gsheets is a Google Sheets client for spreadsheet creation, range
// reads and writes, and structural sheet operations, over the sheets/v4 API.
// Value payloads are rows of columns exactly as the API shapes them; ragged
// rows pass through unchanged.
package gsheets

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vizshare/vizshare-cli/googleauth"
)

const (
	defaultSheetTitle   = "Sheet1"
	defaultSheetRows    = 1000
	defaultSheetColumns = 26
)

const spreadsheetFields = "spreadsheetId,properties,spreadsheetUrl,sheets"

// Client wraps a sheets/v4 service.
type Client struct {
	service *sheets.Service
}

// New wraps an existing Sheets service.
func New(service *sheets.Service) *Client {
	return &Client{service: service}
}

// NewServiceAccount constructs a client from a service account key file.
func NewServiceAccount(ctx context.Context, credentialsPath string) (*Client, error) {
	hc, err := googleauth.ServiceAccountClient(ctx, credentialsPath, googleauth.SheetsScope)
	if err != nil {
		return nil, err
	}
	service, err := sheets.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return New(service), nil
}

// NewOAuth constructs a client via the interactive OAuth flow, caching the
// token at tokenPath. The token cache is independent of the Drive client's.
func NewOAuth(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	hc, err := googleauth.OAuthClient(ctx, credentialsPath, tokenPath, googleauth.SheetsScope)
	if err != nil {
		return nil, err
	}
	service, err := sheets.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return New(service), nil
}

// CreateSpreadsheet creates a spreadsheet with one sheet per given name, or a
// single default-named sheet when no names are given.
func (c *Client) CreateSpreadsheet(ctx context.Context, title string, sheetNames []string) (Spreadsheet, error) {
	if len(sheetNames) == 0 {
		sheetNames = []string{defaultSheetTitle}
	}
	sheetList := make([]*sheets.Sheet, 0, len(sheetNames))
	for _, name := range sheetNames {
		sheetList = append(sheetList, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name},
		})
	}

	created, err := c.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
		Sheets:     sheetList,
	}).Fields(spreadsheetFields).Context(ctx).Do()
	if err != nil {
		return Spreadsheet{}, fmt.Errorf("creating spreadsheet %s: %w", title, err)
	}

	slog.Debug("spreadsheet created", "id", created.SpreadsheetId, "sheets", len(created.Sheets))
	return summarize(created, false), nil
}

// GetSpreadsheet returns a spreadsheet summary including per-sheet grid sizes.
func (c *Client) GetSpreadsheet(ctx context.Context, spreadsheetID string) (Spreadsheet, error) {
	got, err := c.service.Spreadsheets.Get(spreadsheetID).
		Fields(spreadsheetFields).Context(ctx).Do()
	if err != nil {
		return Spreadsheet{}, fmt.Errorf("fetching spreadsheet %s: %w", spreadsheetID, err)
	}
	return summarize(got, true), nil
}

func summarize(s *sheets.Spreadsheet, withGrid bool) Spreadsheet {
	out := Spreadsheet{
		ID:  s.SpreadsheetId,
		URL: s.SpreadsheetUrl,
	}
	if s.Properties != nil {
		out.Title = s.Properties.Title
	}
	for _, sheet := range s.Sheets {
		if sheet.Properties == nil {
			continue
		}
		info := SheetInfo{
			ID:    sheet.Properties.SheetId,
			Title: sheet.Properties.Title,
		}
		if withGrid && sheet.Properties.GridProperties != nil {
			info.RowCount = sheet.Properties.GridProperties.RowCount
			info.ColumnCount = sheet.Properties.GridProperties.ColumnCount
		}
		out.Sheets = append(out.Sheets, info)
	}
	return out
}

// ReadValues reads a range, returning an empty slice when the range has no
// data.
func (c *Client) ReadValues(ctx context.Context, spreadsheetID, rng string, renderOption ValueRenderOption) ([][]interface{}, error) {
	if renderOption == "" {
		renderOption = RenderFormattedValue
	}
	result, err := c.service.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption(string(renderOption)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rng, err)
	}
	return result.Values, nil
}

// WriteValues writes a range and returns the affected counts.
func (c *Client) WriteValues(ctx context.Context, spreadsheetID, rng string, values [][]interface{}, inputOption ValueInputOption) (UpdateResult, error) {
	if inputOption == "" {
		inputOption = InputUserEntered
	}
	result, err := c.service.Spreadsheets.Values.Update(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(string(inputOption)).
		Context(ctx).Do()
	if err != nil {
		return UpdateResult{}, fmt.Errorf("writing %s: %w", rng, err)
	}
	return UpdateResult{
		UpdatedRange:   result.UpdatedRange,
		UpdatedRows:    result.UpdatedRows,
		UpdatedColumns: result.UpdatedColumns,
		UpdatedCells:   result.UpdatedCells,
	}, nil
}

// AppendValues appends rows after the existing data in a range.
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]interface{}, inputOption ValueInputOption, insertOption InsertDataOption) (UpdateResult, error) {
	if inputOption == "" {
		inputOption = InputUserEntered
	}
	if insertOption == "" {
		insertOption = InsertRows
	}
	result, err := c.service.Spreadsheets.Values.Append(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(string(inputOption)).
		InsertDataOption(string(insertOption)).
		Context(ctx).Do()
	if err != nil {
		return UpdateResult{}, fmt.Errorf("appending to %s: %w", rng, err)
	}

	out := UpdateResult{}
	if result.Updates != nil {
		out.UpdatedRange = result.Updates.UpdatedRange
		out.UpdatedRows = result.Updates.UpdatedRows
		out.UpdatedColumns = result.Updates.UpdatedColumns
		out.UpdatedCells = result.Updates.UpdatedCells
	}
	return out, nil
}

// ClearValues clears a range and returns the cleared range.
func (c *Client) ClearValues(ctx context.Context, spreadsheetID, rng string) (string, error) {
	result, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("clearing %s: %w", rng, err)
	}
	if result.ClearedRange == "" {
		return rng, nil
	}
	return result.ClearedRange, nil
}

// BatchUpdateValues updates multiple ranges in one request.
func (c *Client) BatchUpdateValues(ctx context.Context, spreadsheetID string, data []RangeValues, inputOption ValueInputOption) (UpdateResult, error) {
	if inputOption == "" {
		inputOption = InputUserEntered
	}
	ranges := make([]*sheets.ValueRange, 0, len(data))
	for _, d := range data {
		ranges = append(ranges, &sheets.ValueRange{Range: d.Range, Values: d.Values})
	}

	result, err := c.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: string(inputOption),
		Data:             ranges,
	}).Context(ctx).Do()
	if err != nil {
		return UpdateResult{}, fmt.Errorf("batch updating values: %w", err)
	}
	return UpdateResult{
		UpdatedRows:    result.TotalUpdatedRows,
		UpdatedColumns: result.TotalUpdatedColumns,
		UpdatedCells:   result.TotalUpdatedCells,
		UpdatedSheets:  result.TotalUpdatedSheets,
	}, nil
}

// AddSheet adds a sheet to an existing spreadsheet. Non-positive rows/columns
// fall back to 1000x26.
func (c *Client) AddSheet(ctx context.Context, spreadsheetID, title string, rows, columns int64) (SheetInfo, error) {
	if rows <= 0 {
		rows = defaultSheetRows
	}
	if columns <= 0 {
		columns = defaultSheetColumns
	}

	result, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    rows,
						ColumnCount: columns,
					},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return SheetInfo{}, fmt.Errorf("adding sheet %s: %w", title, err)
	}

	info := SheetInfo{Title: title, RowCount: rows, ColumnCount: columns}
	if len(result.Replies) > 0 && result.Replies[0].AddSheet != nil && result.Replies[0].AddSheet.Properties != nil {
		props := result.Replies[0].AddSheet.Properties
		info.ID = props.SheetId
		info.Title = props.Title
		if props.GridProperties != nil {
			info.RowCount = props.GridProperties.RowCount
			info.ColumnCount = props.GridProperties.ColumnCount
		}
	}
	return info, nil
}

// DeleteSheet deletes a sheet by its sheet id (not its title).
func (c *Client) DeleteSheet(ctx context.Context, spreadsheetID string, sheetID int64) error {
	_, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheetID},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("deleting sheet %d: %w", sheetID, err)
	}
	return nil
}

// RenameSheet renames a sheet by its sheet id.
func (c *Client) RenameSheet(ctx context.Context, spreadsheetID string, sheetID int64, newTitle string) error {
	_, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					Title:   newTitle,
				},
				Fields: "title",
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("renaming sheet %d: %w", sheetID, err)
	}
	return nil
}

// SheetIDByTitle scans the spreadsheet's current sheet list for a title and
// reports whether it was found.
func (c *Client) SheetIDByTitle(ctx context.Context, spreadsheetID, title string) (int64, bool, error) {
	info, err := c.GetSpreadsheet(ctx, spreadsheetID)
	if err != nil {
		return 0, false, err
	}
	for _, sheet := range info.Sheets {
		if sheet.Title == title {
			return sheet.ID, true, nil
		}
	}
	return 0, false, nil
}

// WriteData is a one-shot service-account write.
func WriteData(ctx context.Context, spreadsheetID, rng string, values [][]interface{}, credentialsPath string) (UpdateResult, error) {
	client, err := NewServiceAccount(ctx, credentialsPath)
	if err != nil {
		return UpdateResult{}, err
	}
	return client.WriteValues(ctx, spreadsheetID, rng, values, InputUserEntered)
}

// ReadData is a one-shot service-account read.
func ReadData(ctx context.Context, spreadsheetID, rng string, credentialsPath string) ([][]interface{}, error) {
	client, err := NewServiceAccount(ctx, credentialsPath)
	if err != nil {
		return nil, err
	}
	return client.ReadValues(ctx, spreadsheetID, rng, RenderFormattedValue)
}
