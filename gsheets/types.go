package gsheets

import "fmt"

// ValueRenderOption controls how read values are rendered.
type ValueRenderOption string

const (
	RenderFormattedValue   ValueRenderOption = "FORMATTED_VALUE"
	RenderUnformattedValue ValueRenderOption = "UNFORMATTED_VALUE"
	RenderFormula          ValueRenderOption = "FORMULA"
)

// ParseValueRenderOption validates a render-option string.
func ParseValueRenderOption(s string) (ValueRenderOption, error) {
	switch ValueRenderOption(s) {
	case RenderFormattedValue, RenderUnformattedValue, RenderFormula:
		return ValueRenderOption(s), nil
	}
	return "", fmt.Errorf("invalid value render option %q", s)
}

// ValueInputOption controls how written values are interpreted.
type ValueInputOption string

const (
	InputRaw         ValueInputOption = "RAW"
	InputUserEntered ValueInputOption = "USER_ENTERED"
)

// ParseValueInputOption validates an input-option string.
func ParseValueInputOption(s string) (ValueInputOption, error) {
	switch ValueInputOption(s) {
	case InputRaw, InputUserEntered:
		return ValueInputOption(s), nil
	}
	return "", fmt.Errorf("invalid value input option %q", s)
}

// InsertDataOption controls how appended rows are inserted.
type InsertDataOption string

const (
	InsertOverwrite InsertDataOption = "OVERWRITE"
	InsertRows      InsertDataOption = "INSERT_ROWS"
)

// ParseInsertDataOption validates an insert-mode string.
func ParseInsertDataOption(s string) (InsertDataOption, error) {
	switch InsertDataOption(s) {
	case InsertOverwrite, InsertRows:
		return InsertDataOption(s), nil
	}
	return "", fmt.Errorf("invalid insert data option %q", s)
}

// SheetInfo summarizes one sheet inside a spreadsheet. Grid sizes are
// populated by GetSpreadsheet only.
type SheetInfo struct {
	ID          int64  `json:"sheet_id"`
	Title       string `json:"title"`
	RowCount    int64  `json:"row_count,omitempty"`
	ColumnCount int64  `json:"column_count,omitempty"`
}

// Spreadsheet summarizes a spreadsheet and its sheets.
type Spreadsheet struct {
	ID     string      `json:"spreadsheet_id"`
	Title  string      `json:"title"`
	URL    string      `json:"url"`
	Sheets []SheetInfo `json:"sheets"`
}

// UpdateResult reports the extent of a write, append, or batch update.
// Sheets is populated by BatchUpdateValues only.
type UpdateResult struct {
	UpdatedRange   string `json:"updated_range,omitempty"`
	UpdatedRows    int64  `json:"updated_rows"`
	UpdatedColumns int64  `json:"updated_columns"`
	UpdatedCells   int64  `json:"updated_cells"`
	UpdatedSheets  int64  `json:"updated_sheets,omitempty"`
}

// RangeValues is one range/values pair for BatchUpdateValues.
type RangeValues struct {
	Range  string          `json:"range"`
	Values [][]interface{} `json:"values"`
}
