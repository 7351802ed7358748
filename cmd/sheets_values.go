package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/gsheets"
)

var (
	readRender    string
	writeValues   string
	writeInput    string
	appendValues  string
	appendInput   string
	appendInsert  string
	batchData     string
	batchInput    string
)

var sheetsReadCmd = &cobra.Command{
	Use:   "read <spreadsheet-id> <range>",
	Short: "Read a cell range",
	Args:  cobra.ExactArgs(2),
	RunE:  runSheetsRead,
}

var sheetsWriteCmd = &cobra.Command{
	Use:   "write <spreadsheet-id> <range>",
	Short: "Write a cell range",
	Args:  cobra.ExactArgs(2),
	RunE:  runSheetsWrite,
}

var sheetsAppendCmd = &cobra.Command{
	Use:   "append <spreadsheet-id> <range>",
	Short: "Append rows after the existing data in a range",
	Args:  cobra.ExactArgs(2),
	RunE:  runSheetsAppend,
}

var sheetsClearCmd = &cobra.Command{
	Use:   "clear <spreadsheet-id> <range>",
	Short: "Clear a cell range",
	Args:  cobra.ExactArgs(2),
	RunE:  runSheetsClear,
}

var sheetsBatchUpdateCmd = &cobra.Command{
	Use:   "batch-update <spreadsheet-id>",
	Short: "Update multiple ranges in one request",
	Long: `Update multiple ranges in one request.

--data is a JSON array of {"range": ..., "values": [[...]]} objects, or '-'
to read the same from stdin.

Example:
  vizshare sheets batch-update <id> \
      --data '[{"range":"Sheet1!A1","values":[[1,2]]},{"range":"Sheet1!A3","values":[[3,4]]}]'`,
	Args: cobra.ExactArgs(1),
	RunE: runSheetsBatchUpdate,
}

func init() {
	sheetsReadCmd.Flags().StringVar(&readRender, "render", "FORMATTED_VALUE", "Value render option (FORMATTED_VALUE, UNFORMATTED_VALUE, FORMULA)")
	sheetsWriteCmd.Flags().StringVar(&writeValues, "values", "", "JSON rows-of-columns, or '-' for stdin")
	sheetsWriteCmd.Flags().StringVar(&writeInput, "input", "USER_ENTERED", "Value input option (RAW or USER_ENTERED)")
	sheetsAppendCmd.Flags().StringVar(&appendValues, "values", "", "JSON rows-of-columns, or '-' for stdin")
	sheetsAppendCmd.Flags().StringVar(&appendInput, "input", "USER_ENTERED", "Value input option (RAW or USER_ENTERED)")
	sheetsAppendCmd.Flags().StringVar(&appendInsert, "insert", "INSERT_ROWS", "Insert mode (OVERWRITE or INSERT_ROWS)")
	sheetsBatchUpdateCmd.Flags().StringVar(&batchData, "data", "", "JSON array of range/values objects, or '-' for stdin")
	sheetsBatchUpdateCmd.Flags().StringVar(&batchInput, "input", "USER_ENTERED", "Value input option (RAW or USER_ENTERED)")

	for _, c := range []*cobra.Command{sheetsReadCmd, sheetsWriteCmd, sheetsAppendCmd, sheetsClearCmd, sheetsBatchUpdateCmd} {
		c.SilenceUsage = true
		sheetsCmd.AddCommand(c)
	}
}

func runSheetsRead(cmd *cobra.Command, args []string) error {
	renderOption, err := gsheets.ParseValueRenderOption(readRender)
	if err != nil {
		return err
	}
	if err := checkRange(args[1]); err != nil {
		return err
	}

	client, err := resolveSheetsClient(cmd)
	if err != nil {
		return err
	}

	values, err := client.ReadValues(cmd.Context(), args[0], args[1], renderOption)
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(values)
	}
	for _, row := range values {
		for i, cell := range row {
			if i > 0 {
				fmt.Print("\t")
			}
			fmt.Print(cell)
		}
		fmt.Println()
	}
	return nil
}

func runSheetsWrite(cmd *cobra.Command, args []string) error {
	inputOption, err := gsheets.ParseValueInputOption(writeInput)
	if err != nil {
		return err
	}
	if err := checkRange(args[1]); err != nil {
		return err
	}
	values, err := parseValues(writeValues)
	if err != nil {
		return err
	}

	client, err := resolveSheetsClient(cmd)
	if err != nil {
		return err
	}

	result, err := client.WriteValues(cmd.Context(), args[0], args[1], values, inputOption)
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(result)
	}
	fmt.Printf("%s: %d cells updated (%d rows x %d cols)\n",
		result.UpdatedRange, result.UpdatedCells, result.UpdatedRows, result.UpdatedColumns)
	return nil
}

func runSheetsAppend(cmd *cobra.Command, args []string) error {
	inputOption, err := gsheets.ParseValueInputOption(appendInput)
	if err != nil {
		return err
	}
	insertOption, err := gsheets.ParseInsertDataOption(appendInsert)
	if err != nil {
		return err
	}
	values, err := parseValues(appendValues)
	if err != nil {
		return err
	}

	client, err := resolveSheetsClient(cmd)
	if err != nil {
		return err
	}

	result, err := client.AppendValues(cmd.Context(), args[0], args[1], values, inputOption, insertOption)
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(result)
	}
	fmt.Printf("%s: %d cells appended\n", result.UpdatedRange, result.UpdatedCells)
	return nil
}

func runSheetsClear(cmd *cobra.Command, args []string) error {
	if err := checkRange(args[1]); err != nil {
		return err
	}

	client, err := resolveSheetsClient(cmd)
	if err != nil {
		return err
	}

	cleared, err := client.ClearValues(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(map[string]string{"cleared_range": cleared})
	}
	fmt.Printf("cleared %s\n", cleared)
	return nil
}

func runSheetsBatchUpdate(cmd *cobra.Command, args []string) error {
	inputOption, err := gsheets.ParseValueInputOption(batchInput)
	if err != nil {
		return err
	}

	if batchData == "" {
		return fmt.Errorf("--data is required (JSON array of range/values objects, or '-' for stdin)")
	}
	raw := []byte(batchData)
	if batchData == "-" {
		raw, err = readStdin()
		if err != nil {
			return err
		}
	}
	var data []gsheets.RangeValues
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing --data: %w", err)
	}
	for _, d := range data {
		if err := checkRange(d.Range); err != nil {
			return err
		}
	}

	client, err := resolveSheetsClient(cmd)
	if err != nil {
		return err
	}

	result, err := client.BatchUpdateValues(cmd.Context(), args[0], data, inputOption)
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(result)
	}
	fmt.Printf("%d cells updated across %d sheet(s)\n", result.UpdatedCells, result.UpdatedSheets)
	return nil
}
