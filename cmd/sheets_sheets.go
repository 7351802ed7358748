package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/gsheets"
)

var (
	addSheetRows int64
	addSheetCols int64
)

var sheetsAddSheetCmd = &cobra.Command{
	Use:   "add-sheet <spreadsheet-id> <title>",
	Short: "Add a sheet to a spreadsheet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := resolveSheetsClient(cmd)
		if err != nil {
			return err
		}
		info, err := client.AddSheet(ctx, args[0], args[1], addSheetRows, addSheetCols)
		if err != nil {
			return err
		}
		if jsonOutput {
			return jsonPrint(info)
		}
		fmt.Fprintf(os.Stderr, "✓ Added sheet %q (id %d, %dx%d)\n", info.Title, info.ID, info.RowCount, info.ColumnCount)
		return nil
	},
}

var sheetsDeleteSheetCmd = &cobra.Command{
	Use:   "delete-sheet <spreadsheet-id> <sheet-id>",
	Short: "Delete a sheet by its numeric sheet ID",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sheet ID %q: %w", args[1], err)
		}
		ctx := cmd.Context()
		client, err := resolveSheetsClient(cmd)
		if err != nil {
			return err
		}
		if err := client.DeleteSheet(ctx, args[0], sheetID); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Deleted sheet %d\n", sheetID)
		return nil
	},
}

var sheetsRenameSheetCmd = &cobra.Command{
	Use:   "rename-sheet <spreadsheet-id> <sheet-id> <title>",
	Short: "Rename a sheet by its numeric sheet ID",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sheet ID %q: %w", args[1], err)
		}
		ctx := cmd.Context()
		client, err := resolveSheetsClient(cmd)
		if err != nil {
			return err
		}
		if err := client.RenameSheet(ctx, args[0], sheetID, args[2]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Renamed sheet %d to %q\n", sheetID, args[2])
		return nil
	},
}

var sheetsSheetIDCmd = &cobra.Command{
	Use:   "sheet-id <spreadsheet-id> <title>",
	Short: "Look up a sheet's numeric ID by title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveSheetsClient(cmd)
		if err != nil {
			return err
		}
		return lookupSheetID(cmd.Context(), client, cmd.OutOrStdout(), args[0], args[1])
	},
}

// lookupSheetID prints the sheet id for a title. A lookup miss prints a
// diagnostic to stderr and exits 1.
func lookupSheetID(ctx context.Context, client *gsheets.Client, out io.Writer, spreadsheetID, title string) error {
	id, found, err := client.SheetIDByTitle(ctx, spreadsheetID, title)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(os.Stderr, "no sheet titled %q\n", title)
		return &ExitError{Code: 1}
	}
	if jsonOutput {
		return jsonPrint(map[string]int64{"sheetId": id})
	}
	fmt.Fprintln(out, id)
	return nil
}

func init() {
	sheetsAddSheetCmd.Flags().Int64Var(&addSheetRows, "rows", 0, "row count for the new sheet (default 1000)")
	sheetsAddSheetCmd.Flags().Int64Var(&addSheetCols, "cols", 0, "column count for the new sheet (default 26)")

	for _, c := range []*cobra.Command{sheetsAddSheetCmd, sheetsDeleteSheetCmd, sheetsRenameSheetCmd, sheetsSheetIDCmd} {
		c.SilenceUsage = true
		sheetsCmd.AddCommand(c)
	}
}
