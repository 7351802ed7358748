package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/internal/a1"
)

var sheetsGetCmd = &cobra.Command{
	Use:   "get <spreadsheet-id>",
	Short: "Show a spreadsheet's sheets and grid sizes",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheetsGet,
}

func init() {
	sheetsGetCmd.SilenceUsage = true
	sheetsCmd.AddCommand(sheetsGetCmd)
}

func runSheetsGet(cmd *cobra.Command, args []string) error {
	client, err := resolveSheetsClient(cmd)
	if err != nil {
		return err
	}

	info, err := client.GetSpreadsheet(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(info)
	}
	fmt.Printf("%s  %s\n%s\n", info.ID, info.Title, info.URL)
	for _, sheet := range info.Sheets {
		extent := a1.FormatAddress("", 1, 1, int(sheet.RowCount), int(sheet.ColumnCount))
		fmt.Printf("  %d  %s  (%s)\n", sheet.ID, sheet.Title, extent)
	}
	return nil
}
