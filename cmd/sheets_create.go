package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createSheetNames []string

var sheetsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheetsCreate,
}

func init() {
	sheetsCreateCmd.Flags().StringArrayVar(&createSheetNames, "sheet", nil, "Sheet name (repeatable; default: one sheet named Sheet1)")
	sheetsCreateCmd.SilenceUsage = true
	sheetsCmd.AddCommand(sheetsCreateCmd)
}

func runSheetsCreate(cmd *cobra.Command, args []string) error {
	client, err := resolveSheetsClient(cmd)
	if err != nil {
		return err
	}

	created, err := client.CreateSpreadsheet(cmd.Context(), args[0], createSheetNames)
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(created)
	}
	fmt.Printf("%s  %s\n%s\n", created.ID, created.Title, created.URL)
	for _, sheet := range created.Sheets {
		fmt.Printf("  %d  %s\n", sheet.ID, sheet.Title)
	}
	return nil
}
