package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/tableau"
)

var listPageSize int

var workbooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workbooks on the Tableau site",
	Args:  cobra.NoArgs,
	RunE:  runWorkbooksList,
}

func init() {
	workbooksListCmd.Flags().IntVar(&listPageSize, "page-size", 100, "Workbooks per listing request")
	workbooksListCmd.SilenceUsage = true
	workbooksCmd.AddCommand(workbooksListCmd)
}

func runWorkbooksList(cmd *cobra.Command, args []string) error {
	tc, err := resolveTableauConfig()
	if err != nil {
		return err
	}

	client := tableau.NewClient(tc)
	var workbooks []tableau.Workbook
	err = client.Session(cmd.Context(), func(c *tableau.Client) error {
		workbooks, err = c.ListWorkbooks(cmd.Context(), listPageSize)
		return err
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(workbooks)
	}

	if len(workbooks) == 0 {
		fmt.Println("No workbooks found.")
		return nil
	}
	for _, wb := range workbooks {
		fmt.Printf("%s  %s", wb.ID, wb.Name)
		if wb.ProjectName != "" {
			fmt.Printf("  (project: %s)", wb.ProjectName)
		}
		if wb.OwnerName != "" {
			fmt.Printf("  (owner: %s)", wb.OwnerName)
		}
		fmt.Println()
	}
	return nil
}
