package cmd

import "github.com/spf13/cobra"

var workbooksCmd = &cobra.Command{
	Use:   "workbooks",
	Short: "Tableau workbook commands",
	Long: `List and export workbooks from the Tableau site.

Commands:
  list    List the workbooks on the site.
  export  Export a workbook as PDF or PowerPoint.

Examples:
  vizshare workbooks list
  vizshare workbooks export "Sales Dashboard" -o sales.pdf --orientation Landscape`,
}

func init() {
	rootCmd.AddCommand(workbooksCmd)
}
