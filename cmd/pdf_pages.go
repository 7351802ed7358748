package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/pdfutil"
)

var pdfPagesCmd = &cobra.Command{
	Use:   "pages <file>",
	Short: "Print the number of pages in a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := pdfutil.PageCount(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return jsonPrint(map[string]int{"pages": count})
		}
		fmt.Println(count)
		return nil
	},
}

func init() {
	pdfPagesCmd.SilenceUsage = true
	pdfCmd.AddCommand(pdfPagesCmd)
}
