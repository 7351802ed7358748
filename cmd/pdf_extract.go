package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/pdfutil"
)

var (
	extractPage   int
	extractOutput string
)

var pdfExtractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract one page as a standalone PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFExtract,
}

func init() {
	pdfExtractCmd.Flags().IntVar(&extractPage, "page", 1, "Page number to extract (1-indexed)")
	pdfExtractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file path (default: <file>_page<n>.pdf)")
	pdfExtractCmd.SilenceUsage = true
	pdfCmd.AddCommand(pdfExtractCmd)
}

func runPDFExtract(cmd *cobra.Command, args []string) error {
	input := args[0]
	out := extractOutput
	if out == "" {
		out = fmt.Sprintf("%s_page%d.pdf", strings.TrimSuffix(input, ".pdf"), extractPage)
	}

	if err := pdfutil.ExtractPage(input, out, extractPage); err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
