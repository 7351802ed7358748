package cmd

import "github.com/spf13/cobra"

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Local PDF commands",
	Long: `Operate on local PDF files.

Commands:
  pages    Print the page count.
  extract  Extract one page as a standalone PDF.
  render   Rasterize one page to a PNG (requires pdftoppm on PATH).

Examples:
  vizshare pdf pages report.pdf
  vizshare pdf extract report.pdf --page 3 -o page3.pdf
  vizshare pdf render report.pdf --page 1 --dpi 300 -o page1.png`,
}

func init() {
	rootCmd.AddCommand(pdfCmd)
}
