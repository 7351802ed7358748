package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/tableau"
)

var (
	exportFormat      string
	exportOutput      string
	exportPageType    string
	exportOrientation string
	exportMaxAge      int
	exportFilters     []string
)

var workbooksExportCmd = &cobra.Command{
	Use:   "export <workbook-id-or-name>",
	Short: "Export a workbook as PDF or PowerPoint",
	Long: `Export a workbook. The argument is matched against workbook IDs first,
then against names.

Examples:
  vizshare workbooks export "Sales Dashboard" -o sales.pdf
  vizshare workbooks export wb-id-123 -o deck.pptx --format pptx
  vizshare workbooks export "Sales Dashboard" -o sales.pdf \
      --page-type A4 --orientation Landscape --filter Region=West`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkbooksExport,
}

func init() {
	workbooksExportCmd.Flags().StringVar(&exportFormat, "format", "pdf", "Export format (pdf or pptx)")
	workbooksExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: <workbook name>.<format>)")
	workbooksExportCmd.Flags().StringVar(&exportPageType, "page-type", "Letter", "PDF page size (A3 A4 A5 B5 Executive Folio Ledger Legal Letter Note Quarto Tabloid)")
	workbooksExportCmd.Flags().StringVar(&exportOrientation, "orientation", "Portrait", "PDF page orientation (Portrait or Landscape)")
	workbooksExportCmd.Flags().IntVar(&exportMaxAge, "max-age", 0, "Maximum age in minutes for cached server data (0: server default)")
	workbooksExportCmd.Flags().StringArrayVar(&exportFilters, "filter", nil, "View filter as field=value (repeatable, PDF only)")
	workbooksExportCmd.SilenceUsage = true
	workbooksCmd.AddCommand(workbooksExportCmd)
}

func runWorkbooksExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "pdf" && exportFormat != "pptx" {
		return fmt.Errorf("--format must be 'pdf' or 'pptx', got %q", exportFormat)
	}

	pageType, err := tableau.ParsePageType(exportPageType)
	if err != nil {
		return err
	}
	orientation, err := tableau.ParseOrientation(exportOrientation)
	if err != nil {
		return err
	}
	filters, err := parseFilters(exportFilters)
	if err != nil {
		return err
	}

	tc, err := resolveTableauConfig()
	if err != nil {
		return err
	}

	client := tableau.NewClient(tc)
	return client.Session(cmd.Context(), func(c *tableau.Client) error {
		wb, err := findWorkbook(cmd, c, args[0])
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = wb.Name + "." + exportFormat
		}

		if exportFormat == "pptx" {
			if err := c.DownloadWorkbookPowerPoint(cmd.Context(), wb.ID, out, exportMaxAge); err != nil {
				return err
			}
		} else {
			err := c.DownloadWorkbookPDF(cmd.Context(), wb.ID, out, tableau.PDFExportOptions{
				PageType:    pageType,
				Orientation: orientation,
				MaxAge:      exportMaxAge,
				Filters:     filters,
			})
			if err != nil {
				return err
			}
		}

		fmt.Printf("%s\n", out)
		return nil
	})
}

// findWorkbook resolves an ID-or-name argument against the site's workbooks.
func findWorkbook(cmd *cobra.Command, c *tableau.Client, idOrName string) (tableau.Workbook, error) {
	workbooks, err := c.ListWorkbooks(cmd.Context(), 0)
	if err != nil {
		return tableau.Workbook{}, err
	}
	for _, wb := range workbooks {
		if wb.ID == idOrName {
			return wb, nil
		}
	}
	for _, wb := range workbooks {
		if wb.Name == idOrName {
			return wb, nil
		}
	}
	return tableau.Workbook{}, fmt.Errorf("workbook %q not found on site", idOrName)
}

func parseFilters(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filters := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --filter %q (expected field=value)", pair)
		}
		filters[field] = value
	}
	return filters, nil
}
