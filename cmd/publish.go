package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/gdrive"
	"github.com/vizshare/vizshare-cli/pdfutil"
	"github.com/vizshare/vizshare-cli/tableau"
)

var (
	publishWorkbook    string
	publishPageType    string
	publishOrientation string
	publishMaxAge      int
	publishDPI         int
	publishFilters     []string
	publishShare       bool
	publishOAuthClient string
	publishTokenFile   string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Export a workbook and upload its pages to Drive as images",
	Long: `Run the full pipeline: export a Tableau workbook as PDF, rasterize every
page to PNG, and upload the images to Google Drive.

Without --workbook the first workbook on the site is published. The Drive
folder comes from --folder / GOOGLE_DRIVE_FOLDER_ID / the saved config;
with no folder the images land in the Drive root.

Requires pdftoppm (poppler-utils) on PATH for rasterization.

Examples:
  vizshare publish --workbook "Sales Dashboard"
  vizshare publish --workbook "Sales Dashboard" --folder 1AbC... --share
  vizshare publish --filter Region=West --dpi 150`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishWorkbook, "workbook", "", "Workbook ID or name (default: first workbook on the site)")
	publishCmd.Flags().StringVar(&publishPageType, "page-type", "Letter", "PDF page size (A3 A4 A5 B5 Executive Folio Ledger Legal Letter Note Quarto Tabloid)")
	publishCmd.Flags().StringVar(&publishOrientation, "orientation", "Landscape", "PDF page orientation (Portrait or Landscape)")
	publishCmd.Flags().IntVar(&publishMaxAge, "max-age", 1, "Maximum age in minutes for cached server data")
	publishCmd.Flags().IntVar(&publishDPI, "dpi", 300, "Rasterization resolution in dots per inch")
	publishCmd.Flags().StringArrayVar(&publishFilters, "filter", nil, "View filter as field=value (repeatable)")
	publishCmd.Flags().BoolVar(&publishShare, "share", false, "Make each uploaded image readable by anyone with the link")
	publishCmd.Flags().StringVar(&publishOAuthClient, "oauth-client", "", "OAuth client secrets file (switches to interactive auth)")
	publishCmd.Flags().StringVar(&publishTokenFile, "token-file", "drive_token.json", "OAuth token cache file")
	publishCmd.SilenceUsage = true
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	pageType, err := tableau.ParsePageType(publishPageType)
	if err != nil {
		return err
	}
	orientation, err := tableau.ParseOrientation(publishOrientation)
	if err != nil {
		return err
	}
	filters, err := parseFilters(publishFilters)
	if err != nil {
		return err
	}

	tc, err := resolveTableauConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var drv *gdrive.Client
	if publishOAuthClient != "" {
		drv, err = gdrive.NewOAuth(ctx, publishOAuthClient, publishTokenFile)
	} else {
		var credentials string
		credentials, err = resolveCredentialsPath()
		if err != nil {
			return err
		}
		drv, err = gdrive.NewServiceAccount(ctx, credentials)
	}
	if err != nil {
		return err
	}
	folderID := resolveFolderID()

	workDir, err := os.MkdirTemp("", "vizshare-publish-")
	if err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	client := tableau.NewClient(tc)
	return client.Session(ctx, func(c *tableau.Client) error {
		wb, err := selectWorkbook(cmd, c)
		if err != nil {
			return err
		}
		slog.Debug("publishing workbook", "id", wb.ID, "name", wb.Name)

		pdfPath := filepath.Join(workDir, "export.pdf")
		err = c.DownloadWorkbookPDF(ctx, wb.ID, pdfPath, tableau.PDFExportOptions{
			PageType:    pageType,
			Orientation: orientation,
			MaxAge:      publishMaxAge,
			Filters:     filters,
		})
		if err != nil {
			return err
		}

		pages, err := pdfutil.PageCount(pdfPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Exported %q (%d pages)\n", wb.Name, pages)

		base := slugify(wb.Name)
		uploaded := make([]gdrive.File, 0, pages)
		for page := 1; page <= pages; page++ {
			name := fmt.Sprintf("%s_page%d.png", base, page)
			imagePath := filepath.Join(workDir, name)
			if err := pdfutil.PageToImage(ctx, pdfPath, imagePath, page, publishDPI); err != nil {
				return fmt.Errorf("rendering page %d: %w", page, err)
			}

			file, err := drv.UploadFile(ctx, imagePath, gdrive.UploadOptions{FolderID: folderID})
			if err != nil {
				return fmt.Errorf("uploading %s: %w", name, err)
			}
			if publishShare {
				link, err := drv.ShareFile(ctx, file.ID, gdrive.RoleReader, gdrive.GranteeAnyone, "")
				if err != nil {
					return fmt.Errorf("sharing %s: %w", name, err)
				}
				file.WebViewLink = link
			}
			uploaded = append(uploaded, file)
			fmt.Fprintf(os.Stderr, "✓ Uploaded %s (page %d/%d)\n", file.Name, page, pages)
		}

		if jsonOutput {
			return jsonPrint(uploaded)
		}
		for _, f := range uploaded {
			fmt.Printf("%s\t%s\n", f.Name, f.WebViewLink)
		}
		return nil
	})
}

// selectWorkbook picks the workbook to publish: the --workbook argument when
// given, otherwise the first workbook on the site.
func selectWorkbook(cmd *cobra.Command, c *tableau.Client) (tableau.Workbook, error) {
	if publishWorkbook != "" {
		return findWorkbook(cmd, c, publishWorkbook)
	}
	workbooks, err := c.ListWorkbooks(cmd.Context(), 0)
	if err != nil {
		return tableau.Workbook{}, err
	}
	if len(workbooks) == 0 {
		return tableau.Workbook{}, fmt.Errorf("no workbooks on site")
	}
	return workbooks[0], nil
}

// slugify turns a workbook name into a safe file name stem.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "workbook"
	}
	return b.String()
}
