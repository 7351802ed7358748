package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/gdrive"
)

var (
	lsMime     string
	lsPageSize int64
)

var driveLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List files on Google Drive",
	Args:  cobra.NoArgs,
	RunE:  runDriveLs,
}

func init() {
	driveLsCmd.Flags().StringVar(&lsMime, "mime", "", "Filter by MIME type")
	driveLsCmd.Flags().Int64Var(&lsPageSize, "page-size", 100, "Results per page")
	driveLsCmd.SilenceUsage = true
	driveCmd.AddCommand(driveLsCmd)
}

func runDriveLs(cmd *cobra.Command, args []string) error {
	client, err := resolveDriveClient(cmd)
	if err != nil {
		return err
	}

	files, err := client.ListFiles(cmd.Context(), gdrive.ListQuery{
		FolderID: resolveFolderID(),
		MimeType: lsMime,
		PageSize: lsPageSize,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(files)
	}
	if len(files) == 0 {
		fmt.Println("No files found.")
		return nil
	}
	for _, f := range files {
		fmt.Printf("%s  %s  %s\n", f.ID, f.Name, f.MimeType)
	}
	return nil
}
