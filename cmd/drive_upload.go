package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/gdrive"
)

var (
	uploadName  string
	uploadMime  string
	uploadShare bool
)

var driveUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a local file to Google Drive",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveUpload,
}

func init() {
	driveUploadCmd.Flags().StringVar(&uploadName, "name", "", "Name in Drive (default: local filename)")
	driveUploadCmd.Flags().StringVar(&uploadMime, "mime", "", "MIME type (default: inferred from extension)")
	driveUploadCmd.Flags().BoolVar(&uploadShare, "share", false, "Make the file publicly viewable after upload")
	driveUploadCmd.SilenceUsage = true
	driveCmd.AddCommand(driveUploadCmd)
}

func runDriveUpload(cmd *cobra.Command, args []string) error {
	client, err := resolveDriveClient(cmd)
	if err != nil {
		return err
	}

	file, err := client.UploadFile(cmd.Context(), args[0], gdrive.UploadOptions{
		Name:     uploadName,
		FolderID: resolveFolderID(),
		MimeType: uploadMime,
	})
	if err != nil {
		return err
	}

	if uploadShare {
		link, err := client.ShareFile(cmd.Context(), file.ID, gdrive.RoleReader, gdrive.GranteeAnyone, "")
		if err != nil {
			return err
		}
		file.WebViewLink = link
	}

	if jsonOutput {
		return jsonPrint(file)
	}
	fmt.Printf("%s  %s\n%s\n", file.ID, file.Name, file.WebViewLink)
	return nil
}
