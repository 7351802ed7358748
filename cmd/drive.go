package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/gdrive"
)

var (
	driveOAuthClient string
	driveTokenFile   string
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Google Drive commands",
	Long: `Upload, list and share files on Google Drive.

Authentication defaults to the service account key from --credentials /
GOOGLE_SERVICE_ACCOUNT_PATH. Pass --oauth-client to use the interactive
browser flow instead; the token is cached at --token-file.

Commands:
  upload  Upload a local file.
  mkdir   Create a folder.
  ls      List files.
  share   Create a sharing permission and print the link.

Examples:
  vizshare drive upload chart.png --folder 1AbC...
  vizshare drive ls --folder 1AbC... --mime image/png
  vizshare drive share <file-id> --type anyone`,
}

func init() {
	driveCmd.PersistentFlags().StringVar(&driveOAuthClient, "oauth-client", "", "OAuth client secrets file (switches to interactive auth)")
	driveCmd.PersistentFlags().StringVar(&driveTokenFile, "token-file", "drive_token.json", "OAuth token cache file")
	rootCmd.AddCommand(driveCmd)
}

func resolveDriveClient(cmd *cobra.Command) (*gdrive.Client, error) {
	if driveOAuthClient != "" {
		return gdrive.NewOAuth(cmd.Context(), driveOAuthClient, driveTokenFile)
	}
	credentials, err := resolveCredentialsPath()
	if err != nil {
		return nil, err
	}
	return gdrive.NewServiceAccount(cmd.Context(), credentials)
}
