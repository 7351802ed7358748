package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/gdrive"
)

var (
	shareRole  string
	shareType  string
	shareEmail string
)

var driveShareCmd = &cobra.Command{
	Use:   "share <file-id>",
	Short: "Create a sharing permission and print the link",
	Long: `Create a sharing permission on a Drive file and print the web view link.

The email address is used only for user and group grantees.

Examples:
  vizshare drive share <file-id> --type anyone
  vizshare drive share <file-id> --type user --email someone@example.com --role writer`,
	Args: cobra.ExactArgs(1),
	RunE: runDriveShare,
}

func init() {
	driveShareCmd.Flags().StringVar(&shareRole, "role", "reader", "Permission role (reader, writer, commenter)")
	driveShareCmd.Flags().StringVar(&shareType, "type", "anyone", "Grantee type (anyone, user, group, domain)")
	driveShareCmd.Flags().StringVar(&shareEmail, "email", "", "Email address (user and group grantees)")
	driveShareCmd.SilenceUsage = true
	driveCmd.AddCommand(driveShareCmd)
}

func runDriveShare(cmd *cobra.Command, args []string) error {
	client, err := resolveDriveClient(cmd)
	if err != nil {
		return err
	}

	link, err := client.ShareFile(cmd.Context(), args[0],
		gdrive.Role(shareRole), gdrive.GranteeType(shareType), shareEmail)
	if err != nil {
		return err
	}

	if jsonOutput {
		return jsonPrint(map[string]string{"web_view_link": link})
	}
	fmt.Println(link)
	return nil
}
