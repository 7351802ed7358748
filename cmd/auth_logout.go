package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget saved Tableau credentials",
	Long: `Remove the locally saved Tableau connection.

Personal access token sessions live only for the duration of a command, so
there is nothing to revoke server-side. If no connection is saved, prints
"Not logged in." and exits successfully.

Example:
  vizshare auth logout`,
	RunE: runLogout,
}

func init() {
	logoutCmd.SilenceUsage = true
	authCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.TokenName == "" && cfg.Server == "" {
		fmt.Fprintln(os.Stderr, "Not logged in.")
		return nil
	}

	if err := config.Delete(); err != nil {
		return fmt.Errorf("failed to delete config: %w", err)
	}

	fmt.Fprintln(os.Stderr, "✓ Logged out")
	return nil
}
