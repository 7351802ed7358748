package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/config"
	"github.com/vizshare/vizshare-cli/tableau"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify and save Tableau credentials",
	Long: `Sign in to Tableau with a personal access token and save the connection
details for future commands.

What happens:
  1. The CLI signs in to the Tableau server with the given token.
  2. On success it signs out again and saves the connection locally.
  3. Subsequent commands use the saved connection unless overridden by
     flags or environment variables.

Example:
  vizshare auth login --server https://10ax.online.tableau.com \
      --site my-site --token-name ci-token --token-secret s3cret`,
	RunE: runLogin,
}

func init() {
	loginCmd.SilenceUsage = true
	authCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	tc, err := resolveTableauConfig()
	if err != nil {
		return err
	}

	// Verify the token before saving anything.
	client := tableau.NewClient(tc)
	if err := client.SignIn(cmd.Context()); err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	if err := client.SignOut(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not sign out verification session: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server = tc.Server
	cfg.SiteContentURL = tc.SiteContentURL
	cfg.TokenName = tc.TokenName
	cfg.TokenSecret = tc.TokenSecret
	cfg.APIVersion = tc.APIVersion
	if flagCredentials != "" {
		cfg.GoogleCredentials = flagCredentials
	}
	if flagFolder != "" {
		cfg.DriveFolderID = flagFolder
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Logged in to %s (site %q) as token %s\n", tc.Server, tc.SiteContentURL, tc.TokenName)
	return nil
}
