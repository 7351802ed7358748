package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved Tableau connection",
	RunE:  runStatus,
}

func init() {
	statusCmd.SilenceUsage = true
	authCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.TokenName == "" && cfg.Server == "" {
		fmt.Fprintln(os.Stderr, "Not logged in.")
		return nil
	}

	if jsonOutput {
		return jsonPrint(map[string]string{
			"server":             cfg.Server,
			"site_content_url":   cfg.SiteContentURL,
			"token_name":         cfg.TokenName,
			"api_version":        cfg.APIVersion,
			"google_credentials": cfg.GoogleCredentials,
			"drive_folder_id":    cfg.DriveFolderID,
		})
	}

	fmt.Printf("Server:      %s\n", cfg.Server)
	fmt.Printf("Site:        %s\n", cfg.SiteContentURL)
	fmt.Printf("Token name:  %s\n", cfg.TokenName)
	if cfg.TokenSecret != "" {
		fmt.Printf("Token secret: (saved)\n")
	}
	if cfg.GoogleCredentials != "" {
		fmt.Printf("Google key:  %s\n", cfg.GoogleCredentials)
	}
	if cfg.DriveFolderID != "" {
		fmt.Printf("Drive folder: %s\n", cfg.DriveFolderID)
	}
	return nil
}
