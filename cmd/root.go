package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/config"
	"github.com/vizshare/vizshare-cli/tableau"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	flagServer      string
	flagSite        string
	flagTokenName   string
	flagTokenSecret string
	flagAPIVersion  string
	flagCredentials string
	flagFolder      string
	verbose         bool
	jsonOutput      bool
)

var rootCmd = &cobra.Command{
	Use:           "vizshare",
	Short:         "Publish Tableau workbooks to Google Drive",
	Version:       Version,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Tableau server URL (env: TABLEAU_SERVER)")
	rootCmd.PersistentFlags().StringVar(&flagSite, "site", "", "Tableau site content URL (env: TABLEAU_SITE_CONTENT_URL)")
	rootCmd.PersistentFlags().StringVar(&flagTokenName, "token-name", "", "Tableau personal access token name (env: TABLEAU_TOKEN_NAME)")
	rootCmd.PersistentFlags().StringVar(&flagTokenSecret, "token-secret", "", "Tableau personal access token secret (env: TABLEAU_TOKEN_SECRET)")
	rootCmd.PersistentFlags().StringVar(&flagAPIVersion, "api-version", "", "Tableau REST API version (env: TABLEAU_API_VERSION)")
	rootCmd.PersistentFlags().StringVar(&flagCredentials, "credentials", "", "Google service account key file (env: GOOGLE_SERVICE_ACCOUNT_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagFolder, "folder", "", "Default Google Drive folder ID (env: GOOGLE_DRIVE_FOLDER_ID)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output raw JSON instead of human-formatted summaries")
}

// resolve returns the first non-empty of flag, environment variable, config value.
func resolve(flagValue, envName, cfgValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return cfgValue
}

func resolveTableauConfig() (tableau.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return tableau.Config{}, fmt.Errorf("loading config: %w", err)
	}

	tc := tableau.Config{
		Server:         resolve(flagServer, "TABLEAU_SERVER", cfg.Server),
		SiteContentURL: resolve(flagSite, "TABLEAU_SITE_CONTENT_URL", cfg.SiteContentURL),
		TokenName:      resolve(flagTokenName, "TABLEAU_TOKEN_NAME", cfg.TokenName),
		TokenSecret:    resolve(flagTokenSecret, "TABLEAU_TOKEN_SECRET", cfg.TokenSecret),
		APIVersion:     resolve(flagAPIVersion, "TABLEAU_API_VERSION", cfg.APIVersion),
	}
	if tc.Server == "" || tc.TokenName == "" || tc.TokenSecret == "" {
		return tableau.Config{}, fmt.Errorf("missing Tableau connection details: run 'vizshare auth login' or set --server/--token-name/--token-secret")
	}
	return tc, nil
}

func resolveCredentialsPath() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}
	path := resolve(flagCredentials, "GOOGLE_SERVICE_ACCOUNT_PATH", cfg.GoogleCredentials)
	if path == "" {
		return "", fmt.Errorf("no Google credentials: set --credentials or GOOGLE_SERVICE_ACCOUNT_PATH")
	}
	return path, nil
}

func resolveFolderID() string {
	cfg, err := config.Load()
	if err != nil {
		return resolve(flagFolder, "GOOGLE_DRIVE_FOLDER_ID", "")
	}
	return resolve(flagFolder, "GOOGLE_DRIVE_FOLDER_ID", cfg.DriveFolderID)
}

func Execute() error {
	return rootCmd.Execute()
}
