package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vizshare/vizshare-cli/gsheets"
	"github.com/vizshare/vizshare-cli/internal/a1"
)

var (
	sheetsOAuthClient string
	sheetsTokenFile   string
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Google Sheets commands",
	Long: `Create spreadsheets and read, write and restructure their sheets.

Authentication defaults to the service account key from --credentials /
GOOGLE_SERVICE_ACCOUNT_PATH. Pass --oauth-client to use the interactive
browser flow instead; the token cache is independent of the Drive one.

Commands:
  create        Create a spreadsheet.
  get           Show a spreadsheet's sheets and grid sizes.
  read          Read a cell range.
  write         Write a cell range.
  append        Append rows after existing data.
  clear         Clear a cell range.
  batch-update  Update multiple ranges in one request.
  add-sheet     Add a sheet.
  delete-sheet  Delete a sheet by sheet ID.
  rename-sheet  Rename a sheet by sheet ID.
  sheet-id      Look up a sheet ID by title.

Examples:
  vizshare sheets create "Quarterly numbers" --sheet Data --sheet Summary
  vizshare sheets read <spreadsheet-id> "Sheet1!A1:D10"
  vizshare sheets write <spreadsheet-id> "Sheet1!A1" --values '[["name","count"],["alpha",1]]'`,
}

func init() {
	sheetsCmd.PersistentFlags().StringVar(&sheetsOAuthClient, "oauth-client", "", "OAuth client secrets file (switches to interactive auth)")
	sheetsCmd.PersistentFlags().StringVar(&sheetsTokenFile, "token-file", "sheets_token.json", "OAuth token cache file")
	rootCmd.AddCommand(sheetsCmd)
}

func resolveSheetsClient(cmd *cobra.Command) (*gsheets.Client, error) {
	if sheetsOAuthClient != "" {
		return gsheets.NewOAuth(cmd.Context(), sheetsOAuthClient, sheetsTokenFile)
	}
	credentials, err := resolveCredentialsPath()
	if err != nil {
		return nil, err
	}
	return gsheets.NewServiceAccount(cmd.Context(), credentials)
}

// checkRange does a best-effort pre-flight parse of cell ranges. Column-only
// ranges like "Sheet1!A:B" are passed through to the API untouched.
func checkRange(rng string) error {
	rangePart := rng
	if _, after, ok := strings.Cut(rng, "!"); ok {
		rangePart = after
	}
	if !strings.ContainsAny(rangePart, "0123456789") {
		return nil
	}
	_, _, _, _, _, err := a1.ParseRange(rng)
	return err
}

func readStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

// parseValues decodes a rows-of-columns JSON array from the flag value, or
// from stdin when the value is "-".
func parseValues(raw string) ([][]interface{}, error) {
	if raw == "" {
		return nil, fmt.Errorf("--values is required (JSON rows-of-columns, or '-' for stdin)")
	}
	data := []byte(raw)
	if raw == "-" {
		var err error
		data, err = readStdin()
		if err != nil {
			return nil, err
		}
	}
	var values [][]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing values: %w (expected e.g. '[[\"a\",1],[\"b\",2]]')", err)
	}
	return values, nil
}
