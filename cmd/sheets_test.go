package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vizshare/vizshare-cli/gsheets"
)

func newSheetsTestClient(t *testing.T, handler http.Handler) *gsheets.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("creating sheets service: %v", err)
	}
	return gsheets.New(service)
}

func sheetListHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"spreadsheetId": "ss-1",
			"properties":    map[string]string{"title": "Report"},
			"sheets": []map[string]any{
				{"properties": map[string]any{"sheetId": 0, "title": "Sheet1"}},
				{"properties": map[string]any{"sheetId": 7, "title": "Data"}},
			},
		})
	})
}

func TestResolveSheetsClient_ErrorWhenNoCredentials(t *testing.T) {
	resetTableauFlags(t)
	origOAuth := sheetsOAuthClient
	t.Cleanup(func() { sheetsOAuthClient = origOAuth })
	sheetsOAuthClient = ""

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	if _, err := resolveSheetsClient(cmd); err == nil {
		t.Fatal("expected error with no Google credentials configured")
	}
}

func TestResolveSheetsClient_MissingKeyFile(t *testing.T) {
	resetTableauFlags(t)
	origOAuth := sheetsOAuthClient
	t.Cleanup(func() { sheetsOAuthClient = origOAuth })
	sheetsOAuthClient = ""

	t.Setenv("GOOGLE_SERVICE_ACCOUNT_PATH", "/nonexistent/sa.json")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	_, err := resolveSheetsClient(cmd)
	if err == nil {
		t.Fatal("expected error for a missing service account key file")
	}
	if !strings.Contains(err.Error(), "service account key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLookupSheetID_Found(t *testing.T) {
	client := newSheetsTestClient(t, sheetListHandler())

	var out bytes.Buffer
	if err := lookupSheetID(context.Background(), client, &out, "ss-1", "Data"); err != nil {
		t.Fatalf("lookupSheetID failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "7" {
		t.Fatalf("expected sheet id 7, got %q", got)
	}
}

func TestLookupSheetID_MissExitsNonzero(t *testing.T) {
	client := newSheetsTestClient(t, sheetListHandler())

	var out bytes.Buffer
	err := lookupSheetID(context.Background(), client, &out, "ss-1", "Missing")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected ExitError with code 1, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output on a miss, got %q", out.String())
	}
}
