// Package googleauth builds authenticated HTTP clients for the Google Drive
// and Sheets APIs. Two construction paths are supported: a non-interactive
// service-account key file, and an interactive OAuth flow that caches a
// refresh-capable token in a local JSON file, rewriting it in place whenever
// the token is refreshed.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth scopes for the two vendor APIs. Each client uses its own scope and
// its own token cache file so the consents do not collide.
const (
	DriveScope  = "https://www.googleapis.com/auth/drive"
	SheetsScope = "https://www.googleapis.com/auth/spreadsheets"
)

// ServiceAccountClient returns an HTTP client authenticated with a service
// account JSON key file.
func ServiceAccountClient(ctx context.Context, credentialsPath, scope string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading service account key: %w", err)
	}
	config, err := google.JWTConfigFromJSON(b, scope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}
	return config.Client(ctx), nil
}

// OAuthClient returns an HTTP client authenticated via the installed-app
// OAuth flow. A cached token at tokenPath is reused and refreshed in place;
// when no usable token exists the interactive flow runs and the result is
// cached.
func OAuthClient(ctx context.Context, credentialsPath, tokenPath, scope string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading OAuth client secrets: %w", err)
	}
	config, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return nil, fmt.Errorf("parsing OAuth client secrets: %w", err)
	}

	token, err := tokenFromFile(tokenPath)
	if err != nil {
		token, err = tokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, token); err != nil {
			return nil, err
		}
	}

	src := &savingTokenSource{
		path: tokenPath,
		src:  config.TokenSource(ctx, token),
		last: token,
	}
	return oauth2.NewClient(ctx, src), nil
}

// savingTokenSource persists the token cache whenever the wrapped source
// hands back a refreshed token.
type savingTokenSource struct {
	path string
	src  oauth2.TokenSource
	last *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.last == nil || token.AccessToken != s.last.AccessToken {
		if err := saveToken(s.path, token); err != nil {
			return nil, err
		}
		s.last = token
	}
	return token, nil
}

// tokenFromWeb runs the interactive authorization flow: print the consent
// URL, read the authorization code from stdin, exchange it for a token.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("reading authorization code: %w", err)
	}

	token, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return token, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("caching oauth token: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("caching oauth token: %w", err)
	}
	return nil
}
