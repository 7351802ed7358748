package googleauth

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	want := &oauth2.Token{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-xyz",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	if err := saveToken(path, want); err != nil {
		t.Fatalf("saveToken failed: %v", err)
	}

	got, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("tokenFromFile failed: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Fatalf("token mismatch: got %+v", got)
	}

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Mode().Perm() != 0600 {
			t.Fatalf("token cache should be 0600, got %v", fi.Mode().Perm())
		}
	}
}

func TestTokenFromFileMissing(t *testing.T) {
	if _, err := tokenFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing token file")
	}
}

type staticTokenSource struct {
	tokens []*oauth2.Token
	calls  int
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	if s.calls >= len(s.tokens) {
		return nil, errors.New("no more tokens")
	}
	tok := s.tokens[s.calls]
	s.calls++
	return tok, nil
}

func TestSavingTokenSourcePersistsRefreshedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	initial := &oauth2.Token{AccessToken: "old", RefreshToken: "refresh"}
	refreshed := &oauth2.Token{AccessToken: "new", RefreshToken: "refresh"}

	src := &savingTokenSource{
		path: path,
		src:  &staticTokenSource{tokens: []*oauth2.Token{refreshed}},
		last: initial,
	}

	got, err := src.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if got.AccessToken != "new" {
		t.Fatalf("expected refreshed token, got %q", got.AccessToken)
	}

	cached, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("refreshed token was not written to the cache file: %v", err)
	}
	if cached.AccessToken != "new" {
		t.Fatalf("cache holds %q, want %q", cached.AccessToken, "new")
	}
}

func TestSavingTokenSourceSkipsWriteWhenUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	token := &oauth2.Token{AccessToken: "same"}

	src := &savingTokenSource{
		path: path,
		src:  &staticTokenSource{tokens: []*oauth2.Token{token}},
		last: token,
	}

	if _, err := src.Token(); err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("cache file must not be rewritten for an unchanged token")
	}
}
