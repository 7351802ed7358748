package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ConfigFileIsDirectory(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("VIZSHARE_CONFIG_DIR", tmp)

	cfgPath := filepath.Join(tmp, "config.json")
	if err := os.Mkdir(cfgPath, 0o755); err != nil {
		t.Fatalf("setup config dir: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatalf("expected read error when config file is a directory")
	} else if os.IsNotExist(err) {
		t.Fatalf("expected non-ENOENT error, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("VIZSHARE_CONFIG_DIR", t.TempDir())

	want := Config{
		Server:            "https://tableau.example.com",
		SiteContentURL:    "my-site",
		TokenName:         "ci-token",
		TokenSecret:       "secret",
		APIVersion:        "3.21",
		GoogleCredentials: "/etc/vizshare/sa.json",
		DriveFolderID:     "folder-1",
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	t.Setenv("VIZSHARE_CONFIG_DIR", t.TempDir())

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != (Config{}) {
		t.Fatalf("expected zero config, got %+v", got)
	}
}

func TestDeleteToleratesMissingFile(t *testing.T) {
	t.Setenv("VIZSHARE_CONFIG_DIR", t.TempDir())

	if err := Delete(); err != nil {
		t.Fatalf("Delete of missing config should succeed, got %v", err)
	}

	if err := Save(Config{Server: "https://tableau.example.com"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != (Config{}) {
		t.Fatalf("expected config gone after delete, got %+v", got)
	}
}
