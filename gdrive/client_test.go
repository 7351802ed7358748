package gdrive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	service, err := drive.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("creating drive service: %v", err)
	}
	return New(service)
}

func TestDetectMIMEType(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"foo.png", "image/png"},
		{"foo.PNG", "image/png"},
		{"foo.jpg", "image/jpeg"},
		{"foo.jpeg", "image/jpeg"},
		{"foo.gif", "image/gif"},
		{"foo.webp", "image/webp"},
		{"report.pdf", "application/pdf"},
		{"deck.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
		{"foo.xyz", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}
	for _, tc := range cases {
		if got := DetectMIMEType(tc.path); got != tc.want {
			t.Errorf("DetectMIMEType(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestUploadFileMissingPathFailsBeforeNetwork(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected network call: %s %s", r.Method, r.URL)
	})
	c := newTestClient(t, handler)

	_, err := c.UploadFile(context.Background(), filepath.Join(t.TempDir(), "missing.png"), UploadOptions{})
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestUploadFileDefaultsNameAndMIMEType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		json.NewEncoder(w).Encode(map[string]string{
			"id":          "file-1",
			"name":        "chart.png",
			"webViewLink": "https://drive.test/file-1",
		})
	})
	c := newTestClient(t, mux)

	got, err := c.UploadFile(context.Background(), path, UploadOptions{FolderID: "folder-9"})
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if got.ID != "file-1" || got.WebViewLink != "https://drive.test/file-1" {
		t.Fatalf("unexpected result: %+v", got)
	}

	if !strings.Contains(gotBody, `"chart.png"`) {
		t.Error("upload metadata must default the name to the local filename")
	}
	if !strings.Contains(gotBody, `"folder-9"`) {
		t.Error("upload metadata must carry the parent folder")
	}
	if !strings.Contains(gotBody, "image/png") {
		t.Error("media part must carry the inferred image/png type")
	}
	if !strings.Contains(gotBody, "png-bytes") {
		t.Error("media part must carry the file content")
	}
}

func TestCreateFolder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		var meta drive.File
		if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
			t.Errorf("decoding folder metadata: %v", err)
		}
		if meta.MimeType != folderMIMEType {
			t.Errorf("expected folder MIME type, got %q", meta.MimeType)
		}
		if len(meta.Parents) != 1 || meta.Parents[0] != "parent-1" {
			t.Errorf("expected parent folder, got %v", meta.Parents)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "folder-2", "name": meta.Name})
	})
	c := newTestClient(t, mux)

	got, err := c.CreateFolder(context.Background(), "exports", "parent-1")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if got.ID != "folder-2" || got.Name != "exports" {
		t.Fatalf("unexpected folder: %+v", got)
	}
}

func TestListFilesQueryBuilding(t *testing.T) {
	cases := []struct {
		name  string
		query ListQuery
		wantQ string
	}{
		{
			name:  "folder and mime",
			query: ListQuery{FolderID: "folder-1", MimeType: "image/png"},
			wantQ: "'folder-1' in parents and mimeType='image/png' and trashed=false",
		},
		{
			name:  "folder only",
			query: ListQuery{FolderID: "folder-1"},
			wantQ: "'folder-1' in parents and trashed=false",
		},
		{
			name:  "unconstrained still excludes trashed",
			query: ListQuery{},
			wantQ: "trashed=false",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotQ string
			mux := http.NewServeMux()
			mux.HandleFunc("GET /files", func(w http.ResponseWriter, r *http.Request) {
				gotQ = r.URL.Query().Get("q")
				json.NewEncoder(w).Encode(map[string]any{
					"files": []map[string]string{
						{"id": "f-1", "name": "a.png", "mimeType": "image/png"},
					},
				})
			})
			c := newTestClient(t, mux)

			files, err := c.ListFiles(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("ListFiles failed: %v", err)
			}
			if gotQ != tc.wantQ {
				t.Fatalf("query = %q, want %q", gotQ, tc.wantQ)
			}
			if len(files) != 1 || files[0].MimeType != "image/png" {
				t.Fatalf("unexpected files: %+v", files)
			}
		})
	}
}

func shareServer(t *testing.T, gotPermission *drive.Permission) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files/file-1/permissions", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(gotPermission); err != nil {
			t.Errorf("decoding permission: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "perm-1"})
	})
	mux.HandleFunc("GET /files/file-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"webViewLink": "https://drive.test/file-1"})
	})
	return mux
}

func TestShareFileAnyoneNeverAttachesEmail(t *testing.T) {
	var gotPermission drive.Permission
	c := newTestClient(t, shareServer(t, &gotPermission))

	link, err := c.ShareFile(context.Background(), "file-1", RoleReader, GranteeAnyone, "someone@example.com")
	if err != nil {
		t.Fatalf("ShareFile failed: %v", err)
	}
	if link != "https://drive.test/file-1" {
		t.Fatalf("unexpected link %q", link)
	}
	if gotPermission.EmailAddress != "" {
		t.Fatalf("anyone grant must not carry an email, got %q", gotPermission.EmailAddress)
	}
	if gotPermission.Role != "reader" || gotPermission.Type != "anyone" {
		t.Fatalf("unexpected permission: %+v", gotPermission)
	}
}

func TestShareFileUserAttachesEmail(t *testing.T) {
	var gotPermission drive.Permission
	c := newTestClient(t, shareServer(t, &gotPermission))

	if _, err := c.ShareFile(context.Background(), "file-1", RoleWriter, GranteeUser, "someone@example.com"); err != nil {
		t.Fatalf("ShareFile failed: %v", err)
	}
	if gotPermission.EmailAddress != "someone@example.com" {
		t.Fatalf("user grant must carry the email, got %q", gotPermission.EmailAddress)
	}
}

func TestShareFileRejectsInvalidEnums(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected network call: %s %s", r.Method, r.URL)
	})
	c := newTestClient(t, handler)

	if _, err := c.ShareFile(context.Background(), "file-1", Role("owner"), GranteeAnyone, ""); err == nil {
		t.Fatal("expected error for invalid role")
	}
	if _, err := c.ShareFile(context.Background(), "file-1", RoleReader, GranteeType("everyone"), ""); err == nil {
		t.Fatal("expected error for invalid grantee type")
	}
}

func TestUploadFileSurfacesAPIError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"quota exceeded"}}`)
	})
	c := newTestClient(t, mux)

	if _, err := c.UploadFile(context.Background(), path, UploadOptions{}); err == nil {
		t.Fatal("expected error from 403 response")
	}
}
