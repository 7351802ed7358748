// Package gdrive is a Google Drive client for uploads, folders, listings and
// sharing, over the drive/v3 API.
package gdrive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/vizshare/vizshare-cli/googleauth"
)

const folderMIMEType = "application/vnd.google-apps.folder"

// ErrFileNotFound is returned by UploadFile before any network call when the
// local path does not exist.
var ErrFileNotFound = errors.New("file not found")

// Role is a permission level for sharing.
type Role string

const (
	RoleReader    Role = "reader"
	RoleWriter    Role = "writer"
	RoleCommenter Role = "commenter"
)

// GranteeType identifies who a sharing grant applies to.
type GranteeType string

const (
	GranteeAnyone GranteeType = "anyone"
	GranteeUser   GranteeType = "user"
	GranteeGroup  GranteeType = "group"
	GranteeDomain GranteeType = "domain"
)

// File describes a Drive file record. WebViewLink is populated by uploads and
// sharing, MimeType by listings.
type File struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mime_type,omitempty"`
	WebViewLink string `json:"web_view_link,omitempty"`
}

// Folder describes a created Drive folder.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client wraps a drive/v3 service. It holds no local state beyond the service
// handle.
type Client struct {
	service *drive.Service
}

// New wraps an existing Drive service.
func New(service *drive.Service) *Client {
	return &Client{service: service}
}

// NewServiceAccount constructs a client from a service account key file.
func NewServiceAccount(ctx context.Context, credentialsPath string) (*Client, error) {
	hc, err := googleauth.ServiceAccountClient(ctx, credentialsPath, googleauth.DriveScope)
	if err != nil {
		return nil, err
	}
	service, err := drive.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	return New(service), nil
}

// NewOAuth constructs a client via the interactive OAuth flow, caching the
// token at tokenPath.
func NewOAuth(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	hc, err := googleauth.OAuthClient(ctx, credentialsPath, tokenPath, googleauth.DriveScope)
	if err != nil {
		return nil, err
	}
	service, err := drive.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	return New(service), nil
}

// UploadOptions override the defaults derived from the local file: Name
// defaults to the base filename and MimeType to the extension table.
type UploadOptions struct {
	Name     string
	FolderID string
	MimeType string
}

// UploadFile uploads a local file in a single non-resumable request. The
// local path is checked before any network call.
func (c *Client) UploadFile(ctx context.Context, path string, opts UploadOptions) (File, error) {
	if _, err := os.Stat(path); err != nil {
		return File{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(path)
	}
	mimeType := opts.MimeType
	if mimeType == "" {
		mimeType = DetectMIMEType(path)
	}

	meta := &drive.File{Name: name}
	if opts.FolderID != "" {
		meta.Parents = []string{opts.FolderID}
	}

	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	created, err := c.service.Files.Create(meta).
		Media(f, googleapi.ContentType(mimeType), googleapi.ChunkSize(0)).
		Fields("id", "name", "webViewLink").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return File{}, fmt.Errorf("uploading %s: %w", name, err)
	}

	slog.Debug("drive upload", "name", created.Name, "id", created.Id)
	return File{ID: created.Id, Name: created.Name, WebViewLink: created.WebViewLink}, nil
}

// CreateFolder creates a folder, optionally inside a parent folder.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (Folder, error) {
	meta := &drive.File{Name: name, MimeType: folderMIMEType}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	created, err := c.service.Files.Create(meta).
		Fields("id", "name").
		Context(ctx).Do()
	if err != nil {
		return Folder{}, fmt.Errorf("creating folder %s: %w", name, err)
	}
	return Folder{ID: created.Id, Name: created.Name}, nil
}

// ListQuery narrows a listing. The "not trashed" constraint always applies.
type ListQuery struct {
	FolderID string
	MimeType string
	PageSize int64 // defaults to 100
}

// ListFiles lists files matching the query and returns id/name/mime-type
// triples.
func (c *Client) ListFiles(ctx context.Context, query ListQuery) ([]File, error) {
	var parts []string
	if query.FolderID != "" {
		parts = append(parts, fmt.Sprintf("'%s' in parents", query.FolderID))
	}
	if query.MimeType != "" {
		parts = append(parts, fmt.Sprintf("mimeType='%s'", query.MimeType))
	}
	parts = append(parts, "trashed=false")

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	result, err := c.service.Files.List().
		Q(strings.Join(parts, " and ")).
		PageSize(pageSize).
		Fields("files(id,name,mimeType)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	files := make([]File, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, File{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
	}
	return files, nil
}

// ShareFile creates a permission grant and returns the file's web view link.
// The email address is attached only for user and group grantees, even when
// one is supplied.
func (c *Client) ShareFile(ctx context.Context, fileID string, role Role, granteeType GranteeType, email string) (string, error) {
	switch role {
	case RoleReader, RoleWriter, RoleCommenter:
	default:
		return "", fmt.Errorf("invalid role %q", role)
	}
	switch granteeType {
	case GranteeAnyone, GranteeUser, GranteeGroup, GranteeDomain:
	default:
		return "", fmt.Errorf("invalid grantee type %q", granteeType)
	}

	permission := &drive.Permission{Role: string(role), Type: string(granteeType)}
	if email != "" && (granteeType == GranteeUser || granteeType == GranteeGroup) {
		permission.EmailAddress = email
	}

	if _, err := c.service.Permissions.Create(fileID, permission).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("creating permission: %w", err)
	}

	file, err := c.service.Files.Get(fileID).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetching web view link: %w", err)
	}
	return file.WebViewLink, nil
}

// UploadImage uploads a local image with service-account auth, optionally
// sharing it publicly, in one call.
func UploadImage(ctx context.Context, imagePath, credentialsPath, folderID string, share bool) (File, error) {
	client, err := NewServiceAccount(ctx, credentialsPath)
	if err != nil {
		return File{}, err
	}
	return client.uploadAndShare(ctx, imagePath, folderID, share)
}

// UploadImageOAuth is UploadImage over the interactive OAuth path.
func UploadImageOAuth(ctx context.Context, imagePath, credentialsPath, tokenPath, folderID string, share bool) (File, error) {
	client, err := NewOAuth(ctx, credentialsPath, tokenPath)
	if err != nil {
		return File{}, err
	}
	return client.uploadAndShare(ctx, imagePath, folderID, share)
}

func (c *Client) uploadAndShare(ctx context.Context, imagePath, folderID string, share bool) (File, error) {
	result, err := c.UploadFile(ctx, imagePath, UploadOptions{FolderID: folderID})
	if err != nil {
		return File{}, err
	}
	if share {
		link, err := c.ShareFile(ctx, result.ID, RoleReader, GranteeAnyone, "")
		if err != nil {
			return File{}, err
		}
		result.WebViewLink = link
	}
	return result, nil
}
