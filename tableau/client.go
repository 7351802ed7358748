package tableau

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const defaultPageSize = 100

// Client is a Tableau REST API client authenticated with a personal access
// token. It owns its session state exclusively and is not safe for concurrent
// use. The zero session (before SignIn, after SignOut) rejects every
// session-requiring operation with ErrNotSignedIn.
type Client struct {
	Config     Config
	HTTPClient *http.Client

	token  string
	siteID string
}

// NewClient creates a Tableau client. No network call is made until SignIn.
func NewClient(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	cfg.Server = strings.TrimRight(cfg.Server, "/")
	return &Client{
		Config:     cfg,
		HTTPClient: &http.Client{},
	}
}

// SignedIn reports whether the client holds an active session.
func (c *Client) SignedIn() bool {
	return c.token != "" && c.siteID != ""
}

func (c *Client) buildURL(endpoint string) string {
	return fmt.Sprintf("%s/api/%s/%s", c.Config.Server, c.Config.APIVersion, endpoint)
}

type signInRequest struct {
	XMLName     xml.Name          `xml:"tsRequest"`
	Credentials signInCredentials `xml:"credentials"`
}

type signInCredentials struct {
	TokenName   string     `xml:"personalAccessTokenName,attr"`
	TokenSecret string     `xml:"personalAccessTokenSecret,attr"`
	Site        signInSite `xml:"site"`
}

type signInSite struct {
	ContentURL string `xml:"contentUrl,attr"`
}

type signInResponse struct {
	Credentials *struct {
		Token string `xml:"token,attr"`
		Site  struct {
			ID string `xml:"id,attr"`
		} `xml:"site"`
	} `xml:"credentials"`
}

// SignIn authenticates with the configured personal access token and stores
// the session token and site id together. It fails if the response has no
// credentials element, leaving the session state untouched.
func (c *Client) SignIn(ctx context.Context) error {
	payload, err := xml.Marshal(signInRequest{
		Credentials: signInCredentials{
			TokenName:   c.Config.TokenName,
			TokenSecret: c.Config.TokenSecret,
			Site:        signInSite{ContentURL: c.Config.SiteContentURL},
		},
	})
	if err != nil {
		return fmt.Errorf("marshaling signin request: %w", err)
	}

	body, err := c.do(ctx, "POST", c.buildURL("auth/signin"), bytes.NewReader(payload))
	if err != nil {
		return err
	}

	var resp signInResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("parsing signin response: %w", err)
	}
	if resp.Credentials == nil || resp.Credentials.Token == "" {
		return fmt.Errorf("no credentials in signin response: %s", string(body))
	}

	c.token = resp.Credentials.Token
	c.siteID = resp.Credentials.Site.ID
	slog.Debug("tableau signin", "site", c.siteID)
	return nil
}

// SignOut notifies the server and clears the session. It is a no-op when no
// session is active.
func (c *Client) SignOut(ctx context.Context) error {
	if !c.SignedIn() {
		return nil
	}
	_, err := c.do(ctx, "POST", c.buildURL("auth/signout"), nil)
	c.token = ""
	c.siteID = ""
	if err != nil {
		return fmt.Errorf("signing out: %w", err)
	}
	return nil
}

// Session signs in, runs fn, and signs out unconditionally on every exit path,
// returning fn's error (sign-out errors are dropped in favour of fn's).
func (c *Client) Session(ctx context.Context, fn func(*Client) error) error {
	if err := c.SignIn(ctx); err != nil {
		return err
	}
	defer c.SignOut(ctx)
	return fn(c)
}

type workbooksResponse struct {
	Pagination struct {
		TotalAvailable int `xml:"totalAvailable,attr"`
	} `xml:"pagination"`
	Workbooks []struct {
		ID      string `xml:"id,attr"`
		Name    string `xml:"name,attr"`
		Project struct {
			Name string `xml:"name,attr"`
		} `xml:"project"`
		Owner struct {
			Name string `xml:"name,attr"`
		} `xml:"owner"`
	} `xml:"workbooks>workbook"`
}

// ListWorkbooks returns every workbook on the signed-in site, in server order.
// It pages through the listing endpoint until the accumulated count reaches
// the server's totalAvailable. A failed page aborts the whole listing.
func (c *Client) ListWorkbooks(ctx context.Context, pageSize int) ([]Workbook, error) {
	if !c.SignedIn() {
		return nil, ErrNotSignedIn
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var workbooks []Workbook
	for pageNumber := 1; ; pageNumber++ {
		u := c.buildURL(fmt.Sprintf("sites/%s/workbooks", c.siteID))
		q := url.Values{}
		q.Set("pageSize", strconv.Itoa(pageSize))
		q.Set("pageNumber", strconv.Itoa(pageNumber))

		body, err := c.do(ctx, "GET", u+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}

		var resp workbooksResponse
		if err := xml.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("parsing workbooks page %d: %w", pageNumber, err)
		}

		for _, wb := range resp.Workbooks {
			workbooks = append(workbooks, Workbook{
				ID:          wb.ID,
				Name:        wb.Name,
				ProjectName: wb.Project.Name,
				OwnerName:   wb.Owner.Name,
			})
		}

		if len(workbooks) >= resp.Pagination.TotalAvailable {
			break
		}
	}
	return workbooks, nil
}

// DownloadWorkbookPDF exports a workbook as PDF and writes the raw response
// body to outputPath.
func (c *Client) DownloadWorkbookPDF(ctx context.Context, workbookID, outputPath string, opts PDFExportOptions) error {
	if !c.SignedIn() {
		return ErrNotSignedIn
	}

	pageType := opts.PageType
	if pageType == "" {
		pageType = PageTypeLetter
	}
	orientation := opts.Orientation
	if orientation == "" {
		orientation = OrientationPortrait
	}

	q := url.Values{}
	q.Set("type", string(pageType))
	q.Set("orientation", string(orientation))
	if opts.MaxAge > 0 {
		q.Set("maxAge", strconv.Itoa(opts.MaxAge))
	}
	for field, value := range opts.Filters {
		q.Set("vf_"+field, value)
	}

	u := c.buildURL(fmt.Sprintf("sites/%s/workbooks/%s/pdf", c.siteID, workbookID))
	return c.downloadToFile(ctx, u+"?"+q.Encode(), outputPath)
}

// DownloadWorkbookPowerPoint exports a workbook as a PowerPoint file and
// writes the raw response body to outputPath. maxAge in minutes; 0 omits the
// parameter.
func (c *Client) DownloadWorkbookPowerPoint(ctx context.Context, workbookID, outputPath string, maxAge int) error {
	if !c.SignedIn() {
		return ErrNotSignedIn
	}

	u := c.buildURL(fmt.Sprintf("sites/%s/workbooks/%s/powerpoint", c.siteID, workbookID))
	if maxAge > 0 {
		q := url.Values{}
		q.Set("maxAge", strconv.Itoa(maxAge))
		u += "?" + q.Encode()
	}
	return c.downloadToFile(ctx, u, outputPath)
}

func (c *Client) downloadToFile(ctx context.Context, url, outputPath string) error {
	body, err := c.do(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, body, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	slog.Debug("tableau export written", "path", outputPath, "bytes", len(body))
	return nil
}

// do issues one blocking request and returns the response body. Non-2xx
// responses become *APIError. There is no retry.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml")
	if c.token != "" {
		req.Header.Set("X-Tableau-Auth", c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tableau request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

type errorResponse struct {
	Err *struct {
		Code    string `xml:"code,attr"`
		Summary string `xml:"summary"`
		Detail  string `xml:"detail"`
	} `xml:"error"`
}

func parseAPIError(statusCode int, body []byte) error {
	var resp errorResponse
	if xml.Unmarshal(body, &resp) == nil && resp.Err != nil {
		return &APIError{
			StatusCode: statusCode,
			Code:       resp.Err.Code,
			Summary:    resp.Err.Summary,
			Detail:     resp.Err.Detail,
		}
	}
	return &APIError{StatusCode: statusCode, Detail: string(body)}
}
