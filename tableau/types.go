package tableau

import (
	"errors"
	"fmt"
)

// DefaultAPIVersion is the Tableau REST API version used when Config.APIVersion is empty.
const DefaultAPIVersion = "3.21"

// ErrNotSignedIn is returned by session-requiring operations before any
// network call is made.
var ErrNotSignedIn = errors.New("not signed in: call SignIn first")

// Config holds the connection details for a Tableau Server or Tableau Cloud
// site. It is immutable once passed to NewClient.
type Config struct {
	Server         string // base URL, e.g. "https://10ax.online.tableau.com"
	SiteContentURL string // the site's content URL ("" for the default site)
	TokenName      string // personal access token name
	TokenSecret    string // personal access token secret
	APIVersion     string // REST API version; DefaultAPIVersion when empty
}

// Workbook is a read-only projection of a workbook entry from the listing
// endpoint. It is rebuilt fresh on every call and never cached.
type Workbook struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProjectName string `json:"project_name,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
}

// PageType is a page size accepted by the PDF export endpoint.
type PageType string

const (
	PageTypeA3        PageType = "A3"
	PageTypeA4        PageType = "A4"
	PageTypeA5        PageType = "A5"
	PageTypeB5        PageType = "B5"
	PageTypeExecutive PageType = "Executive"
	PageTypeFolio     PageType = "Folio"
	PageTypeLedger    PageType = "Ledger"
	PageTypeLegal     PageType = "Legal"
	PageTypeLetter    PageType = "Letter"
	PageTypeNote      PageType = "Note"
	PageTypeQuarto    PageType = "Quarto"
	PageTypeTabloid   PageType = "Tabloid"
)

// ParsePageType validates a page-type string against the fixed Tableau vocabulary.
func ParsePageType(s string) (PageType, error) {
	switch PageType(s) {
	case PageTypeA3, PageTypeA4, PageTypeA5, PageTypeB5, PageTypeExecutive,
		PageTypeFolio, PageTypeLedger, PageTypeLegal, PageTypeLetter,
		PageTypeNote, PageTypeQuarto, PageTypeTabloid:
		return PageType(s), nil
	}
	return "", fmt.Errorf("invalid page type %q", s)
}

// Orientation is a page orientation accepted by the PDF export endpoint.
type Orientation string

const (
	OrientationPortrait  Orientation = "Portrait"
	OrientationLandscape Orientation = "Landscape"
)

// ParseOrientation validates an orientation string.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case OrientationPortrait, OrientationLandscape:
		return Orientation(s), nil
	}
	return "", fmt.Errorf("invalid orientation %q (expected Portrait or Landscape)", s)
}

// PDFExportOptions control the PDF export endpoint's query parameters.
// Zero values fall back to Letter/Portrait with no maxAge and no filters.
type PDFExportOptions struct {
	PageType    PageType
	Orientation Orientation
	MaxAge      int               // minutes; 0 omits the parameter (server default)
	Filters     map[string]string // view filters, sent as vf_<field>=<value>
}

// APIError is a typed error for non-2xx Tableau responses, carrying the HTTP
// status code and the error element parsed from the XML body (raw body when
// the response is not a Tableau error document).
type APIError struct {
	StatusCode int
	Code       string
	Summary    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tableau: API error %d (%s): %s: %s", e.StatusCode, e.Code, e.Summary, e.Detail)
	}
	return fmt.Sprintf("tableau: API error %d: %s", e.StatusCode, e.Detail)
}
