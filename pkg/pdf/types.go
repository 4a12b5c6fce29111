package pdf

import (
	"fmt"
	"strings"
)

// Metadata represents PDF document metadata
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
}

// Fragment is a run of text placed on the page. Coordinates are PDF user
// space: X grows to the right and Y grows upward from the bottom edge.
type Fragment struct {
	Text     string
	Font     string
	FontSize float64
	X        float64
	Y        float64
	Width    float64
}

// End returns the X coordinate where the fragment stops
func (f Fragment) End() float64 {
	return f.X + f.Width
}

// Unicode normalization forms accepted by WithUnicodeNorm
const (
	NormNone = ""
	NormNFC  = "NFC"
	NormNFD  = "NFD"
	NormNFKC = "NFKC"
	NormNFKD = "NFKD"
)

// ValidNormForm reports whether form is a supported normalization form
func ValidNormForm(form string) bool {
	switch strings.ToUpper(form) {
	case NormNone, NormNFC, NormNFD, NormNFKC, NormNFKD:
		return true
	}
	return false
}

// TextExtractionOption is a function that modifies text extraction behavior
type TextExtractionOption func(*textExtractionConfig)

type textExtractionConfig struct {
	XTolerance  float64
	YTolerance  float64
	UnicodeNorm string
}

func newTextExtractionConfig(opts []TextExtractionOption) *textExtractionConfig {
	config := &textExtractionConfig{
		XTolerance: DefaultXTolerance,
		YTolerance: DefaultYTolerance,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithXTolerance sets the horizontal gap above which a space is inserted
func WithXTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithYTolerance sets the vertical distance within which fragments share a line
func WithYTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.YTolerance = tolerance
	}
}

// WithUnicodeNorm applies a Unicode normalization form to extracted text
func WithUnicodeNorm(form string) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.UnicodeNorm = strings.ToUpper(form)
	}
}

// OpenOption is a function that modifies how a document is opened
type OpenOption func(*openConfig)

type openConfig struct {
	Password string
}

// WithPassword sets the password used for encrypted documents
func WithPassword(password string) OpenOption {
	return func(c *openConfig) {
		c.Password = password
	}
}

// textPage is a page whose fragments were read by one of the backends
type textPage struct {
	pageNumber int
	fragments  []Fragment
}

// GetPageNumber returns the page number (1-based)
func (p *textPage) GetPageNumber() int {
	return p.pageNumber
}

// GetFragments returns the positioned text pieces of the page
func (p *textPage) GetFragments() []Fragment {
	return p.fragments
}

// ExtractText returns the page text with one line per text row
func (p *textPage) ExtractText(opts ...TextExtractionOption) string {
	config := newTextExtractionConfig(opts)

	organizer := NewLineOrganizer()
	organizer.SetTolerances(config.XTolerance, config.YTolerance)

	return normalize(config.UnicodeNorm, organizer.OrganizeText(p.fragments))
}

// textDocument is the Document returned by every backend
type textDocument struct {
	backend  string
	pages    []Page
	metadata Metadata
}

// GetMetadata returns the PDF metadata
func (d *textDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPages returns all pages in the document
func (d *textDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *textDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *textDocument) PageCount() int {
	return len(d.pages)
}

// Backend names the library that read the document
func (d *textDocument) Backend() string {
	return d.backend
}

// Close releases resources associated with the document
func (d *textDocument) Close() error {
	d.pages = nil
	return nil
}
