package pdf

// Document represents an opened PDF whose text has been read page by page
type Document interface {
	// GetMetadata returns the PDF metadata
	GetMetadata() Metadata

	// GetPages returns all pages in the document
	GetPages() []Page

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// Backend names the library that read the document
	Backend() string

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page of text
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetFragments returns the positioned text pieces of the page
	GetFragments() []Fragment

	// ExtractText returns the page text with one line per text row
	ExtractText(opts ...TextExtractionOption) string
}
