// Package pipeline turns PDF bytes into reconstructed price tables.
//
// Extraction failures are reported as *ExtractionError, matched by
// errors.Is(err, ErrExtraction). A document without tables is not an error:
// the returned Result is simply empty.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pyhub-apps/diamondprice-golang/pkg/pdf"
	"github.com/pyhub-apps/diamondprice-golang/pkg/rapaport"
)

// ErrExtraction is the category of errors raised while reading the document
var ErrExtraction = errors.New("text extraction failed")

// ExtractionError reports that the text of a document could not be read.
// The reconstructor is never run when this error is returned.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", ErrExtraction, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, ErrExtraction, e.Err)
}

// Unwrap exposes both the category and the underlying cause
func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtraction, e.Err}
}

// TextSource returns the text of every page of a document, in page order
type TextSource interface {
	PageTexts(ctx context.Context, data []byte) ([]string, error)
}

// PDFSource reads page texts with the pdf package
type PDFSource struct {
	Password    string
	TextOptions []pdf.TextExtractionOption
}

// PageTexts implements TextSource
func (s PDFSource) PageTexts(ctx context.Context, data []byte) ([]string, error) {
	var opts []pdf.OpenOption
	if s.Password != "" {
		opts = append(opts, pdf.WithPassword(s.Password))
	}

	doc, err := pdf.OpenBytes(data, opts...)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	texts := make([]string, 0, doc.PageCount())
	for _, page := range doc.GetPages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		texts = append(texts, page.ExtractText(s.TextOptions...))
	}
	return texts, nil
}

// Pipeline wires a text source to a reconstructor
type Pipeline struct {
	source        TextSource
	reconstructor *rapaport.Reconstructor
	logger        *zap.Logger
}

// Option is a function that modifies a Pipeline
type Option func(*Pipeline)

// WithSource replaces the text source
func WithSource(source TextSource) Option {
	return func(p *Pipeline) {
		p.source = source
	}
}

// WithReconstructor replaces the table reconstructor
func WithReconstructor(r *rapaport.Reconstructor) Option {
	return func(p *Pipeline) {
		p.reconstructor = r
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Pipeline reading PDFs with default rules
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		source:        PDFSource{},
		reconstructor: rapaport.New(),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lines extracts the document text and returns it as trimmed lines, the
// exact input the reconstructor sees
func (p *Pipeline) Lines(ctx context.Context, data []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts, err := p.source.PageTexts(ctx, data)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, &ExtractionError{Err: err}
	}

	lines := SplitLines(JoinPages(texts))
	p.logger.Debug("extracted text", zap.Int("pages", len(texts)), zap.Int("lines", len(lines)))
	return lines, nil
}

// Extract reads the document and reconstructs its tables
func (p *Pipeline) Extract(ctx context.Context, data []byte) (*rapaport.Result, error) {
	lines, err := p.Lines(ctx, data)
	if err != nil {
		return nil, err
	}

	result := p.reconstructor.Reconstruct(lines)
	p.logger.Debug("reconstructed tables", zap.Int("tables", result.Len()))
	return result, nil
}

// ExtractFile reads the document at path and reconstructs its tables
func (p *Pipeline) ExtractFile(ctx context.Context, path string) (*rapaport.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExtractionError{Source: path, Err: err}
	}

	result, err := p.Extract(ctx, data)
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		extractionErr.Source = path
	}
	return result, err
}

// JoinPages concatenates page texts with a newline between pages
func JoinPages(texts []string) string {
	return strings.Join(texts, "\n")
}

// SplitLines splits text into lines trimmed of surrounding whitespace
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
