// Package diamondprice extracts RAPAPORT diamond price tables from PDF price lists
package diamondprice

import (
	"context"

	"github.com/pyhub-apps/diamondprice-golang/pkg/pipeline"
	"github.com/pyhub-apps/diamondprice-golang/pkg/rapaport"
)

// Re-export types from the implementation packages for public API
type (
	Table           = rapaport.Table
	Row             = rapaport.Row
	Result          = rapaport.Result
	Rules           = rapaport.Rules
	Option          = rapaport.Option
	ExtractionError = pipeline.ExtractionError
)

// Re-export option functions
var (
	WithRules              = rapaport.WithRules
	WithTitleMarker        = rapaport.WithTitleMarker
	WithGradeMarkers       = rapaport.WithGradeMarkers
	WithMinRowTokens       = rapaport.WithMinRowTokens
	WithResetGradesOnTitle = rapaport.WithResetGradesOnTitle
	WithRejectEmptyNames   = rapaport.WithRejectEmptyNames
	DefaultRules           = rapaport.DefaultRules
)

// ErrExtraction matches every error caused by an unreadable document
var ErrExtraction = pipeline.ErrExtraction

// Reconstruct rebuilds price tables from already extracted text lines
func Reconstruct(lines []string, opts ...Option) *Result {
	return rapaport.New(opts...).Reconstruct(lines)
}

// ExtractBytes reads an in-memory PDF and reconstructs its price tables
func ExtractBytes(ctx context.Context, data []byte, opts ...Option) (*Result, error) {
	p := pipeline.New(pipeline.WithReconstructor(rapaport.New(opts...)))
	return p.Extract(ctx, data)
}

// ExtractFile reads a PDF file and reconstructs its price tables
func ExtractFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	p := pipeline.New(pipeline.WithReconstructor(rapaport.New(opts...)))
	return p.ExtractFile(ctx, path)
}
