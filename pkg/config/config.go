// Package config loads extraction settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/pyhub-apps/diamondprice-golang/pkg/pdf"
	"github.com/pyhub-apps/diamondprice-golang/pkg/rapaport"
	"github.com/pyhub-apps/diamondprice-golang/pkg/render"
)

// Config holds every setting of an extraction run
type Config struct {
	Rules      Rules      `yaml:"rules"`
	Extraction Extraction `yaml:"extraction"`
	Output     Output     `yaml:"output"`
}

// Rules mirrors rapaport.Rules
type Rules struct {
	TitleMarker        string   `yaml:"title_marker"`
	GradeMarkers       []string `yaml:"grade_markers"`
	GradeSymbols       []string `yaml:"grade_symbols"`
	MinRowTokens       int      `yaml:"min_row_tokens"`
	ResetGradesOnTitle bool     `yaml:"reset_grades_on_title"`
	RejectEmptyNames   bool     `yaml:"reject_empty_names"`
}

// Extraction controls how text is read from the PDF
type Extraction struct {
	Password    string  `yaml:"password"`
	XTolerance  float64 `yaml:"x_tolerance"`
	YTolerance  float64 `yaml:"y_tolerance"`
	UnicodeNorm string  `yaml:"unicode_norm"`
}

// Output controls rendering
type Output struct {
	Format    string `yaml:"format"`
	Precision int    `yaml:"precision"`
	Color     bool   `yaml:"color"`
}

// Default returns the settings used when no file is given
func Default() *Config {
	rules := rapaport.DefaultRules()
	return &Config{
		Rules: Rules{
			TitleMarker:  rules.TitleMarker,
			GradeMarkers: rules.GradeMarkers,
			GradeSymbols: rules.GradeSymbols,
			MinRowTokens: rules.MinRowTokens,
		},
		Extraction: Extraction{
			XTolerance: pdf.DefaultXTolerance,
			YTolerance: pdf.DefaultYTolerance,
		},
		Output: Output{
			Format:    render.FormatText,
			Precision: render.DefaultPrecision,
		},
	}
}

// Load reads a YAML file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable
func (c *Config) Validate() error {
	var errs []error

	if c.Rules.TitleMarker == "" {
		errs = append(errs, errors.New("rules.title_marker must not be empty"))
	}
	if len(c.Rules.GradeMarkers) == 0 {
		errs = append(errs, errors.New("rules.grade_markers must not be empty"))
	}
	if c.Rules.MinRowTokens < 1 {
		errs = append(errs, fmt.Errorf("rules.min_row_tokens must be at least 1, got %d", c.Rules.MinRowTokens))
	}
	if c.Extraction.XTolerance < 0 || c.Extraction.YTolerance < 0 {
		errs = append(errs, errors.New("extraction tolerances must not be negative"))
	}
	if !pdf.ValidNormForm(c.Extraction.UnicodeNorm) {
		errs = append(errs, fmt.Errorf("extraction.unicode_norm %q is not one of NFC, NFD, NFKC, NFKD", c.Extraction.UnicodeNorm))
	}
	if c.Output.Format != render.FormatText && c.Output.Format != render.FormatJSON {
		errs = append(errs, fmt.Errorf("output.format %q is not text or json", c.Output.Format))
	}
	if c.Output.Precision < 0 {
		errs = append(errs, fmt.Errorf("output.precision must not be negative, got %d", c.Output.Precision))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ReconstructorRules converts the rule settings for the reconstructor
func (c *Config) ReconstructorRules() rapaport.Rules {
	return rapaport.Rules{
		TitleMarker:        c.Rules.TitleMarker,
		GradeMarkers:       c.Rules.GradeMarkers,
		GradeSymbols:       c.Rules.GradeSymbols,
		MinRowTokens:       c.Rules.MinRowTokens,
		ResetGradesOnTitle: c.Rules.ResetGradesOnTitle,
		RejectEmptyNames:   c.Rules.RejectEmptyNames,
	}
}

// TextOptions converts the extraction settings for pdf.Page.ExtractText
func (c *Config) TextOptions() []pdf.TextExtractionOption {
	return []pdf.TextExtractionOption{
		pdf.WithXTolerance(c.Extraction.XTolerance),
		pdf.WithYTolerance(c.Extraction.YTolerance),
		pdf.WithUnicodeNorm(c.Extraction.UnicodeNorm),
	}
}
