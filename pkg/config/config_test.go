package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pyhub-apps/diamondprice-golang/pkg/rapaport"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}
	if !reflect.DeepEqual(cfg.ReconstructorRules(), rapaport.DefaultRules()) {
		t.Errorf("Expected default rules, got %+v", cfg.ReconstructorRules())
	}
	if len(cfg.TextOptions()) != 3 {
		t.Errorf("Expected 3 text options, got %d", len(cfg.TextOptions()))
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
rules:
  title_marker: "PRICE LIST :"
  grade_markers: [K-L, M-N]
  min_row_tokens: 6
  reset_grades_on_title: true
extraction:
  y_tolerance: 5
  unicode_norm: NFKC
output:
  format: json
  precision: 2
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rules := cfg.ReconstructorRules()
	if rules.TitleMarker != "PRICE LIST :" {
		t.Errorf("Unexpected title marker %q", rules.TitleMarker)
	}
	if !reflect.DeepEqual(rules.GradeMarkers, []string{"K-L", "M-N"}) {
		t.Errorf("Unexpected grade markers %v", rules.GradeMarkers)
	}
	if rules.MinRowTokens != 6 || !rules.ResetGradesOnTitle {
		t.Errorf("Unexpected rules %+v", rules)
	}
	if len(rules.GradeSymbols) != 11 {
		t.Errorf("Expected default grade symbols to be kept, got %v", rules.GradeSymbols)
	}
	if cfg.Extraction.YTolerance != 5 || cfg.Extraction.XTolerance != 3 {
		t.Errorf("Unexpected tolerances %+v", cfg.Extraction)
	}
	if cfg.Output.Format != "json" || cfg.Output.Precision != 2 {
		t.Errorf("Unexpected output %+v", cfg.Output)
	}
}

func TestParseInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		data    string
		message string
	}{
		{name: "empty marker", data: "rules:\n  title_marker: \"\"\n", message: "title_marker"},
		{name: "no grade markers", data: "rules:\n  grade_markers: []\n", message: "grade_markers"},
		{name: "zero tokens", data: "rules:\n  min_row_tokens: 0\n", message: "min_row_tokens"},
		{name: "negative tolerance", data: "extraction:\n  x_tolerance: -1\n", message: "tolerances"},
		{name: "unknown norm", data: "extraction:\n  unicode_norm: NFX\n", message: "unicode_norm"},
		{name: "unknown format", data: "output:\n  format: xml\n", message: "output.format"},
		{name: "negative precision", data: "output:\n  precision: -2\n", message: "precision"},
		{name: "unknown field", data: "rules:\n  title: x\n", message: "failed to parse"},
		{name: "bad yaml", data: "rules: [\n", message: "failed to parse"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Errorf("Expected error mentioning %q, got %v", tc.message, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rapaport.yaml")
	if err := os.WriteFile(path, []byte("output:\n  precision: 0\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Precision != 0 {
		t.Errorf("Expected precision 0, got %d", cfg.Output.Precision)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}
}
