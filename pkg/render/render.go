// Package render formats reconstructed price tables for display.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/pyhub-apps/diamondprice-golang/pkg/rapaport"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultPrecision is the number of decimals shown for each price
const DefaultPrecision = 1

// NoDataMessage is printed by the text renderer for an empty result
const NoDataMessage = "No price data found."

// Renderer writes a result to w
type Renderer interface {
	Render(w io.Writer, result *rapaport.Result) error
}

// New returns the renderer for format
func New(format string, precision int, colored bool) (Renderer, error) {
	switch format {
	case FormatText, "":
		return &TextRenderer{Precision: precision, Color: colored}, nil
	case FormatJSON:
		return &JSONRenderer{Indent: true}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TextRenderer prints each table as aligned columns
type TextRenderer struct {
	// Precision is the number of decimals shown for each value
	Precision int
	// Color makes titles and headers bold
	Color bool
}

// Render implements Renderer
func (r *TextRenderer) Render(w io.Writer, result *rapaport.Result) error {
	if result == nil || result.Empty() {
		_, err := fmt.Fprintln(w, NoDataMessage)
		return err
	}

	bold := color.New(color.Bold)
	if r.Color {
		bold.EnableColor()
	} else {
		bold.DisableColor()
	}

	var err error
	first := true
	result.Each(func(name string, table *rapaport.Table) bool {
		if !first {
			if _, err = fmt.Fprintln(w); err != nil {
				return false
			}
		}
		first = false
		err = r.renderTable(w, bold, name, table)
		return err == nil
	})
	return err
}

func (r *TextRenderer) renderTable(w io.Writer, bold *color.Color, name string, table *rapaport.Table) error {
	cells := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = r.formatValue(v)
		}
		cells = append(cells, line)
	}

	widths := columnWidths(table.ColorGrades, cells)

	if _, err := fmt.Fprintln(w, bold.Sprint(name)); err != nil {
		return err
	}

	if len(table.ColorGrades) > 0 {
		header := padRow(table.ColorGrades, widths, runewidth.FillRight)
		if _, err := fmt.Fprintln(w, bold.Sprint(header)); err != nil {
			return err
		}
	}

	for _, line := range cells {
		if _, err := fmt.Fprintln(w, padRow(line, widths, runewidth.FillLeft)); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) formatValue(v float64) string {
	precision := r.Precision
	if precision < 0 {
		precision = DefaultPrecision
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// columnWidths returns the display width of every column across the header
// and all rows, which need not have the same number of cells
func columnWidths(header []string, rows [][]string) []int {
	var widths []int
	measure := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

func padRow(cells []string, widths []int, fill func(string, int) string) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = fill(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

// JSONRenderer writes the result as a JSON object keyed by table name
type JSONRenderer struct {
	Indent bool
}

// Render implements Renderer
func (r *JSONRenderer) Render(w io.Writer, result *rapaport.Result) error {
	if result == nil {
		result = rapaport.NewResult()
	}
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

// FileResult is the outcome for one input file when several are rendered
// together. Exactly one of Tables and Error is set.
type FileResult struct {
	File   string           `json:"file"`
	Tables *rapaport.Result `json:"tables,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// RenderFiles writes a JSON array with one entry per file, in input order
func (r *JSONRenderer) RenderFiles(w io.Writer, files []FileResult) error {
	if files == nil {
		files = []FileResult{}
	}
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(files)
}
