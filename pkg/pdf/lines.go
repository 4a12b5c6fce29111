package pdf

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Default tolerances for grouping fragments into lines
const (
	DefaultXTolerance = 3.0
	DefaultYTolerance = 3.0
)

// LineOrganizer groups text fragments into lines
type LineOrganizer struct {
	xTolerance float64 // Horizontal gap that counts as a word break
	yTolerance float64 // Vertical distance that still counts as the same line
}

// NewLineOrganizer creates a line organizer with default tolerances
func NewLineOrganizer() *LineOrganizer {
	return &LineOrganizer{
		xTolerance: DefaultXTolerance,
		yTolerance: DefaultYTolerance,
	}
}

// SetTolerances sets the tolerances for text grouping
func (lo *LineOrganizer) SetTolerances(xTol, yTol float64) {
	lo.xTolerance = xTol
	lo.yTolerance = yTol
}

// OrganizeText joins the lines of fragments with newlines, top line first
func (lo *LineOrganizer) OrganizeText(fragments []Fragment) string {
	return strings.Join(lo.Lines(fragments), "\n")
}

// Lines returns one string per line, top to bottom
func (lo *LineOrganizer) Lines(fragments []Fragment) []string {
	if len(fragments) == 0 {
		return nil
	}

	groups := lo.groupIntoLines(lo.sortFragments(fragments))

	lines := make([]string, 0, len(groups))
	for _, group := range groups {
		lines = append(lines, lo.lineText(group))
	}
	return lines
}

// sortFragments orders fragments top to bottom. Fragments at the same height
// keep their content-stream order.
func (lo *LineOrganizer) sortFragments(fragments []Fragment) []Fragment {
	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y // PDF coordinates: Y increases upward
	})

	return sorted
}

// groupIntoLines splits sorted fragments wherever the Y position moves more
// than the tolerance away from the first fragment of the current line
func (lo *LineOrganizer) groupIntoLines(fragments []Fragment) [][]Fragment {
	var lines [][]Fragment
	var currentLine []Fragment

	currentY := fragments[0].Y

	for _, f := range fragments {
		if math.Abs(f.Y-currentY) > lo.yTolerance {
			if len(currentLine) > 0 {
				lines = append(lines, currentLine)
			}
			currentLine = []Fragment{f}
			currentY = f.Y
		} else {
			currentLine = append(currentLine, f)
		}
	}

	if len(currentLine) > 0 {
		lines = append(lines, currentLine)
	}

	return lines
}

// lineText orders a line left to right and inserts a space at every gap
// wider than the horizontal tolerance
func (lo *LineOrganizer) lineText(line []Fragment) string {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X < line[j].X
	})

	var result strings.Builder
	var lastEnd float64
	var lastText string

	for i, f := range line {
		if i > 0 && f.X-lastEnd > lo.xTolerance &&
			!strings.HasSuffix(lastText, " ") && !strings.HasPrefix(f.Text, " ") {
			result.WriteString(" ")
		}
		result.WriteString(f.Text)
		if i == 0 {
			lastEnd = f.End()
		} else {
			lastEnd = math.Max(lastEnd, f.End())
		}
		lastText = f.Text
	}

	return result.String()
}

// normalize applies a Unicode normalization form
func normalize(form, text string) string {
	switch form {
	case NormNFC:
		return norm.NFC.String(text)
	case NormNFD:
		return norm.NFD.String(text)
	case NormNFKC:
		return norm.NFKC.String(text)
	case NormNFKD:
		return norm.NFKD.String(text)
	default:
		return text
	}
}
