// Package rapaport rebuilds RAPAPORT diamond price tables from the flat text
// lines recovered from a price-list PDF.
//
// A table starts at a title line, picks up its colour-grade columns from a
// header line and collects every following price row until the next title or
// the end of input. Lines that fit none of these shapes are skipped.
package rapaport

import (
	"go.uber.org/zap"
)

// State is the scanner state between lines
type State int

const (
	// NoTable means no title has been seen yet (or the last one was rejected)
	NoTable State = iota
	// BuildingTable means rows are being collected for a named table
	BuildingTable
)

// String returns the state name
func (s State) String() string {
	switch s {
	case NoTable:
		return "no-table"
	case BuildingTable:
		return "building-table"
	default:
		return "unknown"
	}
}

// Reconstructor turns text lines into tables. It keeps no state between
// calls and is safe for concurrent use.
type Reconstructor struct {
	rules  Rules
	logger *zap.Logger
}

// New creates a Reconstructor with DefaultRules and the given options applied
func New(opts ...Option) *Reconstructor {
	r := &Reconstructor{
		rules:  DefaultRules(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rules returns the classification rules in use
func (r *Reconstructor) Rules() Rules {
	return r.rules
}

// Reconstruct scans lines once and returns the tables found
func Reconstruct(lines []string) *Result {
	return New().Reconstruct(lines)
}

// Reconstruct scans lines once and returns the tables found. Lines are
// expected to be trimmed already.
func (r *Reconstructor) Reconstruct(lines []string) *Result {
	s := &scan{
		rules:  r.rules,
		logger: r.logger,
		result: NewResult(),
		grades: []string{},
	}
	for _, line := range lines {
		s.feed(line)
	}
	s.flush()
	return s.result
}

// scan holds the state of one Reconstruct call
type scan struct {
	rules  Rules
	logger *zap.Logger
	result *Result

	state  State
	name   string
	rows   []Row
	grades []string
}

func (s *scan) feed(line string) {
	title := s.rules.IsTitle(line)
	if title {
		s.openTable(line)
	}

	if s.rules.IsGradeLine(line) {
		s.grades = s.rules.Grades(line)
		s.logger.Debug("found color grades", zap.Strings("grades", s.grades))
	}

	if !title && s.rules.IsDataLine(line) {
		row := s.rules.Row(line)
		if len(row) == 0 {
			return
		}
		if s.state != BuildingTable {
			s.logger.Debug("dropped data row outside a table", zap.String("line", line))
			return
		}
		s.rows = append(s.rows, row)
		s.logger.Debug("added data row", zap.String("table", s.name), zap.Int("values", len(row)))
	}
}

// openTable commits the current table and starts the one named on line
func (s *scan) openTable(line string) {
	s.flush()

	name, _ := s.rules.TitleName(line)
	s.rows = nil
	if s.rules.ResetGradesOnTitle {
		s.grades = []string{}
	}

	if name == "" && s.rules.RejectEmptyNames {
		s.state = NoTable
		s.name = ""
		s.logger.Debug("ignored title without a name", zap.String("line", line))
		return
	}

	s.state = BuildingTable
	s.name = name
	s.logger.Debug("found table", zap.String("name", name))
}

// flush commits the current table if it has rows
func (s *scan) flush() {
	if s.state != BuildingTable || len(s.rows) == 0 {
		return
	}
	s.result.commit(s.name, s.grades, s.rows)
	s.logger.Debug("committed table",
		zap.String("name", s.name),
		zap.Int("rows", len(s.rows)),
		zap.Int("grades", len(s.grades)))
	s.rows = nil
}
