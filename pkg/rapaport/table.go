package rapaport

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Row is one price row in the order its values appeared on the source line
type Row []float64

// Table represents a reconstructed price table
type Table struct {
	ColorGrades []string `json:"colorGrades"`
	Rows        []Row    `json:"rows"`
}

// Width returns the number of values in the widest row
func (t *Table) Width() int {
	width := 0
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Result maps table names to tables, keeping the order in which each name
// was first committed.
type Result struct {
	names  []string
	tables map[string]*Table
}

// NewResult creates an empty result
func NewResult() *Result {
	return &Result{tables: make(map[string]*Table)}
}

// commit stores a table under name. A name that is already present keeps
// its position and has its contents replaced.
func (r *Result) commit(name string, grades []string, rows []Row) {
	t := &Table{
		ColorGrades: slices.Clone(grades),
		Rows:        rows,
	}
	if t.ColorGrades == nil {
		t.ColorGrades = []string{}
	}
	if _, ok := r.tables[name]; !ok {
		r.names = append(r.names, name)
	}
	r.tables[name] = t
}

// Len returns the number of tables
func (r *Result) Len() int {
	return len(r.names)
}

// Empty reports whether no table was found
func (r *Result) Empty() bool {
	return r.Len() == 0
}

// Names returns table names in commit order
func (r *Result) Names() []string {
	return slices.Clone(r.names)
}

// Get returns the table stored under name
func (r *Result) Get(name string) (*Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Each calls fn for every table in commit order until fn returns false
func (r *Result) Each(fn func(name string, t *Table) bool) {
	for _, name := range r.names {
		if !fn(name, r.tables[name]) {
			return
		}
	}
}

// MarshalJSON encodes the result as a JSON object whose keys follow commit order
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.tables[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
