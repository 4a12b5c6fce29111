package rapaport

import "go.uber.org/zap"

// Default classification settings for RAPAPORT price lists
const (
	DefaultTitleMarker  = "RAPAPORT :"
	DefaultMinRowTokens = 8
)

// Rules controls how lines are classified
type Rules struct {
	// TitleMarker is the substring that identifies a title line
	TitleMarker string

	// GradeMarkers are substrings that identify a colour-grade header line
	GradeMarkers []string

	// GradeSymbols are the single-letter grades kept from a header line
	// alongside any hyphenated token
	GradeSymbols []string

	// MinRowTokens is the minimum number of tokens on a data line
	MinRowTokens int

	// ResetGradesOnTitle clears the colour grades whenever a new title is
	// seen. When false, the last header line carries over to the next table.
	ResetGradesOnTitle bool

	// RejectEmptyNames makes a title with an empty name close the current
	// table without opening a new one.
	RejectEmptyNames bool
}

// DefaultRules returns the rules for RAPAPORT price lists
func DefaultRules() Rules {
	return Rules{
		TitleMarker:  DefaultTitleMarker,
		GradeMarkers: []string{"D-F", "G-H", "I-J"},
		GradeSymbols: []string{"D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N"},
		MinRowTokens: DefaultMinRowTokens,
	}
}

// Option is a function that modifies reconstruction behavior
type Option func(*Reconstructor)

// WithRules replaces the classification rules
func WithRules(rules Rules) Option {
	return func(r *Reconstructor) {
		r.rules = rules
	}
}

// WithTitleMarker sets the substring that identifies a title line
func WithTitleMarker(marker string) Option {
	return func(r *Reconstructor) {
		r.rules.TitleMarker = marker
	}
}

// WithGradeMarkers sets the substrings that identify a colour-grade line
func WithGradeMarkers(markers ...string) Option {
	return func(r *Reconstructor) {
		r.rules.GradeMarkers = markers
	}
}

// WithMinRowTokens sets the minimum token count for a data line
func WithMinRowTokens(n int) Option {
	return func(r *Reconstructor) {
		r.rules.MinRowTokens = n
	}
}

// WithResetGradesOnTitle clears colour grades on every title line
func WithResetGradesOnTitle(enabled bool) Option {
	return func(r *Reconstructor) {
		r.rules.ResetGradesOnTitle = enabled
	}
}

// WithRejectEmptyNames ignores titles whose name is empty
func WithRejectEmptyNames(enabled bool) Option {
	return func(r *Reconstructor) {
		r.rules.RejectEmptyNames = enabled
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reconstructor) {
		if logger != nil {
			r.logger = logger
		}
	}
}
