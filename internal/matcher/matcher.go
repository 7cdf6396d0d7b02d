// Package matcher matches strings against glob or regular expression
// patterns. It backs public path rules on the list server and name
// filters in the CLI.
package matcher

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// PatternType selects how a pattern is interpreted.
type PatternType int

const (
	// Glob uses shell-style patterns (*, ?, []). * does not cross "/".
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto picks Regex when the pattern uses regex-only syntax, else Glob.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher reports whether inputs match one pattern.
type Matcher interface {
	Match(input string) bool
	Pattern() string
	Type() PatternType
}

// Options configures matching.
type Options struct {
	// CaseInsensitive makes matching case-insensitive
	CaseInsensitive bool
	// Anchored adds ^ and $ to regex patterns if not present
	Anchored bool
}

type globMatcher struct {
	pattern string
	glob    string
	fold    bool
}

func (m *globMatcher) Match(input string) bool {
	if m.fold {
		input = strings.ToLower(input)
	}
	ok, _ := path.Match(m.glob, input)
	return ok
}

func (m *globMatcher) Pattern() string   { return m.pattern }
func (m *globMatcher) Type() PatternType { return Glob }

type regexMatcher struct {
	pattern string
	re      *regexp.Regexp
}

func (m *regexMatcher) Match(input string) bool { return m.re.MatchString(input) }
func (m *regexMatcher) Pattern() string         { return m.pattern }
func (m *regexMatcher) Type() PatternType       { return Regex }

// New compiles pattern. Invalid patterns are reported here rather than at
// match time.
func New(patternType PatternType, pattern string, opts ...Options) (Matcher, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if patternType == Auto {
		patternType = detectPatternType(pattern)
	}

	switch patternType {
	case Glob:
		glob := pattern
		if o.CaseInsensitive {
			glob = strings.ToLower(glob)
		}
		if _, err := path.Match(glob, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		return &globMatcher{pattern: pattern, glob: glob, fold: o.CaseInsensitive}, nil
	case Regex:
		expr := pattern
		if o.Anchored {
			if !strings.HasPrefix(expr, "^") {
				expr = "^" + expr
			}
			if !strings.HasSuffix(expr, "$") {
				expr += "$"
			}
		}
		if o.CaseInsensitive && !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		return &regexMatcher{pattern: pattern, re: re}, nil
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}
}

// MustNew is New for patterns known at compile time.
func MustNew(patternType PatternType, pattern string, opts ...Options) Matcher {
	m, err := New(patternType, pattern, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// regexOnly lists syntax that never appears in a glob.
var regexOnly = []string{
	"^", "$", `\d`, `\w`, `\s`, "(?", "{", "}", "+", "|", "(", ")",
}

func detectPatternType(pattern string) PatternType {
	for _, indicator := range regexOnly {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}

// Set matches an input against any of several patterns.
type Set struct {
	matchers []Matcher
}

// NewSet compiles every pattern with the same type and options.
func NewSet(patternType PatternType, patterns []string, opts ...Options) (*Set, error) {
	s := &Set{matchers: make([]Matcher, 0, len(patterns))}
	for _, p := range patterns {
		m, err := New(patternType, p, opts...)
		if err != nil {
			return nil, err
		}
		s.matchers = append(s.matchers, m)
	}
	return s, nil
}

// Match reports whether any pattern matches input. A nil or empty set
// matches nothing.
func (s *Set) Match(input string) bool {
	if s == nil {
		return false
	}
	for _, m := range s.matchers {
		if m.Match(input) {
			return true
		}
	}
	return false
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.matchers)
}

// Filter returns the inputs that match m, in order.
func Filter(m Matcher, inputs ...string) []string {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if m.Match(in) {
			out = append(out, in)
		}
	}
	return out
}
