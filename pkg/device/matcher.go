package device

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultHeaders are the client-identifier headers inspected in order.
// The set mirrors what voice-assistant and mobile clients actually send.
var defaultHeaders = []string{
	"user-agent",
	"x-device-id",
	"x-device-uuid",
	"x-client-id",
}

// Fingerprint describes a trusted-device match.
type Fingerprint struct {
	// Pattern is the allow-list pattern that matched.
	Pattern string

	// Header is the lower-cased header name the value came from.
	Header string

	// Value is the raw header value that matched.
	Value string
}

type compiledPattern struct {
	source string
	re     *regexp.Regexp
}

// Matcher applies an ordered allow-list of client signature patterns.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	headers  []string
	patterns []compiledPattern
}

// Option configures the Matcher.
type Option func(*Matcher)

// WithHeaders overrides the inspected header names. Names are lower-cased;
// empty input keeps the defaults.
func WithHeaders(names ...string) Option {
	return func(m *Matcher) {
		if len(names) == 0 {
			return
		}
		headers := make([]string, 0, len(names))
		for _, n := range names {
			if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
				headers = append(headers, n)
			}
		}
		if len(headers) > 0 {
			m.headers = headers
		}
	}
}

// NewMatcher compiles the ordered pattern set. Patterns match
// case-insensitively as substrings; '*' matches any run of characters and
// '?' matches a single character.
func NewMatcher(patterns []string, opts ...Option) (*Matcher, error) {
	m := &Matcher{headers: defaultHeaders}
	for _, opt := range opts {
		opt(m)
	}

	m.patterns = make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
		m.patterns = append(m.patterns, compiledPattern{source: p, re: re})
	}

	return m, nil
}

// Match returns the first pattern that matches any inspected header value.
// Absence of a match is reported through the boolean, never an error.
func (m *Matcher) Match(headers map[string]string) (Fingerprint, bool) {
	if len(m.patterns) == 0 || len(headers) == 0 {
		return Fingerprint{}, false
	}

	for _, p := range m.patterns {
		for _, name := range m.headers {
			value := headers[name]
			if value == "" {
				continue
			}
			if p.re.MatchString(value) {
				return Fingerprint{Pattern: p.source, Header: name, Value: value}, true
			}
		}
	}

	return Fingerprint{}, false
}

// Patterns returns the configured pattern sources in order, for
// introspection by admin surfaces.
func (m *Matcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	for i, p := range m.patterns {
		out[i] = p.source
	}
	return out
}

// compile translates a wildcard pattern into an unanchored case-insensitive
// regular expression.
func compile(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.Compile(b.String())
}
