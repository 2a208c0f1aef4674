// Package exclude holds the path veto rules consulted before a directory
// is enqueued for walking. Two rule shapes are supported: absolute path
// prefixes (the common case for mount points and firmlink duplicates,
// e.g. /System/Volumes/Data) and glob patterns for everything else.
package exclude

import "strings"

// Set is an ordered collection of exclusion rules.
type Set struct {
	prefixes []string
	globs    []*compiledPattern
}

// New creates an empty rule set.
func New() *Set {
	return &Set{}
}

// Add registers a rule. An absolute path without glob metacharacters
// becomes a prefix rule matching the path itself and everything under
// it; anything else is compiled as a glob.
func (s *Set) Add(rule string) error {
	if strings.HasPrefix(rule, "/") && !strings.ContainsAny(rule, "*?[") {
		s.prefixes = append(s.prefixes, strings.TrimRight(rule, "/"))
		return nil
	}
	cp, err := compilePattern(rule)
	if err != nil {
		return err
	}
	s.globs = append(s.globs, cp)
	return nil
}

// AddAll registers every rule, stopping at the first invalid one.
func (s *Set) AddAll(rules []string) error {
	for _, r := range rules {
		if err := s.Add(r); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether the set has no rules.
func (s *Set) Empty() bool {
	return len(s.prefixes) == 0 && len(s.globs) == 0
}

// Match reports whether path is vetoed. path must be absolute.
func (s *Set) Match(path string) bool {
	for _, p := range s.prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	if len(s.globs) == 0 {
		return false
	}
	rel := strings.TrimPrefix(path, "/")
	for _, g := range s.globs {
		if g.match(rel) {
			return true
		}
	}
	return false
}
