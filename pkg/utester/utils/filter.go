package utils

import "strings"

// A filter that matches strings containing a fragment.
type SubstringFilter struct {
	fragment string
}

func NewSubstringFilter(fragment string) *SubstringFilter {
	return &SubstringFilter{fragment}
}

// An empty filter matches everything.
func (f *SubstringFilter) Match(item string) bool {
	return strings.Contains(item, f.fragment)
}

func (f *SubstringFilter) String() string {
	return f.fragment
}

// Splits a `<suite>.<tester>` pattern on its first dot.
//
// For example:
//
//	ParsePattern("foo.bar") == ("foo", "bar")
//	ParsePattern("bar") == ("", "bar")
//	ParsePattern("foo.") == ("foo", "")
//	ParsePattern("a.b.c") == ("a", "b.c")
func ParsePattern(pattern string) (suite string, tester string) {
	suite, tester, found := strings.Cut(pattern, ".")
	if !found {
		return "", pattern
	}
	return suite, tester
}

// Returns the suite and tester filters described by pattern.
func FiltersFromPattern(pattern string) (*SubstringFilter, *SubstringFilter) {
	suite, tester := ParsePattern(pattern)
	return NewSubstringFilter(suite), NewSubstringFilter(tester)
}
