package rule

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docguard/docguard/pkg/regexcache"
)

// Kind selects the matching strategy for a rule's pattern.
type Kind string

const (
	// KindLiteral matches an exact substring.
	KindLiteral Kind = "literal"

	// KindRegex matches a regular expression against a single line.
	KindRegex Kind = "regex"

	// KindMultiline matches a regular expression against whole-file
	// content, so the pattern may span line boundaries.
	KindMultiline Kind = "multiline"
)

// IsValid reports whether k is a recognized match kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindLiteral, KindRegex, KindMultiline:
		return true
	}
	return false
}

// Span is a half-open [Start, End) byte range inside the matched text.
type Span struct {
	Start int
	End   int
}

// Matcher finds occurrences of a pattern in text. Line matchers receive
// one line at a time; multiline matchers receive whole-file content.
// FindAll returns every non-overlapping occurrence in ascending order,
// which keeps match ordering deterministic for identical inputs.
type Matcher interface {
	FindAll(text string) []Span

	// Multiline reports whether the matcher must be fed whole-file
	// content instead of individual lines.
	Multiline() bool
}

// NewMatcher compiles a pattern into a Matcher for the given kind.
// An uncompilable regex or empty pattern is a setup failure.
func NewMatcher(kind Kind, pattern string) (Matcher, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	switch kind {
	case KindLiteral:
		return literalMatcher(pattern), nil
	case KindRegex, KindMultiline:
		re, err := regexcache.Get(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
		}
		return &regexMatcher{re: re, multiline: kind == KindMultiline}, nil
	default:
		return nil, fmt.Errorf("unknown match kind %q", kind)
	}
}

// literalMatcher matches an exact, case-sensitive substring.
type literalMatcher string

func (m literalMatcher) FindAll(text string) []Span {
	var spans []Span
	needle := string(m)
	off := 0
	for {
		i := strings.Index(text[off:], needle)
		if i < 0 {
			return spans
		}
		start := off + i
		spans = append(spans, Span{Start: start, End: start + len(needle)})
		off = start + len(needle)
	}
}

func (literalMatcher) Multiline() bool { return false }

type regexMatcher struct {
	re        *regexp.Regexp
	multiline bool
}

func (m *regexMatcher) FindAll(text string) []Span {
	locs := m.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, Span{Start: loc[0], End: loc[1]})
	}
	return spans
}

func (m *regexMatcher) Multiline() bool { return m.multiline }
