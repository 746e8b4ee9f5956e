// Package rule defines the prohibition rules applied by the scanner:
// a pattern with a match kind, a severity, and an ordered list of
// contextual exceptions that downgrade fail matches to notices.
package rule

import (
	"fmt"
	"regexp"

	"github.com/docguard/docguard/pkg/regexcache"
)

// Exception downgrades a fail match to a notice when its context pattern
// matches the text surrounding the match. Exceptions are evaluated in
// declared order and only the first match applies, so declaration order
// is an observable tie-break.
type Exception struct {
	// Context is a regular expression matched against the line that
	// produced the match plus a window of surrounding lines.
	Context string `yaml:"context" json:"context"`

	// Description explains why this context is permitted. It is carried
	// onto the downgraded match so notices are never silent mysteries.
	Description string `yaml:"description" json:"description"`
}

// Rule is one declarative prohibition on a textual pattern.
type Rule struct {
	ID          string      `yaml:"id" json:"id"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Severity    Severity    `yaml:"severity" json:"severity"`
	Match       Kind        `yaml:"match,omitempty" json:"match,omitempty"`
	Pattern     string      `yaml:"pattern" json:"pattern"`
	Exceptions  []Exception `yaml:"exceptions,omitempty" json:"exceptions,omitempty"`

	// Remediation holds suggested fixes surfaced in the console report.
	Remediation []string `yaml:"remediation,omitempty" json:"remediation,omitempty"`
}

// Validate checks the rule definition without compiling it.
// Exceptions may only downgrade, so they are only legal on fail rules.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule has no id")
	}
	if r.Pattern == "" {
		return fmt.Errorf("rule %q: empty pattern", r.ID)
	}
	if !r.Severity.IsValid() {
		return fmt.Errorf("rule %q: unknown severity %q", r.ID, r.Severity)
	}
	kind := r.Match
	if kind == "" {
		kind = KindRegex
	}
	if !kind.IsValid() {
		return fmt.Errorf("rule %q: unknown match kind %q", r.ID, r.Match)
	}
	if len(r.Exceptions) > 0 && r.Severity != Fail {
		return fmt.Errorf("rule %q: exceptions only downgrade fail rules", r.ID)
	}
	for i, ex := range r.Exceptions {
		if ex.Context == "" {
			return fmt.Errorf("rule %q: exception %d has no context pattern", r.ID, i)
		}
	}
	return nil
}

// Compiled is a Rule with its pattern and exception contexts compiled.
// Compiled rules are immutable and safe for reuse across scans.
type Compiled struct {
	Rule
	matcher    Matcher
	exceptions []*regexp.Regexp
}

// Compile validates the rule and compiles its pattern and exception
// contexts. Any failure here must abort a scan before files are read.
func (r Rule) Compile() (*Compiled, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	kind := r.Match
	if kind == "" {
		kind = KindRegex
		r.Match = kind
	}
	m, err := NewMatcher(kind, r.Pattern)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.ID, err)
	}
	c := &Compiled{Rule: r, matcher: m}
	for _, ex := range r.Exceptions {
		re, err := regexcache.Get(ex.Context)
		if err != nil {
			return nil, fmt.Errorf("rule %q: exception context %q: %w", r.ID, ex.Context, err)
		}
		c.exceptions = append(c.exceptions, re)
	}
	return c, nil
}

// FindAll returns every occurrence of the rule's pattern in text.
// Callers pass single lines unless Multiline reports true.
func (c *Compiled) FindAll(text string) []Span {
	return c.matcher.FindAll(text)
}

// Multiline reports whether the rule must be evaluated against
// whole-file content.
func (c *Compiled) Multiline() bool {
	return c.matcher.Multiline()
}

// ResolveSeverity evaluates the exception list in declared order against
// the context surrounding a match. The first matching exception downgrades
// the rule's severity to Notice and is returned; otherwise the declared
// severity stands.
func (c *Compiled) ResolveSeverity(context string) (Severity, *Exception) {
	for i, re := range c.exceptions {
		if re.MatchString(context) {
			return Notice, &c.Exceptions[i]
		}
	}
	return c.Severity, nil
}
