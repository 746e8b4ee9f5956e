// Package ruleset loads, validates, and compiles rule-set documents.
// A rule set is the scanner's entire configuration: the ordered rules,
// the excluded directory names, the scanned file types, and the context
// window used for exception evaluation.
package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/docguard/docguard/pkg/defaults"
	"github.com/docguard/docguard/pkg/rule"
)

// ErrNotFound is returned when a rule-set file does not exist.
var ErrNotFound = errors.New("rule set file not found")

// ErrInvalid is returned when a rule-set document is malformed.
// A malformed rule set must never silently pass, so callers treat this
// as a setup error (exit code 2) and abort before scanning.
var ErrInvalid = errors.New("invalid rule set")

// RuleSet is a parsed rule-set document.
type RuleSet struct {
	Version string `yaml:"version"`
	Name    string `yaml:"name"`

	// ContextWindow is the number of surrounding lines considered when
	// evaluating exceptions. Zero means defaults.ContextWindow.
	ContextWindow int `yaml:"context_window"`

	// FileTypes lists scanned file extensions. Empty means the
	// defaults.FileTypes list.
	FileTypes []string `yaml:"file_types"`

	// Exclude lists directory names (exact or glob) skipped entirely
	// during the walk, in addition to the built-in exclusions.
	Exclude []string `yaml:"exclude"`

	Rules []rule.Rule `yaml:"rules"`
}

// Load reads and parses a rule-set file from the given path.
// Returns ErrNotFound if the file doesn't exist.
// Returns ErrInvalid if the document is malformed.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading rule set: %w", err)
	}
	return Parse(data)
}

// Parse parses rule-set YAML data.
// Returns ErrInvalid if the data is malformed.
func Parse(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if rs.Version == "" {
		rs.Version = "1.0"
	}

	// Normalize extensions to ".ext" lowercase form.
	for i, ext := range rs.FileTypes {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		rs.FileTypes[i] = ext
	}
	return &rs, nil
}

// Compiled is a validated rule set with every pattern compiled, ready to
// be applied by the scanner. Compilation happens before any file is
// touched; a compile failure aborts the run with exit code 2.
type Compiled struct {
	Name          string
	ContextWindow int
	exclude       []string
	fileTypes     map[string]bool
	Rules         []*rule.Compiled
}

// Compile validates the rule set and compiles every rule pattern,
// exception context, and exclusion glob.
func (rs *RuleSet) Compile() (*Compiled, error) {
	if len(rs.Rules) == 0 {
		return nil, fmt.Errorf("%w: no rules defined", ErrInvalid)
	}

	c := &Compiled{
		Name:          rs.Name,
		ContextWindow: rs.ContextWindow,
	}
	if c.ContextWindow <= 0 {
		c.ContextWindow = defaults.ContextWindow
	}

	seen := make(map[string]bool, len(rs.Rules))
	for _, r := range rs.Rules {
		compiled, err := r.Compile()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if seen[compiled.ID] {
			return nil, fmt.Errorf("%w: duplicate rule id %q", ErrInvalid, compiled.ID)
		}
		seen[compiled.ID] = true
		c.Rules = append(c.Rules, compiled)
	}

	c.exclude = append(c.exclude, defaults.ExcludedDirs()...)
	for _, pat := range rs.Exclude {
		if pat == "" {
			continue
		}
		if _, err := filepath.Match(pat, "probe"); err != nil {
			return nil, fmt.Errorf("%w: bad exclusion pattern %q", ErrInvalid, pat)
		}
		c.exclude = append(c.exclude, pat)
	}

	types := rs.FileTypes
	if len(types) == 0 {
		types = defaults.FileTypes()
	}
	c.fileTypes = make(map[string]bool, len(types))
	for _, ext := range types {
		if ext != "" {
			c.fileTypes[ext] = true
		}
	}
	return c, nil
}

// Excluded reports whether a single path component names an excluded
// directory. Patterns are matched as exact names or globs.
func (c *Compiled) Excluded(name string) bool {
	for _, pat := range c.exclude {
		if pat == name {
			return true
		}
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
	}
	return false
}

// ScansFile reports whether a file with the given path is subject to the
// rule set, judged by extension.
func (c *Compiled) ScansFile(path string) bool {
	return c.fileTypes[strings.ToLower(filepath.Ext(path))]
}

// Exclusions returns the effective exclusion patterns, built-ins first.
func (c *Compiled) Exclusions() []string {
	out := make([]string, len(c.exclude))
	copy(out, c.exclude)
	return out
}

// String returns a human-readable representation of the rule set.
func (c *Compiled) String() string {
	if c.Name != "" {
		return fmt.Sprintf("RuleSet(%s, %d rules)", c.Name, len(c.Rules))
	}
	return fmt.Sprintf("RuleSet(%d rules)", len(c.Rules))
}
