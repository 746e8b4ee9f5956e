package ruleset

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Built-in rule sets ship inside the binary so CI jobs can gate on them
// without distributing separate policy files.
//
//go:embed presets/*.yaml
var presetFS embed.FS

// Presets returns the names of the built-in rule sets, sorted.
func Presets() []string {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// LoadPreset parses the built-in rule set with the given name.
// Returns ErrNotFound for an unknown preset name.
func LoadPreset(name string) (*RuleSet, error) {
	data, err := presetFS.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: preset %q (available: %s)",
			ErrNotFound, name, strings.Join(Presets(), ", "))
	}
	return Parse(data)
}

// Default returns the constitution-guardrail rule set, the preset used
// when a scan names no rule file.
func Default() (*RuleSet, error) {
	return LoadPreset("constitution")
}
