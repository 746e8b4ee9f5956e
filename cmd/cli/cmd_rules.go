package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/docguard/docguard/pkg/exitcode"
	"github.com/docguard/docguard/pkg/ruleset"
	"github.com/docguard/docguard/pkg/ui"
)

// =============================================================================
// RULES COMMAND - rule-set authoring support
// =============================================================================

func runRules() int {
	rulesFlags := flag.NewFlagSet("rules", flag.ExitOnError)

	validateFile := rulesFlags.String("validate", "", "Validate a rule-set YAML file")
	list := rulesFlags.Bool("list", false, "List built-in presets and their rules")
	noColor := rulesFlags.Bool("no-color", false, "Disable colored output")

	rulesFlags.Parse(os.Args[2:])

	ui.SetNoColor(*noColor || !ui.IsTTY())

	switch {
	case *validateFile != "":
		return validateRuleSet(*validateFile)
	case *list:
		return listPresets()
	default:
		fmt.Println("Usage: docguard rules -validate <file> | -list")
		return int(exitcode.Setup)
	}
}

// validateRuleSet compiles a rule-set file the same way scan would, so
// authors catch malformed patterns before wiring the file into CI.
func validateRuleSet(path string) int {
	rs, err := ruleset.Load(path)
	if err != nil {
		ui.PrintError(err.Error())
		return int(exitcode.Setup)
	}
	compiled, err := rs.Compile()
	if err != nil {
		ui.PrintError(err.Error())
		return int(exitcode.Setup)
	}
	ui.PrintSuccess(fmt.Sprintf("%s: %s", path, compiled.String()))
	return int(exitcode.Pass)
}

func listPresets() int {
	for _, name := range ruleset.Presets() {
		rs, err := ruleset.LoadPreset(name)
		if err != nil {
			ui.PrintError(err.Error())
			return int(exitcode.Setup)
		}
		ui.PrintSection(name)
		for _, r := range rs.Rules {
			fmt.Printf("  %s %s %s\n",
				ui.SeverityStyle(r.Severity.String()).Render(r.Severity.String()),
				ui.RuleIDStyle.Render(r.ID),
				ui.SubtitleStyle.Render(r.Description))
		}
		fmt.Println()
	}
	return int(exitcode.Pass)
}
