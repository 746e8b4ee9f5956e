// docguard scans documentation trees for policy violations: prohibited
// textual patterns qualified by contextual exceptions, reported with
// CI-friendly exit codes (0 pass, 1 violations, 2 setup error).
package main

import (
	"fmt"
	"os"

	"github.com/docguard/docguard/pkg/ui"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "scan":
		os.Exit(runScan())
	case "rules":
		os.Exit(runRules())
	case "version":
		runVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		ui.PrintError(fmt.Sprintf("unknown command %q", os.Args[1]))
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	ui.PrintBanner()
	fmt.Println("Usage: docguard <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  scan      Scan a documentation tree against a rule set")
	fmt.Println("  rules     Validate a rule-set file or list built-in presets")
	fmt.Println("  version   Print version information")
	fmt.Println()
	fmt.Println("Run 'docguard <command> -h' for command flags.")
	fmt.Println()
	fmt.Println("Exit codes: 0 = pass, 1 = violations detected, 2 = setup error")
}

func runVersion() {
	fmt.Printf("docguard %s (built %s, commit %s)\n", ui.Version, ui.BuildDate, ui.Commit)
}
