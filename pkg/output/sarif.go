package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/docguard/docguard/pkg/jsonutil"
	"github.com/docguard/docguard/pkg/scanner"
	"github.com/docguard/docguard/pkg/ui"
)

// SARIF 2.1.0 document structure, the subset GitHub code scanning
// consumes. See https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type sarifDocument struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// SARIFWriter writes results in SARIF 2.1.0 format so documentation
// policy findings appear in code-scanning dashboards alongside code
// findings. Fail maps to "error", notice to "note".
type SARIFWriter struct {
	w io.Writer
}

func (sw *SARIFWriter) Write(report *scanner.Report) error {
	doc := sarifDocument{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:           "docguard",
					Version:        ui.Version,
					InformationURI: "https://github.com/docguard/docguard",
					Rules:          collectRules(report),
				},
			},
			Results: []sarifResult{},
		}},
	}

	for _, m := range report.Matches() {
		result := sarifResult{
			RuleID: m.RuleID,
			Level:  m.Severity.ToSARIF(),
			Message: sarifMessage{
				Text: resultText(m),
			},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: m.File},
				},
			}},
		}
		if m.Line > 0 {
			result.Locations[0].PhysicalLocation.Region = &sarifRegion{StartLine: m.Line}
		}
		doc.Runs[0].Results = append(doc.Runs[0].Results, result)
	}

	data, err := jsonutil.MarshalIndent(doc, "  ")
	if err != nil {
		return fmt.Errorf("encoding SARIF: %w", err)
	}
	data = append(data, '\n')
	_, err = sw.w.Write(data)
	return err
}

// collectRules builds the run's rule catalog from the report's matched
// rule ids, sorted for deterministic output.
func collectRules(report *scanner.Report) []sarifRule {
	seen := map[string]bool{}
	for _, m := range report.Matches() {
		seen[m.RuleID] = true
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rules := make([]sarifRule, 0, len(ids))
	for _, id := range ids {
		rules = append(rules, sarifRule{
			ID:               id,
			ShortDescription: sarifMessage{Text: id},
		})
	}
	return rules
}

func resultText(m scanner.Match) string {
	if m.Exception != "" {
		return fmt.Sprintf("%s (downgraded: %s)", m.Text, m.Exception)
	}
	return m.Text
}
