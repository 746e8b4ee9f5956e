// Package output serializes scan Reports for terminals and CI log
// consumers. The scanner core does not depend on any rendering format;
// every writer consumes the Report's two ordered match sequences plus
// the summary, nothing more.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/docguard/docguard/pkg/defaults"
	"github.com/docguard/docguard/pkg/jsonutil"
	"github.com/docguard/docguard/pkg/scanner"
)

// Writer renders one Report to its destination.
type Writer interface {
	Write(report *scanner.Report) error
}

// NewWriter returns the writer for a format name from defaults.Formats.
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch format {
	case defaults.FormatConsole:
		return NewConsoleWriter(w, false), nil
	case defaults.FormatJSON:
		return &JSONWriter{w: w}, nil
	case defaults.FormatJSONL:
		return &JSONLWriter{w: w}, nil
	case defaults.FormatSARIF:
		return &SARIFWriter{w: w}, nil
	case defaults.FormatCSV:
		return &CSVWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// JSONWriter writes the full report as a single indented JSON document.
type JSONWriter struct {
	w io.Writer
}

func (jw *JSONWriter) Write(report *scanner.Report) error {
	data, err := jsonutil.MarshalIndent(report, "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	_, err = jw.w.Write(data)
	return err
}

// JSONLWriter writes one match per line as newline-delimited JSON,
// errors first, then notices, preserving report order.
type JSONLWriter struct {
	w io.Writer
}

func (jw *JSONLWriter) Write(report *scanner.Report) error {
	enc := jsonutil.NewEncoder(jw.w)
	for _, m := range report.Matches() {
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encoding match: %w", err)
		}
	}
	return nil
}

// CSVWriter writes file,line,rule,severity,text rows.
type CSVWriter struct {
	w io.Writer
}

func (cw *CSVWriter) Write(report *scanner.Report) error {
	writer := csv.NewWriter(cw.w)
	if err := writer.Write([]string{"file", "line", "rule", "severity", "text"}); err != nil {
		return err
	}
	for _, m := range report.Matches() {
		row := []string{
			m.File,
			strconv.Itoa(m.Line),
			m.RuleID,
			m.Severity.String(),
			m.Text,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
