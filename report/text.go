package report

import (
	"fmt"
	"io"

	"github.com/viant/wasmguard/analyzer/finding"
)

// Text writes one line per finding followed by diagnostics and a summary
type Text struct{}

func (t *Text) Emit(w io.Writer, report *finding.Report) error {
	for _, item := range report.Findings {
		function := item.Function
		if item.Crate != "" {
			function = item.Crate + "::" + item.Function
		}
		if _, err := fmt.Fprintf(w, "[%s] %s %s:%d:%d %s\n  %s\n", item.Severity, item.Rule, item.Unit, item.Line, item.Column, function, item.Message); err != nil {
			return err
		}
	}
	for _, item := range report.Diagnostics {
		if _, err := fmt.Fprintf(w, "[skipped] %s\n", item); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d finding(s), %d unit(s) analyzed, %d skipped\n", len(report.Findings), report.Units, len(report.Diagnostics))
	return err
}
