package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/viant/wasmguard/analyzer/finding"
	"github.com/viant/wasmguard/analyzer/rule"
)

const (
	toolName = "wasmguard"
	toolURI  = "https://github.com/viant/wasmguard"
)

// SARIF writes the report as a SARIF 2.1.0 log
type SARIF struct {
	rules []rule.Rule
}

// NewSARIF creates a SARIF emitter describing every known rule
func NewSARIF() *SARIF {
	return &SARIF{rules: rule.All()}
}

func (s *SARIF) Emit(w io.Writer, report *finding.Report) error {
	reportSarif, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}
	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, r := range s.rules {
		run.AddRule(string(r.ID())).
			WithDescription(r.Description()).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifErrorLevel(r.DefaultSeverity()),
			})
	}
	for _, item := range report.Findings {
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(item.Unit)).
				WithRegion(sarif.NewRegion().WithStartLine(item.Line).WithStartColumn(item.Column)),
		)
		result := sarif.NewRuleResult(string(item.Rule)).
			WithMessage(sarif.NewTextMessage(item.Message)).
			WithLevel(toSarifErrorLevel(item.Severity)).
			WithLocations([]*sarif.Location{location})
		if item.Crate != "" {
			if result.Properties == nil {
				result.Properties = make(map[string]interface{})
			}
			result.Properties["crate"] = item.Crate
		}
		run.AddResult(result)
	}
	reportSarif.AddRun(run)
	return reportSarif.PrettyWrite(w)
}

func toSarifErrorLevel(severity finding.Severity) string {
	switch severity {
	case finding.SeverityHigh:
		return "error"
	case finding.SeverityMedium:
		return "warning"
	case finding.SeverityLow:
		return "note"
	default:
		return "none"
	}
}
