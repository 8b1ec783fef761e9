package finding

import (
	"fmt"
	"strings"

	"github.com/viant/wasmguard/inspector/graph"
)

// RuleID identifies a detector rule
type RuleID string

const (
	UnsafeExportedFunction RuleID = "UnsafeExportedFunction"
	BoundaryErrorHandling  RuleID = "BoundaryErrorHandling"
	// UnsafeReachableHelper is opt-in; it is not part of the default rule set
	UnsafeReachableHelper RuleID = "UnsafeReachableHelper"
)

// KnownRules returns every rule identifier in report order
func KnownRules() []RuleID {
	return []RuleID{UnsafeExportedFunction, BoundaryErrorHandling, UnsafeReachableHelper}
}

// DefaultRules returns the rules enabled when none are configured
func DefaultRules() []RuleID {
	return []RuleID{UnsafeExportedFunction, BoundaryErrorHandling}
}

// ParseRuleID returns the rule identifier for name, matching case-insensitively
func ParseRuleID(name string) (RuleID, error) {
	for _, candidate := range KnownRules() {
		if strings.EqualFold(string(candidate), strings.TrimSpace(name)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown rule: %q", name)
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ParseSeverity returns the severity for name
func ParseSeverity(name string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(name))) {
	case SeverityHigh:
		return SeverityHigh, nil
	case SeverityMedium:
		return SeverityMedium, nil
	case SeverityLow:
		return SeverityLow, nil
	}
	return "", fmt.Errorf("unknown severity: %q", name)
}

// Finding represents a single rule match for a function
type Finding struct {
	Rule          RuleID   `yaml:"rule"`
	Severity      Severity `yaml:"severity"`
	Unit          string   `yaml:"unit"`
	Crate         string   `yaml:"crate,omitempty"`
	Function      string   `yaml:"function"`
	QualifiedName string   `yaml:"qualifiedName,omitempty"`
	Line          int      `yaml:"line"`
	Column        int      `yaml:"column"`
	EndLine       int      `yaml:"endLine,omitempty"`
	Message       string   `yaml:"message"`
	Fingerprint   string   `yaml:"fingerprint,omitempty"`

	offset int // function start byte, part of the function identity
}

// New creates a finding for fn
func New(rule RuleID, severity Severity, fn *graph.Function, message string) *Finding {
	ret := &Finding{
		Rule:          rule,
		Severity:      severity,
		Function:      fn.Name,
		QualifiedName: fn.QualifiedName,
		Message:       message,
		Fingerprint:   graph.Fingerprint(fn),
	}
	if fn.Location != nil {
		ret.Unit = fn.Location.Path
		ret.Line = fn.Location.StartLine
		ret.Column = fn.Location.StartColumn
		ret.EndLine = fn.Location.EndLine
		ret.offset = fn.Location.Start
	}
	return ret
}

type identity struct {
	rule   RuleID
	unit   string
	offset int
	name   string
}

func (f *Finding) identity() identity {
	return identity{rule: f.Rule, unit: f.Unit, offset: f.offset, name: f.QualifiedName}
}

func (f *Finding) String() string {
	return fmt.Sprintf("%s:%d:%d: [%s] %s: %s", f.Unit, f.Line, f.Column, f.Severity, f.Rule, f.Message)
}
