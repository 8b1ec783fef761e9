package rule

import (
	"fmt"

	"github.com/viant/wasmguard/analyzer/export"
	"github.com/viant/wasmguard/analyzer/finding"
	"github.com/viant/wasmguard/inspector/graph"
)

// Rule defines a per function check
type Rule interface {
	ID() finding.RuleID
	Description() string
	DefaultSeverity() finding.Severity
	// Check returns at most one finding for fn
	Check(unit *Unit, fn *graph.Function) *finding.Finding
}

// Unit is the classified model a rule runs against
type Unit struct {
	File     *graph.File
	Labels   export.Labels
	Severity map[finding.RuleID]finding.Severity // per rule overrides
}

// SeverityOf returns the effective severity of r
func (u *Unit) SeverityOf(r Rule) finding.Severity {
	if severity, ok := u.Severity[r.ID()]; ok && severity != "" {
		return severity
	}
	return r.DefaultSeverity()
}

var registry = map[finding.RuleID]Rule{}

func register(r Rule) {
	registry[r.ID()] = r
}

func init() {
	register(&unsafeExported{})
	register(&boundaryError{})
	register(&unsafeReachable{})
}

// Lookup returns the rule for id
func Lookup(id finding.RuleID) (Rule, error) {
	r, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown rule: %q", id)
	}
	return r, nil
}

// Resolve returns rules for ids in order, skipping duplicates
func Resolve(ids []finding.RuleID) ([]Rule, error) {
	var result []Rule
	seen := map[finding.RuleID]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		r, err := Lookup(id)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// All returns every registered rule in report order
func All() []Rule {
	var result []Rule
	for _, id := range finding.KnownRules() {
		if r, ok := registry[id]; ok {
			result = append(result, r)
		}
	}
	return result
}
