package finding

import "sort"

// Report represents the ordered outcome of an analysis batch
type Report struct {
	RunID       string        `yaml:"runId,omitempty"`
	Units       int           `yaml:"units"`
	Findings    []*Finding    `yaml:"findings"`
	Diagnostics []*Diagnostic `yaml:"diagnostics,omitempty"`
}

// HasFindings returns true if any rule fired
func (r *Report) HasFindings() bool {
	return r != nil && len(r.Findings) > 0
}

// ByRule returns findings for a rule in report order
func (r *Report) ByRule(rule RuleID) []*Finding {
	var result []*Finding
	for _, item := range r.Findings {
		if item.Rule == rule {
			result = append(result, item)
		}
	}
	return result
}

// Reporter aggregates findings, deduplicating by rule and function identity
type Reporter struct {
	seen        map[identity]bool
	findings    []*Finding
	diagnostics []*Diagnostic
}

// NewReporter creates a reporter
func NewReporter() *Reporter {
	return &Reporter{seen: map[identity]bool{}}
}

// Add appends findings that were not reported yet
func (r *Reporter) Add(findings ...*Finding) {
	for _, item := range findings {
		if item == nil {
			continue
		}
		key := item.identity()
		if r.seen[key] {
			continue
		}
		r.seen[key] = true
		r.findings = append(r.findings, item)
	}
}

// AddDiagnostic appends unit diagnostics
func (r *Reporter) AddDiagnostic(diagnostics ...*Diagnostic) {
	for _, item := range diagnostics {
		if item != nil {
			r.diagnostics = append(r.diagnostics, item)
		}
	}
}

// Report returns findings ordered by unit, location and rule identifier
func (r *Reporter) Report() *Report {
	findings := make([]*Finding, len(r.findings))
	copy(findings, r.findings)
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Unit != b.Unit {
			return a.Unit < b.Unit
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Rule < b.Rule
	})

	diagnostics := make([]*Diagnostic, len(r.diagnostics))
	copy(diagnostics, r.diagnostics)
	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.Unit != b.Unit {
			return a.Unit < b.Unit
		}
		return a.Line < b.Line
	})
	return &Report{Findings: findings, Diagnostics: diagnostics}
}
