package finding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/wasmguard/inspector/graph"
)

func newFunction(unit, name string, line, offset int) *graph.Function {
	return &graph.Function{
		Name:          name,
		QualifiedName: name,
		Location:      &graph.Location{Path: unit, Start: offset, StartLine: line, StartColumn: 1, EndLine: line + 2},
	}
}

func TestReporter_Report(t *testing.T) {
	a := newFunction("b.rs", "a", 10, 100)
	b := newFunction("a.rs", "b", 20, 200)
	c := newFunction("a.rs", "c", 5, 50)

	reporter := NewReporter()
	reporter.Add(
		New(UnsafeExportedFunction, SeverityHigh, a, "a unsafe"),
		New(UnsafeExportedFunction, SeverityHigh, b, "b unsafe"),
		New(BoundaryErrorHandling, SeverityMedium, b, "b fallible"),
		New(BoundaryErrorHandling, SeverityMedium, c, "c fallible"),
		nil,
	)
	reporter.Add(New(UnsafeExportedFunction, SeverityHigh, b, "b unsafe again"))
	reporter.AddDiagnostic(nil, NewParseDiagnostic("z.rs", errors.New("boom")))

	report := reporter.Report()
	var actual []string
	for _, item := range report.Findings {
		actual = append(actual, item.Unit+":"+item.Function+":"+string(item.Rule))
	}
	assert.Equal(t, []string{
		"a.rs:c:BoundaryErrorHandling",
		"a.rs:b:BoundaryErrorHandling",
		"a.rs:b:UnsafeExportedFunction",
		"b.rs:a:UnsafeExportedFunction",
	}, actual)
	assert.Equal(t, "b unsafe", report.Findings[2].Message)
	require.Len(t, report.Diagnostics, 1)
	assert.True(t, report.HasFindings())
	assert.Len(t, report.ByRule(BoundaryErrorHandling), 2)
}

func TestReporter_SameNameDifferentFunctions(t *testing.T) {
	reporter := NewReporter()
	reporter.Add(
		New(UnsafeExportedFunction, SeverityHigh, newFunction("a.rs", "new", 3, 30), "first"),
		New(UnsafeExportedFunction, SeverityHigh, newFunction("a.rs", "new", 9, 90), "second"),
	)
	assert.Len(t, reporter.Report().Findings, 2)
}

func TestReporter_Empty(t *testing.T) {
	report := NewReporter().Report()
	assert.NotNil(t, report.Findings)
	assert.NotNil(t, report.Diagnostics)
	assert.False(t, report.HasFindings())
	var nilReport *Report
	assert.False(t, nilReport.HasFindings())
}

func TestParseRuleID(t *testing.T) {
	tests := []struct {
		name   string
		expect RuleID
		err    bool
	}{
		{name: "UnsafeExportedFunction", expect: UnsafeExportedFunction},
		{name: " boundaryerrorhandling ", expect: BoundaryErrorHandling},
		{name: "UNSAFEREACHABLEHELPER", expect: UnsafeReachableHelper},
		{name: "Unknown", err: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseRuleID(tc.name)
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestParseSeverity(t *testing.T) {
	severity, err := ParseSeverity("HIGH")
	assert.NoError(t, err)
	assert.Equal(t, SeverityHigh, severity)
	_, err = ParseSeverity("critical")
	assert.Error(t, err)
}

func TestNewParseDiagnostic(t *testing.T) {
	diagnostic := NewParseDiagnostic("lib.rs", &graph.ParseError{Path: "lib.rs", Line: 4, Column: 9, Fragment: "}"})
	assert.Equal(t, DiagnosticParse, diagnostic.Kind)
	assert.Equal(t, StageUnparsed, diagnostic.Stage)
	assert.Equal(t, 4, diagnostic.Line)
	assert.Equal(t, 9, diagnostic.Column)
	assert.Equal(t, `lib.rs:4:9: parse error: lib.rs:4:9: syntax error near "}"`, diagnostic.String())
}
