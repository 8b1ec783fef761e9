package rule

import (
	"fmt"

	"github.com/viant/wasmguard/analyzer/finding"
	"github.com/viant/wasmguard/inspector/graph"
)

// boundaryError flags exported functions returning a success/error construct.
// It fires on the declared shape only; how the host converts the error variant is not visible here.
type boundaryError struct{}

func (r *boundaryError) ID() finding.RuleID {
	return finding.BoundaryErrorHandling
}

func (r *boundaryError) Description() string {
	return "Boundary-exported function returns a fallible value; review how the error variant reaches the caller"
}

func (r *boundaryError) DefaultSeverity() finding.Severity {
	return finding.SeverityMedium
}

func (r *boundaryError) Check(unit *Unit, fn *graph.Function) *finding.Finding {
	if !unit.Labels.IsExported(fn) || !fn.Result.IsFallible() {
		return nil
	}
	errorType := fn.Result.Error
	if errorType == "" {
		errorType = "error"
	}
	message := fmt.Sprintf("exported function %s returns %s; review how the %s variant is represented to the caller", fn.Name, fn.Result.Text, errorType)
	return finding.New(r.ID(), unit.SeverityOf(r), fn, message)
}
