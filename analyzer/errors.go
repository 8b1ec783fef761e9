package analyzer

import (
	"fmt"

	"github.com/viant/wasmguard/analyzer/finding"
)

// InternalError reports a programming defect detected while analyzing a unit
type InternalError struct {
	Unit  string
	Stage finding.Stage
	Cause interface{}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s at stage %s: %v", e.Unit, e.Stage, e.Cause)
}

func (e *InternalError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
