package finding

import (
	"errors"
	"fmt"

	"github.com/viant/wasmguard/inspector/graph"
)

// Stage represents the pipeline state of a unit
type Stage string

const (
	StageUnparsed   Stage = "unparsed"
	StageModeled    Stage = "modeled"
	StageClassified Stage = "classified"
	StageDetected   Stage = "detected"
	StageReported   Stage = "reported"
)

// DiagnosticKind distinguishes why a unit could not be analyzed
type DiagnosticKind string

const (
	DiagnosticParse    DiagnosticKind = "parse"
	DiagnosticInternal DiagnosticKind = "internal"
)

// Diagnostic reports a unit that was skipped; it is never a Finding
type Diagnostic struct {
	Kind    DiagnosticKind `yaml:"kind"`
	Unit    string         `yaml:"unit"`
	Stage   Stage          `yaml:"stage"`
	Line    int            `yaml:"line,omitempty"`
	Column  int            `yaml:"column,omitempty"`
	Message string         `yaml:"message"`
}

// NewParseDiagnostic creates a diagnostic for a unit that could not be modeled
func NewParseDiagnostic(unit string, err error) *Diagnostic {
	ret := &Diagnostic{Kind: DiagnosticParse, Unit: unit, Stage: StageUnparsed, Message: err.Error()}
	var parseErr *graph.ParseError
	if errors.As(err, &parseErr) {
		ret.Line = parseErr.Line
		ret.Column = parseErr.Column
	}
	return ret
}

// NewInternalDiagnostic creates a diagnostic for a unit aborted by an invariant violation
func NewInternalDiagnostic(unit string, stage Stage, err error) *Diagnostic {
	return &Diagnostic{Kind: DiagnosticInternal, Unit: unit, Stage: stage, Message: err.Error()}
}

func (d *Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s error: %s", d.Unit, d.Line, d.Column, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", d.Unit, d.Kind, d.Message)
}
