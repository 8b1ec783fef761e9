package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/viant/wasmguard/analyzer/finding"
)

// Emitter writes a report in a specific format
type Emitter interface {
	Emit(w io.Writer, report *finding.Report) error
}

// Formats lists supported output formats
var Formats = []string{"text", "yaml", "sarif"}

// New returns the emitter for format
func New(format string) (Emitter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &Text{}, nil
	case "yaml", "yml":
		return &YAML{}, nil
	case "sarif":
		return NewSARIF(), nil
	}
	return nil, fmt.Errorf("unsupported format: %s, expected one of %s", format, strings.Join(Formats, ", "))
}
