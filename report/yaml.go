package report

import (
	"io"

	"github.com/viant/wasmguard/analyzer/finding"
	"gopkg.in/yaml.v3"
)

// YAML writes the report as a YAML document
type YAML struct{}

func (y *YAML) Emit(w io.Writer, report *finding.Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return err
	}
	return encoder.Close()
}
