// Package export classifies functions as boundary-exported or internal from their attributes.
package export

import (
	"strings"

	"github.com/viant/wasmguard/inspector/graph"
)

// DefaultMarker is the wasm-bindgen host/guest bridge attribute
const DefaultMarker = "wasm_bindgen"

// Label is the classification of a function
type Label string

const (
	Exported Label = "exported"
	Internal Label = "internal"
)

// Labels holds the classification computed once per unit
type Labels map[*graph.Function]Label

// IsExported returns true if fn was classified as boundary-exported
func (l Labels) IsExported(fn *graph.Function) bool {
	return l[fn] == Exported
}

// Exported returns exported functions of file in source order
func (l Labels) Exported(file *graph.File) []*graph.Function {
	var result []*graph.Function
	for _, fn := range file.Functions {
		if l.IsExported(fn) {
			result = append(result, fn)
		}
	}
	return result
}

// Classifier matches the export marker syntactically
type Classifier struct {
	marker string
}

// NewClassifier creates a classifier for marker, using DefaultMarker when empty
func NewClassifier(marker string) *Classifier {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		marker = DefaultMarker
	}
	return &Classifier{marker: marker}
}

// Marker returns the configured attribute name
func (c *Classifier) Marker() string {
	return c.marker
}

// IsBoundaryExported returns true if fn carries the marker attribute, either bare or path qualified
func (c *Classifier) IsBoundaryExported(fn *graph.Function) bool {
	for _, attribute := range fn.Attributes {
		if attribute.Name == c.marker || strings.HasSuffix(attribute.Name, "::"+c.marker) {
			return true
		}
	}
	return false
}

// Classify labels every function of file
func (c *Classifier) Classify(file *graph.File) Labels {
	labels := make(Labels, len(file.Functions))
	for _, fn := range file.Functions {
		label := Internal
		if c.IsBoundaryExported(fn) {
			label = Exported
		}
		labels[fn] = label
	}
	return labels
}
