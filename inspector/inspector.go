package inspector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/wasmguard/inspector/graph"
	"github.com/viant/wasmguard/inspector/rust"
)

// Inspector provides an interface for building the structural model of a source unit
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts function information
	InspectSource(path string, src []byte) (*graph.File, error)
}

// Factory creates appropriate inspectors based on language
type Factory struct {
	config *graph.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *graph.Config) *Factory {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Factory{
		config: config,
	}
}

// Supports returns true if the file extension has an inspector
func (f *Factory) Supports(filename string) bool {
	_, err := f.GetInspector(filename)
	return err == nil
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".rs":
		return rust.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}
