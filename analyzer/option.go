package analyzer

import (
	"github.com/hashicorp/go-hclog"
	"github.com/viant/wasmguard/inspector"
)

type Option func(*Analyzer)

// WithLogger sets the logger used for unit progress and diagnostics
func WithLogger(logger hclog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithConcurrency overrides the number of units analyzed at once
func WithConcurrency(workers int) Option {
	return func(a *Analyzer) {
		if workers > 0 {
			a.concurrency = workers
		}
	}
}

// WithInspector replaces the source model builder
func WithInspector(inspector inspector.Inspector) Option {
	return func(a *Analyzer) {
		if inspector != nil {
			a.inspector = inspector
		}
	}
}

// WithRunID sets the identifier stamped on reports
func WithRunID(runID string) Option {
	return func(a *Analyzer) {
		a.runID = runID
	}
}
