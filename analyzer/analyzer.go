package analyzer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/viant/wasmguard/analyzer/export"
	"github.com/viant/wasmguard/analyzer/finding"
	"github.com/viant/wasmguard/analyzer/rule"
	"github.com/viant/wasmguard/config"
	"github.com/viant/wasmguard/inspector"
	"github.com/viant/wasmguard/inspector/graph"
	"github.com/viant/wasmguard/inspector/rust"
	"github.com/viant/wasmguard/source"
	"golang.org/x/sync/errgroup"
)

// Analyzer runs the enabled rules over independent source units
type Analyzer struct {
	inspector   inspector.Inspector
	classifier  *export.Classifier
	rules       []rule.Rule
	severity    map[finding.RuleID]finding.Severity
	concurrency int
	runID       string
	logger      hclog.Logger
}

// UnitResult holds the outcome of a single unit
type UnitResult struct {
	Unit        string
	Stage       finding.Stage
	Findings    []*finding.Finding
	Diagnostics []*finding.Diagnostic
}

// New creates an analyzer; an invalid configuration is returned as *config.ConfigurationError
func New(cfg *config.Config, options ...Option) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ids, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	rules, err := rule.Resolve(ids)
	if err != nil {
		return nil, &config.ConfigurationError{Field: "enabled_rules", Reason: "unresolved rule", Err: err}
	}
	severity, err := cfg.Severities()
	if err != nil {
		return nil, err
	}
	ret := &Analyzer{
		inspector:   rust.NewInspector(cfg.Model()),
		classifier:  export.NewClassifier(cfg.ExportMarkerName),
		rules:       rules,
		severity:    severity,
		concurrency: cfg.Workers(),
		runID:       uuid.NewString(),
		logger:      hclog.NewNullLogger(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret, nil
}

// Rules returns enabled rules in execution order
func (a *Analyzer) Rules() []rule.Rule {
	return a.rules
}

// Analyze analyzes units concurrently and merges their findings into one ordered report.
// Cancelling ctx stops scheduling remaining units; the partial report is returned with the context error.
func (a *Analyzer) Analyze(ctx context.Context, units []*source.Unit) (*finding.Report, error) {
	results := make([]*UnitResult, len(units))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.concurrency)
	for i, unit := range units {
		if groupCtx.Err() != nil {
			break
		}
		i, unit := i, unit
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = a.AnalyzeUnit(unit)
			return nil
		})
	}
	err := group.Wait()

	reporter := finding.NewReporter()
	processed := 0
	for _, result := range results {
		if result == nil {
			continue
		}
		processed++
		if result.Stage == finding.StageDetected {
			result.Stage = finding.StageReported
		}
		a.logger.Debug("unit merged", "unit", result.Unit, "stage", result.Stage, "findings", len(result.Findings))
		reporter.Add(result.Findings...)
		reporter.AddDiagnostic(result.Diagnostics...)
	}
	if err == nil && processed < len(units) {
		err = ctx.Err()
	}
	report := reporter.Report()
	report.RunID = a.runID
	report.Units = processed
	a.logger.Info("analysis completed", "run", a.runID, "units", processed, "findings", len(report.Findings), "diagnostics", len(report.Diagnostics))
	if err != nil {
		return report, fmt.Errorf("analysis interrupted after %d of %d units: %w", processed, len(units), err)
	}
	return report, nil
}

// AnalyzeUnit drives one unit through modeling, classification and detection
func (a *Analyzer) AnalyzeUnit(unit *source.Unit) (result *UnitResult) {
	result = &UnitResult{Unit: unit.ID, Stage: finding.StageUnparsed}
	defer func() {
		if r := recover(); r != nil {
			a.abort(result, &InternalError{Unit: unit.ID, Stage: result.Stage, Cause: r})
		}
	}()

	if unit.Err != nil {
		a.logger.Warn("skipping unreadable unit", "unit", unit.ID, "error", unit.Err)
		result.Diagnostics = append(result.Diagnostics, finding.NewParseDiagnostic(unit.ID, unit.Err))
		return result
	}
	file, err := a.inspector.InspectSource(unit.ID, unit.Content)
	if err != nil {
		diagnostic := finding.NewParseDiagnostic(unit.ID, err)
		a.logger.Warn("skipping unit", "unit", unit.ID, "error", err)
		result.Diagnostics = append(result.Diagnostics, diagnostic)
		return result
	}
	file.Crate = unit.Crate
	result.Stage = finding.StageModeled
	if err := validate(file); err != nil {
		a.abort(result, &InternalError{Unit: unit.ID, Stage: result.Stage, Cause: err})
		return result
	}

	labels := a.classifier.Classify(file)
	result.Stage = finding.StageClassified
	a.logger.Debug("unit classified", "unit", unit.ID, "functions", len(file.Functions), "exported", len(labels.Exported(file)))

	ruleUnit := &rule.Unit{File: file, Labels: labels, Severity: a.severity}
	for _, fn := range file.Functions {
		for _, r := range a.rules {
			if item := r.Check(ruleUnit, fn); item != nil {
				item.Crate = ruleUnit.File.Crate
				result.Findings = append(result.Findings, item)
			}
		}
	}
	result.Stage = finding.StageDetected
	return result
}

func (a *Analyzer) abort(result *UnitResult, err *InternalError) {
	a.logger.Error("unit analysis aborted", "unit", err.Unit, "stage", err.Stage, "error", err)
	result.Findings = nil
	result.Diagnostics = append(result.Diagnostics, finding.NewInternalDiagnostic(err.Unit, err.Stage, err))
}

// validate checks model invariants: unsafe flags only on unsafe scopes or the root of an unsafe fn
func validate(file *graph.File) error {
	for _, fn := range file.Functions {
		if fn.Body == nil {
			continue
		}
		var violation error
		fn.Body.Visit(func(block *graph.Block) bool {
			if violation != nil {
				return false
			}
			if block.Unsafe && block.Kind != graph.BlockUnsafe && !(block == fn.Body && fn.IsUnsafe) {
				violation = fmt.Errorf("function %s: %s scope flagged unsafe", fn.QualifiedName, block.Kind)
			}
			return true
		})
		if violation != nil {
			return violation
		}
	}
	return nil
}
