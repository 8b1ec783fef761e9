package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/wasmguard/analyzer"
	"github.com/viant/wasmguard/config"
	"github.com/viant/wasmguard/logger"
	"github.com/viant/wasmguard/report"
	"github.com/viant/wasmguard/source"
)

// ErrFindings is returned when --fail-on-findings is set and any rule fired
var ErrFindings = errors.New("findings reported")

type scanOptions struct {
	configPath     string
	format         string
	output         string
	exportMarker   string
	rules          []string
	concurrency    int
	failOnFindings bool
	logLevel       string
}

func newScanCommand() *cobra.Command {
	options := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Analyze Rust source files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, options, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&options.configPath, "config", "c", "", "Path to configuration file (optional)")
	flags.StringVarP(&options.format, "format", "f", "text", "Output format: "+strings.Join(report.Formats, ", "))
	flags.StringVarP(&options.output, "output", "o", "", "Output file (default stdout)")
	flags.StringVar(&options.exportMarker, "export-marker", "", "Attribute marking boundary-exported functions")
	flags.StringSliceVar(&options.rules, "rules", nil, "Rules to run (comma separated)")
	flags.IntVar(&options.concurrency, "concurrency", 0, "Number of units analyzed concurrently")
	flags.BoolVar(&options.failOnFindings, "fail-on-findings", false, "Exit with non zero status when findings are reported")
	flags.StringVar(&options.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	return cmd
}

func runScan(cmd *cobra.Command, options *scanOptions, paths []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load(ctx, options.configPath)
	if err != nil {
		return err
	}
	options.apply(cfg)

	log := logger.New("wasmguard", cfg.LogLevel, cmd.ErrOrStderr())
	emitter, err := report.New(options.format)
	if err != nil {
		return err
	}
	engine, err := analyzer.New(cfg, analyzer.WithLogger(log))
	if err != nil {
		return err
	}

	units, err := source.NewLoader().LoadAll(ctx, paths...)
	if err != nil {
		return err
	}
	log.Debug("units discovered", "count", len(units))

	result, err := engine.Analyze(ctx, units)
	if err != nil {
		log.Warn("analysis incomplete", "error", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if options.output != "" {
		file, err := os.Create(options.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = file.Close() }()
		w = file
	}
	if err := emitter.Emit(w, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if options.failOnFindings && result.HasFindings() {
		return ErrFindings
	}
	return err
}

// apply overrides configuration values with explicitly set flags
func (o *scanOptions) apply(cfg *config.Config) {
	if o.exportMarker != "" {
		cfg.ExportMarkerName = o.exportMarker
	}
	if len(o.rules) > 0 {
		cfg.EnabledRules = o.rules
	}
	if o.concurrency != 0 {
		cfg.Concurrency = o.concurrency
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
}
