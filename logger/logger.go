package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// EnvLogLevel is consulted when no level is configured
const EnvLogLevel = "WASMGUARD_LOG_LEVEL"

// New creates a named logger writing to output; level has priority over the environment
func New(name, level string, output io.Writer) hclog.Logger {
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	if output == nil {
		output = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      output,
		Level:       getLogLevel(strings.ToUpper(level)),
	})
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
