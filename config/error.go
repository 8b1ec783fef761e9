package config

import "fmt"

// ConfigurationError reports an invalid caller configuration; it is fatal at startup
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid configuration %s=%q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
