package graph

// Config controls how source units are modeled
type Config struct {
	FallibleTypes []string // return type names modeled as success/error constructs
}

// DefaultConfig returns the default model configuration
func DefaultConfig() *Config {
	return &Config{
		FallibleTypes: []string{"Result"},
	}
}

// IsFallibleType returns true if name is configured as a fallible type
func (c *Config) IsFallibleType(name string) bool {
	for _, candidate := range c.FallibleTypes {
		if candidate == name {
			return true
		}
	}
	return false
}
