package graph

import "fmt"

// ParseError reports a unit that cannot be modeled
type ParseError struct {
	Path     string
	Line     int
	Column   int
	Fragment string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: failed to parse: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s:%d:%d: syntax error near %q", e.Path, e.Line, e.Column, e.Fragment)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
