package graph

import "strings"

// Location represents a source range inside a unit
type Location struct {
	Path        string // Unit path
	Start       int    // Start byte offset
	End         int    // End byte offset
	StartLine   int    // 1-based start line
	StartColumn int    // 1-based start column
	EndLine     int    // 1-based end line
	EndColumn   int    // 1-based end column
}

// Attribute represents an outer attribute applied to a function, e.g. #[wasm_bindgen(js_name = foo)]
type Attribute struct {
	Name      string // Attribute path, e.g. wasm_bindgen or wasm_bindgen::prelude::wasm_bindgen
	Arguments string // Raw argument tokens without the outer delimiters
	Location  *Location
}

// Parameter represents a function parameter
type Parameter struct {
	Name string
	Type string
}

// ShapeKind classifies a declared return type
type ShapeKind string

const (
	ShapeUnit     ShapeKind = "unit"     // no return type
	ShapePlain    ShapeKind = "plain"    // any non fallible type
	ShapeFallible ShapeKind = "fallible" // two variant success/error construct
)

// TypeShape describes a declared return type; payloads are kept opaque
type TypeShape struct {
	Kind    ShapeKind
	Text    string
	Success string
	Error   string
}

// IsFallible returns true if the shape is a success/error construct
func (s *TypeShape) IsFallible() bool {
	return s != nil && s.Kind == ShapeFallible
}

// Function represents a function item with its body model
type Function struct {
	Name          string
	QualifiedName string // module and impl path joined with ::
	Owner         string // impl type, empty for free functions
	Parameters    []*Parameter
	Result        *TypeShape
	Attributes    []*Attribute
	Body          *Block
	IsUnsafe      bool // declared as unsafe fn
	IsPublic      bool // carries a visibility modifier
	Location      *Location
}

// Attribute returns the first attribute with matching name
func (f *Function) Attribute(name string) *Attribute {
	for _, attribute := range f.Attributes {
		if attribute.Name == name {
			return attribute
		}
	}
	return nil
}

// Signature returns a compact signature used in messages
func (f *Function) Signature() string {
	builder := &strings.Builder{}
	builder.WriteString("fn ")
	builder.WriteString(f.Name)
	builder.WriteString("(")
	for i, param := range f.Parameters {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(param.Name)
		if param.Type != "" {
			builder.WriteString(": ")
			builder.WriteString(param.Type)
		}
	}
	builder.WriteString(")")
	if f.Result != nil && f.Result.Kind != ShapeUnit {
		builder.WriteString(" -> ")
		builder.WriteString(f.Result.Text)
	}
	return builder.String()
}

// ContainsUnsafe returns true if any scope of the function's own body is an unsafe region
func (f *Function) ContainsUnsafe() bool {
	if f.Body == nil {
		return false
	}
	return f.Body.ContainsUnsafe()
}

// Calls returns all call expressions of the function's own body in source order
func (f *Function) Calls() []*Call {
	if f.Body == nil {
		return nil
	}
	var result []*Call
	f.Body.Visit(func(block *Block) bool {
		result = append(result, block.Calls...)
		return true
	})
	return result
}
