package rust

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/viant/wasmguard/inspector/graph"
)

// Inspector builds the structural model of Rust source units
type Inspector struct {
	config *graph.Config
}

// NewInspector creates a new Rust Inspector with the provided configuration
func NewInspector(config *graph.Config) *Inspector {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Inspector{
		config: config,
	}
}

// InspectSource parses Rust source code from a byte slice and extracts functions
func (i *Inspector) InspectSource(path string, src []byte) (*graph.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, &graph.ParseError{Path: path, Err: err}
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, newParseError(path, rootNode, src)
	}
	return i.processRustFile(rootNode, src, path), nil
}

// processRustFile extracts functions declared anywhere in the unit
func (i *Inspector) processRustFile(rootNode *sitter.Node, src []byte, path string) *graph.File {
	aFile := &graph.File{Name: filepath.Base(path), Path: path}
	b := &builder{config: i.config, source: src, file: aFile}
	b.collectItems(rootNode, nil, "")
	aFile.IndexFunctions()
	return aFile
}

func newParseError(path string, rootNode *sitter.Node, src []byte) *graph.ParseError {
	node := firstErrorNode(rootNode)
	point := node.StartPoint()
	fragment := node.Content(src)
	if node.IsMissing() {
		fragment = node.Type()
	}
	if idx := strings.IndexByte(fragment, '\n'); idx != -1 {
		fragment = fragment[:idx]
	}
	if len(fragment) > 40 {
		fragment = fragment[:40]
	}
	return &graph.ParseError{
		Path:     path,
		Line:     int(point.Row) + 1,
		Column:   int(point.Column) + 1,
		Fragment: strings.TrimSpace(fragment),
	}
}

// firstErrorNode returns the first ERROR or missing node in document order
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for j := 0; j < int(n.ChildCount()); j++ {
		child := n.Child(j)
		if child.HasError() || child.IsMissing() {
			return firstErrorNode(child)
		}
	}
	return n
}
