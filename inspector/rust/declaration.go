package rust

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/wasmguard/inspector/graph"
)

// builder accumulates the functions of a single unit
type builder struct {
	config *graph.Config
	source []byte
	file   *graph.File
}

// collectItems walks item declarations of a container (source file, module, impl or trait body)
func (b *builder) collectItems(container *sitter.Node, scope []string, owner string) {
	var pending []*graph.Attribute
	for j := 0; j < int(container.NamedChildCount()); j++ {
		child := container.NamedChild(j)
		switch child.Type() {
		case "attribute_item":
			pending = append(pending, b.parseAttribute(child))
			continue
		case "line_comment", "block_comment":
			continue
		}
		b.collectItem(child, pending, scope, owner)
		pending = nil
	}
}

// collectItem registers a function item or descends into an item container; it returns false for other nodes
func (b *builder) collectItem(node *sitter.Node, attributes []*graph.Attribute, scope []string, owner string) bool {
	switch node.Type() {
	case "function_item":
		b.parseFunction(node, attributes, scope, owner)
	case "mod_item":
		body := node.ChildByFieldName("body")
		nameNode := node.ChildByFieldName("name")
		if body != nil && nameNode != nil {
			b.collectItems(body, extend(scope, nameNode.Content(b.source)), "")
		}
	case "impl_item", "trait_item":
		body := node.ChildByFieldName("body")
		typeName := b.ownerName(node)
		if body != nil {
			b.collectItems(body, extend(scope, typeName), typeName)
		}
	default:
		return false
	}
	return true
}

// ownerName returns the implemented type or trait name without generic arguments
func (b *builder) ownerName(node *sitter.Node) string {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		typeNode = node.ChildByFieldName("name")
	}
	if typeNode == nil {
		return ""
	}
	if typeNode.Type() == "generic_type" {
		if base := typeNode.ChildByFieldName("type"); base != nil {
			typeNode = base
		}
	}
	return compact(typeNode.Content(b.source))
}

// parseAttribute extracts the path and raw arguments of an outer attribute
func (b *builder) parseAttribute(node *sitter.Node) *graph.Attribute {
	attribute := &graph.Attribute{Location: location(b.file.Path, node)}
	meta := node.NamedChild(0)
	if meta == nil {
		return attribute
	}
	pathNode := meta.NamedChild(0)
	if pathNode == nil {
		attribute.Name = compact(meta.Content(b.source))
		return attribute
	}
	attribute.Name = strings.ReplaceAll(compact(pathNode.Content(b.source)), " ", "")
	if args := meta.ChildByFieldName("arguments"); args != nil {
		attribute.Arguments = strings.TrimSpace(trimDelimiters(args.Content(b.source)))
	} else if value := meta.ChildByFieldName("value"); value != nil {
		attribute.Arguments = compact(value.Content(b.source))
	}
	return attribute
}

// parseFunction builds a function entity, its body model and any nested functions
func (b *builder) parseFunction(node *sitter.Node, attributes []*graph.Attribute, scope []string, owner string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(b.source)
	fn := &graph.Function{
		Name:          name,
		QualifiedName: strings.Join(extend(scope, name), "::"),
		Owner:         owner,
		Attributes:    attributes,
		Result:        b.parseShape(node.ChildByFieldName("return_type")),
		Location:      location(b.file.Path, node),
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "visibility_modifier":
			fn.IsPublic = true
		case "function_modifiers":
			fn.IsUnsafe = hasToken(child, "unsafe")
		}
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Parameters = b.parseParameters(params)
	}
	b.file.AddFunction(fn)

	if body := node.ChildByFieldName("body"); body != nil {
		fn.Body = graph.NewBlock(graph.BlockFunction, location(b.file.Path, body))
		fn.Body.Unsafe = fn.IsUnsafe
		b.walk(body, fn.Body, extend(scope, name))
	}
}

func (b *builder) parseParameters(node *sitter.Node) []*graph.Parameter {
	var result []*graph.Parameter
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "parameter":
			param := &graph.Parameter{}
			if pattern := child.ChildByFieldName("pattern"); pattern != nil {
				param.Name = compact(pattern.Content(b.source))
			}
			if typ := child.ChildByFieldName("type"); typ != nil {
				param.Type = compact(typ.Content(b.source))
			}
			result = append(result, param)
		case "self_parameter":
			result = append(result, &graph.Parameter{Name: "self", Type: compact(child.Content(b.source))})
		case "attribute_item", "line_comment", "block_comment":
		default:
			result = append(result, &graph.Parameter{Name: "_", Type: compact(child.Content(b.source))})
		}
	}
	return result
}

// parseShape classifies a declared return type
func (b *builder) parseShape(node *sitter.Node) *graph.TypeShape {
	if node == nil {
		return &graph.TypeShape{Kind: graph.ShapeUnit}
	}
	shape := &graph.TypeShape{Kind: graph.ShapePlain, Text: compact(node.Content(b.source))}
	var name string
	var arguments *sitter.Node
	switch node.Type() {
	case "unit_type":
		shape.Kind = graph.ShapeUnit
		return shape
	case "generic_type":
		if base := node.ChildByFieldName("type"); base != nil {
			name = lastSegment(base.Content(b.source))
		}
		arguments = node.ChildByFieldName("type_arguments")
	case "type_identifier", "scoped_type_identifier":
		name = lastSegment(shape.Text)
	}
	if name == "" || !b.config.IsFallibleType(name) {
		return shape
	}
	shape.Kind = graph.ShapeFallible
	if arguments == nil {
		return shape
	}
	var payloads []string
	for j := 0; j < int(arguments.NamedChildCount()); j++ {
		argument := arguments.NamedChild(j)
		if argument.Type() == "lifetime" {
			continue
		}
		payloads = append(payloads, compact(argument.Content(b.source)))
	}
	if len(payloads) > 0 {
		shape.Success = payloads[0]
	}
	if len(payloads) > 1 {
		shape.Error = payloads[1]
	}
	return shape
}

func hasToken(node *sitter.Node, token string) bool {
	for j := 0; j < int(node.ChildCount()); j++ {
		if node.Child(j).Type() == token {
			return true
		}
	}
	return false
}

func extend(scope []string, name string) []string {
	result := make([]string, 0, len(scope)+1)
	result = append(result, scope...)
	return append(result, name)
}

func lastSegment(path string) string {
	path = strings.TrimSpace(path)
	if idx := strings.LastIndex(path, "::"); idx != -1 {
		return strings.TrimSpace(path[idx+2:])
	}
	return path
}

func compact(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func trimDelimiters(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 {
		switch text[0] {
		case '(', '[', '{':
			return text[1 : len(text)-1]
		}
	}
	return text
}

func location(path string, node *sitter.Node) *graph.Location {
	start, end := node.StartPoint(), node.EndPoint()
	return &graph.Location{
		Path:        path,
		Start:       int(node.StartByte()),
		End:         int(node.EndByte()),
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column) + 1,
	}
}
