package rust

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/wasmguard/inspector/graph"
)

// walk visits the children of n within the current scope; item declarations found in a body become separate functions
func (b *builder) walk(n *sitter.Node, current *graph.Block, scope []string) {
	var pending []*graph.Attribute
	for j := 0; j < int(n.NamedChildCount()); j++ {
		child := n.NamedChild(j)
		switch child.Type() {
		case "attribute_item":
			pending = append(pending, b.parseAttribute(child))
			continue
		case "line_comment", "block_comment":
			continue
		}
		if b.collectItem(child, pending, scope, "") {
			pending = nil
			continue
		}
		pending = nil
		b.visit(child, current, scope)
	}
}

func (b *builder) visit(n *sitter.Node, current *graph.Block, scope []string) {
	switch n.Type() {
	case "unsafe_block":
		block := graph.NewBlock(graph.BlockUnsafe, location(b.file.Path, n))
		current.AddChild(block)
		for j := 0; j < int(n.NamedChildCount()); j++ {
			if inner := n.NamedChild(j); inner.Type() == "block" {
				b.walk(inner, block, scope)
			}
		}
		return
	case "block":
		block := graph.NewBlock(blockKind(n), location(b.file.Path, n))
		current.AddChild(block)
		b.walk(n, block, scope)
		return
	case "match_arm":
		block := graph.NewBlock(graph.BlockArm, location(b.file.Path, n))
		current.AddChild(block)
		b.walk(n, block, scope)
		return
	case "closure_expression":
		if body := n.ChildByFieldName("body"); body != nil && body.Type() != "block" {
			block := graph.NewBlock(graph.BlockClosure, location(b.file.Path, n))
			current.AddChild(block)
			b.walk(n, block, scope)
			return
		}
	case "call_expression":
		if call := b.parseCall(n); call != nil {
			current.AddCall(call)
		}
	case "macro_invocation":
		if macro := n.ChildByFieldName("macro"); macro != nil {
			path := compact(macro.Content(b.source))
			current.AddCall(&graph.Call{Name: lastSegment(path), Path: path, Kind: graph.CallMacro, Location: location(b.file.Path, n)})
		}
		for j := 0; j < int(n.NamedChildCount()); j++ {
			if args := n.NamedChild(j); args.Type() == "token_tree" {
				b.scanTokens(args, current)
			}
		}
		return
	case "macro_definition", "foreign_mod_item", "use_declaration":
		return
	}
	b.walk(n, current, scope)
}

// blockKind derives the scope kind from the construct owning the block
func blockKind(n *sitter.Node) graph.BlockKind {
	parent := n.Parent()
	if parent == nil {
		return graph.BlockPlain
	}
	switch parent.Type() {
	case "if_expression", "else_clause":
		return graph.BlockBranch
	case "loop_expression", "while_expression", "for_expression":
		return graph.BlockLoop
	case "closure_expression":
		return graph.BlockClosure
	}
	return graph.BlockPlain
}

// parseCall extracts an unresolved callee reference
func (b *builder) parseCall(n *sitter.Node) *graph.Call {
	callee := n.ChildByFieldName("function")
	for callee != nil && callee.Type() == "generic_function" {
		callee = callee.ChildByFieldName("function")
	}
	if callee == nil {
		return nil
	}
	call := &graph.Call{Kind: graph.CallFunction, Location: location(b.file.Path, n)}
	switch callee.Type() {
	case "field_expression":
		call.Kind = graph.CallMethod
		if field := callee.ChildByFieldName("field"); field != nil {
			call.Name = field.Content(b.source)
		}
		call.Path = compact(callee.Content(b.source))
	case "identifier", "scoped_identifier":
		call.Path = compact(callee.Content(b.source))
		call.Name = lastSegment(call.Path)
	default:
		return nil
	}
	return call
}

// scanTokens finds unsafe regions written in macro arguments; the macro itself is not expanded
func (b *builder) scanTokens(tree *sitter.Node, current *graph.Block) {
	count := int(tree.ChildCount())
	for j := 0; j < count; j++ {
		child := tree.Child(j)
		if child.Type() != "token_tree" {
			continue
		}
		if j > 0 && tree.Child(j-1).Type() == "unsafe" && strings.HasPrefix(child.Content(b.source), "{") {
			region := location(b.file.Path, child)
			start := tree.Child(j - 1)
			region.Start = int(start.StartByte())
			region.StartLine = int(start.StartPoint().Row) + 1
			region.StartColumn = int(start.StartPoint().Column) + 1
			block := graph.NewBlock(graph.BlockUnsafe, region)
			current.AddChild(block)
			b.scanTokens(child, block)
			continue
		}
		b.scanTokens(child, current)
	}
}
