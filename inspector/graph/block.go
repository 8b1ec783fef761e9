package graph

import "strings"

// BlockKind indicates the syntactic construct that opened a scope
type BlockKind string

const (
	BlockFunction BlockKind = "function"
	BlockPlain    BlockKind = "block"
	BlockUnsafe   BlockKind = "unsafe"
	BlockBranch   BlockKind = "branch"
	BlockLoop     BlockKind = "loop"
	BlockArm      BlockKind = "arm"
	BlockClosure  BlockKind = "closure"
)

// CallKind indicates how a callee was referenced
type CallKind string

const (
	CallFunction CallKind = "function"
	CallMethod   CallKind = "method"
	CallMacro    CallKind = "macro"
)

// Call represents an unresolved call expression
type Call struct {
	Name     string // last path segment, e.g. from_raw_parts_mut
	Path     string // callee text, e.g. std::slice::from_raw_parts_mut
	Kind     CallKind
	Location *Location
}

// Qualifier returns the path prefix of the callee without the name, e.g. Self for Self::helper
func (c *Call) Qualifier() string {
	if c.Kind == CallMethod || !strings.HasSuffix(c.Path, "::"+c.Name) {
		return ""
	}
	return c.Path[:len(c.Path)-len(c.Name)-2]
}

// Block represents a lexical scope of a function body
type Block struct {
	Kind     BlockKind
	Unsafe   bool // scope opened by an unsafe marker inside the owning function
	Children []*Block
	Calls    []*Call
	Location *Location
}

// NewBlock creates a block
func NewBlock(kind BlockKind, location *Location) *Block {
	return &Block{Kind: kind, Unsafe: kind == BlockUnsafe, Location: location}
}

// AddChild appends a nested scope
func (b *Block) AddChild(child *Block) {
	b.Children = append(b.Children, child)
}

// AddCall appends a call expression directly contained by the block
func (b *Block) AddCall(call *Call) {
	b.Calls = append(b.Calls, call)
}

// Visit walks the block tree depth first, stopping descent when visitor returns false
func (b *Block) Visit(visitor func(block *Block) bool) {
	if !visitor(b) {
		return
	}
	for _, child := range b.Children {
		child.Visit(visitor)
	}
}

// ContainsUnsafe returns true if the block or any nested block is an unsafe region
func (b *Block) ContainsUnsafe() bool {
	found := false
	b.Visit(func(block *Block) bool {
		if block.Unsafe {
			found = true
		}
		return !found
	})
	return found
}

// UnsafeBlocks returns all unsafe regions in source order
func (b *Block) UnsafeBlocks() []*Block {
	var result []*Block
	b.Visit(func(block *Block) bool {
		if block.Unsafe {
			result = append(result, block)
		}
		return true
	})
	return result
}
