package javast

import "fmt"

// Position is a 1-based line and column in the source file.
type Position struct {
	Line int
	Col  int
}

// String renders the position as "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Less orders positions by line, then column.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}

	return p.Col < other.Col
}

// Node is a single syntax tree node. Kind, Token and the positions are fixed
// at construction; the tree is immutable during analysis. The parent pointer
// is a non-owning back reference maintained by AddChild.
type Node struct {
	Kind  Kind
	Token string
	Pos   Position
	End   Position

	parent   *Node
	children []*Node
}

// AddChild appends a child and sets its parent back reference.
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// Parent returns the enclosing node, or nil at the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}

	return n.parent
}

// Children returns the direct children in source order. The returned slice
// is the node's own storage and must not be mutated.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}

	return n.children
}

// FirstChild returns the first direct child of the given kind, or nil.
func (n *Node) FirstChild(kind Kind) *Node {
	if n == nil {
		return nil
	}

	for _, child := range n.children {
		if child.Kind == kind {
			return child
		}
	}

	return nil
}

// Modifiers returns the read view over the node's modifier list. The zero
// view is returned when the declaration has no modifiers child.
func (n *Node) Modifiers() ModifierSet {
	return ModifierSet{node: n.FirstChild(KindModifiers)}
}

// Identifier returns the declared name for declaration nodes, or the empty
// string when the node carries none.
func (n *Node) Identifier() string {
	id := n.FirstChild(KindIdentifier)
	if id == nil {
		return ""
	}

	return id.Token
}

// Walk visits the subtree in depth-first preorder. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}

	if !fn(n) {
		return
	}

	for _, child := range n.children {
		child.Walk(fn)
	}
}

// Dump renders a single-line description for internal error reports.
func (n *Node) Dump() string {
	if n == nil {
		return "<nil>"
	}

	if name := n.Identifier(); name != "" {
		return fmt.Sprintf("%s@%s[%s]", n.Kind, n.Pos, name)
	}

	return fmt.Sprintf("%s@%s", n.Kind, n.Pos)
}
