// Package layout is the retained tree behind the photo grid. The grid view
// assigns screen bounds to nodes on every render, mouse clicks are resolved
// with HitTest and walked up with Closest, and tiles carry their photo id
// as an attribute and their visual state as classes.
package layout

// Rect is a screen area in terminal cells
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the cell (x, y) is inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Node is one element of the tree
type Node struct {
	Kind     string
	Parent   *Node
	Children []*Node
	Bounds   Rect

	attrs   map[string]string
	classes []string
}

// NewNode creates a detached node
func NewNode(kind string) *Node {
	return &Node{Kind: kind, attrs: make(map[string]string)}
}

// Append attaches child to n and returns the child
func (n *Node) Append(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// SetAttr sets an attribute
func (n *Node) SetAttr(name, value string) {
	n.attrs[name] = value
}

// Attr returns an attribute and whether it is set
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// HasClass reports whether class is in n's class list
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class once
func (n *Node) AddClass(class string) {
	if !n.HasClass(class) {
		n.classes = append(n.classes, class)
	}
}

// RemoveClass removes class if present
func (n *Node) RemoveClass(class string) {
	for i, c := range n.classes {
		if c == class {
			n.classes = append(n.classes[:i], n.classes[i+1:]...)
			return
		}
	}
}

// Closest returns the first of n and its ancestors that satisfies match,
// or nil when none does.
func (n *Node) Closest(match func(*Node) bool) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if match(cur) {
			return cur
		}
	}
	return nil
}

// HitTest returns the deepest node under (x, y), or nil if the point is
// outside n. Later children are drawn on top and win over earlier ones.
func (n *Node) HitTest(x, y int) *Node {
	if !n.Bounds.Contains(x, y) {
		return nil
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if hit := n.Children[i].HitTest(x, y); hit != nil {
			return hit
		}
	}
	return n
}

// Walk visits n and its descendants depth first
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// HasAttr is a Closest predicate matching nodes that carry attribute name
func HasAttr(name string) func(*Node) bool {
	return func(n *Node) bool {
		_, ok := n.attrs[name]
		return ok
	}
}
