package pack

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Tags recognized by the navigator.
const (
	TagOverflow  = "zoomable"
	TagStatic    = "static"
	TagCreateNew = "createNewNode"
)

// Node is one element of a pack tree.
//
// Name, Type, URL, Size, Ordinal and Children round-trip through JSON. The
// remaining fields are derived: Prepare sets ID, Parent and Depth; a Layout
// sets X, Y and R.
type Node struct {
	Name     string  `json:"name"`
	Type     string  `json:"type,omitempty"`
	URL      string  `json:"url,omitempty"`
	Size     float64 `json:"size,omitempty"`
	Ordinal  *int    `json:"ordinal,omitempty"`
	Children []*Node `json:"children,omitempty"`

	ID     uuid.UUID `json:"-"`
	Parent *Node     `json:"-"`
	Depth  int       `json:"-"`

	X, Y, R float64 `json:"-"`
}

// Tags returns the type tags in order.
func (n *Node) Tags() []string {
	if n.Type == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(n.Type, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// HasTag reports whether tag is one of the node's type tags.
func (n *Node) HasTag(tag string) bool {
	return slices.Contains(n.Tags(), tag)
}

// SetTags replaces the node's type tags.
func (n *Node) SetTags(tags ...string) {
	n.Type = strings.Join(tags, ",")
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Expandable reports whether activating the node loads a nested level.
func (n *Node) Expandable() bool {
	return n.URL != ""
}

// OrdinalOr returns the node's ordinal, or def when it has none.
func (n *Node) OrdinalOr(def int) int {
	if n.Ordinal == nil {
		return def
	}
	return *n.Ordinal
}

// Walk calls fn for n and its descendants in pre-order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Flatten returns n and all of its descendants in pre-order.
func (n *Node) Flatten() []*Node {
	var out []*Node
	n.Walk(func(m *Node) bool {
		out = append(out, m)
		return true
	})
	return out
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	return len(n.Flatten())
}

// Find returns the first node in pre-order with the given name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(m *Node) bool {
		if found == nil && m.Name == name {
			found = m
		}
		return found == nil
	})
	return found
}

// AddChild appends c to n's children and prepares it.
func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
	prepare(c, n, n.Depth+1)
	if c.Ordinal == nil {
		i := len(n.Children) - 1
		c.Ordinal = &i
	}
}

// Clone returns a deep copy of the tree rooted at n with fresh IDs and no
// layout.
func (n *Node) Clone() *Node {
	cp := &Node{Name: n.Name, Type: n.Type, URL: n.URL, Size: n.Size}
	if n.Ordinal != nil {
		o := *n.Ordinal
		cp.Ordinal = &o
	}
	for _, c := range n.Children {
		cp.Children = append(cp.Children, c.Clone())
	}
	Prepare(cp)
	return cp
}

// Prepare makes root the top of its own tree: parent pointers and depths
// are recomputed, nodes without an ID get one, and children without an
// ordinal get their position among their siblings.
func Prepare(root *Node) {
	prepare(root, nil, 0)
}

func prepare(n, parent *Node, depth int) {
	n.Parent = parent
	n.Depth = depth
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	for i, c := range n.Children {
		if c.Ordinal == nil {
			idx := i
			c.Ordinal = &idx
		}
		prepare(c, n, depth+1)
	}
}
