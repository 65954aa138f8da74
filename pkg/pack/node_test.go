package pack

import (
	"math"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/packnav/pkg/errors"
)

func sample() *Node {
	root := &Node{Name: "root", Type: "zoomable", Children: []*Node{
		{Name: "a", Children: []*Node{{Name: "a1"}, {Name: "a2"}}},
		{Name: "b", URL: "https://example.com/b.json"},
		{Name: "+", Type: "static, createNewNode"},
	}}
	Prepare(root)
	return root
}

func TestTags(t *testing.T) {
	n := &Node{Type: "static, createNewNode,"}
	if got := n.Tags(); !slices.Equal(got, []string{TagStatic, TagCreateNew}) {
		t.Errorf("Tags() = %v", got)
	}
	if !n.HasTag(TagCreateNew) || n.HasTag(TagOverflow) {
		t.Error("HasTag mismatch")
	}
	n.SetTags()
	if n.Type != "" || n.Tags() != nil {
		t.Errorf("SetTags() left %q", n.Type)
	}
	n.SetTags(TagStatic, TagCreateNew)
	if n.Type != "static,createNewNode" {
		t.Errorf("Type = %q", n.Type)
	}
}

func TestPrepare(t *testing.T) {
	root := sample()
	a := root.Find("a")
	a2 := root.Find("a2")
	if a2.Parent != a || a.Parent != root || root.Parent != nil {
		t.Error("parent pointers not wired")
	}
	if root.Depth != 0 || a.Depth != 1 || a2.Depth != 2 {
		t.Errorf("depths = %d %d %d", root.Depth, a.Depth, a2.Depth)
	}
	if *root.Find("+").Ordinal != 2 || *a2.Ordinal != 1 {
		t.Error("ordinals not filled from position")
	}

	ids := map[uuid.UUID]bool{}
	for _, n := range root.Flatten() {
		if n.ID == uuid.Nil || ids[n.ID] {
			t.Fatalf("node %s has missing or duplicate ID", n.Name)
		}
		ids[n.ID] = true
	}

	before := a.ID
	Prepare(root)
	if a.ID != before {
		t.Error("Prepare() reassigned an existing ID")
	}
}

func TestFlattenAndWalk(t *testing.T) {
	root := sample()
	var names []string
	for _, n := range root.Flatten() {
		names = append(names, n.Name)
	}
	if want := []string{"root", "a", "a1", "a2", "b", "+"}; !slices.Equal(names, want) {
		t.Errorf("Flatten() = %v, want %v", names, want)
	}

	var visited []string
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Name)
		return n.Name != "a"
	})
	if want := []string{"root", "a", "b", "+"}; !slices.Equal(visited, want) {
		t.Errorf("Walk() with pruning = %v", visited)
	}
	if root.Count() != 6 || root.Find("missing") != nil {
		t.Error("Count/Find mismatch")
	}
}

func TestAddChildAndClone(t *testing.T) {
	root := sample()
	c := &Node{Name: "c"}
	root.AddChild(c)
	if c.Parent != root || c.Depth != 1 || *c.Ordinal != 3 || c.ID == uuid.Nil {
		t.Errorf("AddChild() did not prepare child: %+v", c)
	}

	cp := root.Clone()
	if cp.Count() != root.Count() || cp.ID == root.ID || cp.Find("a2").Parent != cp.Find("a") {
		t.Error("Clone() is not an independent prepared copy")
	}
}

func TestValidate(t *testing.T) {
	shared := &Node{Name: "shared"}
	tests := []struct {
		name string
		root *Node
		ok   bool
	}{
		{"valid", sample(), true},
		{"nil", nil, false},
		{"unnamed child", &Node{Name: "r", Children: []*Node{{}}}, false},
		{"nil child", &Node{Name: "r", Children: []*Node{nil}}, false},
		{"shared node", &Node{Name: "r", Children: []*Node{shared, shared}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.root)
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidTree) {
				t.Errorf("error code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestRingLayout(t *testing.T) {
	root := sample()
	nodes := RingLayout{}.Layout(root, 200, 5)
	if len(nodes) != root.Count() {
		t.Fatalf("Layout() placed %d nodes, want %d", len(nodes), root.Count())
	}
	if root.X != 100 || root.Y != 100 || root.R != 100 {
		t.Errorf("root = (%v, %v, %v)", root.X, root.Y, root.R)
	}

	for _, n := range nodes {
		if n.Parent == nil {
			continue
		}
		d := math.Hypot(n.X-n.Parent.X, n.Y-n.Parent.Y)
		if d+n.R > n.Parent.R+1e-9 {
			t.Errorf("%s sticks out of %s", n.Name, n.Parent.Name)
		}
		for _, sib := range n.Parent.Children {
			if sib == n {
				continue
			}
			if math.Hypot(n.X-sib.X, n.Y-sib.Y) < n.R+sib.R-1e-9 {
				t.Errorf("%s overlaps %s", n.Name, sib.Name)
			}
		}
	}

	// First child sits at twelve o'clock.
	if a := root.Find("a"); math.Abs(a.X-100) > 1e-9 || a.Y >= 100 {
		t.Errorf("first child at (%v, %v)", a.X, a.Y)
	}
}

func TestSortedChildren(t *testing.T) {
	two, zero := 2, 0
	n := &Node{Children: []*Node{{Name: "x", Ordinal: &two}, {Name: "y"}, {Name: "z", Ordinal: &zero}}}
	var names []string
	for _, c := range SortedChildren(n) {
		names = append(names, c.Name)
	}
	if want := []string{"y", "z", "x"}; !slices.Equal(names, want) {
		t.Errorf("SortedChildren() = %v, want %v", names, want)
	}
	if n.Children[0].Name != "x" {
		t.Error("SortedChildren() reordered the input")
	}
}
