package pack

import (
	"cmp"
	"math"
	"slices"
)

// Layout assigns X, Y and R to root and its descendants so that children sit
// inside their parent without overlapping. Coordinates are relative to the
// top-left corner of a square of side size. padding is the gap kept between
// siblings and between a child and its parent's edge. Every node weighs the
// same.
//
// Layout returns the placed nodes in pre-order; siblings are visited in
// ordinal order.
type Layout interface {
	Layout(root *Node, size, padding float64) []*Node
}

// LayoutFunc adapts a function to the Layout interface.
type LayoutFunc func(root *Node, size, padding float64) []*Node

// Layout calls f.
func (f LayoutFunc) Layout(root *Node, size, padding float64) []*Node {
	return f(root, size, padding)
}

// RingLayout places a node's children on a ring of equal circles touching
// the parent's rim. A single child is centered and fills its parent minus
// the padding.
type RingLayout struct{}

// Layout implements Layout.
func (RingLayout) Layout(root *Node, size, padding float64) []*Node {
	root.X, root.Y, root.R = size/2, size/2, size/2
	var out []*Node
	var place func(n *Node)
	place = func(n *Node) {
		out = append(out, n)
		kids := SortedChildren(n)
		if len(kids) == 0 {
			return
		}
		r, d := ringGeometry(n.R, len(kids))
		r = math.Max(r-padding, 0)
		for i, c := range kids {
			theta := 2 * math.Pi * float64(i) / float64(len(kids))
			c.X = n.X + d*math.Sin(theta)
			c.Y = n.Y - d*math.Cos(theta)
			c.R = r
			place(c)
		}
	}
	place(root)
	return out
}

// ringGeometry returns the radius of n equal circles inscribed in a circle
// of radius parent, each touching the rim and its two neighbors, and the
// distance of their centers from the parent's center.
func ringGeometry(parent float64, n int) (radius, dist float64) {
	if n == 1 {
		return parent, 0
	}
	s := math.Sin(math.Pi / float64(n))
	radius = parent * s / (1 + s)
	return radius, parent - radius
}

// SortedChildren returns n's children ordered by ordinal. Children without
// an ordinal sort as if their ordinal were zero. The input order breaks ties.
func SortedChildren(n *Node) []*Node {
	kids := slices.Clone(n.Children)
	slices.SortStableFunc(kids, func(a, b *Node) int {
		return cmp.Compare(a.OrdinalOr(0), b.OrdinalOr(0))
	})
	return kids
}
