// Package pack provides the tree of nodes shown by the radial navigator and
// the layout contract that places them.
//
// # Nodes
//
// A [Node] has a name, optional children, an optional expansion URL and a
// set of type tags stored as a comma separated string, the same form the
// JSON payloads use:
//
//	{"name": "planets", "type": "zoomable", "children": [
//	    {"name": "mercury", "url": "https://example.com/mercury.json"},
//	    {"name": "+", "type": "static,createNewNode"}
//	]}
//
// [Prepare] wires parent pointers and depths, assigns every node a stable
// [uuid.UUID] and fills in missing ordinals from sibling positions. Call it
// after decoding and after editing the tree.
//
// # Tags
//
//   - [TagOverflow]: children beyond the visible budget are paged
//   - [TagStatic]: always shown, never paged
//   - [TagCreateNew]: placeholder that opens the inline creation affordance
//
// # Layout
//
// The navigator does not place nodes itself. A [Layout] assigns X, Y and R
// to the nodes of one level inside a square. [RingLayout] is a simple
// deterministic implementation that places siblings on a ring inside their
// parent; front-ends can plug in a proper circle packer.
//
// [uuid.UUID]: https://pkg.go.dev/github.com/google/uuid#UUID
package pack
