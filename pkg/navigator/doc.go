// Package navigator implements a zoomable, multi-level radial pack
// navigator.
//
// A [Navigator] shows a tree of [pack.Node] values as nested circles on a
// [render.Surface]. Clicking a node zooms to it. Nodes with a URL expand into
// a new, independently laid out level when activated: the payload is fetched,
// laid out inside the node's circle and joined to it by a link, so circle
// sizes on each level stay independent of the levels above.
//
// # Levels and links
//
// The navigator keeps one [Level] per expansion depth. After every
// interaction it walks from the focused node to the top of the tree,
// crossing from a level root to the node it expanded via the link table, and
// disposes every level that walk does not touch. Focusing a sibling of an
// expanded node therefore drops the sibling's branch.
//
// Links live in a [LinkTable] keyed by node ID rather than in the nodes
// themselves. Tearing a level down removes one table entry, and a payload
// that arrives for a level that no longer exists is detected by a registry
// miss.
//
// # Expansion
//
// Expansion is split so the fetch can run off the UI loop:
//
//	exp, err := nav.Begin(node) // zooms, returns nil if nothing to fetch
//	tree, err := exp.Fetch(ctx) // safe on any goroutine
//	err = nav.Complete(exp, tree, err)
//
// [Navigator.Activate] performs the three steps in one call. If the fetch
// fails, focus and view return to where they were before the click; results
// that arrive after focus moved on are discarded with a STALE_STATE error.
//
// # Paging
//
// A level whose root is tagged [pack.TagOverflow] and has more children than
// the overflow budget (17 by default) shows a [pager.Pager]. Children tagged
// [pack.TagStatic] are always visible; the rest are shown one page at a
// time. The child list of the data tree is only windowed for the duration of
// a layout pass.
//
// # Inline creation
//
// Activating a node tagged [pack.TagCreateNew] shows the [Affordance]
// instead of zooming. [Navigator.ConfirmCreate] renames that placeholder,
// clears its tags and appends a fresh placeholder to the same sibling list.
//
// [pager.Pager]: github.com/matzehuels/packnav/pkg/pager
package navigator
