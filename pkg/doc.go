// Package pkg provides the core libraries for packnav, a zoomable
// circle-pack navigator for hierarchical data.
//
// # Overview
//
// Packnav draws a tree as nested circles and zooms into the circle that is
// clicked. Nodes with a url load their children on demand and the loaded
// payload becomes a nested level drawn inside the node's circle. Levels
// with more children than fit on the ring are paged through a circular
// pager. The pkg directory is organized into these areas:
//
//  1. [pack] - The tree model and the circle-packing layouts
//  2. [navigator] - The zooming, loading navigator built on the other packages
//  3. [angle], [brush] and [pager] - Circular range selection and paging
//  4. [render] - Shapes, transitions and the surfaces they are drawn on
//  5. [source] - Payload fetchers for files, HTTP and a SQLite store
//
// # Architecture
//
// The typical data flow through packnav:
//
//	JSON tree (file, HTTP, sqlite://)
//	         ↓
//	    [source] package (fetch and cache payloads)
//	         ↓
//	    [pack] package (validate, prepare, lay out)
//	         ↓
//	    [navigator] package (levels, focus, zoom, nested loading)
//	         ↓
//	    [render/scene] package (in-memory surface and transitions)
//	         ↓
//	    [render/sink] (SVG, PNG, PDF) or a terminal or desktop front end
//
// # Quick Start
//
// Render a tree zoomed onto one of its children:
//
//	import (
//	    "github.com/matzehuels/packnav/pkg/io"
//	    "github.com/matzehuels/packnav/pkg/navigator"
//	    "github.com/matzehuels/packnav/pkg/render/scene"
//	    "github.com/matzehuels/packnav/pkg/render/sink"
//	)
//
//	tree, _ := io.ImportJSON("tree.json")
//	nav := navigator.New(navigator.WithRadius(400))
//	_ = nav.SetRootData(tree)
//
//	s := scene.New()
//	_ = nav.AttachTo(s)
//	_ = nav.Activate(ctx, tree.Find("src"))
//	s.Flush()
//
//	svg := sink.RenderSVG(s.Snapshot())
//
// # Main Packages
//
// [pack] - Nodes with names, tags, urls and ordinals. Validate and Prepare
// check and link a decoded tree; RingLayout places children on a ring
// inside their parent.
//
// [navigator] - The radial zoom navigator. Begin and Complete split an
// activation into a zoom and a payload fetch so front ends can load off
// their event loop. Links between expanded nodes and nested level roots
// live in a table keyed by node ID.
//
// [angle] - Angle arithmetic: normalization, wrap-aware spans and the
// clockwise-from-twelve convention used everywhere.
//
// [brush] - A circular range selector with resize handles and a pannable
// extent. [brush.Filter] keeps the items whose angle falls in the extent,
// also when the extent wraps past twelve o'clock.
//
// [pager] - A circular pager built on brush that snaps its extent to whole
// pages.
//
// [render] - Shapes, transforms, colors, easing and zoom interpolation.
//
//   - [render/scene]: The in-memory surface with a transition clock
//   - [render/sink]: SVG, PNG and PDF output, and Graphviz tree diagrams
//
// [source] - Fetchers for file paths, HTTP(S) with retries and an on-disk
// cache, and sqlite:// keys. [source.Router] picks one by URL scheme.
//
// [config] - TOML configuration with PACKNAV_* environment overrides.
//
// [errors] - Error codes shared by every package and user-facing messages.
//
// [observability] - Hooks for navigator, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/navigator/...    # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [pack]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/pack
// [navigator]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/navigator
// [angle]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/angle
// [brush]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/brush
// [brush.Filter]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/brush#Filter
// [pager]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/pager
// [render]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/render
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/render/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/render/sink
// [source]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/source
// [source.Router]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/source#Router
// [config]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/packnav/pkg/observability
package pkg
