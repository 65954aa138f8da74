// Package sink turns navigator output into files.
//
// # Scene snapshots
//
// [RenderSVG] writes a [scene.Scene] snapshot as a static SVG: every circle
// and arc in draw order, with the world transform of its group applied and
// visible labels drawn at circle centers. [RenderPNG] and [RenderPDF] convert
// that SVG with rsvg-convert:
//
//	svg := sink.RenderSVG(sc.Snapshot(), sink.WithSize(900, 900))
//	png, err := sink.RenderPNG(sc.Snapshot(), sink.WithScale(2))
//
// # Tree diagrams
//
// [TreeDOT] writes a pack tree as a Graphviz digraph, one box per node, and
// [RenderTreeSVG] lays it out with Graphviz. Expandable nodes are drawn with
// a double outline and creation placeholders dashed.
//
// PDF and PNG output require librsvg: brew install librsvg (macOS), apt
// install librsvg2-bin (Linux).
//
// [scene.Scene]: github.com/matzehuels/packnav/pkg/render/scene
package sink
