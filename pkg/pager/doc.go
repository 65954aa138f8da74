// Package pager implements a circular paging control.
//
// A [Pager] draws a background ring with a gap at twelve o'clock and a
// [brush.Selector] on top of it whose extent is exactly one page wide.
// Dragging the selector reports the page under it to the pager's callback;
// when the drag ends the selector snaps onto the chosen page.
//
// Pagers can be configured from loosely typed option maps, as decoded from
// JSON or TOML:
//
//	p := pager.New()
//	err := p.Configure(map[string]any{
//	    "max":     3,
//	    "width":   20,
//	    "gapSize": 1,
//	    "radius":  440,
//	    "margin":  map[string]any{"top": 440, "left": 440},
//	})
//
// Recognized keys are min, max, value, width, gapSize, radius, margin,
// cssClass, callback and target. Unknown keys are ignored. A width that is
// not a number or a margin that is not an object is a configuration error.
//
// Rendering is suppressed while a drag is in progress so that a callback
// which re-renders the host does not fight the pointer.
//
// [brush.Selector]: github.com/matzehuels/packnav/pkg/brush
package pager
