// Package brush implements a circular range selector.
//
// A [Selector] occupies an annulus between an inner and outer radius and an
// angular span on that annulus. Its selection (the extent) is an angular
// interval that may wrap through the end of the span. Two handles of fixed
// angular width sit next to the extent boundaries: dragging one resizes the
// extent, dragging the extent itself pans it.
//
// Values outside the selector are expressed in an abstract domain (a page
// range, for example). A [Scale] converts between that domain and angles.
//
//	sel := brush.New(brush.WithRadii(440, 460), brush.WithTolerance(0.5))
//	sel.SetAngularSpan(0.01, 2*math.Pi-0.01)
//	sel.SetDomain(0, 5)
//	sel.SetExtent(2, 3)
//	pages := brush.Filter(sel, []int{0, 1, 2, 3, 4}, func(v int) float64 { return float64(v) })
//
// # Interaction
//
// A selector is either idle or dragging. [Selector.PointerDown] hit-tests the
// pointer against the handles and the extent and starts a drag;
// [Selector.PointerMove] updates the live extent; [Selector.PointerUp]
// commits it. The lower level [Selector.Begin], [Selector.Update] and
// [Selector.End] drive the same state machine with an explicit handle.
//
// Listeners registered with [Selector.On] receive [SelectionStarted],
// [SelectionChanging] (every pointer move, carrying the live angles) and
// [SelectionEnded].
//
// # Angles
//
// Live angles during a drag are unbounded so the drag stays continuous
// across the twelve o'clock seam. When a gesture ends the persisted extent is
// renormalized into [-2π, 2π].
package brush
