// Package scene provides an in-memory [render.Surface] driven by an explicit
// frame clock.
//
// A [Scene] stores shapes by id and keeps the transitions started on them.
// Nothing moves until the owner calls [Scene.Advance] with the elapsed frame
// time, which makes the scene deterministic in tests and lets the ebiten
// viewer drive it from its Update loop. [Scene.Flush] runs every pending
// transition, including the ones started by completion callbacks, to the end.
//
// A scene is not safe for concurrent use. Controls, the viewer and the CLI
// all touch it from a single goroutine.
package scene
