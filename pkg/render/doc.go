// Package render defines the contract between the radial controls and
// whatever draws them.
//
// Controls describe what they want on screen as [Shape] values placed on a
// [Surface]: groups with a transform, circles and annular arcs. Changes can be
// applied immediately with [Surface.Put] or animated with [Surface.Animate],
// which calls a tween function once per frame with eased progress. The
// surface owns timing; a control never sleeps or spins a loop.
//
// Two surfaces ship with packnav:
//
//   - [github.com/matzehuels/packnav/pkg/render/scene]: an in-memory scene
//     advanced by an explicit frame clock (tests, CLI, SVG snapshots)
//   - the ebiten viewer in internal/viewer, which wraps a scene and draws it
//
// The package also carries the geometry helpers the controls share: arc
// paths, zoom interpolation and color contrast.
package render
