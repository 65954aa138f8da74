// Package angle provides arithmetic over the circular domain used by the
// radial controls.
//
// Angles are radians measured clockwise from twelve o'clock, matching the arc
// convention of the rendering layer. Nothing here allocates or holds state; NaN
// inputs propagate as NaN.
//
// # Wraparound
//
// An interval [start, end] with start > end passes through the 0/2π seam.
// [Contains] treats such an interval as the union of [start, max] and
// [min, end] for the caller's domain bounds.
//
// # Drag continuity
//
// [ClampForward] and [ClampBackward] keep a dragged handle inside the window
// allowed by the opposite, fixed handle. They pick the 2π representative of
// the candidate that lands inside (or nearest to) that window, so a pointer
// crossing the seam does not make the handle jump.
package angle
