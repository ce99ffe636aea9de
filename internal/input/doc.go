// Package input defines the raw input events a host delivers to scene
// objects: wheel, touch, mouse, hover and key events.
//
// Events are plain values. The host converts its native events (a terminal,
// a windowing system, a test) into these types and dispatches them through
// scene.Deliver, where event filters such as the wheel handler can consume
// them before the target object sees them.
//
// # Wheel deltas
//
// AngleDelta is expressed in eighths of a degree: one notch of a standard
// mouse wheel is 120 units. Positive Y scrolls up (content moves down),
// positive X scrolls left. PixelDelta carries the high-resolution deltas a
// touchpad or a smooth-scrolling platform reports; it is null when the
// platform only knows notches.
//
// # Synthesized events
//
// Source distinguishes genuine mouse events from those the platform or the
// application synthesized from touch input. The wheel handler uses it to
// tell finger drags apart from mouse drags.
package input
