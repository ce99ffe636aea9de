// Package wheel implements the wheel handler: an event filter that gives a
// scrollable surface consistent wheel, touchpad, touch and keyboard
// scrolling across platforms.
//
// # Overview
//
// A Handler is bound to one target surface at a time. It installs itself as
// an event filter on the target, on the scrollbars attached to the target
// (or to the scroll view around it) and on its own FilterItem overlay. For
// every wheel event it first emits a WheelEvent to listeners; a listener
// that accepts the event suppresses the default scrolling. Otherwise the
// handler computes the new content offsets itself, clamps them to the
// content bounds, aligns them to device pixels and either writes them
// directly or, for the vertical axis, retargets a smooth-scroll animation.
//
// # Scrolling state
//
// While wheel events keep producing offset changes the handler is
// "scrolling": the overlay is enabled so that content does not react to
// hover and presses mid-gesture. The state ends 400ms after the last
// qualifying wheel event, or immediately on mouse movement.
//
// # Touchpad detection
//
// Platforms disagree on how they report touchpads (Wayland reports every
// mouse as a touchpad), so the handler guesses: an angle delta that is not
// a multiple of 120 cannot come from a notched wheel. This is a heuristic,
// not a guarantee; it decides whether vertical scrolling is animated.
//
// # Threading
//
// A Handler is not safe for concurrent use. Every method, and every
// callback it schedules, runs on the GUI goroutine.
package wheel
