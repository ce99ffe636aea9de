package wheel

import "errors"

// ErrNotFlickable is returned when a target lacks the properties of a
// scrollable surface.
var ErrNotFlickable = errors.New("target must be a flickable")
