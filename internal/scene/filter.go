package scene

import "github.com/lingmo/lingmoui/internal/input"

// Filter intercepts events addressed to the objects it is installed on.
// Returning true consumes the event.
type Filter interface {
	EventFilter(watched Object, ev input.Event) bool
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(watched Object, ev input.Event) bool

// EventFilter implements Filter.
func (f FilterFunc) EventFilter(watched Object, ev input.Event) bool {
	return f(watched, ev)
}

// FilterHandle identifies one installation of a filter on one object.
type FilterHandle struct {
	id uint64
}

// IsZero reports whether h does not refer to an installation.
func (h FilterHandle) IsZero() bool {
	return h.id == 0
}

type filterEntry struct {
	handle FilterHandle
	filter Filter
}

// Handler is an object's own event handling, run when no filter consumed
// the event.
type Handler func(ev input.Event) bool

// Deliver dispatches ev to o: filters first, then o's own handler when o is
// an *Item with one. It reports whether the event was consumed.
func Deliver(o Object, ev input.Event) bool {
	if normalize(o) == nil {
		return false
	}
	if o.FilterEvent(ev) {
		return true
	}
	if it, ok := o.(*Item); ok {
		it.mu.RLock()
		h := it.handler
		it.mu.RUnlock()
		if h != nil {
			return h(ev)
		}
	}
	return false
}
