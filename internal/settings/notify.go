package settings

import (
	"slices"
	"strings"
	"sync"
)

// Change describes one settings value that changed.
type Change struct {
	// Path is the dot-separated setting path, e.g. "scrolling.smooth_scroll".
	Path string
	Old  any
	New  any
	// Source identifies where the change came from (a file path, "api").
	Source string
}

// Observer is called when a setting changes.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes the observer. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type observerEntry struct {
	id       uint64
	path     string
	observer Observer
}

// Notifier delivers changes to observers subscribed to a path or to one of
// its parents: "scrolling" receives "scrolling.smooth_scroll".
// Delivery is synchronous, in subscription order.
type Notifier struct {
	mu        sync.RWMutex
	observers []observerEntry
	nextID    uint64
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes at or below path.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.observers = append(n.observers, observerEntry{id: n.nextID, path: path, observer: observer})
	return &Subscription{id: n.nextID, notifier: n}
}

// Notify sends change to every matching observer. Observers run outside
// the lock and may unsubscribe themselves.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	var matched []Observer
	for _, e := range n.observers {
		if matchPath(e.path, change.Path) {
			matched = append(matched, e.observer)
		}
	}
	n.mu.RUnlock()

	for _, obs := range matched {
		obs(change)
	}
}

// Len returns the number of subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = slices.DeleteFunc(n.observers, func(e observerEntry) bool { return e.id == id })
}

// matchPath reports whether an observer of sub wants a change at path.
func matchPath(sub, path string) bool {
	if sub == "" || sub == path {
		return true
	}
	return strings.HasPrefix(path, sub) && path[len(sub)] == '.'
}
