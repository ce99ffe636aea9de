package scene

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/lingmo/lingmoui/internal/input"
)

// Item is the in-memory Object implementation.
//
// Property reads may happen from any goroutine; everything else is expected
// to run on the GUI goroutine.
type Item struct {
	id   uuid.UUID
	kind Kind
	name string

	mu       sync.RWMutex
	props    map[string]any
	parent   Object
	children []Object
	window   *Window
	handler  Handler

	filters    []filterEntry
	nextFilter uint64

	sigMu         sync.Mutex
	propSignals   map[string]*Signal[PropertyChange]
	parentChanged Signal[Object]
}

var _ Object = (*Item)(nil)

// NewItem creates an enabled item with zero size.
func NewItem(kind Kind, name string) *Item {
	return &Item{
		id:   uuid.New(),
		kind: kind,
		name: name,
		props: map[string]any{
			"enabled": true,
			"width":   0.0,
			"height":  0.0,
		},
		propSignals: make(map[string]*Signal[PropertyChange]),
	}
}

func (i *Item) ID() uuid.UUID { return i.id }
func (i *Item) Kind() Kind    { return i.kind }
func (i *Item) Name() string  { return i.name }

// String returns "Kind(name)".
func (i *Item) String() string {
	return fmt.Sprintf("%s(%s)", i.kind, i.name)
}

// Property implements Object.
func (i *Item) Property(name string) (any, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	v, ok := i.props[name]
	return v, ok
}

// SetProperty implements Object. Writing a nil *Item stores nil.
func (i *Item) SetProperty(name string, value any) bool {
	if it, ok := value.(*Item); ok && it == nil {
		value = nil
	}

	i.mu.Lock()
	old, existed := i.props[name]
	if existed && sameValue(old, value) {
		i.mu.Unlock()
		return false
	}
	i.props[name] = value
	i.mu.Unlock()

	i.sigMu.Lock()
	sig := i.propSignals[name]
	i.sigMu.Unlock()
	if sig != nil {
		sig.Emit(PropertyChange{Object: i, Name: name, Old: old, New: value})
	}
	return true
}

// OnPropertyChanged implements Object.
func (i *Item) OnPropertyChanged(name string, fn func(PropertyChange)) Connection {
	i.sigMu.Lock()
	sig, ok := i.propSignals[name]
	if !ok {
		sig = &Signal[PropertyChange]{}
		i.propSignals[name] = sig
	}
	i.sigMu.Unlock()
	return sig.Connect(fn)
}

// PropertyListeners returns how many slots watch the named property.
func (i *Item) PropertyListeners(name string) int {
	i.sigMu.Lock()
	sig := i.propSignals[name]
	i.sigMu.Unlock()
	if sig == nil {
		return 0
	}
	return sig.Len()
}

// Parent implements Object.
func (i *Item) Parent() Object {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.parent
}

// SetParent implements Object. The item is appended to the new parent's
// children when that parent is an *Item.
func (i *Item) SetParent(parent Object) {
	parent = normalize(parent)

	i.mu.Lock()
	old := i.parent
	if Same(old, parent) {
		i.mu.Unlock()
		return
	}
	i.parent = parent
	i.mu.Unlock()

	if p, ok := old.(*Item); ok {
		p.removeChild(i)
	}
	if p, ok := parent.(*Item); ok {
		p.mu.Lock()
		p.children = append(p.children, i)
		p.mu.Unlock()
	}
	i.parentChanged.Emit(parent)
}

// Children implements Object.
func (i *Item) Children() []Object {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.children)
}

// StackAfter implements Object. It is a no-op unless sibling shares the
// item's parent.
func (i *Item) StackAfter(sibling Object) {
	sibling = normalize(sibling)
	p, ok := i.Parent().(*Item)
	if !ok || sibling == nil || Same(sibling, i) || !Same(sibling.Parent(), p) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	self := slices.IndexFunc(p.children, func(o Object) bool { return Same(o, i) })
	if self < 0 {
		return
	}
	p.children = slices.Delete(p.children, self, self+1)
	at := slices.IndexFunc(p.children, func(o Object) bool { return Same(o, sibling) })
	p.children = slices.Insert(p.children, at+1, Object(i))
}

// OnParentChanged implements Object.
func (i *Item) OnParentChanged(fn func(Object)) Connection {
	return i.parentChanged.Connect(fn)
}

// ParentListeners returns how many slots watch parent changes.
func (i *Item) ParentListeners() int {
	return i.parentChanged.Len()
}

// Window implements Object. The window is inherited from the nearest
// ancestor that has one.
func (i *Item) Window() *Window {
	i.mu.RLock()
	w, parent := i.window, i.parent
	i.mu.RUnlock()
	if w != nil || parent == nil {
		return w
	}
	return parent.Window()
}

// SetWindow shows the item, and its descendants, on w.
func (i *Item) SetWindow(w *Window) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.window = w
}

// SetHandler sets the item's own event handling, run by Deliver after the
// filters.
func (i *Item) SetHandler(h Handler) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.handler = h
}

// InstallEventFilter implements Object.
func (i *Item) InstallEventFilter(f Filter) FilterHandle {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.nextFilter++
	h := FilterHandle{id: i.nextFilter}
	i.filters = append(i.filters, filterEntry{handle: h, filter: f})
	return h
}

// RemoveEventFilter implements Object.
func (i *Item) RemoveEventFilter(h FilterHandle) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	for n, e := range i.filters {
		if e.handle == h {
			i.filters = slices.Delete(i.filters, n, n+1)
			return true
		}
	}
	return false
}

// EventFilters returns the number of installed filters.
func (i *Item) EventFilters() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.filters)
}

// FilterEvent implements Object. Filters run most recently installed first.
func (i *Item) FilterEvent(ev input.Event) bool {
	i.mu.RLock()
	filters := slices.Clone(i.filters)
	i.mu.RUnlock()

	for n := len(filters) - 1; n >= 0; n-- {
		if filters[n].filter.EventFilter(i, ev) {
			return true
		}
	}
	return false
}

func (i *Item) removeChild(child *Item) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.children = slices.DeleteFunc(i.children, func(o Object) bool { return Same(o, child) })
}

// sameValue compares property values without panicking on uncomparable types.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case int:
		y, ok := b.(int)
		return ok && x == y
	case Object:
		y, ok := b.(Object)
		return ok && Same(x, y)
	default:
		return false
	}
}
