package wheel

import (
	"github.com/google/uuid"

	"github.com/lingmo/lingmoui/internal/scene"
)

// filterTable records the event filters the handler installed, keyed by
// the identity of the watched object, so each can be removed exactly once.
type filterTable struct {
	owner   scene.Filter
	entries map[uuid.UUID]filterEntry
}

type filterEntry struct {
	obj    scene.Object
	handle scene.FilterHandle
}

func newFilterTable(owner scene.Filter) *filterTable {
	return &filterTable{owner: owner, entries: make(map[uuid.UUID]filterEntry)}
}

func (t *filterTable) install(obj scene.Object) {
	if obj == nil {
		return
	}
	if _, ok := t.entries[obj.ID()]; ok {
		return
	}
	t.entries[obj.ID()] = filterEntry{obj: obj, handle: obj.InstallEventFilter(t.owner)}
}

func (t *filterTable) remove(obj scene.Object) {
	if obj == nil {
		return
	}
	e, ok := t.entries[obj.ID()]
	if !ok {
		return
	}
	e.obj.RemoveEventFilter(e.handle)
	delete(t.entries, obj.ID())
}

func (t *filterTable) installed(obj scene.Object) bool {
	if obj == nil {
		return false
	}
	_, ok := t.entries[obj.ID()]
	return ok
}

func (t *filterTable) clear() {
	for _, e := range t.entries {
		e.obj.RemoveEventFilter(e.handle)
	}
	clear(t.entries)
}

// attachment is a scrollbar attachment found among an object's children.
type attachment struct {
	obj        scene.Object
	vertical   scene.Object
	horizontal scene.Object
}

// findAttachment returns the first child of owner that exposes vertical
// and horizontal scrollbar references.
func findAttachment(owner scene.Object) attachment {
	if owner == nil {
		return attachment{}
	}
	for _, child := range owner.Children() {
		if scene.HasProperties(child, "vertical", "horizontal") {
			return attachment{
				obj:        child,
				vertical:   scene.Ref(child, "vertical"),
				horizontal: scene.Ref(child, "horizontal"),
			}
		}
	}
	return attachment{}
}

// barBinding is the scrollbar bound on one axis and the subscription that
// rebinds when the attachment swaps it.
type barBinding struct {
	property string
	bar      scene.Object
	changed  scene.Connection
}

// pick chooses the scrollbar for the binding's axis. A scrollbar attached
// to the surface wins over one attached to the surrounding scroll view.
func (b *barBinding) pick(onSurface, onView attachment) (scene.Object, scene.Object) {
	if bar := b.axis(onSurface); bar != nil {
		return onSurface.obj, bar
	}
	if bar := b.axis(onView); bar != nil {
		return onView.obj, bar
	}
	return nil, nil
}

func (b *barBinding) axis(a attachment) scene.Object {
	if b.property == "vertical" {
		return a.vertical
	}
	return a.horizontal
}

// rebindScrollBars recomputes which scrollbars the handler watches. It runs
// on every target change, every parent change of a target lacking its own
// scrollbars, and every scrollbar swap on a bound attachment.
func (h *Handler) rebindScrollBars() {
	var onSurface, onView attachment
	if h.target != nil {
		onSurface = findAttachment(h.target)
		if parent := h.target.Parent(); parent != nil && parent.Kind() == scene.KindScrollView {
			onView = findAttachment(parent)
		}

		// Only a surface without its own pair of scrollbars can gain some
		// by being reparented into a scroll view.
		if onSurface.vertical != nil && onSurface.horizontal != nil {
			h.parentChanged.Disconnect()
			h.parentChanged = scene.Connection{}
		} else if h.parentChanged.IsZero() {
			h.parentChanged = h.target.OnParentChanged(func(scene.Object) {
				h.rebindScrollBars()
			})
		}
	}

	h.rebindAxis(&h.vertical, onSurface, onView)
	h.rebindAxis(&h.horizontal, onSurface, onView)
}

func (h *Handler) rebindAxis(b *barBinding, onSurface, onView attachment) {
	attached, bar := b.pick(onSurface, onView)
	if scene.Same(b.bar, bar) {
		return
	}
	if b.bar != nil {
		h.filters.remove(b.bar)
		b.changed.Disconnect()
		b.changed = scene.Connection{}
	}
	b.bar = bar
	if bar == nil {
		return
	}
	h.filters.install(bar)
	b.changed = attached.OnPropertyChanged(b.property, func(scene.PropertyChange) {
		h.rebindScrollBars()
	})
}

func (h *Handler) unbindScrollBars() {
	for _, b := range []*barBinding{&h.vertical, &h.horizontal} {
		if b.bar != nil {
			h.filters.remove(b.bar)
		}
		b.changed.Disconnect()
		*b = barBinding{property: b.property}
	}
	h.parentChanged.Disconnect()
	h.parentChanged = scene.Connection{}
}
