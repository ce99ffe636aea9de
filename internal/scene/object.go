package scene

import (
	"github.com/google/uuid"

	"github.com/lingmo/lingmoui/internal/input"
)

// Kind tags the role an object plays in the scene.
type Kind uint8

const (
	KindItem Kind = iota
	// KindFlickable is a scrollable surface.
	KindFlickable
	KindScrollBar
	// KindScrollBarAttached carries the "vertical" and "horizontal"
	// scrollbars attached to its parent.
	KindScrollBarAttached
	// KindScrollView is a composite that decorates a flickable with scrollbars.
	KindScrollView
	// KindOverlay is an invisible event-interception item.
	KindOverlay
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindItem:
		return "Item"
	case KindFlickable:
		return "Flickable"
	case KindScrollBar:
		return "ScrollBar"
	case KindScrollBarAttached:
		return "ScrollBarAttached"
	case KindScrollView:
		return "ScrollView"
	case KindOverlay:
		return "Overlay"
	default:
		return "Unknown"
	}
}

// PropertyChange describes a property write that changed a value.
type PropertyChange struct {
	Object Object
	Name   string
	Old    any
	New    any
}

// Object is the contract between the scrolling core and the scene.
type Object interface {
	ID() uuid.UUID
	Kind() Kind
	Name() string

	// Property returns the named property and whether it exists.
	Property(name string) (any, bool)
	// SetProperty writes a property and reports whether its value changed.
	SetProperty(name string, value any) bool
	OnPropertyChanged(name string, fn func(PropertyChange)) Connection

	Parent() Object
	SetParent(parent Object)
	Children() []Object
	// StackAfter moves the object right after sibling in its parent's
	// child order.
	StackAfter(sibling Object)
	OnParentChanged(fn func(Object)) Connection

	// Window returns the window the object is shown in, or nil.
	Window() *Window

	InstallEventFilter(f Filter) FilterHandle
	RemoveEventFilter(h FilterHandle) bool
	// FilterEvent runs the installed filters and reports whether one of
	// them consumed ev.
	FilterEvent(ev input.Event) bool
}

// Same reports whether a and b are the same object. Two nil objects are the same.
func Same(a, b Object) bool {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// normalize turns a typed nil *Item into an untyped nil Object.
func normalize(o Object) Object {
	if it, ok := o.(*Item); ok && it == nil {
		return nil
	}
	return o
}

// Float reads a numeric property. Missing or non-numeric properties read as 0.
func Float(o Object, name string) float64 {
	if normalize(o) == nil {
		return 0
	}
	v, _ := o.Property(name)
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Bool reads a boolean property, returning def when it is missing.
func Bool(o Object, name string, def bool) bool {
	if normalize(o) == nil {
		return def
	}
	v, ok := o.Property(name)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Ref reads an object-valued property. Missing, nil or non-object values
// read as nil.
func Ref(o Object, name string) Object {
	if normalize(o) == nil {
		return nil
	}
	v, _ := o.Property(name)
	ref, ok := v.(Object)
	if !ok {
		return nil
	}
	return normalize(ref)
}

// MissingProperties returns the names o does not expose.
func MissingProperties(o Object, names ...string) []string {
	var missing []string
	for _, name := range names {
		if normalize(o) == nil {
			missing = append(missing, name)
			continue
		}
		if _, ok := o.Property(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// HasProperties reports whether o exposes every named property.
func HasProperties(o Object, names ...string) bool {
	return len(MissingProperties(o, names...)) == 0
}
