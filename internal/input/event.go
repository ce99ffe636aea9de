package input

import "github.com/lingmo/lingmoui/internal/input/key"

// Event is implemented by every input event.
type Event interface {
	Type() Type
}

// WheelEvent is a mouse wheel or touchpad scroll event.
type WheelEvent struct {
	Position   Point
	AngleDelta Point
	PixelDelta Point
	Buttons    Buttons
	Modifiers  key.Modifier
	// Inverted is set when the platform reports "natural" scrolling.
	Inverted bool
	Source   Source
}

// Type implements Event.
func (*WheelEvent) Type() Type { return TypeWheel }

// TouchEvent is a touch sequence event. Kind is one of TypeTouchBegin,
// TypeTouchUpdate or TypeTouchEnd.
type TouchEvent struct {
	Kind   Type
	Points []Point
}

// Type implements Event.
func (e *TouchEvent) Type() Type { return e.Kind }

// MouseEvent is a button press, move or release. Kind is one of
// TypeMouseButtonPress, TypeMouseMove or TypeMouseButtonRelease.
type MouseEvent struct {
	Kind      Type
	Position  Point
	Button    Buttons
	Buttons   Buttons
	Modifiers key.Modifier
	Source    Source
}

// Type implements Event.
func (e *MouseEvent) Type() Type { return e.Kind }

// HoverEvent reports the pointer entering, moving over or leaving an object.
type HoverEvent struct {
	Kind        Type
	Position    Point
	OldPosition Point
	Modifiers   key.Modifier
}

// Type implements Event.
func (e *HoverEvent) Type() Type { return e.Kind }

// KeyEvent is a key press or release.
type KeyEvent struct {
	Kind      Type
	Key       key.Key
	Rune      rune
	Modifiers key.Modifier
}

// Type implements Event.
func (e *KeyEvent) Type() Type { return e.Kind }

// NewKeyPress returns a key press event.
func NewKeyPress(k key.Key, mods key.Modifier) *KeyEvent {
	return &KeyEvent{Kind: TypeKeyPress, Key: k, Modifiers: mods}
}

// NewMouse returns a mouse event of the given kind.
func NewMouse(kind Type, pos Point, button Buttons, src Source) *MouseEvent {
	return &MouseEvent{Kind: kind, Position: pos, Button: button, Buttons: button, Source: src}
}

// NewTouch returns a touch event of the given kind.
func NewTouch(kind Type, points ...Point) *TouchEvent {
	return &TouchEvent{Kind: kind, Points: points}
}

// NewHover returns a hover event of the given kind.
func NewHover(kind Type, pos Point) *HoverEvent {
	return &HoverEvent{Kind: kind, Position: pos}
}
