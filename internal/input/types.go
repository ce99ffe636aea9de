package input

import "fmt"

// Type identifies the kind of an input event.
type Type uint8

const (
	// TypeNone is the zero event type.
	TypeNone Type = iota
	TypeWheel
	TypeTouchBegin
	TypeTouchUpdate
	TypeTouchEnd
	TypeMouseButtonPress
	TypeMouseMove
	TypeMouseButtonRelease
	TypeHoverEnter
	TypeHoverMove
	TypeHoverLeave
	TypeKeyPress
	TypeKeyRelease
)

var typeNames = [...]string{
	TypeNone:               "none",
	TypeWheel:              "wheel",
	TypeTouchBegin:         "touch-begin",
	TypeTouchUpdate:        "touch-update",
	TypeTouchEnd:           "touch-end",
	TypeMouseButtonPress:   "mouse-press",
	TypeMouseMove:          "mouse-move",
	TypeMouseButtonRelease: "mouse-release",
	TypeHoverEnter:         "hover-enter",
	TypeHoverMove:          "hover-move",
	TypeHoverLeave:         "hover-leave",
	TypeKeyPress:           "key-press",
	TypeKeyRelease:         "key-release",
}

// String returns a string representation of the event type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Source tells whether a pointer event came from a real mouse or was
// synthesized from another input source.
type Source uint8

const (
	// SourceNotSynthesized is a genuine mouse or wheel event.
	SourceNotSynthesized Source = iota
	// SourceSynthesizedBySystem was produced by the platform, typically from
	// touch or touchpad input.
	SourceSynthesizedBySystem
	// SourceSynthesizedByApplication was produced by the toolkit itself.
	SourceSynthesizedByApplication
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceNotSynthesized:
		return "mouse"
	case SourceSynthesizedBySystem:
		return "system"
	case SourceSynthesizedByApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Buttons is a bitmask of pressed mouse buttons.
type Buttons uint8

const (
	ButtonNone   Buttons = 0
	ButtonLeft   Buttons = 1 << 0
	ButtonRight  Buttons = 1 << 1
	ButtonMiddle Buttons = 1 << 2
	ButtonBack   Buttons = 1 << 3
	ButtonFwd    Buttons = 1 << 4
)

// Point is a position or a delta in device-independent pixels.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsNull returns true if both coordinates are zero.
func (p Point) IsNull() bool {
	return p.X == 0 && p.Y == 0
}

// Transposed returns the point with X and Y swapped.
func (p Point) Transposed() Point {
	return Point{X: p.Y, Y: p.X}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// String returns "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
