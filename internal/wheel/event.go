package wheel

import (
	"github.com/lingmo/lingmoui/internal/input"
	"github.com/lingmo/lingmoui/internal/input/key"
)

// WheelEvent is the snapshot of a wheel event handed to wheel listeners.
// It is reused for every dispatch; listeners must not keep it.
type WheelEvent struct {
	x          float64
	y          float64
	angleDelta input.Point
	pixelDelta input.Point
	buttons    input.Buttons
	modifiers  key.Modifier
	inverted   bool
	accepted   bool
}

// InitializeFromEvent copies ev and clears the accepted flag.
func (e *WheelEvent) InitializeFromEvent(ev *input.WheelEvent) {
	e.x = ev.Position.X
	e.y = ev.Position.Y
	e.angleDelta = ev.AngleDelta
	e.pixelDelta = ev.PixelDelta
	e.buttons = ev.Buttons
	e.modifiers = ev.Modifiers
	e.inverted = ev.Inverted
	e.accepted = false
}

func (e *WheelEvent) X() float64                { return e.x }
func (e *WheelEvent) Y() float64                { return e.y }
func (e *WheelEvent) AngleDelta() input.Point   { return e.angleDelta }
func (e *WheelEvent) PixelDelta() input.Point   { return e.pixelDelta }
func (e *WheelEvent) Buttons() input.Buttons    { return e.buttons }
func (e *WheelEvent) Modifiers() key.Modifier   { return e.modifiers }
func (e *WheelEvent) Inverted() bool            { return e.inverted }
func (e *WheelEvent) IsAccepted() bool          { return e.accepted }
func (e *WheelEvent) SetAccepted(accepted bool) { e.accepted = accepted }
