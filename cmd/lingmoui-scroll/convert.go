package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lingmo/lingmoui/internal/input"
	"github.com/lingmo/lingmoui/internal/input/key"
)

// Terminal cells are mapped onto a pixel grid so that wheel steps, which are
// expressed in pixels, move whole lines.
const (
	cellWidth  = 10
	lineHeight = 20

	// wheelNotch is the angle delta of one wheel notch.
	wheelNotch = 120
)

const (
	wheelButtons = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight
	mouseButtons = tcell.Button1 | tcell.Button2 | tcell.Button3
)

var keyMap = map[tcell.Key]key.Key{
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
}

func convertModifiers(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}

func convertButtons(b tcell.ButtonMask) input.Buttons {
	var out input.Buttons
	if b&tcell.Button1 != 0 {
		out |= input.ButtonLeft
	}
	if b&tcell.Button2 != 0 {
		out |= input.ButtonRight
	}
	if b&tcell.Button3 != 0 {
		out |= input.ButtonMiddle
	}
	return out
}

// convertKey maps a terminal key press. Keys the scrolling core has no
// name for are dropped.
func convertKey(ev *tcell.EventKey) (*input.KeyEvent, bool) {
	mods := convertModifiers(ev.Modifiers())
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return input.NewKeyPress(key.KeySpace, mods), true
		}
		ke := input.NewKeyPress(key.KeyRune, mods)
		ke.Rune = ev.Rune()
		return ke, true
	}
	k, ok := keyMap[ev.Key()]
	if !ok {
		return nil, false
	}
	return input.NewKeyPress(k, mods), true
}

func wheelDelta(b tcell.ButtonMask) input.Point {
	var d input.Point
	if b&tcell.WheelUp != 0 {
		d.Y += wheelNotch
	}
	if b&tcell.WheelDown != 0 {
		d.Y -= wheelNotch
	}
	if b&tcell.WheelLeft != 0 {
		d.X += wheelNotch
	}
	if b&tcell.WheelRight != 0 {
		d.X -= wheelNotch
	}
	return d
}

// mouseTracker turns terminal mouse reports, which carry only the current
// button state, into wheel, press, release and move events.
type mouseTracker struct {
	pressed tcell.ButtonMask
}

func (t *mouseTracker) convert(ev *tcell.EventMouse) []input.Event {
	x, y := ev.Position()
	pos := input.Pt(float64(x*cellWidth), float64(y*lineHeight))
	mods := convertModifiers(ev.Modifiers())
	buttons := ev.Buttons()

	var events []input.Event
	if w := buttons & wheelButtons; w != 0 {
		events = append(events, &input.WheelEvent{
			Position:   pos,
			AngleDelta: wheelDelta(w),
			Buttons:    convertButtons(buttons),
			Modifiers:  mods,
		})
	}

	pressed := buttons & mouseButtons
	switch {
	case pressed&^t.pressed != 0:
		ev := input.NewMouse(input.TypeMouseButtonPress, pos, convertButtons(pressed&^t.pressed), input.SourceNotSynthesized)
		ev.Buttons, ev.Modifiers = convertButtons(pressed), mods
		events = append(events, ev)
	case t.pressed&^pressed != 0:
		ev := input.NewMouse(input.TypeMouseButtonRelease, pos, convertButtons(t.pressed&^pressed), input.SourceNotSynthesized)
		ev.Buttons, ev.Modifiers = convertButtons(pressed), mods
		events = append(events, ev)
	case len(events) == 0:
		ev := input.NewMouse(input.TypeMouseMove, pos, input.ButtonNone, input.SourceNotSynthesized)
		ev.Buttons, ev.Modifiers = convertButtons(pressed), mods
		events = append(events, ev)
	}
	t.pressed = pressed
	return events
}
