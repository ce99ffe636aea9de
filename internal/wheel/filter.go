package wheel

import (
	"math"

	"github.com/lingmo/lingmoui/internal/input"
	"github.com/lingmo/lingmoui/internal/input/key"
	"github.com/lingmo/lingmoui/internal/scene"
)

// EventFilter implements scene.Filter. It sees the events of the target,
// the bound scrollbars and the overlay, and reports whether it consumed ev.
func (h *Handler) EventFilter(watched scene.Object, ev input.Event) bool {
	if scene.Same(watched, nil) || !scene.Bool(watched, "enabled", true) {
		return false
	}

	switch e := ev.(type) {
	case *input.WheelEvent:
		return h.filterWheel(e)
	case *input.TouchEvent:
		h.filterTouch(e)
	case *input.MouseEvent:
		return h.filterMouse(watched, e)
	case *input.HoverEvent:
		h.filterHover(watched, e)
	case *input.KeyEvent:
		if e.Kind == input.TypeKeyPress {
			return h.filterKey(e)
		}
	}
	return false
}

func (h *Handler) filterWheel(ev *input.WheelEvent) bool {
	if h.filterMouseEvents {
		h.setScrollBarsInteractive(true)
	}

	// Platforms report mice as touchpads, so guess from the delta: a notched
	// wheel only produces multiples of one detent. Only the vertical axis
	// matters since only contentY is animated.
	ay := math.Abs(ev.AngleDelta.Y)
	h.wasTouched = ay != 0 && math.Mod(ay, detent) != 0

	// Some drivers report the angle delta as pixel delta for plain mice.
	if ev.PixelDelta == ev.AngleDelta {
		clean := *ev
		clean.PixelDelta = input.Point{}
		h.event.InitializeFromEvent(&clean)
	} else {
		h.event.InitializeFromEvent(ev)
	}

	h.wheel.Emit(&h.event)
	if h.event.IsAccepted() {
		return true
	}

	scrolled := false
	if h.scrollFlickableTarget || h.contentFits() {
		// Pixel deltas scroll too slowly on some compositors, so they are
		// only used when no angle delta is available.
		var pixelDelta input.Point
		if h.event.AngleDelta().IsNull() {
			pixelDelta = h.event.PixelDelta()
		}
		scrolled = h.ScrollFlickable(pixelDelta, h.event.AngleDelta(), h.event.Modifiers())
	}
	h.setScrolling(scrolled)

	// Gesture wheel events with pixel deltas make the surface jump back to
	// where the gesture started unless they never reach it.
	gesture := ev.Source != input.SourceNotSynthesized && !ev.PixelDelta.IsNull()
	return scrolled || h.blockTargetWheel || gesture
}

func (h *Handler) contentFits() bool {
	if h.target == nil {
		return true
	}
	g := readGeometry(h.target)
	return g.contentHeight <= g.pageHeight() && g.contentWidth <= g.pageWidth()
}

func (h *Handler) filterTouch(ev *input.TouchEvent) {
	switch ev.Kind {
	case input.TypeTouchBegin:
		h.wasTouched = true
		h.setScrolling(false)
		if h.filterMouseEvents {
			h.setScrollBarsInteractive(false)
		}
	case input.TypeTouchEnd:
		h.wasTouched = false
	}
}

func (h *Handler) filterMouse(watched scene.Object, ev *input.MouseEvent) bool {
	switch ev.Kind {
	case input.TypeMouseButtonPress:
		// Surfaces only react to mouse events synthesized from touch.
		h.wasTouched = ev.Source != input.SourceNotSynthesized
		h.setScrolling(false)
		if !h.filterMouseEvents {
			return false
		}
		if !h.wasTouched {
			h.setScrollBarsInteractive(true)
		}
		return false
	case input.TypeMouseMove, input.TypeMouseButtonRelease:
		h.setScrolling(false)
		if !h.filterMouseEvents {
			return false
		}
		return ev.Source == input.SourceNotSynthesized && scene.Same(watched, h.target)
	}
	return false
}

func (h *Handler) filterHover(watched scene.Object, ev *input.HoverEvent) {
	if ev.Kind != input.TypeHoverEnter && ev.Kind != input.TypeHoverMove {
		return
	}
	if !h.filterMouseEvents || !h.wasTouched {
		return
	}
	if h.isScrollBar(watched) {
		h.setScrollBarsInteractive(true)
	}
}

func (h *Handler) filterKey(ev *input.KeyEvent) bool {
	if !h.keyNavigationEnabled {
		return false
	}

	var g geometry
	if h.target != nil {
		g = readGeometry(h.target)
	}
	horizontal := ev.Modifiers.Has(HorizontalScrollModifiers)

	switch ev.Key {
	case key.KeyUp:
		return h.ScrollUp(DefaultStep)
	case key.KeyDown:
		return h.ScrollDown(DefaultStep)
	case key.KeyLeft:
		return h.ScrollLeft(DefaultStep)
	case key.KeyRight:
		return h.ScrollRight(DefaultStep)
	case key.KeyPageUp:
		if horizontal {
			return h.ScrollLeft(g.pageWidth())
		}
		return h.ScrollUp(g.pageHeight())
	case key.KeyPageDown:
		if horizontal {
			return h.ScrollRight(g.pageWidth())
		}
		return h.ScrollDown(g.pageHeight())
	case key.KeyHome:
		if horizontal {
			return h.ScrollLeft(g.contentWidth)
		}
		return h.ScrollUp(g.contentHeight)
	case key.KeyEnd:
		if horizontal {
			return h.ScrollRight(g.contentWidth)
		}
		return h.ScrollDown(g.contentHeight)
	}
	return false
}

func (h *Handler) isScrollBar(o scene.Object) bool {
	return (h.vertical.bar != nil && scene.Same(o, h.vertical.bar)) ||
		(h.horizontal.bar != nil && scene.Same(o, h.horizontal.bar))
}

func (h *Handler) setScrollBarsInteractive(interactive bool) {
	for _, bar := range []scene.Object{h.vertical.bar, h.horizontal.bar} {
		if bar != nil {
			bar.SetProperty("interactive", interactive)
		}
	}
}
