package wheel

import (
	"math"

	"github.com/lingmo/lingmoui/internal/anim"
	"github.com/lingmo/lingmoui/internal/input"
	"github.com/lingmo/lingmoui/internal/input/key"
	"github.com/lingmo/lingmoui/internal/scene"
)

const (
	// DefaultStep asks a directional scroll to use the configured step size.
	DefaultStep = -1

	// detent is the angle delta of one wheel notch, in eighths of a degree.
	detent = 120

	// xcb transposes Alt+wheel deltas itself.
	platformXCB = "xcb"
)

// geometry is a snapshot of a surface's scroll-relevant properties.
type geometry struct {
	width, height               float64
	contentWidth, contentHeight float64
	contentX, contentY          float64
	topMargin, bottomMargin     float64
	leftMargin, rightMargin     float64
	originX, originY            float64
}

func readGeometry(o scene.Object) geometry {
	return geometry{
		width:         scene.Float(o, "width"),
		height:        scene.Float(o, "height"),
		contentWidth:  scene.Float(o, "contentWidth"),
		contentHeight: scene.Float(o, "contentHeight"),
		contentX:      scene.Float(o, "contentX"),
		contentY:      scene.Float(o, "contentY"),
		topMargin:     scene.Float(o, "topMargin"),
		bottomMargin:  scene.Float(o, "bottomMargin"),
		leftMargin:    scene.Float(o, "leftMargin"),
		rightMargin:   scene.Float(o, "rightMargin"),
		originX:       scene.Float(o, "originX"),
		originY:       scene.Float(o, "originY"),
	}
}

func (g geometry) pageWidth() float64  { return g.width - g.leftMargin - g.rightMargin }
func (g geometry) pageHeight() float64 { return g.height - g.topMargin - g.bottomMargin }

// ScrollFlickable scrolls the target by pixelDelta, or by angleDelta in
// wheel notches when an axis has no pixel delta. Offsets are clamped to the
// content bounds and aligned to device pixels. It reports whether either
// offset changed.
func (h *Handler) ScrollFlickable(pixelDelta, angleDelta input.Point, mods key.Modifier) bool {
	if h.target == nil || (pixelDelta.IsNull() && angleDelta.IsNull()) {
		return false
	}

	g := readGeometry(h.target)
	pageWidth, pageHeight := g.pageWidth(), g.pageHeight()
	dpr := h.devicePixelRatio()

	if mods.Has(HorizontalScrollModifiers) && h.settings.PlatformName() != platformXCB {
		angleDelta = angleDelta.Transposed()
		pixelDelta = pixelDelta.Transposed()
	}

	xTicks := angleDelta.X / detent
	yTicks := angleDelta.Y / detent
	scrolled := false

	// Content offsets grow in the opposite direction of the deltas.
	if g.contentWidth > pageWidth {
		var change float64
		switch {
		case mods.Has(h.pageScrollModifiers):
			change = bound(-pageWidth, xTicks*pageWidth, pageWidth)
		case pixelDelta.X != 0:
			change = pixelDelta.X
		default:
			change = xTicks * h.horizontalStep
		}

		minExtent := g.leftMargin - g.originX
		maxExtent := g.width - (g.contentWidth + g.rightMargin + g.originX)
		x := pixelAlign(bound(-minExtent, g.contentX-change, -maxExtent), dpr)
		if g.contentX != x {
			scrolled = true
			h.target.SetProperty("contentX", x)
		}
	}

	if g.contentHeight > pageHeight {
		var change float64
		switch {
		case mods.Has(h.pageScrollModifiers):
			change = bound(-pageHeight, yTicks*pageHeight, pageHeight)
		case pixelDelta.Y != 0:
			change = pixelDelta.Y
		default:
			change = yTicks * h.verticalStep
		}

		minExtent := g.topMargin - g.originY
		maxExtent := g.height - (g.contentHeight + g.bottomMargin + g.originY)
		from := g.contentY
		if h.yAnim != nil && h.yAnim.State() == anim.Running {
			h.yAnim.Stop()
			from = h.yAnim.EndValue()
		}
		y := pixelAlign(bound(-minExtent, from-change, -maxExtent), dpr)
		if g.contentY != y {
			scrolled = true
			if h.wasTouched || h.yAnim == nil {
				h.target.SetProperty("contentY", y)
			} else {
				h.yAnim.SetEndValue(y)
				h.yAnim.Start()
			}
		}
	}

	return scrolled
}

// ScrollUp scrolls towards the top by step pixels. A zero step does
// nothing; a negative one uses the vertical step size.
func (h *Handler) ScrollUp(step float64) bool {
	step, ok := h.resolveStep(step, h.verticalStep)
	return ok && h.ScrollFlickable(input.Pt(0, step), input.Point{}, key.ModNone)
}

// ScrollDown scrolls towards the bottom by step pixels.
func (h *Handler) ScrollDown(step float64) bool {
	step, ok := h.resolveStep(step, h.verticalStep)
	return ok && h.ScrollFlickable(input.Pt(0, -step), input.Point{}, key.ModNone)
}

// ScrollLeft scrolls towards the left edge by step pixels.
func (h *Handler) ScrollLeft(step float64) bool {
	step, ok := h.resolveStep(step, h.horizontalStep)
	return ok && h.ScrollFlickable(input.Pt(step, 0), input.Point{}, key.ModNone)
}

// ScrollRight scrolls towards the right edge by step pixels.
func (h *Handler) ScrollRight(step float64) bool {
	step, ok := h.resolveStep(step, h.horizontalStep)
	return ok && h.ScrollFlickable(input.Pt(-step, 0), input.Point{}, key.ModNone)
}

func (h *Handler) resolveStep(step, configured float64) (float64, bool) {
	if fuzzyIsNull(step) {
		return 0, false
	}
	if step < 0 {
		return configured, true
	}
	return step, true
}

// devicePixelRatio prefers the target's window, then the settings.
func (h *Handler) devicePixelRatio() float64 {
	if dpr := h.target.Window().DevicePixelRatio(); dpr > 0 {
		return dpr
	}
	if dpr := h.settings.DevicePixelRatio(); dpr > 0 {
		return dpr
	}
	return 1
}

func pixelAlign(v, dpr float64) float64 {
	return math.Round(v*dpr) / dpr
}

// bound clamps v to [lo, hi], preferring lo when the range is empty.
func bound(lo, v, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// fuzzyIsNull and fuzzyCompare use the tolerances of double-precision
// UI geometry: 1e-12 absolute near zero and 12 significant digits
// otherwise.
func fuzzyIsNull(v float64) bool {
	return math.Abs(v) <= 1e-12
}

func fuzzyCompare(a, b float64) bool {
	return math.Abs(a-b)*1e12 <= math.Min(math.Abs(a), math.Abs(b))
}
