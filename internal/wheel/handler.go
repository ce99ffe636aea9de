package wheel

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lingmo/lingmoui/internal/anim"
	"github.com/lingmo/lingmoui/internal/input/key"
	"github.com/lingmo/lingmoui/internal/logging"
	"github.com/lingmo/lingmoui/internal/loop"
	"github.com/lingmo/lingmoui/internal/scene"
	"github.com/lingmo/lingmoui/internal/settings"
)

const (
	// ScrollingInterval is how long the scrolling state outlives the last
	// wheel event that scrolled.
	ScrollingInterval = 400 * time.Millisecond

	// PixelsPerScrollLine converts the platform's wheel scroll lines into
	// the default step size.
	PixelsPerScrollLine = 20

	// DefaultPageScrollModifiers make a wheel notch scroll a whole page.
	DefaultPageScrollModifiers = key.ModCtrl | key.ModShift

	// HorizontalScrollModifiers turn vertical wheel input and PageUp,
	// PageDown, Home and End into horizontal scrolling.
	HorizontalScrollModifiers = key.ModAlt
)

// Property names a handler property reported through OnChanged.
type Property uint8

const (
	PropTarget Property = iota
	PropVerticalStepSize
	PropHorizontalStepSize
	PropPageScrollModifiers
	PropFilterMouseEvents
	PropKeyNavigationEnabled
	PropScrolling
)

var propertyNames = [...]string{
	PropTarget:               "target",
	PropVerticalStepSize:     "verticalStepSize",
	PropHorizontalStepSize:   "horizontalStepSize",
	PropPageScrollModifiers:  "pageScrollModifiers",
	PropFilterMouseEvents:    "filterMouseEvents",
	PropKeyNavigationEnabled: "keyNavigationEnabled",
	PropScrolling:            "scrolling",
}

func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return fmt.Sprintf("property(%d)", uint8(p))
}

// surfaceProperties is the capability set a target must expose.
var surfaceProperties = append(append([]string{}, scene.FlickableProperties...), "contentItem")

// Handler filters the input events of a scrollable surface, its scrollbars
// and its overlay, and turns them into content offset changes.
type Handler struct {
	log      zerolog.Logger
	settings *settings.Settings
	animator *anim.Animator

	target     scene.Object
	filterItem *FilterItem
	filters    *filterTable
	overlay    scene.FilterHandle

	vertical      barBinding
	horizontal    barBinding
	parentChanged scene.Connection

	defaultStep        float64
	verticalStep       float64
	horizontalStep     float64
	explicitVertical   bool
	explicitHorizontal bool

	pageScrollModifiers   key.Modifier
	filterMouseEvents     bool
	keyNavigationEnabled  bool
	scrollFlickableTarget bool
	blockTargetWheel      bool

	scrolling  bool
	wasTouched bool
	timer      *loop.Timer
	yAnim      *anim.PropertyAnimation

	event   WheelEvent
	wheel   scene.Signal[*WheelEvent]
	changed scene.Signal[Property]

	subs   []*settings.Subscription
	closed bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithAnimator enables smooth vertical scrolling driven by a.
func WithAnimator(a *anim.Animator) Option {
	return func(h *Handler) { h.animator = a }
}

// WithSettings makes the handler follow s instead of private defaults.
func WithSettings(s *settings.Settings) Option {
	return func(h *Handler) { h.settings = s }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// WithScrollingInterval overrides ScrollingInterval.
func WithScrollingInterval(d time.Duration) Option {
	return func(h *Handler) { h.timer.SetInterval(d) }
}

// New creates a handler without a target. Its debounce timer runs on sched.
func New(sched loop.Scheduler, opts ...Option) *Handler {
	h := &Handler{
		log:                   logging.Nop(),
		vertical:              barBinding{property: "vertical"},
		horizontal:            barBinding{property: "horizontal"},
		pageScrollModifiers:   DefaultPageScrollModifiers,
		scrollFlickableTarget: true,
		blockTargetWheel:      true,
	}
	h.timer = loop.NewTimer(sched, ScrollingInterval, func() { h.setScrolling(false) })
	for _, opt := range opts {
		opt(h)
	}
	h.log = logging.Component(h.log, "wheel")
	if h.settings == nil {
		h.settings = settings.New()
	}

	h.defaultStep = PixelsPerScrollLine * float64(h.settings.WheelScrollLines())
	h.verticalStep = h.defaultStep
	h.horizontalStep = h.defaultStep

	h.filters = newFilterTable(h)
	h.filterItem = newFilterItem()
	h.overlay = h.filterItem.item.InstallEventFilter(h)

	h.subs = append(h.subs, h.settings.Subscribe(settings.PathWheelScrollLines, func(settings.Change) {
		h.wheelScrollLinesChanged(h.settings.WheelScrollLines())
	}))
	if h.animator != nil {
		h.yAnim = h.animator.NewPropertyAnimation("contentY")
		h.yAnim.SetEasing(anim.OutCubic)
		h.initSmoothScrollDuration()
		for _, path := range []string{settings.PathSmoothScroll, settings.PathLongDuration} {
			h.subs = append(h.subs, h.settings.Subscribe(path, func(settings.Change) {
				h.initSmoothScrollDuration()
			}))
		}
	}
	return h
}

// Target returns the bound surface, or nil.
func (h *Handler) Target() scene.Object {
	return h.target
}

// SetTarget binds the handler to target, or unbinds it when target is nil.
// A target missing any surface property is rejected with ErrNotFlickable
// and the previous target stays bound.
func (h *Handler) SetTarget(target scene.Object) error {
	if scene.Same(target, nil) {
		target = nil
	}
	if scene.Same(h.target, target) {
		return nil
	}
	if target != nil {
		if missing := scene.MissingProperties(target, surfaceProperties...); len(missing) > 0 {
			h.log.Warn().
				Str("target", target.Name()).
				Strs("missing", missing).
				Msg("target must be a flickable")
			return fmt.Errorf("%w: %s lacks %s", ErrNotFlickable, target.Name(), strings.Join(missing, ", "))
		}
	}

	if h.target != nil {
		h.filters.remove(h.target)
		h.parentChanged.Disconnect()
		h.parentChanged = scene.Connection{}
	}

	h.target = target
	h.filterItem.attach(target)
	if h.yAnim != nil {
		h.yAnim.SetTarget(target)
	}
	if target != nil {
		h.filters.install(target)
	}

	h.rebindScrollBars()
	h.log.Debug().Str("target", targetName(target)).Msg("target changed")
	h.changed.Emit(PropTarget)
	return nil
}

func targetName(o scene.Object) string {
	if o == nil {
		return "<nil>"
	}
	return o.Name()
}

// FilterItem returns the overlay stacked over the target's content.
func (h *Handler) FilterItem() *FilterItem {
	return h.filterItem
}

// VerticalScrollBar returns the bound vertical scrollbar, or nil.
func (h *Handler) VerticalScrollBar() scene.Object {
	return h.vertical.bar
}

// HorizontalScrollBar returns the bound horizontal scrollbar, or nil.
func (h *Handler) HorizontalScrollBar() scene.Object {
	return h.horizontal.bar
}

// VerticalStepSize returns the pixels one wheel notch scrolls vertically.
func (h *Handler) VerticalStepSize() float64 {
	return h.verticalStep
}

// IsVerticalStepSizeExplicit reports whether the vertical step was set
// rather than derived from the wheel scroll lines.
func (h *Handler) IsVerticalStepSizeExplicit() bool {
	return h.explicitVertical
}

// SetVerticalStepSize sets the vertical step. Zero and negative steps
// reset it.
func (h *Handler) SetVerticalStepSize(step float64) {
	if step < 0 || fuzzyIsNull(step) {
		h.ResetVerticalStepSize()
		return
	}
	h.explicitVertical = true
	if fuzzyCompare(h.verticalStep, step) {
		return
	}
	h.verticalStep = step
	h.changed.Emit(PropVerticalStepSize)
}

// ResetVerticalStepSize returns the vertical step to the platform default.
func (h *Handler) ResetVerticalStepSize() {
	h.explicitVertical = false
	if fuzzyCompare(h.verticalStep, h.defaultStep) {
		return
	}
	h.verticalStep = h.defaultStep
	h.changed.Emit(PropVerticalStepSize)
}

// HorizontalStepSize returns the pixels one wheel notch scrolls
// horizontally.
func (h *Handler) HorizontalStepSize() float64 {
	return h.horizontalStep
}

// IsHorizontalStepSizeExplicit reports whether the horizontal step was set.
func (h *Handler) IsHorizontalStepSizeExplicit() bool {
	return h.explicitHorizontal
}

// SetHorizontalStepSize sets the horizontal step. Zero and negative steps
// reset it.
func (h *Handler) SetHorizontalStepSize(step float64) {
	if step < 0 || fuzzyIsNull(step) {
		h.ResetHorizontalStepSize()
		return
	}
	h.explicitHorizontal = true
	if fuzzyCompare(h.horizontalStep, step) {
		return
	}
	h.horizontalStep = step
	h.changed.Emit(PropHorizontalStepSize)
}

// ResetHorizontalStepSize returns the horizontal step to the platform
// default.
func (h *Handler) ResetHorizontalStepSize() {
	h.explicitHorizontal = false
	if fuzzyCompare(h.horizontalStep, h.defaultStep) {
		return
	}
	h.horizontalStep = h.defaultStep
	h.changed.Emit(PropHorizontalStepSize)
}

func (h *Handler) wheelScrollLinesChanged(lines int) {
	h.defaultStep = PixelsPerScrollLine * float64(lines)
	if !h.explicitVertical && h.verticalStep != h.defaultStep {
		h.verticalStep = h.defaultStep
		h.changed.Emit(PropVerticalStepSize)
	}
	if !h.explicitHorizontal && h.horizontalStep != h.defaultStep {
		h.horizontalStep = h.defaultStep
		h.changed.Emit(PropHorizontalStepSize)
	}
}

// PageScrollModifiers returns the modifiers that make the wheel scroll by
// pages.
func (h *Handler) PageScrollModifiers() key.Modifier {
	return h.pageScrollModifiers
}

// SetPageScrollModifiers sets the page-scroll modifiers. ModNone disables
// page scrolling.
func (h *Handler) SetPageScrollModifiers(mods key.Modifier) {
	if h.pageScrollModifiers == mods {
		return
	}
	h.pageScrollModifiers = mods
	h.changed.Emit(PropPageScrollModifiers)
}

// ResetPageScrollModifiers restores DefaultPageScrollModifiers.
func (h *Handler) ResetPageScrollModifiers() {
	h.SetPageScrollModifiers(DefaultPageScrollModifiers)
}

// FilterMouseEvents reports whether mouse, touch and hover events toggle
// the scrollbars' interactivity and are consumed on the target.
func (h *Handler) FilterMouseEvents() bool {
	return h.filterMouseEvents
}

func (h *Handler) SetFilterMouseEvents(enabled bool) {
	if h.filterMouseEvents == enabled {
		return
	}
	h.filterMouseEvents = enabled
	h.changed.Emit(PropFilterMouseEvents)
}

// KeyNavigationEnabled reports whether arrow, page, Home and End keys
// scroll the target.
func (h *Handler) KeyNavigationEnabled() bool {
	return h.keyNavigationEnabled
}

func (h *Handler) SetKeyNavigationEnabled(enabled bool) {
	if h.keyNavigationEnabled == enabled {
		return
	}
	h.keyNavigationEnabled = enabled
	h.changed.Emit(PropKeyNavigationEnabled)
}

// ScrollFlickableTarget reports whether wheel events scroll the target.
// When false the handler still scrolls a target whose content fits on
// both axes, which is a no-op, and otherwise leaves wheel events to it.
func (h *Handler) ScrollFlickableTarget() bool {
	return h.scrollFlickableTarget
}

func (h *Handler) SetScrollFlickableTarget(enabled bool) {
	h.scrollFlickableTarget = enabled
}

// BlockTargetWheel reports whether wheel events are consumed even when
// nothing scrolled.
func (h *Handler) BlockTargetWheel() bool {
	return h.blockTargetWheel
}

func (h *Handler) SetBlockTargetWheel(enabled bool) {
	h.blockTargetWheel = enabled
}

// IsScrolling reports whether wheel scrolling is in progress.
func (h *Handler) IsScrolling() bool {
	return h.scrolling
}

// OnWheel registers a wheel listener. Listeners run in registration order
// before the default scrolling; one that accepts the event suppresses it.
func (h *Handler) OnWheel(fn func(*WheelEvent)) scene.Connection {
	return h.wheel.Connect(fn)
}

// OnChanged registers fn to run after a handler property changes.
func (h *Handler) OnChanged(fn func(Property)) scene.Connection {
	return h.changed.Connect(fn)
}

func (h *Handler) setScrolling(scrolling bool) {
	if h.scrolling == scrolling {
		if scrolling {
			h.timer.Start()
		}
		return
	}
	h.scrolling = scrolling
	h.filterItem.setEnabled(scrolling)
	if scrolling {
		h.timer.Start()
	} else {
		h.timer.Stop()
	}
	h.changed.Emit(PropScrolling)
}

func (h *Handler) initSmoothScrollDuration() {
	if h.settings.SmoothScroll() {
		h.yAnim.SetDuration(h.settings.LongDuration())
	} else {
		h.yAnim.SetDuration(0)
	}
}

// Close unbinds the target, removes every filter and subscription, stops
// the animation and the debounce timer and detaches the overlay. The
// handler must not be used afterwards.
func (h *Handler) Close() {
	if h.closed {
		return
	}
	h.closed = true

	h.unbindScrollBars()
	h.filters.clear()
	h.filterItem.item.RemoveEventFilter(h.overlay)
	h.filterItem.destroy()
	if h.yAnim != nil {
		h.yAnim.SetTarget(nil)
	}
	h.timer.Stop()
	for _, s := range h.subs {
		s.Unsubscribe()
	}
	h.subs = nil
	h.target = nil
	h.scrolling = false
}
