package wheel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingmo/lingmoui/internal/input"
	"github.com/lingmo/lingmoui/internal/loop"
	"github.com/lingmo/lingmoui/internal/scene"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	h := New(loop.NewManual(time.Unix(0, 0)))
	t.Cleanup(h.Close)
	return h
}

func TestSetTargetRejectsNonFlickable(t *testing.T) {
	h := newHandler(t)
	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	require.NoError(t, h.SetTarget(flick))

	var changes []Property
	h.OnChanged(func(p Property) { changes = append(changes, p) })

	plain := scene.NewItem(scene.KindItem, "label")
	err := h.SetTarget(plain)
	require.ErrorIs(t, err, ErrNotFlickable)
	assert.Contains(t, err.Error(), "contentY")
	assert.True(t, scene.Same(flick, h.Target()))
	assert.Zero(t, plain.EventFilters())
	assert.Empty(t, changes)
}

func TestSetTargetMovesFiltersAndOverlay(t *testing.T) {
	h := newHandler(t)
	first := scene.NewFlickable("first", 100, 100, 100, 500)
	second := scene.NewFlickable("second", 80, 60, 100, 500)
	var changes []Property
	h.OnChanged(func(p Property) { changes = append(changes, p) })

	require.NoError(t, h.SetTarget(first))
	require.NoError(t, h.SetTarget(first))
	assert.Equal(t, 1, first.EventFilters())
	overlay := h.FilterItem().Item()
	assert.True(t, scene.Same(first, overlay.Parent()))

	require.NoError(t, h.SetTarget(second))
	assert.Zero(t, first.EventFilters())
	assert.Equal(t, 1, second.EventFilters())
	assert.True(t, scene.Same(second, overlay.Parent()))
	for _, child := range first.Children() {
		assert.False(t, scene.Same(child, overlay))
	}

	w, ht := h.FilterItem().Size()
	assert.Equal(t, 80.0, w)
	assert.Equal(t, 60.0, ht)

	second.SetProperty("width", 120.0)
	first.SetProperty("height", 10.0)
	w, ht = h.FilterItem().Size()
	assert.Equal(t, 120.0, w)
	assert.Equal(t, 60.0, ht)

	var typedNil *scene.Item
	require.NoError(t, h.SetTarget(typedNil))
	assert.Nil(t, h.Target())
	assert.Zero(t, second.EventFilters())
	assert.Nil(t, overlay.Parent())

	assert.Equal(t, []Property{PropTarget, PropTarget, PropTarget}, changes)
}

func TestOverlayStacksAfterContentItem(t *testing.T) {
	h := newHandler(t)
	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	attached := scene.NewScrollBarAttached(flick, scene.NewScrollBar("v"), nil)
	require.NoError(t, h.SetTarget(flick))

	children := flick.Children()
	require.Len(t, children, 3)
	assert.True(t, scene.Same(scene.Ref(flick, "contentItem"), children[0]))
	assert.True(t, scene.Same(h.FilterItem().Item(), children[1]))
	assert.True(t, scene.Same(attached, children[2]))
}

func TestScrollBarsAttachedToSurface(t *testing.T) {
	h := newHandler(t)
	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	v, hz := scene.NewScrollBar("v"), scene.NewScrollBar("h")
	scene.NewScrollBarAttached(flick, v, hz)

	require.NoError(t, h.SetTarget(flick))
	assert.True(t, scene.Same(v, h.VerticalScrollBar()))
	assert.True(t, scene.Same(hz, h.HorizontalScrollBar()))
	assert.Equal(t, 1, v.EventFilters())
	assert.Equal(t, 1, hz.EventFilters())
	assert.Zero(t, flick.ParentListeners(), "a surface with both scrollbars is not watched for reparenting")

	require.NoError(t, h.SetTarget(nil))
	assert.Nil(t, h.VerticalScrollBar())
	assert.Nil(t, h.HorizontalScrollBar())
	assert.Zero(t, v.EventFilters())
	assert.Zero(t, hz.EventFilters())
}

func TestSurfaceScrollBarWinsOverScrollView(t *testing.T) {
	h := newHandler(t)
	view := scene.NewScrollView("view", 100, 100)
	viewV, viewH := scene.NewScrollBar("view.v"), scene.NewScrollBar("view.h")
	scene.NewScrollBarAttached(view, viewV, viewH)

	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	flick.SetParent(view)
	ownV := scene.NewScrollBar("own.v")
	scene.NewScrollBarAttached(flick, ownV, nil)

	require.NoError(t, h.SetTarget(flick))
	assert.True(t, scene.Same(ownV, h.VerticalScrollBar()))
	assert.True(t, scene.Same(viewH, h.HorizontalScrollBar()))
	assert.Zero(t, viewV.EventFilters())
	assert.Equal(t, 1, flick.ParentListeners())
}

func TestReparentingIntoScrollViewRebinds(t *testing.T) {
	h := newHandler(t)
	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	require.NoError(t, h.SetTarget(flick))
	assert.Nil(t, h.VerticalScrollBar())

	view := scene.NewScrollView("view", 100, 100)
	viewV := scene.NewScrollBar("view.v")
	scene.NewScrollBarAttached(view, viewV, nil)

	flick.SetParent(view)
	assert.True(t, scene.Same(viewV, h.VerticalScrollBar()))
	assert.Equal(t, 1, viewV.EventFilters())

	flick.SetParent(scene.NewItem(scene.KindItem, "plain"))
	assert.Nil(t, h.VerticalScrollBar())
	assert.Zero(t, viewV.EventFilters())
}

func TestSwappedScrollBarRebinds(t *testing.T) {
	h := newHandler(t)
	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	old := scene.NewScrollBar("old")
	attached := scene.NewScrollBarAttached(flick, old, nil)
	require.NoError(t, h.SetTarget(flick))
	require.True(t, scene.Same(old, h.VerticalScrollBar()))

	replacement := scene.NewScrollBar("new")
	attached.SetProperty("vertical", replacement)
	assert.True(t, scene.Same(replacement, h.VerticalScrollBar()))
	assert.Zero(t, old.EventFilters())
	assert.Equal(t, 1, replacement.EventFilters())
	assert.Equal(t, 1, attached.PropertyListeners("vertical"))

	attached.SetProperty("vertical", nil)
	assert.Nil(t, h.VerticalScrollBar())
	assert.Zero(t, replacement.EventFilters())
	assert.Zero(t, attached.PropertyListeners("vertical"))
}

func TestFilterMouseEventsTogglesInteractivity(t *testing.T) {
	h := newHandler(t)
	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	v, hz := scene.NewScrollBar("v"), scene.NewScrollBar("h")
	scene.NewScrollBarAttached(flick, v, hz)
	require.NoError(t, h.SetTarget(flick))
	interactive := func() (bool, bool) {
		return scene.Bool(v, "interactive", false), scene.Bool(hz, "interactive", false)
	}

	// Nothing changes while filtering is off.
	scene.Deliver(flick, input.NewTouch(input.TypeTouchBegin))
	vi, hi := interactive()
	assert.True(t, vi)
	assert.True(t, hi)

	h.SetFilterMouseEvents(true)
	scene.Deliver(flick, input.NewTouch(input.TypeTouchBegin))
	vi, hi = interactive()
	assert.False(t, vi)
	assert.False(t, hi)

	// Hovering a scrollbar after touch makes the bars usable again.
	scene.Deliver(v, input.NewHover(input.TypeHoverEnter, input.Pt(1, 1)))
	vi, hi = interactive()
	assert.True(t, vi)
	assert.True(t, hi)

	scene.Deliver(flick, input.NewTouch(input.TypeTouchBegin))
	scene.Deliver(flick, input.NewMouse(input.TypeMouseButtonPress, input.Point{}, input.ButtonLeft, input.SourceNotSynthesized))
	vi, _ = interactive()
	assert.True(t, vi, "a real mouse press restores interactivity")

	scene.Deliver(flick, input.NewTouch(input.TypeTouchBegin))
	scene.Deliver(flick, &input.WheelEvent{AngleDelta: input.Pt(0, -120)})
	vi, _ = interactive()
	assert.True(t, vi, "a wheel event restores interactivity")
}

func TestFilterMouseEventsConsumesRealMouseOnTarget(t *testing.T) {
	h := newHandler(t)
	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	v := scene.NewScrollBar("v")
	scene.NewScrollBarAttached(flick, v, nil)
	require.NoError(t, h.SetTarget(flick))

	move := input.NewMouse(input.TypeMouseMove, input.Point{}, input.ButtonLeft, input.SourceNotSynthesized)
	synthesized := input.NewMouse(input.TypeMouseMove, input.Point{}, input.ButtonLeft, input.SourceSynthesizedBySystem)
	press := input.NewMouse(input.TypeMouseButtonPress, input.Point{}, input.ButtonLeft, input.SourceSynthesizedBySystem)

	assert.False(t, scene.Deliver(flick, move))

	h.SetFilterMouseEvents(true)
	assert.True(t, scene.Deliver(flick, move))
	assert.False(t, scene.Deliver(flick, synthesized))
	assert.False(t, scene.Deliver(v, move), "scrollbars keep their mouse events")
	assert.False(t, scene.Deliver(flick, press))
}

func TestCloseReleasesEverything(t *testing.T) {
	sched := loop.NewManual(time.Unix(0, 0))
	h := New(sched)
	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	v := scene.NewScrollBar("v")
	attached := scene.NewScrollBarAttached(flick, v, nil)
	require.NoError(t, h.SetTarget(flick))
	overlay := h.FilterItem().Item()

	scene.Deliver(flick, &input.WheelEvent{AngleDelta: input.Pt(0, -120)})
	require.True(t, h.IsScrolling())

	h.Close()
	h.Close()
	assert.Zero(t, flick.EventFilters())
	assert.Zero(t, v.EventFilters())
	assert.Zero(t, overlay.EventFilters())
	assert.Zero(t, flick.PropertyListeners("width"))
	assert.Zero(t, flick.ParentListeners())
	assert.Zero(t, attached.PropertyListeners("vertical"))
	assert.Nil(t, overlay.Parent())
	assert.Zero(t, sched.Pending())
	assert.Zero(t, h.settings.Subscribers())
}
