package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingmo/lingmoui/internal/logging"
	"github.com/lingmo/lingmoui/internal/loop"
	"github.com/lingmo/lingmoui/internal/scene"
	"github.com/lingmo/lingmoui/internal/settings"
)

type hostFixture struct {
	screen   tcell.SimulationScreen
	clock    *loop.Manual
	settings *settings.Settings
	host     *host
}

// newHostFixture builds a 40x11 terminal: a 39x10 text area, the scrollbar
// column and the status line.
func newHostFixture(t *testing.T, smooth bool, opts hostOptions) *hostFixture {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 11)
	t.Cleanup(screen.Fini)

	v := settings.Defaults()
	v.Scrolling.SmoothScroll = smooth
	s := settings.New(settings.WithValues(v))
	clock := loop.NewManual(time.Unix(0, 0))

	h, err := newHost(screen, clock, s, demoLines(100), opts, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(h.close)

	return &hostFixture{screen: screen, clock: clock, settings: s, host: h}
}

func (f *hostFixture) row(y int) string {
	w, _ := f.screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := f.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		b.WriteRune(r)
	}
	return b.String()
}

func (f *hostFixture) contentY() float64 {
	return scene.Float(f.host.flick, "contentY")
}

func TestHostGeometry(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{})

	assert.Equal(t, 390.0, scene.Float(f.host.flick, "width"))
	assert.Equal(t, 200.0, scene.Float(f.host.flick, "height"))
	assert.Equal(t, 2000.0, scene.Float(f.host.flick, "contentHeight"))
	assert.True(t, scene.Same(f.host.vbar, f.host.handler.VerticalScrollBar()))
}

func TestHostWheelScrollsLines(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{})

	require.True(t, f.host.handle(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone)))
	assert.Equal(t, 60.0, f.contentY())
	assert.True(t, f.host.handler.IsScrolling())

	f.host.draw()
	assert.True(t, strings.HasPrefix(f.row(0), "   4  the quick"))

	f.clock.Advance(400 * time.Millisecond)
	assert.False(t, f.host.handler.IsScrolling())
}

func TestHostWheelGoesToOverlayWhileScrolling(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{})

	f.host.handle(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	require.True(t, f.host.handler.FilterItem().Enabled())

	we := f.host.mouse.convert(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	target := f.host.hitTest(we[0])
	assert.True(t, scene.Same(f.host.handler.FilterItem().Item(), target))

	f.host.handle(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	assert.Equal(t, 120.0, f.contentY())
}

func TestHostScrollBarColumnHitsScrollBar(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{})

	we := f.host.mouse.convert(tcell.NewEventMouse(39, 2, tcell.WheelDown, tcell.ModNone))
	assert.True(t, scene.Same(f.host.vbar, f.host.hitTest(we[0])))
}

func TestHostKeyNavigation(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{keyNavigation: true})

	f.host.handle(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	assert.Equal(t, 1800.0, f.contentY())

	f.host.handle(tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone))
	assert.Equal(t, 1600.0, f.contentY())

	f.host.handle(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	assert.Equal(t, 0.0, f.contentY())
}

func TestHostKeysIgnoredWithoutNavigation(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{})

	f.host.handle(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	assert.Equal(t, 0.0, f.contentY())
}

func TestHostStepOption(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{step: 40})

	f.host.handle(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	assert.Equal(t, 40.0, f.contentY())
}

func TestHostQuit(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{})

	assert.False(t, f.host.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, f.host.handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestHostResize(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{})

	f.screen.SetSize(60, 21)
	f.host.handle(tcell.NewEventResize(60, 21))
	assert.Equal(t, 590.0, scene.Float(f.host.flick, "width"))
	assert.Equal(t, 400.0, scene.Float(f.host.flick, "height"))
	w, _ := f.host.handler.FilterItem().Size()
	assert.Equal(t, 590.0, w)
}

func TestHostSmoothScrollAdvancesOnFrames(t *testing.T) {
	f := newHostFixture(t, true, hostOptions{})
	f.host.scheduleFrame()

	f.host.handle(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	assert.Equal(t, 0.0, f.contentY())

	f.clock.Advance(100 * time.Millisecond)
	assert.Greater(t, f.contentY(), 0.0)
	assert.Less(t, f.contentY(), 60.0)

	f.clock.Advance(time.Second)
	assert.Equal(t, 60.0, f.contentY())
}

func TestHostFollowsDevicePixelRatio(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{})

	require.NoError(t, f.settings.SetDevicePixelRatio(2))
	assert.Equal(t, 2.0, f.host.window.DevicePixelRatio())
}

func TestHostStatusLine(t *testing.T) {
	f := newHostFixture(t, false, hostOptions{})
	f.host.setLanguage("de_DE")
	f.host.draw()

	status := f.row(10)
	assert.Contains(t, status, "y 0/1800")
	assert.Contains(t, status, "step 60")
	assert.Contains(t, status, "de_DE")
}

func TestThumb(t *testing.T) {
	first, size := thumb(10, 0, 200, 2000)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, size)

	first, size = thumb(10, 1800, 200, 2000)
	assert.Equal(t, 9, first)
	assert.Equal(t, 1, size)

	first, size = thumb(10, 0, 200, 100)
	assert.Equal(t, 0, first)
	assert.Equal(t, 10, size)
}

func TestActionHelp(t *testing.T) {
	help := actionHelp()
	assert.Contains(t, help, "Home/Ctrl+Home top [go-top]")
	assert.Contains(t, help, "End/Ctrl+End bottom [go-bottom]")
}
