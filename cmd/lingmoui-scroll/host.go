package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lingmo/lingmoui/internal/anim"
	"github.com/lingmo/lingmoui/internal/input"
	"github.com/lingmo/lingmoui/internal/loop"
	"github.com/lingmo/lingmoui/internal/plugin"
	"github.com/lingmo/lingmoui/internal/scene"
	"github.com/lingmo/lingmoui/internal/settings"
	"github.com/lingmo/lingmoui/internal/wheel"
)

const frameInterval = 16 * time.Millisecond

// hostOptions are the handler switches exposed on the command line.
type hostOptions struct {
	keyNavigation     bool
	filterMouseEvents bool
	step              float64
}

// host shows lines of text in a scrollable surface and feeds terminal input
// through the wheel handler. Every method runs on the loop goroutine.
type host struct {
	log      zerolog.Logger
	screen   tcell.Screen
	sched    loop.Scheduler
	settings *settings.Settings
	animator *anim.Animator
	handler  *wheel.Handler

	window *scene.Window
	view   *scene.Item
	flick  *scene.Item
	vbar   *scene.Item

	lines    []string
	mouse    mouseTracker
	language string
	help     string
	dirty    bool

	conns []scene.Connection
	subs  []*settings.Subscription
}

func newHost(screen tcell.Screen, sched loop.Scheduler, s *settings.Settings, lines []string, opts hostOptions, log zerolog.Logger) (*host, error) {
	h := &host{
		log:      log,
		screen:   screen,
		sched:    sched,
		settings: s,
		animator: anim.NewAnimator(sched.Now),
		lines:    lines,
		language: s.Language(),
		help:     actionHelp(),
		dirty:    true,
	}
	h.handler = wheel.New(sched,
		wheel.WithAnimator(h.animator),
		wheel.WithSettings(s),
		wheel.WithLogger(log),
	)

	w, ht := screen.Size()
	pageW, pageH := viewport(w, ht)
	h.window = scene.NewWindow(s.DevicePixelRatio())
	h.view = scene.NewScrollView("view", pageW, pageH)
	h.view.SetWindow(h.window)
	h.flick = scene.NewFlickable("text", pageW, pageH, contentWidth(lines), float64(len(lines)*lineHeight))
	h.flick.SetParent(h.view)
	h.vbar = scene.NewScrollBar("scrollbar")
	scene.NewScrollBarAttached(h.view, h.vbar, nil)

	if err := h.handler.SetTarget(h.flick); err != nil {
		h.handler.Close()
		return nil, err
	}
	h.handler.SetKeyNavigationEnabled(opts.keyNavigation)
	h.handler.SetFilterMouseEvents(opts.filterMouseEvents)
	if opts.step > 0 {
		h.handler.SetVerticalStepSize(opts.step)
	}

	redraw := func(scene.PropertyChange) { h.dirty = true }
	h.conns = append(h.conns,
		h.flick.OnPropertyChanged("contentX", redraw),
		h.flick.OnPropertyChanged("contentY", redraw),
		h.vbar.OnPropertyChanged("interactive", redraw),
		h.handler.OnChanged(func(wheel.Property) { h.dirty = true }),
	)
	h.subs = append(h.subs, s.Subscribe(settings.PathDevicePixelRatio, func(settings.Change) {
		h.window.SetDevicePixelRatio(s.DevicePixelRatio())
	}))
	return h, nil
}

// viewport returns the pixel size of the text area: everything but the
// scrollbar column and the status line.
func viewport(cols, rows int) (float64, float64) {
	return float64(max(cols-1, 0) * cellWidth), float64(max(rows-1, 0) * lineHeight)
}

func contentWidth(lines []string) float64 {
	widest := 0
	for _, l := range lines {
		widest = max(widest, len([]rune(l)))
	}
	return float64(widest * cellWidth)
}

// actionHelp describes the navigation actions for the status line.
func actionHelp() string {
	var helper plugin.ActionHelper
	actions := []plugin.Action{
		{Text: "top", Icon: plugin.Icon{Name: "go-top"}, Shortcuts: mustShortcuts("Home", "Ctrl+Home")},
		{Text: "bottom", Icon: plugin.Icon{Name: "go-bottom"}, Shortcuts: mustShortcuts("End", "Ctrl+End")},
	}

	var parts []string
	for _, a := range actions {
		keys := []string{a.Shortcuts[0].String()}
		for _, alt := range helper.AlternateShortcuts(&a) {
			keys = append(keys, alt.String())
		}
		parts = append(parts, fmt.Sprintf("%s %s [%s]", strings.Join(keys, "/"), a.Text, helper.IconName(a.Icon)))
	}
	return strings.Join(parts, "  ")
}

func mustShortcuts(specs ...string) []plugin.KeySequence {
	out := make([]plugin.KeySequence, 0, len(specs))
	for _, s := range specs {
		k, err := plugin.ParseKeySequence(s)
		if err != nil {
			panic(err)
		}
		out = append(out, k)
	}
	return out
}

// setLanguage is the retranslation callback.
func (h *host) setLanguage(lang string) {
	h.language = lang
	h.dirty = true
}

// handle processes one terminal event. It returns false when the user asked
// to quit.
func (h *host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize(ev.Size())
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if ke, ok := convertKey(ev); ok {
			scene.Deliver(h.flick, ke)
		}
	case *tcell.EventMouse:
		for _, e := range h.mouse.convert(ev) {
			scene.Deliver(h.hitTest(e), e)
		}
	}
	return true
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// hitTest picks the object a pointer event lands on. While the handler is
// scrolling its overlay covers the text.
func (h *host) hitTest(ev input.Event) scene.Object {
	var pos input.Point
	switch e := ev.(type) {
	case *input.WheelEvent:
		pos = e.Position
	case *input.MouseEvent:
		pos = e.Position
	}
	if pos.X >= scene.Float(h.flick, "width") {
		return h.vbar
	}
	if h.handler.FilterItem().Enabled() {
		return h.handler.FilterItem().Item()
	}
	return h.flick
}

func (h *host) resize(cols, rows int) {
	pageW, pageH := viewport(cols, rows)
	h.view.SetProperty("width", pageW)
	h.view.SetProperty("height", pageH)
	h.flick.SetProperty("width", pageW)
	h.flick.SetProperty("height", pageH)
	h.dirty = true
}

// scheduleFrame runs frame every frameInterval until the scheduler stops.
func (h *host) scheduleFrame() {
	h.sched.AfterFunc(frameInterval, func() {
		h.frame()
		h.scheduleFrame()
	})
}

// frame advances the smooth-scroll animation and redraws when needed.
func (h *host) frame() {
	h.animator.Advance(h.sched.Now())
	if h.dirty {
		h.draw()
	}
}

func (h *host) draw() {
	h.dirty = false
	h.screen.Clear()
	cols, rows := h.screen.Size()
	if cols < 2 || rows < 2 {
		h.screen.Show()
		return
	}

	top := int(scene.Float(h.flick, "contentY")) / lineHeight
	left := int(scene.Float(h.flick, "contentX")) / cellWidth
	for row := 0; row < rows-1; row++ {
		n := top + row
		if n < 0 || n >= len(h.lines) {
			continue
		}
		line := []rune(h.lines[n])
		for col := 0; col < cols-1 && left+col < len(line); col++ {
			if left+col >= 0 {
				h.screen.SetContent(col, row, line[left+col], nil, tcell.StyleDefault)
			}
		}
	}

	h.drawScrollBar(cols-1, rows-1)
	h.drawStatus(cols, rows-1)
	h.screen.Show()
}

func (h *host) drawScrollBar(col, track int) {
	style := tcell.StyleDefault
	if !scene.Bool(h.vbar, "interactive", true) {
		style = style.Dim(true)
	}
	first, size := thumb(track, scene.Float(h.flick, "contentY"), scene.Float(h.flick, "height"), scene.Float(h.flick, "contentHeight"))
	for row := 0; row < track; row++ {
		r, s := '│', style
		if row >= first && row < first+size {
			r, s = ' ', style.Reverse(true)
		}
		h.screen.SetContent(col, row, r, nil, s)
	}
}

// thumb returns the first row and the length of the scrollbar thumb.
func thumb(track int, offset, page, content float64) (int, int) {
	if content <= page || track <= 0 {
		return 0, track
	}
	size := max(1, int(math.Round(float64(track)*page/content)))
	pos := offset / (content - page)
	first := int(math.Round(pos * float64(track-size)))
	return min(max(first, 0), track-size), size
}

func (h *host) drawStatus(cols, row int) {
	state := "idle"
	if h.handler.IsScrolling() {
		state = "scrolling"
	}
	status := fmt.Sprintf(" y %.0f/%.0f  step %.0f  %s  %s  %s  q quit",
		scene.Float(h.flick, "contentY"),
		math.Max(scene.Float(h.flick, "contentHeight")-scene.Float(h.flick, "height"), 0),
		h.handler.VerticalStepSize(),
		state,
		h.language,
		h.help,
	)
	style := tcell.StyleDefault.Reverse(true)
	runes := []rune(status)
	for col := 0; col < cols; col++ {
		r := ' '
		if col < len(runes) {
			r = runes[col]
		}
		h.screen.SetContent(col, row, r, nil, style)
	}
}

func (h *host) close() {
	for _, c := range h.conns {
		c.Disconnect()
	}
	for _, s := range h.subs {
		s.Unsubscribe()
	}
	h.handler.Close()
}
