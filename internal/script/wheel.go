package script

import (
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/lingmo/lingmoui/internal/input/key"
	"github.com/lingmo/lingmoui/internal/logging"
	"github.com/lingmo/lingmoui/internal/scene"
	"github.com/lingmo/lingmoui/internal/wheel"
)

const (
	// ListenerFunc is the global a script defines to receive wheel events.
	ListenerFunc = "on_wheel"

	wheelEventTypeName = "lingmoui.wheel_event"
	scrollerModule     = "scroller"
)

var wheelEventMethods = map[string]lua.LGFunction{
	"x":            wheelEventX,
	"y":            wheelEventY,
	"angle_delta":  wheelEventAngleDelta,
	"pixel_delta":  wheelEventPixelDelta,
	"buttons":      wheelEventButtons,
	"modifiers":    wheelEventModifiers,
	"has_modifier": wheelEventHasModifier,
	"inverted":     wheelEventInverted,
	"accept":       wheelEventAccept,
	"accepted":     wheelEventAccepted,
}

func registerWheelEventType(L *lua.LState) {
	mt := L.NewTypeMetatable(wheelEventTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), wheelEventMethods))
}

func checkWheelEvent(L *lua.LState) *wheel.WheelEvent {
	ud := L.CheckUserData(1)
	if ev, ok := ud.Value.(*wheel.WheelEvent); ok {
		return ev
	}
	L.ArgError(1, "wheel event expected")
	return nil
}

func wheelEventX(L *lua.LState) int {
	L.Push(lua.LNumber(checkWheelEvent(L).X()))
	return 1
}

func wheelEventY(L *lua.LState) int {
	L.Push(lua.LNumber(checkWheelEvent(L).Y()))
	return 1
}

func wheelEventAngleDelta(L *lua.LState) int {
	d := checkWheelEvent(L).AngleDelta()
	L.Push(lua.LNumber(d.X))
	L.Push(lua.LNumber(d.Y))
	return 2
}

func wheelEventPixelDelta(L *lua.LState) int {
	d := checkWheelEvent(L).PixelDelta()
	L.Push(lua.LNumber(d.X))
	L.Push(lua.LNumber(d.Y))
	return 2
}

func wheelEventButtons(L *lua.LState) int {
	L.Push(lua.LNumber(checkWheelEvent(L).Buttons()))
	return 1
}

func wheelEventModifiers(L *lua.LState) int {
	L.Push(lua.LString(checkWheelEvent(L).Modifiers().String()))
	return 1
}

// wheelEventHasModifier accepts a modifier name ("ctrl") or a combination
// ("ctrl+shift") and reports whether any of them is held.
func wheelEventHasModifier(L *lua.LState) int {
	ev := checkWheelEvent(L)
	mods := key.ParseModifiers(L.CheckString(2))
	L.Push(lua.LBool(ev.Modifiers().Has(mods)))
	return 1
}

func wheelEventInverted(L *lua.LState) int {
	L.Push(lua.LBool(checkWheelEvent(L).Inverted()))
	return 1
}

func wheelEventAccept(L *lua.LState) int {
	checkWheelEvent(L).SetAccepted(L.OptBool(2, true))
	return 0
}

func wheelEventAccepted(L *lua.LState) int {
	L.Push(lua.LBool(checkWheelEvent(L).IsAccepted()))
	return 1
}

// Listener forwards a handler's wheel events to a script's on_wheel.
type Listener struct {
	state   *State
	handler *wheel.Handler
	log     zerolog.Logger
	conn    scene.Connection
	ud      *lua.LUserData
	errs    int
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithLogger sets the logger script errors are reported to.
func WithLogger(l zerolog.Logger) ListenerOption {
	return func(ln *Listener) {
		ln.log = l
	}
}

// Attach connects the state's on_wheel function to h and installs the
// scroller module for h.
func Attach(state *State, h *wheel.Handler, opts ...ListenerOption) (*Listener, error) {
	if !state.HasFunction(ListenerFunc) {
		return nil, ErrNoListener
	}

	l := &Listener{state: state, handler: h, log: logging.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	l.log = logging.Component(l.log, "script")

	state.mu.Lock()
	l.ud = state.L.NewUserData()
	state.L.SetMetatable(l.ud, state.L.GetTypeMetatable(wheelEventTypeName))
	state.mu.Unlock()

	state.RegisterModule(scrollerModule, l.scrollerFuncs())
	l.conn = h.OnWheel(l.dispatch)
	return l, nil
}

// Errors returns how many on_wheel calls failed.
func (l *Listener) Errors() int {
	return l.errs
}

// Close stops forwarding wheel events.
func (l *Listener) Close() {
	l.conn.Disconnect()
}

func (l *Listener) dispatch(ev *wheel.WheelEvent) {
	l.ud.Value = ev
	defer func() { l.ud.Value = nil }()

	if _, err := l.state.Call(ListenerFunc, l.ud); err != nil {
		l.errs++
		l.log.Warn().Err(err).Str("func", ListenerFunc).Msg("script listener failed")
	}
}

func (l *Listener) scrollerFuncs() map[string]lua.LGFunction {
	scroll := func(fn func(float64) bool) lua.LGFunction {
		return func(L *lua.LState) int {
			L.Push(lua.LBool(fn(float64(L.OptNumber(1, wheel.DefaultStep)))))
			return 1
		}
	}
	return map[string]lua.LGFunction{
		"scroll_up":    scroll(l.handler.ScrollUp),
		"scroll_down":  scroll(l.handler.ScrollDown),
		"scroll_left":  scroll(l.handler.ScrollLeft),
		"scroll_right": scroll(l.handler.ScrollRight),
		"vertical_step": func(L *lua.LState) int {
			L.Push(lua.LNumber(l.handler.VerticalStepSize()))
			return 1
		},
		"horizontal_step": func(L *lua.LState) int {
			L.Push(lua.LNumber(l.handler.HorizontalStepSize()))
			return 1
		},
	}
}
