package script

import (
	"errors"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/lingmo/lingmoui/internal/input"
	"github.com/lingmo/lingmoui/internal/input/key"
	"github.com/lingmo/lingmoui/internal/loop"
	"github.com/lingmo/lingmoui/internal/scene"
	"github.com/lingmo/lingmoui/internal/wheel"
)

func newTarget(t *testing.T) (*wheel.Handler, *scene.Item) {
	t.Helper()
	h := wheel.New(loop.NewManual(time.Unix(0, 0)))
	t.Cleanup(h.Close)
	flick := scene.NewFlickable("list", 100, 100, 100, 500)
	if err := h.SetTarget(flick); err != nil {
		t.Fatalf("SetTarget() error = %v", err)
	}
	return h, flick
}

func attach(t *testing.T, h *wheel.Handler, code string) (*State, *Listener) {
	t.Helper()
	state := NewState()
	t.Cleanup(state.Close)
	if err := state.DoString(code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	l, err := Attach(state, h)
	if err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	t.Cleanup(l.Close)
	return state, l
}

func TestSandbox(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"os", "io", "debug", "dofile", "loadfile", "load", "loadstring"} {
		if err := state.DoString("assert(" + name + " == nil)"); err != nil {
			t.Errorf("%s is reachable: %v", name, err)
		}
	}
	if err := state.DoString("assert(string.upper('a') == 'A' and math.max(1, 2) == 2)"); err != nil {
		t.Errorf("safe libraries missing: %v", err)
	}
}

func TestCallReturnsResults(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString("function add(a, b) return a + b, 'ok' end"); err != nil {
		t.Fatal(err)
	}
	results, err := state.Call("add", lua.LNumber(1), lua.LNumber(2))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(results) != 2 || results[0] != lua.LNumber(3) || results[1] != lua.LString("ok") {
		t.Errorf("Call() = %v, want [3 ok]", results)
	}

	if _, err := state.Call("missing"); err == nil {
		t.Error("Call() of a missing function succeeded")
	}
}

func TestCallTimeout(t *testing.T) {
	state := NewState(WithTimeout(20 * time.Millisecond))
	defer state.Close()

	if err := state.DoString("function spin() while true do end end"); err != nil {
		t.Fatal(err)
	}
	if _, err := state.Call("spin"); !errors.Is(err, ErrTimeout) {
		t.Errorf("Call() error = %v, want ErrTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := state.DoString("x = 1"); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestClosedState(t *testing.T) {
	state := NewState()
	state.Close()
	state.Close()

	if err := state.DoString("x = 1"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if state.HasFunction("print") {
		t.Error("HasFunction() on a closed state = true")
	}
}

func TestAttachRequiresListener(t *testing.T) {
	h, _ := newTarget(t)
	state := NewState()
	defer state.Close()

	if _, err := Attach(state, h); !errors.Is(err, ErrNoListener) {
		t.Errorf("Attach() error = %v, want ErrNoListener", err)
	}
}

func TestListenerSeesEvent(t *testing.T) {
	h, flick := newTarget(t)
	state, _ := attach(t, h, `
function on_wheel(ev)
  seen_x, seen_y = ev:x(), ev:y()
  angle_x, angle_y = ev:angle_delta()
  pixel_x, pixel_y = ev:pixel_delta()
  mods = ev:modifiers()
  ctrl = ev:has_modifier("ctrl")
  meta = ev:has_modifier("meta")
  inverted = ev:inverted()
  buttons = ev:buttons()
end`)

	scene.Deliver(flick, &input.WheelEvent{
		Position:   input.Pt(4, 5),
		AngleDelta: input.Pt(0, -120),
		PixelDelta: input.Pt(0, -9),
		Modifiers:  key.ModMeta,
		Buttons:    input.ButtonRight,
		Inverted:   true,
	})

	want := map[string]lua.LValue{
		"seen_x":   lua.LNumber(4),
		"seen_y":   lua.LNumber(5),
		"angle_x":  lua.LNumber(0),
		"angle_y":  lua.LNumber(-120),
		"pixel_y":  lua.LNumber(-9),
		"mods":     lua.LString("Meta"),
		"ctrl":     lua.LFalse,
		"meta":     lua.LTrue,
		"inverted": lua.LTrue,
		"buttons":  lua.LNumber(input.ButtonRight),
	}
	for name, v := range want {
		if got := state.L.GetGlobal(name); got != v {
			t.Errorf("%s = %v, want %v", name, got, v)
		}
	}
	if got := scene.Float(flick, "contentY"); got != 60 {
		t.Errorf("contentY = %v, want 60", got)
	}
}

func TestListenerAcceptSuppressesScrolling(t *testing.T) {
	h, flick := newTarget(t)
	attach(t, h, `
function on_wheel(ev)
  local _, dy = ev:angle_delta()
  if dy < 0 then
    ev:accept()
  end
end`)

	if !scene.Deliver(flick, &input.WheelEvent{AngleDelta: input.Pt(0, -120)}) {
		t.Error("accepted wheel event was not consumed")
	}
	if got := scene.Float(flick, "contentY"); got != 0 {
		t.Errorf("contentY = %v, want 0", got)
	}
}

func TestScrollerModule(t *testing.T) {
	h, flick := newTarget(t)
	state, _ := attach(t, h, `
function on_wheel(ev)
  step = scroller.vertical_step()
  moved = scroller.scroll_down(5)
  ev:accept()
end`)

	scene.Deliver(flick, &input.WheelEvent{AngleDelta: input.Pt(0, -120)})
	if got := scene.Float(flick, "contentY"); got != 5 {
		t.Errorf("contentY = %v, want 5", got)
	}
	if got := state.L.GetGlobal("step"); got != lua.LNumber(60) {
		t.Errorf("step = %v, want 60", got)
	}
	if got := state.L.GetGlobal("moved"); got != lua.LTrue {
		t.Errorf("moved = %v, want true", got)
	}
}

func TestListenerErrorsDoNotBlockScrolling(t *testing.T) {
	h, flick := newTarget(t)
	_, l := attach(t, h, `function on_wheel(ev) error("boom") end`)

	scene.Deliver(flick, &input.WheelEvent{AngleDelta: input.Pt(0, -120)})
	if l.Errors() != 1 {
		t.Errorf("Errors() = %d, want 1", l.Errors())
	}
	if got := scene.Float(flick, "contentY"); got != 60 {
		t.Errorf("contentY = %v, want 60", got)
	}
}

func TestListenerClose(t *testing.T) {
	h, flick := newTarget(t)
	state, l := attach(t, h, `calls = 0
function on_wheel(ev) calls = calls + 1 end`)

	scene.Deliver(flick, &input.WheelEvent{AngleDelta: input.Pt(0, -120)})
	l.Close()
	scene.Deliver(flick, &input.WheelEvent{AngleDelta: input.Pt(0, -120)})
	if got := state.L.GetGlobal("calls"); got != lua.LNumber(1) {
		t.Errorf("calls = %v, want 1", got)
	}
}
