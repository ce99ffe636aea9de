package scene

import "sync"

// Window is the surface objects are shown on. It only carries what the
// scrolling core reads from it.
type Window struct {
	mu  sync.RWMutex
	dpr float64
}

// NewWindow returns a window with the given device pixel ratio.
func NewWindow(devicePixelRatio float64) *Window {
	return &Window{dpr: devicePixelRatio}
}

// DevicePixelRatio returns the ratio of physical to logical pixels.
func (w *Window) DevicePixelRatio() float64 {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.dpr
}

// SetDevicePixelRatio updates the ratio, e.g. after moving to another screen.
func (w *Window) SetDevicePixelRatio(dpr float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dpr = dpr
}
