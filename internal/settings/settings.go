// Package settings holds the platform settings the scrolling core observes:
// the system wheel-scroll-line count, the smooth scroll switch, the long
// animation duration, the device pixel ratio, the platform name and the UI
// language.
//
// Settings are owned outside the core. Consumers read the current values
// and subscribe to change notifications by path; nothing polls. Values can
// be loaded from a TOML or YAML file and kept in sync with it by a Watcher.
package settings

import (
	"fmt"
	"sync"
	"time"
)

// Setting paths, as used by Subscribe and reported in Change.Path.
const (
	PathPlatform         = "platform"
	PathPlatformName     = "platform.name"
	PathDevicePixelRatio = "platform.device_pixel_ratio"
	PathLanguage         = "platform.language"
	PathScrolling        = "scrolling"
	PathWheelScrollLines = "scrolling.wheel_scroll_lines"
	PathSmoothScroll     = "scrolling.smooth_scroll"
	PathLongDuration     = "scrolling.long_duration_ms"
)

// SourceAPI marks changes made through the setters.
const SourceAPI = "api"

// Values is the complete settings snapshot.
type Values struct {
	Platform  PlatformValues  `toml:"platform" yaml:"platform"`
	Scrolling ScrollingValues `toml:"scrolling" yaml:"scrolling"`
}

// PlatformValues describes the windowing platform.
type PlatformValues struct {
	// Name is the windowing platform, e.g. "xcb", "wayland", "android".
	Name             string  `toml:"name" yaml:"name"`
	DevicePixelRatio float64 `toml:"device_pixel_ratio" yaml:"device_pixel_ratio"`
	Language         string  `toml:"language" yaml:"language"`
}

// ScrollingValues holds the scrolling preferences.
type ScrollingValues struct {
	WheelScrollLines int  `toml:"wheel_scroll_lines" yaml:"wheel_scroll_lines"`
	SmoothScroll     bool `toml:"smooth_scroll" yaml:"smooth_scroll"`
	LongDurationMS   int  `toml:"long_duration_ms" yaml:"long_duration_ms"`
}

// Defaults returns the built-in settings.
func Defaults() Values {
	return Values{
		Platform: PlatformValues{
			Name:             "wayland",
			DevicePixelRatio: 1,
			Language:         "en_US",
		},
		Scrolling: ScrollingValues{
			WheelScrollLines: 3,
			SmoothScroll:     true,
			LongDurationMS:   250,
		},
	}
}

// Validate checks value ranges.
func (v Values) Validate() error {
	if v.Scrolling.WheelScrollLines < 0 {
		return &ValidationError{Path: PathWheelScrollLines, Message: fmt.Sprintf("must not be negative, got %d", v.Scrolling.WheelScrollLines)}
	}
	if v.Scrolling.LongDurationMS < 0 {
		return &ValidationError{Path: PathLongDuration, Message: fmt.Sprintf("must not be negative, got %d", v.Scrolling.LongDurationMS)}
	}
	if v.Platform.DevicePixelRatio < 0 {
		return &ValidationError{Path: PathDevicePixelRatio, Message: fmt.Sprintf("must not be negative, got %g", v.Platform.DevicePixelRatio)}
	}
	return nil
}

// Settings is the observable settings store.
type Settings struct {
	mu       sync.RWMutex
	values   Values
	notifier *Notifier
}

// Option configures Settings.
type Option func(*Settings)

// WithValues sets the initial values.
func WithValues(v Values) Option {
	return func(s *Settings) {
		s.values = v
	}
}

// New creates settings holding Defaults unless overridden.
func New(opts ...Option) *Settings {
	s := &Settings{
		values:   Defaults(),
		notifier: NewNotifier(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Values returns a snapshot of every setting.
func (s *Settings) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// WheelScrollLines returns how many lines one wheel notch scrolls.
func (s *Settings) WheelScrollLines() int {
	return s.Values().Scrolling.WheelScrollLines
}

// SmoothScroll reports whether wheel scrolling is animated.
func (s *Settings) SmoothScroll() bool {
	return s.Values().Scrolling.SmoothScroll
}

// LongDuration returns the duration of long animations.
func (s *Settings) LongDuration() time.Duration {
	return time.Duration(s.Values().Scrolling.LongDurationMS) * time.Millisecond
}

// DevicePixelRatio returns the application-wide device pixel ratio.
func (s *Settings) DevicePixelRatio() float64 {
	return s.Values().Platform.DevicePixelRatio
}

// PlatformName returns the windowing platform name.
func (s *Settings) PlatformName() string {
	return s.Values().Platform.Name
}

// Language returns the UI language.
func (s *Settings) Language() string {
	return s.Values().Platform.Language
}

// Subscribe observes changes at or below path. An empty path observes
// everything.
func (s *Settings) Subscribe(path string, obs Observer) *Subscription {
	return s.notifier.SubscribePath(path, obs)
}

// Subscribers returns the number of active subscriptions.
func (s *Settings) Subscribers() int {
	return s.notifier.Len()
}

// Apply replaces every setting with v and notifies one Change per value
// that differs. Invalid values are rejected as a whole.
func (s *Settings) Apply(v Values, source string) error {
	if err := v.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	old := s.values
	s.values = v
	s.mu.Unlock()

	for _, c := range diff(old, v) {
		c.Source = source
		s.notifier.Notify(c)
	}
	return nil
}

// update applies a mutation of the current values.
func (s *Settings) update(mutate func(*Values)) error {
	v := s.Values()
	mutate(&v)
	return s.Apply(v, SourceAPI)
}

// SetWheelScrollLines changes the wheel-scroll-line count.
func (s *Settings) SetWheelScrollLines(n int) error {
	return s.update(func(v *Values) { v.Scrolling.WheelScrollLines = n })
}

// SetSmoothScroll switches smooth scrolling.
func (s *Settings) SetSmoothScroll(on bool) error {
	return s.update(func(v *Values) { v.Scrolling.SmoothScroll = on })
}

// SetLongDuration changes the long animation duration.
func (s *Settings) SetLongDuration(d time.Duration) error {
	return s.update(func(v *Values) { v.Scrolling.LongDurationMS = int(d / time.Millisecond) })
}

// SetDevicePixelRatio changes the application-wide device pixel ratio.
func (s *Settings) SetDevicePixelRatio(dpr float64) error {
	return s.update(func(v *Values) { v.Platform.DevicePixelRatio = dpr })
}

// SetPlatformName changes the platform name.
func (s *Settings) SetPlatformName(name string) error {
	return s.update(func(v *Values) { v.Platform.Name = name })
}

// SetLanguage changes the UI language.
func (s *Settings) SetLanguage(lang string) error {
	return s.update(func(v *Values) { v.Platform.Language = lang })
}

func diff(a, b Values) []Change {
	var changes []Change
	add := func(path string, old, cur any) {
		if old != cur {
			changes = append(changes, Change{Path: path, Old: old, New: cur})
		}
	}
	add(PathPlatformName, a.Platform.Name, b.Platform.Name)
	add(PathDevicePixelRatio, a.Platform.DevicePixelRatio, b.Platform.DevicePixelRatio)
	add(PathLanguage, a.Platform.Language, b.Platform.Language)
	add(PathWheelScrollLines, a.Scrolling.WheelScrollLines, b.Scrolling.WheelScrollLines)
	add(PathSmoothScroll, a.Scrolling.SmoothScroll, b.Scrolling.SmoothScroll)
	add(PathLongDuration, a.Scrolling.LongDurationMS, b.Scrolling.LongDurationMS)
	return changes
}
