package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, 3, s.WheelScrollLines())
	assert.True(t, s.SmoothScroll())
	assert.Equal(t, 250*time.Millisecond, s.LongDuration())
	assert.Equal(t, 1.0, s.DevicePixelRatio())
	assert.Equal(t, "wayland", s.PlatformName())
	assert.Equal(t, "en_US", s.Language())
}

func TestApplyNotifiesChangedPaths(t *testing.T) {
	s := New()
	var all, scrolling []Change
	s.Subscribe("", func(c Change) { all = append(all, c) })
	sub := s.Subscribe(PathScrolling, func(c Change) { scrolling = append(scrolling, c) })

	v := s.Values()
	v.Scrolling.WheelScrollLines = 5
	v.Platform.Language = "de_DE"
	require.NoError(t, s.Apply(v, "test"))

	require.Len(t, all, 2)
	require.Len(t, scrolling, 1)
	assert.Equal(t, PathWheelScrollLines, scrolling[0].Path)
	assert.Equal(t, 3, scrolling[0].Old)
	assert.Equal(t, 5, scrolling[0].New)
	assert.Equal(t, "test", scrolling[0].Source)

	sub.Unsubscribe()
	sub.Unsubscribe()
	require.NoError(t, s.SetSmoothScroll(false))
	assert.Len(t, scrolling, 1)
	assert.Len(t, all, 3)
	assert.Equal(t, SourceAPI, all[2].Source)
	assert.Equal(t, 1, s.Subscribers())
}

func TestApplyWithoutChangeIsSilent(t *testing.T) {
	s := New()
	calls := 0
	s.Subscribe("", func(Change) { calls++ })
	require.NoError(t, s.Apply(s.Values(), "same"))
	require.NoError(t, s.SetWheelScrollLines(3))
	assert.Zero(t, calls)
}

func TestSettersValidate(t *testing.T) {
	s := New()
	err := s.SetWheelScrollLines(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, 3, s.WheelScrollLines())

	require.Error(t, s.SetDevicePixelRatio(-2))
	require.Error(t, s.SetLongDuration(-time.Second))

	require.NoError(t, s.SetLongDuration(400*time.Millisecond))
	require.NoError(t, s.SetDevicePixelRatio(1.5))
	require.NoError(t, s.SetPlatformName("xcb"))
	require.NoError(t, s.SetLanguage("fr_FR"))
	assert.Equal(t, 400*time.Millisecond, s.LongDuration())
	assert.Equal(t, 1.5, s.DevicePixelRatio())
	assert.Equal(t, "xcb", s.PlatformName())
	assert.Equal(t, "fr_FR", s.Language())
}

func TestMatchPath(t *testing.T) {
	assert.True(t, matchPath("", "a.b"))
	assert.True(t, matchPath("a", "a.b"))
	assert.True(t, matchPath("a.b", "a.b"))
	assert.False(t, matchPath("a", "ab.c"))
	assert.False(t, matchPath("a.b", "a"))
}

func TestDecodeTOML(t *testing.T) {
	v, err := Decode(strings.NewReader(`
[platform]
name = "xcb"
device_pixel_ratio = 2.0

[scrolling]
wheel_scroll_lines = 1
smooth_scroll = false
`), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "xcb", v.Platform.Name)
	assert.Equal(t, 2.0, v.Platform.DevicePixelRatio)
	assert.Equal(t, "en_US", v.Platform.Language)
	assert.Equal(t, 1, v.Scrolling.WheelScrollLines)
	assert.False(t, v.Scrolling.SmoothScroll)
	assert.Equal(t, 250, v.Scrolling.LongDurationMS)
}

func TestDecodeYAML(t *testing.T) {
	v, err := Decode(strings.NewReader("scrolling:\n  long_duration_ms: 100\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 100, v.Scrolling.LongDurationMS)
	assert.True(t, v.Scrolling.SmoothScroll)

	v, err = Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), v)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode(strings.NewReader("[scrolling]\nbogus = 1\n"), FormatTOML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("scrolling:\n  wheel_scroll_lines: -3\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "settings.ini"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("platform:\n  name: android\n"), 0o600))
	s := New()
	require.NoError(t, LoadInto(s, path))
	assert.Equal(t, "android", s.PlatformName())
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scrolling]\nwheel_scroll_lines = 3\n"), 0o600))

	s := New()
	changed := make(chan Change, 8)
	s.Subscribe(PathWheelScrollLines, func(c Change) { changed <- c })

	w, err := Watch(s, path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[scrolling]\nwheel_scroll_lines = 7\n"), 0o600))

	select {
	case c := <-changed:
		assert.Equal(t, 7, c.New)
	case <-time.After(5 * time.Second):
		t.Fatal("settings were not reloaded")
	}

	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 7, s.WheelScrollLines())

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
