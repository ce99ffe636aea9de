package settings

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a settings file whenever it changes on disk and applies
// the new values. Parse errors are logged and the last good values stay in
// effect.
type Watcher struct {
	settings *Settings
	path     string
	fsw      *fsnotify.Watcher
	post     func(func())
	log      zerolog.Logger

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithPost makes the watcher apply reloaded values through post, typically
// the GUI loop's Post, so observers run on the GUI goroutine.
func WithPost(post func(func())) WatchOption {
	return func(w *Watcher) {
		w.post = post
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(l zerolog.Logger) WatchOption {
	return func(w *Watcher) {
		w.log = l
	}
}

// Watch starts watching path. The file's directory is watched so that
// editors replacing the file by rename are noticed.
func Watch(s *Settings, path string, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		settings: s,
		path:     abs,
		fsw:      fsw,
		post:     func(f func()) { f() },
		log:      zerolog.Nop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Str("path", w.path).Msg("settings watcher error")
		}
	}
}

func (w *Watcher) reload() {
	v, err := Load(w.path)
	if err != nil {
		w.log.Warn().Err(err).Msg("keeping previous settings")
		return
	}
	w.post(func() {
		if err := w.settings.Apply(v, w.path); err != nil {
			w.log.Warn().Err(err).Str("path", w.path).Msg("rejected settings")
			return
		}
		w.log.Debug().Str("path", w.path).Msg("settings reloaded")
	})
}
