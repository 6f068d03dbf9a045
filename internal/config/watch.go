package config

import (
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// ReloadWarnFunc receives a human-readable diagnostic when a hot-reload
// parse attempt fails. It mirrors the shape of policy.WarnFunc without
// this package importing internal/policy (config is a leaf dependency of
// policy, not the reverse).
type ReloadWarnFunc func(message string)

// Watcher hot-reloads cfg from path whenever the file changes on disk,
// using fsnotify — matching the teacher's reach for fsnotify as the
// ecosystem choice for file-change notification.
type Watcher struct {
	path    string
	cfg     *Config
	warn    ReloadWarnFunc
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher starts watching path for changes. Call Close to stop.
func NewWatcher(path string, cfg *Config, warn ReloadWarnFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config path: %w", err)
	}

	w := &Watcher{path: path, cfg: cfg, warn: warn, watcher: fw, done: make(chan struct{})}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// reload re-parses the config file. A parse failure is a non-fatal
// diagnostic — the previous, last-good config stays active
// (SPEC_FULL.md §6.1 / §7).
func (w *Watcher) reload() {
	fresh, err := Load(w.path)
	if err != nil {
		if w.warn != nil {
			w.warn(fmt.Sprintf("config: reload of %s failed, retaining previous configuration: %v", w.path, err))
		}
		return
	}
	w.cfg.ReplaceFrom(fresh)
	slog.Info("config reloaded", "path", w.path)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
