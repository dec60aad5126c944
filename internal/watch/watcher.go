// SPDX-License-Identifier: MPL-2.0

// Package watch regenerates output when an input file changes.
//
// The directory containing the input is watched rather than the file itself,
// so editors that save by writing a temp file and renaming it over the
// original are still observed. Bursts of events are coalesced with a
// debounce timer and the callback runs once per burst.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period used when Config.Debounce is not positive.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores are base-name patterns that never trigger a callback:
// editor swap/backup files and the temp files of atomic writes.
var defaultIgnores = []string{
	"*.swp",
	"*.swo",
	"*~",
	".*.tmp",
	".DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Path is the file whose changes trigger OnChange.
		Path string

		// Extra are additional doublestar patterns, matched against base
		// names in the same directory, that also trigger OnChange.
		Extra []string

		// Debounce is the quiet period after the last event before OnChange
		// fires. Zero or negative values fall back to defaultDebounce.
		Debounce time.Duration

		// OnChange is called once per burst of changes. Errors are logged and
		// watching continues.
		OnChange func(ctx context.Context) error

		// Logger receives watcher diagnostics. nil uses log.Default().
		Logger *log.Logger
	}

	// Watcher monitors a file and fires a debounced callback when it changes.
	// Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		logger   *log.Logger
		dir      string
		patterns []string
		debounce time.Duration
		started  atomic.Bool
	}
)

// New validates cfg and starts watching the directory of cfg.Path.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch: no path to watch")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve path: %w", err)
	}

	patterns := append([]string{escapeMeta(filepath.Base(abs))}, cfg.Extra...)
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid pattern %q", pat)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("watch: add directory %q: %w", dir, err)
	}

	return &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		logger:   logger,
		dir:      dir,
		patterns: patterns,
		debounce: debounce,
	}, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		// Skip-if-busy: reschedule instead of running callbacks concurrently.
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer running.Store(false)

		if w.cfg.OnChange == nil {
			return
		}
		if err := w.cfg.OnChange(ctx); err != nil {
			w.logger.Error("regeneration failed", "err", err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify", "err", err)
		}
	}()

	w.logger.Debug("watching", "dir", w.dir, "patterns", w.patterns)

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if !w.matches(evt.Name) || (evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write)) {
				continue
			}
			w.logger.Debug("change detected", "path", evt.Name, "op", evt.Op.String())

			mu.Lock()
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// matches reports whether an event path is a watched file in the watched directory.
func (w *Watcher) matches(path string) bool {
	if filepath.Dir(path) != w.dir {
		return false
	}
	base := filepath.Base(path)
	for _, pat := range defaultIgnores {
		if ok, _ := doublestar.Match(pat, base); ok {
			return false
		}
	}
	for _, pat := range w.patterns {
		if ok, _ := doublestar.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// escapeMeta quotes glob metacharacters so a file name matches only itself.
func escapeMeta(name string) string {
	var out []rune
	for _, r := range name {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
