// Package watch rebuilds documentation when the source tree changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config controls how filesystem event bursts are coalesced.
type Config struct {
	// QuietWindow is how long the tree must stay silent before a rebuild.
	QuietWindow time.Duration
	// MaxDelay caps how long a steady stream of events can postpone a
	// rebuild.
	MaxDelay time.Duration
}

// DefaultConfig is tuned for an interactive edit-rebuild loop.
func DefaultConfig() Config {
	return Config{QuietWindow: 500 * time.Millisecond, MaxDelay: 5 * time.Second}
}

// Watcher drives debounced rebuilds from fsnotify events under the project
// root. Only src/ and the root Cargo.toml are watched; target/ holds the
// build output and would self-trigger, so it is never added.
type Watcher struct {
	root string
	cfg  Config
	fsw  *fsnotify.Watcher
}

// New creates a watcher over <root>/src and the root directory (for
// Cargo.toml edits). Zero config fields fall back to DefaultConfig.
func New(root string, cfg Config) (*Watcher, error) {
	def := DefaultConfig()
	if cfg.QuietWindow <= 0 {
		cfg.QuietWindow = def.QuietWindow
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = def.MaxDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{root: root, cfg: cfg, fsw: fsw}

	if err := w.addTree(filepath.Join(root, "src")); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch source tree: %w", err)
	}
	// Root is watched non-recursively so Cargo.toml edits are seen;
	// relevant() filters out everything else at that level.
	if err := fsw.Add(root); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch project root: %w", err)
	}
	return w, nil
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// addTree registers dir and all non-ignored subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && ignoreDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// ignoreDir reports whether a directory never participates in watching.
func ignoreDir(name string) bool {
	return name == "target" || strings.HasPrefix(name, ".")
}

// relevant reports whether an event should contribute to a rebuild:
// anything under src/, or the root Cargo.toml.
func (w *Watcher) relevant(path string) bool {
	if path == filepath.Join(w.root, "Cargo.toml") {
		return true
	}
	rel, err := filepath.Rel(filepath.Join(w.root, "src"), path)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if ignoreDir(part) {
			return false
		}
	}
	return true
}

// Run blocks, invoking build after each debounced event burst, until ctx
// is cancelled. Build failures are logged and the loop keeps watching.
func (w *Watcher) Run(ctx context.Context, build func(context.Context) error) error {
	quietTimer := newStoppedTimer()
	maxTimer := newStoppedTimer()
	var quietC, maxC <-chan time.Time
	pending := false

	fire := func() {
		stopTimer(quietTimer)
		stopTimer(maxTimer)
		quietC, maxC = nil, nil
		pending = false
		if err := build(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Error("Docs rebuild failed", "error", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watch loop stopped")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						slog.Warn("Failed to watch new directory", "path", ev.Name, "error", err)
					}
				}
			}
			slog.Debug("Source change detected", "path", ev.Name, "op", ev.Op.String())
			resetTimer(quietTimer, w.cfg.QuietWindow)
			quietC = quietTimer.C
			if !pending {
				pending = true
				resetTimer(maxTimer, w.cfg.MaxDelay)
				maxC = maxTimer.C
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)

		case <-quietC:
			fire()

		case <-maxC:
			fire()
		}
	}
}

func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	stopTimer(t)
	return t
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

func resetTimer(t *time.Timer, after time.Duration) {
	stopTimer(t)
	t.Reset(after)
}
