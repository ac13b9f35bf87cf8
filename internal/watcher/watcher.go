// Package watcher watches application directories for changed markup
// documents and reports them in debounced batches.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/codegen"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/fsutil"
)

// DefaultDebounce is the quiet period after the last event before a batch
// is reported.
const DefaultDebounce = 300 * time.Millisecond

// Config holds watcher configuration options.
type Config struct {
	// Roots are watched recursively. Hidden directories are skipped.
	Roots []string

	// Extensions select the documents to report. Defaults to the markup
	// extensions.
	Extensions []string

	Debounce time.Duration

	// Generator, when set, drops documents whose content matches what it
	// last generated. Removed documents are forgotten.
	Generator *codegen.Generator

	// VirtualPath maps a physical path to the key Generator remembers it
	// under. Defaults to the physical path.
	VirtualPath func(path string) string

	Logger *log.Logger
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(roots ...string) Config {
	return Config{
		Roots:      roots,
		Extensions: config.DefaultExtensions(),
		Debounce:   DefaultDebounce,
	}
}

// Watcher monitors directories for document changes.
type Watcher struct {
	cfg       Config
	fsWatcher *fsnotify.Watcher
	onChange  chan []string
	done      chan struct{}
	stopOnce  sync.Once

	mu      sync.Mutex
	pending map[string]struct{}
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = config.DefaultExtensions()
	}
	if cfg.VirtualPath == nil {
		cfg.VirtualPath = func(path string) string { return path }
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		cfg:       cfg,
		fsWatcher: fsw,
		onChange:  make(chan []string, 1),
		done:      make(chan struct{}),
		pending:   make(map[string]struct{}),
	}, nil
}

// Start adds every directory under the roots and begins watching. The
// returned channel receives sorted batches of changed document paths and
// is closed when the watcher stops.
func (w *Watcher) Start() (<-chan []string, error) {
	for _, root := range w.cfg.Roots {
		if err := w.addTree(root); err != nil {
			return nil, err
		}
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

// addTree watches root and every non-hidden directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		return nil
	})
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	defer close(w.onChange)

	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.handle(event) {
				continue
			}
			timer.Reset(w.cfg.Debounce)

		case <-timer.C:
			if batch := w.flush(); len(batch) > 0 {
				select {
				case w.onChange <- batch:
				case <-w.done:
					return
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.cfg.Logger.Warn("watch error", logging.FieldError, err)

		case <-w.done:
			return
		}
	}
}

// handle records a relevant event and reports whether it was one. New
// directories are added to the watch list.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !isHidden(filepath.Base(event.Name)) {
				if err := w.addTree(event.Name); err != nil {
					w.cfg.Logger.Warn("cannot watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
				}
			}
			return false
		}
	}

	if !w.isDocument(event.Name) {
		return false
	}

	w.mu.Lock()
	w.pending[event.Name] = struct{}{}
	w.mu.Unlock()
	return true
}

// flush drains the pending set and drops documents that are gone or
// unchanged since they were last generated.
func (w *Watcher) flush() []string {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	clear(w.pending)
	w.mu.Unlock()

	slices.Sort(paths)

	batch := paths[:0]
	for _, path := range paths {
		if w.changed(path) {
			batch = append(batch, path)
		}
	}
	return batch
}

func (w *Watcher) changed(path string) bool {
	content, _, err := fsutil.ReadFile(context.Background(), path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && w.cfg.Generator != nil {
			w.cfg.Generator.Forget(w.cfg.VirtualPath(path))
		}
		w.cfg.Logger.Debug("skipping unreadable document", logging.FieldPath, path, logging.FieldError, err)
		return false
	}

	if w.cfg.Generator == nil {
		return true
	}
	text := fsutil.DecodeText(content).Text
	if !w.cfg.Generator.HasDocumentChanged(w.cfg.VirtualPath(path), text) {
		w.cfg.Logger.Debug("document unchanged", logging.FieldPath, path)
		return false
	}
	return true
}

func (w *Watcher) isDocument(path string) bool {
	base := filepath.Base(path)
	if isHidden(base) {
		return false
	}
	ext := filepath.Ext(base)
	for _, want := range w.cfg.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
