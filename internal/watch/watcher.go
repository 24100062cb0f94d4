// Package watch rebuilds contract files when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"ddd/internal/project"
)

// Op is the kind of change delivered to subscribers.
type Op string

const (
	OpBuild  Op = "build"
	OpRemove Op = "remove"
)

// Event reports one processed change.
type Event struct {
	Path string
	Op   Op
	Err  error
}

// Handler rebuilds a single source. It is never called concurrently for the
// same path.
type Handler func(ctx context.Context, path string) error

// Config configures a Watcher.
type Config struct {
	Root     string
	Include  []string
	Exclude  []string
	Debounce time.Duration
	Logger   *zap.Logger
	// OnRemove is called after a watched source disappears; may be nil.
	OnRemove func(path string)
}

// Watcher collects file system events, debounces them and hands changed
// sources to the Handler. A rebuild only happens when the content hash
// differs from the last one seen; hashes live for the process lifetime.
type Watcher struct {
	cfg     Config
	handler Handler
	fsw     *fsnotify.Watcher
	log     *zap.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.Mutex
	hashes map[string]project.Digest

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	inflight sync.WaitGroup
	events   chan Event
}

// New creates a watcher; call Start to begin receiving events.
func New(cfg Config, handler Handler) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: nil handler")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	cfg.Root = root
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	return &Watcher{
		cfg:     cfg,
		handler: handler,
		fsw:     fsw,
		log:     cfg.Logger,
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string]project.Digest),
		locks:   make(map[string]*sync.Mutex),
		events:  make(chan Event, 64),
	}, nil
}

// Events returns processed changes. Events are dropped when nobody reads.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Prime records the current content of paths so that an event which leaves
// a file unchanged does not trigger a rebuild.
func (w *Watcher) Prime(paths ...string) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		w.setHash(path, project.HashBytes(data))
	}
}

// Run watches until ctx is cancelled, then waits for running rebuilds and
// releases the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	var ticker *time.Ticker
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
		w.inflight.Wait()
		close(w.events)
		_ = w.fsw.Close()
	}()

	if err := w.addRecursive(w.cfg.Root); err != nil {
		return err
	}
	w.log.Info("Watching for changes",
		zap.String("root", w.cfg.Root),
		zap.Duration("debounce", w.cfg.Debounce))

	ticker = time.NewTicker(w.cfg.Debounce)
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(evt)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("Watcher error", zap.Error(err))
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func skipDir(path, root string) bool {
	if path == root {
		return false
	}
	base := filepath.Base(path)
	return base == "vendor" || strings.HasPrefix(base, ".")
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(path, w.cfg.Root) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Warn("Unable to watch directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		w.log.Debug("Watching directory", zap.String("path", path))
		return nil
	})
}

func (w *Watcher) handleFSEvent(evt fsnotify.Event) {
	path := evt.Name
	if evt.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !skipDir(path, w.cfg.Root) {
				if err := w.addRecursive(path); err != nil {
					w.log.Warn("Unable to watch new directory", zap.String("path", path), zap.Error(err))
				}
			}
			return
		}
	}
	if !w.relevant(path) {
		return
	}
	w.pendingMu.Lock()
	w.pending[path] |= evt.Op
	w.pendingMu.Unlock()
	w.log.Debug("Change detected", zap.String("path", path), zap.Stringer("op", evt.Op))
}

func (w *Watcher) relevant(path string) bool {
	ok, err := project.Matches(w.cfg.Root, path, w.cfg.Include, w.cfg.Exclude)
	if err != nil {
		w.log.Debug("Unable to match path", zap.String("path", path), zap.Error(err))
		return false
	}
	return ok
}

// flush hands the debounced batch to background goroutines so that slow
// rebuilds do not stall event intake.
func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range batch {
		w.inflight.Add(1)
		go func() {
			defer w.inflight.Done()
			w.process(ctx, path, op)
		}()
	}
}

func (w *Watcher) lock(path string) *sync.Mutex {
	w.locksMu.Lock()
	defer w.locksMu.Unlock()
	mu, ok := w.locks[path]
	if !ok {
		mu = &sync.Mutex{}
		w.locks[path] = mu
	}
	return mu
}

// process rebuilds path if its content changed. Rename and remove are both
// treated as removal; a subsequent create arrives as its own event.
func (w *Watcher) process(ctx context.Context, path string, op fsnotify.Op) {
	mu := w.lock(path)
	mu.Lock()
	defer mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			w.forget(path)
			return
		}
		w.send(Event{Path: path, Op: OpBuild, Err: err})
		return
	}

	sum := project.HashBytes(data)
	if prev, ok := w.hash(path); ok && prev == sum {
		w.log.Debug("Content unchanged, skipping", zap.String("path", path))
		return
	}
	w.setHash(path, sum)

	err = w.handler(ctx, path)
	if err != nil {
		w.log.Warn("Rebuild failed", zap.String("path", path), zap.Error(err))
	} else {
		w.log.Info("Rebuilt", zap.String("path", path))
	}
	w.send(Event{Path: path, Op: OpBuild, Err: err})
}

func (w *Watcher) forget(path string) {
	w.hashMu.Lock()
	_, known := w.hashes[path]
	delete(w.hashes, path)
	w.hashMu.Unlock()
	if !known {
		return
	}
	if w.cfg.OnRemove != nil {
		w.cfg.OnRemove(path)
	}
	w.log.Info("Source removed", zap.String("path", path))
	w.send(Event{Path: path, Op: OpRemove})
}

func (w *Watcher) hash(path string) (project.Digest, bool) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	d, ok := w.hashes[path]
	return d, ok
}

func (w *Watcher) setHash(path string, d project.Digest) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = d
}

func (w *Watcher) send(evt Event) {
	select {
	case w.events <- evt:
	default:
		w.log.Warn("Event channel full, dropping event", zap.String("path", evt.Path))
	}
}
