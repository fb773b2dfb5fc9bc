// Package watcher re-analyzes source files as they change on disk.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/codesense/codesense/internal/analyzer"
	"github.com/codesense/codesense/internal/semantic"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceWindow = 300 * time.Millisecond

// Watcher drives the analyzer from file-system change events. Events for
// the same path within the debounce window collapse into one analysis run.
type Watcher struct {
	root     string
	service  *analyzer.Service
	log      *zap.Logger
	mu       sync.Mutex
	pending  map[string]*time.Timer
	findings func(path string, count int) // test hook, optional
}

func New(root string, service *analyzer.Service, log *zap.Logger) *Watcher {
	return &Watcher{
		root:    root,
		service: service,
		log:     log,
		pending: make(map[string]*time.Timer),
	}
}

// Run watches the root tree until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	if err := addDirs(fw, w.root); err != nil {
		return err
	}
	w.log.Info("watching for changes", zap.String("root", w.root))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if event.Op&fsnotify.Create != 0 && !skippedDir(filepath.Base(event.Name)) {
			_ = fw.Add(event.Name)
		}
		return
	}
	if !semantic.IsSourceFile(event.Name) {
		return
	}
	w.debounce(event.Name)
}

func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(debounceWindow, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.analyze(path)
	})
}

func (w *Watcher) analyze(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.log.Warn("read changed file", zap.String("file", path), zap.Error(err))
		return
	}
	findings, err := w.service.AnalyzeFile(string(data), path)
	if err != nil {
		w.log.Warn("analyze changed file", zap.String("file", path), zap.Error(err))
		return
	}
	for _, f := range findings {
		w.log.Info("finding",
			zap.String("severity", string(f.Severity)),
			zap.String("rule", f.Rule),
			zap.String("file", f.File),
			zap.Int("line", f.Line),
			zap.String("message", f.Message),
		)
	}
	if w.findings != nil {
		w.findings(path, len(findings))
	}
}

func skippedDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules" ||
		name == "dist" || name == "build" || name == "vendor"
}

func addDirs(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skippedDir(d.Name()) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
