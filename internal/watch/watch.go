// Package watch re-runs a sync when content files under a root change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/semio-community/semio-community.github.io-sub001/internal/content"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 500 * time.Millisecond

var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
}

// Watcher calls OnChange after content files below Root change.
type Watcher struct {
	Root     string
	Debounce time.Duration
	OnChange func(ctx context.Context) error

	mu sync.Mutex // serializes OnChange
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if _, err := os.Stat(w.Root); err != nil {
		return fmt.Errorf("watch %s: %w", w.Root, err)
	}
	if err := watchDirs(watcher, w.Root); err != nil {
		return fmt.Errorf("watch %s: %w", w.Root, err)
	}
	log.Info().Str("root", w.Root).Msg("watching for content changes")

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldAddWatchDir(event) {
				log.Debug().Str("dir", event.Name).Msg("watching new directory")
				if err := watchDirs(watcher, event.Name); err != nil {
					log.Warn().Err(err).Str("dir", event.Name).Msg("could not watch new directory")
				}
				continue
			}
			if !isWatchEvent(event.Op) || !content.IsContentFile(event.Name) {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() { w.fire(ctx) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) fire(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.OnChange(ctx); err != nil {
		log.Error().Err(err).Msg("sync after change failed")
	}
}

func watchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("error walking watch root")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if _, skip := skipDirs[d.Name()]; skip {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func shouldAddWatchDir(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create == 0 {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	_, skip := skipDirs[info.Name()]
	return !skip
}
