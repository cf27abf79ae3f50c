package accounts

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/platinummonkey/feedgate/pkg/observability"
)

// Store hands out the current Directory and lets a reloader swap in a
// replacement atomically. Every authorization decision reads the
// directory through Current, so a swapped-in directory takes effect for
// the very next request — including delegated requests whose tokens were
// minted against the old allow-lists.
type Store struct {
	dir atomic.Pointer[Directory]
}

// NewStore creates a store serving d.
func NewStore(d *Directory) *Store {
	s := &Store{}
	s.dir.Store(d)
	return s
}

// Current returns the directory in effect right now.
func (s *Store) Current() *Directory {
	return s.dir.Load()
}

// Replace swaps in a new directory. In-flight requests keep the
// directory they already loaded; new requests observe the replacement.
func (s *Store) Replace(d *Directory) {
	s.dir.Store(d)
}

// Reloader watches the accounts file and replaces the store's directory
// when the file changes. A file that fails to load leaves the previous
// directory in place.
type Reloader struct {
	path    string
	store   *Store
	logger  *observability.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewReloader starts watching path. The parent directory is watched
// rather than the file itself so atomic rename-into-place saves are
// observed.
func NewReloader(path string, store *Store, logger *observability.Logger) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating accounts watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching accounts directory: %w", err)
	}

	r := &Reloader{
		path:    path,
		store:   store,
		logger:  logger,
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go r.run()
	return r, nil
}

// Close stops the reloader. The store keeps its last directory.
func (r *Reloader) Close() error {
	err := r.watcher.Close()
	<-r.done
	return err
}

func (r *Reloader) run() {
	defer close(r.done)
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(r.path) {
				continue
			}
			r.reload()
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.WithError(err).Warn("accounts watcher error")
		}
	}
}

func (r *Reloader) reload() {
	accts, err := LoadFile(r.path)
	if err != nil {
		r.logger.WithError(err).WithField("path", r.path).
			Error("accounts reload failed, keeping previous directory")
		return
	}
	r.store.Replace(NewDirectory(accts))
	r.logger.WithFields(map[string]interface{}{
		"path":     r.path,
		"accounts": len(accts),
	}).Info("accounts reloaded")
}
