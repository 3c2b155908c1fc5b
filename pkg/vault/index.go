package vault

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/canvasrand/pkg/observability"
)

// DefaultDebounce is how long the index waits for file events to settle
// before rescanning.
const DefaultDebounce = 250 * time.Millisecond

// Index holds the notes of one vault and keeps them current while
// [Index.Watch] runs. It is safe for concurrent use.
type Index struct {
	root     string
	scanner  *Scanner
	debounce time.Duration

	mu      sync.RWMutex
	notes   []Note
	updated time.Time
}

// NewIndex creates an empty index for root. Call Refresh or Watch to fill it.
func NewIndex(root string, scanner *Scanner) *Index {
	if scanner == nil {
		scanner = NewScanner(nil, nil)
	}
	return &Index{root: root, scanner: scanner, debounce: DefaultDebounce}
}

// SetDebounce changes the settle time used by Watch. It must be called
// before Watch.
func (ix *Index) SetDebounce(d time.Duration) {
	if d > 0 {
		ix.debounce = d
	}
}

// Root returns the vault directory.
func (ix *Index) Root() string { return ix.root }

// Refresh rescans the vault. On error the previous notes are kept.
func (ix *Index) Refresh(ctx context.Context) error {
	notes, err := ix.scanner.Scan(ctx, ix.root)
	if err != nil {
		return err
	}
	ix.mu.Lock()
	ix.notes = notes
	ix.updated = time.Now()
	ix.mu.Unlock()
	observability.Vault().OnIndexRefresh(ctx, ix.root, len(notes))
	return nil
}

// Notes returns a copy of the indexed notes, sorted by path.
func (ix *Index) Notes() []Note {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Note, len(ix.notes))
	copy(out, ix.notes)
	return out
}

// Len returns the number of indexed notes.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.notes)
}

// Updated returns when the index was last refreshed.
func (ix *Index) Updated() time.Time {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.updated
}

// Watch refreshes the index whenever files in the vault change, until ctx
// is cancelled. It returns nil on cancellation.
func (ix *Index) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(ix.root)
	if err != nil {
		return err
	}
	if err := ix.addTree(w, abs); err != nil {
		return err
	}
	// Anything written before the watches were in place.
	if err := ix.Refresh(ctx); err != nil {
		return err
	}

	log := ix.scanner.Logger
	log.Debug("watching vault", "root", abs)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ix.relevant(w, ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(ix.debounce)
			} else {
				timer.Reset(ix.debounce)
			}
			pending = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("vault watcher error", "err", err)

		case <-pending:
			pending = nil
			if err := ix.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Warn("vault refresh failed", "root", abs, "err", err)
				continue
			}
			log.Debug("vault index refreshed", "notes", ix.Len())
		}
	}
}

// relevant reports whether ev can change the note list. New directories
// are added to the watcher as a side effect.
func (ix *Index) relevant(w *fsnotify.Watcher, ev fsnotify.Event) bool {
	name := filepath.Base(ev.Name)
	if skipDir(name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := ix.addTree(w, ev.Name); err != nil {
				ix.scanner.Logger.Warn("cannot watch directory", "path", ev.Name, "err", err)
			}
			return true
		}
	}
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		// Could be a directory; the rescan sorts it out.
		return true
	}
	return IsMarkdown(name)
}

// addTree watches dir and every non-hidden directory below it.
func (ix *Index) addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && skipDir(d.Name()) {
			return fs.SkipDir
		}
		return w.Add(p)
	})
}
