package vault

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/canvasrand/pkg/cache"
	"github.com/matzehuels/canvasrand/pkg/errors"
	"github.com/matzehuels/canvasrand/pkg/observability"
)

// DefaultWorkers is the number of notes whose front matter is read in
// parallel.
const DefaultWorkers = 8

// Scanner walks vaults and collects notes. The zero value is not usable;
// create one with [NewScanner].
type Scanner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Workers int
}

// NewScanner creates a scanner. A nil cache disables caching and a nil
// logger discards output.
func NewScanner(c cache.Cache, logger *log.Logger) *Scanner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Scanner{
		Cache:   c,
		Keyer:   cache.NewDefaultKeyer(),
		Logger:  logger,
		Workers: DefaultWorkers,
	}
}

// skipDir reports whether a directory should not be descended into.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") && name != "."
}

// Scan returns every markdown note under root, sorted by path.
func (s *Scanner) Scan(ctx context.Context, root string) ([]Note, error) {
	start := time.Now()
	notes, err := s.scan(ctx, root)
	observability.Vault().OnScanComplete(ctx, root, len(notes), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("scanned vault", "root", root, "notes", len(notes), "duration", time.Since(start).Round(time.Millisecond))
	return notes, nil
}

func (s *Scanner) scan(ctx context.Context, root string) ([]Note, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve vault %s", root)
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "vault not found: %s", root)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "vault is not a directory: %s", root)
	}

	var notes []Note
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			s.Logger.Warn("skipping unreadable path", "path", p, "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if p != abs && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !IsMarkdown(d.Name()) || !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			s.Logger.Warn("skipping note", "path", p, "err", err)
			return nil
		}
		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		notes = append(notes, Note{
			Path:    rel,
			Title:   defaultTitle(rel),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.loadMeta(ctx, abs, notes); err != nil {
		return nil, err
	}

	slices.SortFunc(notes, func(a, b Note) int { return strings.Compare(a.Path, b.Path) })
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

// loadMeta fills title, tags and aliases for each note, in parallel, going
// through the cache.
func (s *Scanner) loadMeta(ctx context.Context, root string, notes []Note) error {
	keyer := cache.NewScopedKeyer(s.Keyer, cache.VaultScope(root))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Workers, 1))
	for i := range notes {
		n := &notes[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m := s.noteMeta(ctx, root, keyer, n)
			if m.Title != "" {
				n.Title = m.Title
			}
			n.Tags = m.Tags
			n.Aliases = m.Aliases
			return nil
		})
	}
	return g.Wait()
}

// noteMeta returns cached metadata for n or reads and caches it. Read and
// parse failures are logged and yield empty metadata.
func (s *Scanner) noteMeta(ctx context.Context, root string, keyer cache.Keyer, n *Note) meta {
	key := keyer.NoteKey(n.Path, n.Size, n.ModTime)

	if data, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
		var m meta
		if json.Unmarshal(data, &m) == nil {
			observability.Cache().OnCacheHit(ctx, "note")
			return m
		}
	}
	observability.Cache().OnCacheMiss(ctx, "note")

	m, err := readMeta(filepath.Join(root, filepath.FromSlash(n.Path)))
	if err != nil {
		s.Logger.Warn("ignoring front matter", "note", n.Path, "err", err)
		return meta{}
	}

	if data, err := json.Marshal(m); err == nil {
		if err := s.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			s.Logger.Debug("cache write failed", "note", n.Path, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "note", len(data))
		}
	}
	return m
}

// Scan is a convenience for scanning root without a cache or logger.
func Scan(ctx context.Context, root string) ([]Note, error) {
	return NewScanner(nil, nil).Scan(ctx, root)
}
