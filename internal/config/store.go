// internal/config/store.go
//
// Process-wide, load-once holder for the configuration Document.
//
// Context
// -------
// The document moves from "unloaded" to "loaded" exactly once, on the
// first call to Document().  Concurrent first callers block on the same
// sync.Once until the load finishes, then every caller shares the result.
// A failed load is cached too: a missing or broken file is startup-fatal,
// so there is nothing to retry.
package config

import (
	"sync"

	"github.com/yanizio/envconf/internal/envpath"
)

// Locator returns the path of the file to load.
type Locator func() (string, error)

// FileLocator always returns path.
func FileLocator(path string) Locator {
	return func() (string, error) { return path, nil }
}

// ResolvedLocator searches baseDir for the first file matching pattern.
func ResolvedLocator(baseDir string, pattern []envpath.Segment, ignoreFallbackWarning bool) Locator {
	return func() (string, error) {
		res, err := envpath.Resolve(baseDir, pattern, ignoreFallbackWarning)
		if err != nil {
			return "", err
		}
		return res.Path, nil
	}
}

// Store lazily loads one Document.  The zero value is not usable; call
// NewStore.
type Store struct {
	locate Locator
	opts   []Option

	once sync.Once
	doc  *Document
	err  error
}

// NewStore returns a Store that loads from locate on first use.
func NewStore(locate Locator, opts ...Option) *Store {
	return &Store{locate: locate, opts: opts}
}

// Document returns the cached document, loading it on the first call.
func (s *Store) Document() (*Document, error) {
	s.once.Do(func() {
		path, err := s.locate()
		if err != nil {
			s.err = err
			return
		}
		s.doc, s.err = Open(path, s.opts...)
	})
	return s.doc, s.err
}
