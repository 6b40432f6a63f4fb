package config

import (
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/envconf/internal/envpath"
)

func TestStore_LoadsOnce(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", "app:\n  port: 7000\n")

	var calls atomic.Int32
	s := NewStore(func() (string, error) {
		calls.Add(1)
		return p, nil
	})

	doc, err := s.Document()
	require.NoError(t, err)
	port, err := doc.Int("app.port", 0)
	require.NoError(t, err)
	assert.Equal(t, 7000, port)

	// Rewrite the file; the cached document must not notice.
	require.NoError(t, os.WriteFile(p, []byte("app:\n  port: 9999\n"), 0o644))

	again, err := s.Document()
	require.NoError(t, err)
	assert.Same(t, doc, again)
	port, err = again.Int("app.port", 0)
	require.NoError(t, err)
	assert.Equal(t, 7000, port)
	assert.EqualValues(t, 1, calls.Load())
}

func TestStore_ConcurrentFirstAccess(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", "k: v\n")

	var calls atomic.Int32
	s := NewStore(func() (string, error) {
		calls.Add(1)
		return p, nil
	})

	var wg sync.WaitGroup
	docs := make([]*Document, 32)
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := s.Document()
			if err == nil {
				docs[i] = d
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, d := range docs {
		require.NotNil(t, d)
		assert.Same(t, docs[0], d)
		assert.Equal(t, "v", d.String("k", ""))
	}
}

func TestStore_ErrorIsCached(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	s := NewStore(func() (string, error) {
		calls.Add(1)
		return "", boom
	})

	_, err := s.Document()
	assert.ErrorIs(t, err, boom)
	_, err = s.Document()
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, calls.Load())
}

func TestResolvedLocator(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "config.yaml", "global:\n  prefix: v1\n")
	pattern := envpath.MustParsePattern("config[.{env}].yaml")

	t.Setenv(envpath.EnvVar, "development")
	doc, err := NewStore(ResolvedLocator(dir, pattern, false)).Document()
	require.NoError(t, err)
	assert.Equal(t, want, doc.Path())
	assert.Equal(t, "v1", doc.String("global.prefix", "api"))

	_, err = NewStore(ResolvedLocator(t.TempDir(), pattern, false)).Document()
	assert.True(t, errors.Is(err, envpath.ErrNotFound))
}

func TestFileLocator(t *testing.T) {
	p := writeFile(t, t.TempDir(), "c.yaml", "x: 1\n")
	doc, err := NewStore(FileLocator(p)).Document()
	require.NoError(t, err)
	assert.Equal(t, p, doc.Path())
}
