// internal/config/loader.go
//
// Configuration document loader.
//
/*
Context
--------
`Open()` builds one immutable `Document` from up to two layers (highest
precedence last):

  1. The YAML file located by internal/envpath.
  2. Optional environment overrides, enabled with `WithEnvOverlay`, where
     `__` maps to "." (e.g., `CFG_APP__PORT → app.port`).

Both layers are read exactly once.  Lookups walk the nested tree as
written; the flattened koanf copy only backs `Unmarshal`.  The document is never re-read, and
there is no reload path; `Store` guarantees a single `Open()` per process.

Instrumentation
---------------
  • DEBUG span - YAML read, env overlay.
  • ERROR span - file read, YAML parse, env overlay failures.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed (bootstrap console).

Notes
-----
  • Overlay values are decoded as YAML scalars, so `CFG_APP__PORT=8080`
    yields an integer and `CFG_SWAGGER__ENABLE=false` a boolean.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/envconf/internal/metrics"
)

/*──────────────────────────── options ─────────────────────────────────────*/

// Option tunes Open.
type Option func(*options)

type options struct {
	envPrefix string
}

// WithEnvOverlay merges environment variables starting with prefix over the
// file contents.  An empty prefix disables the overlay.
func WithEnvOverlay(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// bytesProvider hands koanf a file that has already been read, so both
// views of the document come from the same bytes.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("config: bytesProvider does not support Read")
}

// Open reads and parses the YAML file at path.
func Open(path string, opts ...Option) (*Document, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	raw, err := file.Provider(path).ReadBytes()
	if err != nil {
		zap.S().Errorw("config file read failed", "file", path, "err", err)
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	tree, err := yaml.Parser().Unmarshal(raw)
	if err != nil {
		zap.S().Errorw("config yaml parse failed", "file", path, "err", err)
		return nil, &ParseError{Path: path, Err: err}
	}
	root, _ := clone(tree).(map[string]any)
	if root == nil {
		root = map[string]any{}
	}

	k := koanf.New(".")
	if err := k.Load(bytesProvider(raw), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml parse failed", "file", path, "err", err)
		return nil, &ParseError{Path: path, Err: err}
	}
	zap.S().Debugw("config yaml loaded", "file", path)

	if o.envPrefix != "" {
		prefix := o.envPrefix
		ek := koanf.New(".")
		if err := ek.Load(env.ProviderWithValue(prefix, ".", func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, prefix)
			return strings.ToLower(strings.ReplaceAll(key, "__", ".")), overlayValue(value)
		}), nil); err != nil {
			zap.S().Errorw("config env overlay failed", "prefix", prefix, "err", err)
			return nil, fmt.Errorf("config: env overlay %s: %w", prefix, err)
		}
		if err := k.Merge(ek); err != nil {
			return nil, fmt.Errorf("config: env overlay %s: %w", prefix, err)
		}
		for key, v := range ek.All() {
			set(root, key, v)
		}
		zap.S().Debugw("config env overlay applied", "prefix", prefix, "keys", len(ek.Keys()))
	}

	metrics.ConfigDocumentLoadsTotal.Inc()
	return &Document{root: root, k: k, path: path}, nil
}
