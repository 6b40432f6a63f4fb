// internal/config/build.go
//
// Section assembly and the process-wide Config pointer.
//
/*
Context
--------
`Load()` asks the Store for the document (reading it on first use),
assembles every section through the typed lookups, validates the result,
and caches it in an `atomic.Pointer` for lock-free reads.  There is no
Reload: the document is read once per process.

Every kind mismatch is collected before failing, so one startup attempt
reports all broken keys at once.
*/
package config

import (
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

var current atomic.Pointer[Config]

// builder accumulates lookup failures while sections are assembled.
type builder struct {
	doc  *Document
	errs []error
}

func field[T any](b *builder, key string, def T, want Kind) T {
	out, err := Typed(b.doc, key, def, want)
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return out
}

// Build assembles and validates every section from doc.
func Build(doc *Document, env string) (*Config, error) {
	b := &builder{doc: doc}

	cfg := &Config{
		Env: env,
		App: App{
			Name:    doc.String("app.name", "Envconf"),
			Port:    field(b, "app.port", 5000, KindInteger),
			BaseURL: doc.String("app.base_url", "http://localhost:5000"),
			Locale:  doc.String("app.locale", "ru-RU"),
		},
		Global: Global{
			Prefix: doc.String("global.prefix", "api"),
		},
		Swagger: Swagger{
			Enable: field(b, "swagger.enable", true, KindBoolean),
			Protect: Protect{
				Enable:   field(b, "swagger.protect.enable", false, KindBoolean),
				Username: doc.String("swagger.protect.username", "admin"),
				Password: doc.String("swagger.protect.password", "default"),
			},
			AdditionalServers: field(b, "swagger.additional_servers", []Server{}, KindSequence),
		},
		Log: Log{
			Dir:        doc.String("log.dir", "logs"),
			Level:      doc.String("log.level", "info"),
			MaxSizeMB:  field(b, "log.max_size_mb", 50, KindInteger),
			MaxBackups: field(b, "log.max_backups", 7, KindInteger),
			MaxAgeDays: field(b, "log.max_age_days", 14, KindInteger),
			Compress:   field(b, "log.compress", true, KindBoolean),
		},
	}

	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	if err := validateStruct(cfg); err != nil {
		zap.S().Errorw("config validation failed", "file", doc.Path(), "err", err)
		return nil, fmt.Errorf("config: validate %s: %w", doc.Path(), err)
	}
	return cfg, nil
}

// Load reads the document through s, builds the sections, and caches the
// result for Get.
func Load(s *Store, env string) (*Config, error) {
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}

	cfg, err := Build(doc, env)
	if err != nil {
		return nil, err
	}

	current.Store(cfg)
	zap.S().Infow("config loaded",
		"file", doc.Path(),
		"env", cfg.Env,
		"port", cfg.App.Port,
		"prefix", cfg.Global.Prefix,
		"docs", cfg.DocsEnabled(),
	)
	return cfg, nil
}

// Get returns the Config stored by the last successful Load, or nil.
func Get() *Config { return current.Load() }
