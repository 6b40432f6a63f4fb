// internal/server/router.go
//
// Root chi router.
//
// Context
// -------
// Everything the router needs comes from the loaded *config.Config; it
// never reads the config document itself.
//
//	GET /{prefix}          hello endpoint
//	GET /{prefix}/docs*    API docs (see internal/docs), when enabled
//	GET /metrics           Prometheus scrape endpoint
package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/envconf/internal/config"
	"github.com/yanizio/envconf/internal/docs"
	"github.com/yanizio/envconf/internal/middleware"
)

// Router builds the HTTP handler tree for cfg.  Routes describe themselves
// in reg before the API document is built.
func Router(cfg *config.Config, reg *docs.Registry) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer, middleware.Security)

	root := "/" + cfg.Global.Prefix

	reg.AddTag("App", "App controller")
	reg.AddRoute(docs.Route{Method: http.MethodGet, Path: root, Summary: "Hello", Tag: "App"})
	r.Get(root, hello)

	r.Handle("/metrics", promhttp.Handler())

	if cfg.DocsEnabled() {
		if err := docs.Mount(r, cfg, docs.Build(cfg, reg)); err != nil {
			return nil, err
		}
	}

	forceHTTPS := strings.HasPrefix(cfg.App.BaseURL, "https://")
	return middleware.ForceHTTPS(forceHTTPS, r), nil
}

func hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello World!"))
}
