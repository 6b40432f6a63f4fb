// internal/docs/handlers.go
//
// HTTP routes for the API document.
//
// Routes (prefix from `global.prefix`):
//
//	GET /{prefix}/docs        Swagger UI page
//	GET /{prefix}/docs-json   document as JSON
//	GET /{prefix}/docs-yaml   document as YAML
//
// When `swagger.protect.enable` is set, all three sit behind HTTP basic
// auth with the configured credentials.
package docs

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yanizio/envconf/internal/config"
)

// Base returns the docs path prefix for cfg, e.g. "/api/docs".
func Base(cfg *config.Config) string {
	if cfg.Global.Prefix == "" {
		return "/docs"
	}
	return "/" + cfg.Global.Prefix + "/docs"
}

// Mount registers the docs routes on r.
func Mount(r chi.Router, cfg *config.Config, doc Document) error {
	jsonBody, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	yamlBody, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	base := Base(cfg)
	r.Group(func(r chi.Router) {
		if cfg.Swagger.Protect.Enable {
			r.Use(chimw.BasicAuth("docs", map[string]string{
				cfg.Swagger.Protect.Username: cfg.Swagger.Protect.Password,
			}))
		}
		r.Get(base, serveUI(base+"-json"))
		r.Get(base+"-json", serveBytes("application/json", jsonBody))
		r.Get(base+"-yaml", serveBytes("application/x-yaml", yamlBody))
	})

	logMounted(cfg, base)
	return nil
}

func logMounted(cfg *config.Config, base string) {
	for _, p := range []string{base, base + "-json", base + "-yaml"} {
		zap.S().Infow("api docs mounted", "url", cfg.App.BaseURL+p)
	}
	switch {
	case cfg.Swagger.Protect.Enable:
		zap.S().Infow("api docs protected via basic auth")
	case cfg.Env == "production":
		zap.S().Warnw("api docs are not protected in production", "env", cfg.Env)
	default:
		zap.S().Warnw("api docs are not protected")
	}
}

func serveBytes(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

var uiTmpl = template.Must(template.New("swagger").Parse(uiTemplate))

func serveUI(specURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Security-Policy", uiCSP)
		if err := uiTmpl.Execute(w, map[string]string{"SpecURL": specURL, "Title": Title}); err != nil {
			zap.S().Errorw("docs ui render failed", "err", err)
		}
	}
}

const uiCSP = "default-src 'self'; script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"style-src 'self' https://cdn.jsdelivr.net; img-src 'self' data:; object-src 'none'"

const uiTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" type="text/css" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5.10.5/swagger-ui-bundle.js" charset="UTF-8"></script>
<script>
window.onload = function() {
  window.ui = SwaggerUIBundle({
    url: "{{.SpecURL}}",
    dom_id: '#swagger-ui',
    docExpansion: 'none',
    filter: true,
    showRequestDuration: true,
  });
};
</script>
</body>
</html>`
