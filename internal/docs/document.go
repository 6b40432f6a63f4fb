// internal/docs/document.go
//
// Minimal OpenAPI 3 document assembled from config and the Registry.
//
// Server list order: `app.base_url`, the local listener, then every entry
// of `swagger.additional_servers`.
package docs

import (
	"fmt"
	"strings"

	"github.com/yanizio/envconf/internal/config"
)

const (
	Title       = "REST API"
	Description = "Docs"
	Version     = "1.0.0"
)

// Document is the subset of OpenAPI 3.0 we emit.
type Document struct {
	OpenAPI string                          `json:"openapi"           yaml:"openapi"`
	Info    Info                            `json:"info"              yaml:"info"`
	Servers []config.Server                 `json:"servers,omitempty" yaml:"servers,omitempty"`
	Tags    []Tag                           `json:"tags,omitempty"    yaml:"tags,omitempty"`
	Paths   map[string]map[string]Operation `json:"paths"             yaml:"paths"`
}

type Info struct {
	Title       string `json:"title"       yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version"     yaml:"version"`
}

type Operation struct {
	Summary   string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags      []string            `json:"tags,omitempty"    yaml:"tags,omitempty"`
	Responses map[string]Response `json:"responses"         yaml:"responses"`
}

type Response struct {
	Description string `json:"description" yaml:"description"`
}

// Build renders the document for cfg.
func Build(cfg *config.Config, reg *Registry) Document {
	servers := []config.Server{
		{URL: cfg.App.BaseURL, Description: "Current server"},
		{URL: fmt.Sprintf("http://localhost:%d", cfg.App.Port), Description: "Local server"},
	}
	servers = append(servers, cfg.Swagger.AdditionalServers...)

	paths := make(map[string]map[string]Operation)
	for _, rt := range reg.Routes() {
		ops, ok := paths[rt.Path]
		if !ok {
			ops = make(map[string]Operation)
			paths[rt.Path] = ops
		}
		op := Operation{
			Summary:   rt.Summary,
			Responses: map[string]Response{"200": {Description: "OK"}},
		}
		if rt.Tag != "" {
			op.Tags = []string{rt.Tag}
		}
		ops[strings.ToLower(rt.Method)] = op
	}

	return Document{
		OpenAPI: "3.0.3",
		Info:    Info{Title: Title, Description: Description, Version: Version},
		Servers: servers,
		Tags:    reg.Tags(),
		Paths:   paths,
	}
}
