// internal/docs/registry.go
//
// Explicit registry of API-document tags and routes.
//
// Context
// -------
// Handlers describe themselves here while the router is being built, and
// `Build()` reads the registry once to produce the document.  The registry
// is passed around by the caller; there is no package-level instance.
package docs

import (
	"sort"
	"sync"
)

// Tag groups operations in the API document.
type Tag struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Route is one documented operation.
type Route struct {
	Method  string
	Path    string
	Summary string
	Tag     string
}

// Registry collects tags and routes.  Safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	tags   []Tag
	routes []Route
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// AddTag appends a tag.  A repeated name replaces the earlier description.
func (r *Registry) AddTag(name, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tags {
		if r.tags[i].Name == name {
			r.tags[i].Description = description
			return
		}
	}
	r.tags = append(r.tags, Tag{Name: name, Description: description})
}

// SetTags replaces every tag.
func (r *Registry) SetTags(tags []Tag) {
	r.mu.Lock()
	r.tags = append([]Tag(nil), tags...)
	r.mu.Unlock()
}

// AddRoute documents one operation.
func (r *Registry) AddRoute(rt Route) {
	r.mu.Lock()
	r.routes = append(r.routes, rt)
	r.mu.Unlock()
}

// Tags returns a copy in registration order.
func (r *Registry) Tags() []Tag {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Tag(nil), r.tags...)
}

// Routes returns a copy sorted by path, then method.
func (r *Registry) Routes() []Route {
	r.mu.Lock()
	out := append([]Route(nil), r.routes...)
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}
