package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yanizio/envconf/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:    "development",
		App:    config.App{Name: "svc", Port: 5000, BaseURL: "https://api.example.com"},
		Global: config.Global{Prefix: "api"},
		Swagger: config.Swagger{
			Enable: true,
			AdditionalServers: []config.Server{
				{URL: "https://staging.example.com", Description: "Staging"},
			},
		},
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.AddTag("App", "first")
	reg.AddTag("Users", "users")
	reg.AddTag("App", "App controller")
	assert.Equal(t, []Tag{{"App", "App controller"}, {"Users", "users"}}, reg.Tags())

	reg.SetTags([]Tag{{Name: "Only"}})
	assert.Equal(t, []Tag{{Name: "Only"}}, reg.Tags())

	reg.AddRoute(Route{Method: "POST", Path: "/b"})
	reg.AddRoute(Route{Method: "GET", Path: "/b"})
	reg.AddRoute(Route{Method: "GET", Path: "/a"})
	got := reg.Routes()
	require.Len(t, got, 3)
	assert.Equal(t, "/a", got[0].Path)
	assert.Equal(t, "GET", got[1].Method)
	assert.Equal(t, "POST", got[2].Method)
}

func TestBuild(t *testing.T) {
	reg := NewRegistry()
	reg.AddTag("App", "App controller")
	reg.AddRoute(Route{Method: http.MethodGet, Path: "/api", Summary: "Hello", Tag: "App"})

	doc := Build(testConfig(), reg)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, Title, doc.Info.Title)
	require.Len(t, doc.Servers, 3)
	assert.Equal(t, "https://api.example.com", doc.Servers[0].URL)
	assert.Equal(t, "http://localhost:5000", doc.Servers[1].URL)
	assert.Equal(t, "https://staging.example.com", doc.Servers[2].URL)
	assert.Equal(t, []Tag{{"App", "App controller"}}, doc.Tags)
	assert.Equal(t, "Hello", doc.Paths["/api"]["get"].Summary)
	assert.Equal(t, []string{"App"}, doc.Paths["/api"]["get"].Tags)
}

func TestMount_Unprotected(t *testing.T) {
	cfg := testConfig()
	r := chi.NewRouter()
	require.NoError(t, Mount(r, cfg, Build(cfg, NewRegistry())))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs-json", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got Document
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got.Servers, 3)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs-yaml", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var fromYAML Document
	require.NoError(t, yaml.Unmarshal(rr.Body.Bytes(), &fromYAML))
	assert.Equal(t, Version, fromYAML.Info.Version)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "docs-json")
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "cdn.jsdelivr.net")
}

func TestMount_Protected(t *testing.T) {
	cfg := testConfig()
	cfg.Swagger.Protect = config.Protect{Enable: true, Username: "admin", Password: "pw"}
	r := chi.NewRouter()
	require.NoError(t, Mount(r, cfg, Build(cfg, NewRegistry())))

	for _, path := range []string{"/api/docs", "/api/docs-json", "/api/docs-yaml"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)

		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.SetBasicAuth("admin", "wrong")
		rr = httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)

		req = httptest.NewRequest(http.MethodGet, path, nil)
		req.SetBasicAuth("admin", "pw")
		rr = httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestBase(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "/api/docs", Base(cfg))
	cfg.Global.Prefix = ""
	assert.Equal(t, "/docs", Base(cfg))
}
