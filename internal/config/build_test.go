package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullYAML = `
app:
  name: Billing
  port: 8081
  base_url: https://billing.example.com
  locale: en-US
global:
  prefix: v2
swagger:
  enable: false
  protect:
    enable: true
    username: docs
    password: s3cret
  additional_servers:
    - url: https://staging.example.com
      description: Staging
log:
  dir: /var/log/billing
  level: warn
  max_size_mb: 10
  max_backups: 3
  max_age_days: 5
  compress: false
`

func TestBuild_Defaults(t *testing.T) {
	cfg, err := Build(openDoc(t, "{}\n"), "development")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, App{Name: "Envconf", Port: 5000, BaseURL: "http://localhost:5000", Locale: "ru-RU"}, cfg.App)
	assert.Equal(t, "api", cfg.Global.Prefix)
	assert.True(t, cfg.Swagger.Enable)
	assert.Equal(t, Protect{Username: "admin", Password: "default"}, cfg.Swagger.Protect)
	assert.Empty(t, cfg.Swagger.AdditionalServers)
	assert.Equal(t, Log{Dir: "logs", Level: "info", MaxSizeMB: 50, MaxBackups: 7, MaxAgeDays: 14, Compress: true}, cfg.Log)
}

func TestBuild_FromDocument(t *testing.T) {
	cfg, err := Build(openDoc(t, fullYAML), "production")
	require.NoError(t, err)

	assert.Equal(t, App{Name: "Billing", Port: 8081, BaseURL: "https://billing.example.com", Locale: "en-US"}, cfg.App)
	assert.Equal(t, "v2", cfg.Global.Prefix)
	assert.False(t, cfg.Swagger.Enable)
	assert.Equal(t, Protect{Enable: true, Username: "docs", Password: "s3cret"}, cfg.Swagger.Protect)
	assert.Equal(t, []Server{{URL: "https://staging.example.com", Description: "Staging"}}, cfg.Swagger.AdditionalServers)
	assert.Equal(t, Log{Dir: "/var/log/billing", Level: "warn", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 5}, cfg.Log)
	assert.False(t, cfg.DocsEnabled())
}

func TestBuild_CollectsMismatches(t *testing.T) {
	doc := openDoc(t, "app:\n  port: \"8080\"\nswagger:\n  enable: \"yes\"\n  additional_servers:\n    url: x\n")

	_, err := Build(doc, "production")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.Contains(t, err.Error(), "app.port")
	assert.Contains(t, err.Error(), "swagger.enable")
	assert.Contains(t, err.Error(), "swagger.additional_servers")
}

func TestBuild_Validation(t *testing.T) {
	_, err := Build(openDoc(t, "app:\n  port: 70000\n"), "production")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTypeMismatch))
	assert.Contains(t, err.Error(), "Port")

	_, err = Build(openDoc(t, "swagger:\n  protect:\n    enable: true\n    username: \"\"\n"), "production")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username")

	_, err = Build(openDoc(t, "log:\n  level: verbose\n"), "production")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Level")
}

func TestLoad_CachesConfig(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", fullYAML)

	cfg, err := Load(NewStore(FileLocator(p)), "production")
	require.NoError(t, err)
	assert.Same(t, cfg, Get())
	assert.Equal(t, 8081, Get().App.Port)
}

func TestDocsEnabled(t *testing.T) {
	assert.True(t, (&Config{Env: "development"}).DocsEnabled())
	assert.True(t, (&Config{Env: "production", Swagger: Swagger{Enable: true}}).DocsEnabled())
	assert.False(t, (&Config{Env: "production"}).DocsEnabled())
}
