// internal/config/model.go
//
// Typed configuration sections handed to the HTTP layer.
//
// Context
// -------
// These structs are the only configuration artifacts other packages see.
// `Build()` fills them field by field through the typed lookups, so every
// field has an explicit default and a YAML file may omit any of them.
//
//	app:
//	  name: Envconf
//	  port: 5000
//	  base_url: http://localhost:5000
//	  locale: ru-RU
//	global:
//	  prefix: api
//	swagger:
//	  enable: true
//	  protect:
//	    enable: false
//	    username: admin
//	    password: default
//	  additional_servers:
//	    - url: https://staging.example.com
//	      description: Staging
//	log:
//	  dir: logs
//	  level: info
//
// Validation happens immediately after Build; the app fails fast if a value
// is out of range.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"` so sections decode with the same names.
//   - `Env` is filled at runtime; YAML must not try to set it.
//   - Oxford commas, two spaces after periods.  No em-dash.

package config

//
// App section
//

// App holds identity and listen settings.
type App struct {
	Name    string `koanf:"name"     validate:"required"`
	Port    int    `koanf:"port"     validate:"min=1,max=65535"`
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Locale  string `koanf:"locale"`
}

//
// Global section
//

// Global holds settings shared by every route.
type Global struct {
	Prefix string `koanf:"prefix"`
}

//
// Swagger section
//

// Server is one extra entry in the API document's server list.
type Server struct {
	URL         string `koanf:"url"         json:"url"         yaml:"url"         validate:"required,url"`
	Description string `koanf:"description" json:"description" yaml:"description"`
}

// Protect guards the documentation routes with basic auth.
type Protect struct {
	Enable   bool   `koanf:"enable"`
	Username string `koanf:"username" validate:"required_if=Enable true"`
	Password string `koanf:"password" validate:"required_if=Enable true"`
}

// Swagger configures the API documentation routes.
type Swagger struct {
	Enable            bool     `koanf:"enable"`
	Protect           Protect  `koanf:"protect"`
	AdditionalServers []Server `koanf:"additional_servers" validate:"dive"`
}

//
// Log section
//

// Log configures the rotating file logger.
type Log struct {
	Dir        string `koanf:"dir"          validate:"required"`
	Level      string `koanf:"level"        validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `koanf:"max_size_mb"  validate:"min=1"`
	MaxBackups int    `koanf:"max_backups"  validate:"min=0"`
	MaxAgeDays int    `koanf:"max_age_days" validate:"min=0"`
	Compress   bool   `koanf:"compress"`
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	Env     string  `koanf:"-"` // active environment name
	App     App     `koanf:"app"`
	Global  Global  `koanf:"global"`
	Swagger Swagger `koanf:"swagger"`
	Log     Log     `koanf:"log"`
}

// DocsEnabled reports whether the documentation routes should be mounted.
// Development always gets them.
func (c *Config) DocsEnabled() bool {
	return c.Env == "development" || c.Swagger.Enable
}
