// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `Build()` calls `validateStruct` once every section has been assembled
// from the document.  Any failure aborts startup, ensuring the binary never
// serves requests with out-of-range or half-filled configuration.
//
// Rules in use: `required`, `url`, `min`/`max` on ports and log sizes,
// `oneof` on the log level, `required_if` on basic-auth credentials, and
// `dive` over the extra documentation servers.

package config

import "github.com/go-playground/validator/v10"

//
// validator instance (package-level singleton)
//

var v = validator.New(validator.WithRequiredStructEnabled())

//
// public API
//

// validateStruct returns the validation errors, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
