package config

import "gopkg.in/yaml.v3"

// overlayValue decodes an environment value as a YAML scalar.  Anything
// that does not decode to a scalar is kept as the raw string.
func overlayValue(raw string) any {
	if raw == "" {
		return raw
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch kindOf(v) {
	case KindInteger, KindNumber, KindBoolean, KindString:
		return v
	default:
		return raw
	}
}
