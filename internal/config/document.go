// internal/config/document.go
//
// Typed, dotted-path lookups into a loaded Document.
//
// Context
// -------
// Every read goes through a lookup; the raw tree never leaves this file.
// Mappings and sequences are returned as copies, so callers cannot mutate
// the cached document.
//
// Lookup rules
// ------------
//   - Absent key (any segment missing, or a scalar hit before the last
//     segment) → the caller's default, no error, no kind check.
//   - Present key, wrong kind → *TypeMismatchError.  The default is never
//     substituted for a present value.
//   - String lookups never fail; scalars are formatted as text.
//
// Notes
// -----
//   - YAML `null` counts as present and matches no typed lookup.
//   - Oxford commas, two spaces after periods.
package config

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/envconf/internal/metrics"
)

// Document is an immutable parsed configuration file.  Safe for concurrent
// reads.
type Document struct {
	root map[string]any // nested, as written plus overlay
	k    *koanf.Koanf   // flattened, backs Unmarshal
	path string
}

// Path returns the file the document was read from.
func (d *Document) Path() string { return d.path }

// Has reports whether key is present, null values included.
func (d *Document) Has(key string) bool {
	_, ok := walk(d.root, key)
	return ok
}

// get returns a copy of the node at key.
func (d *Document) get(key string, want string) (any, bool) {
	metrics.ConfigLookupTotal.WithLabelValues(want).Inc()
	v, ok := walk(d.root, key)
	if !ok {
		return nil, false
	}
	return clone(v), true
}

func (d *Document) check(key string, v any, want ...Kind) error {
	got := kindOf(v)
	for _, w := range want {
		if w.accepts(got) {
			return nil
		}
	}
	return mismatch(key, want[0], got)
}

func mismatch(key string, want, got Kind) error {
	metrics.ConfigTypeMismatchTotal.Inc()
	zap.S().Errorw("config type mismatch", "key", key, "expected", want.String(), "actual", got.String())
	return &TypeMismatchError{Key: key, Expected: want, Actual: got}
}

/*──────────────────────────── untyped ─────────────────────────────────────*/

// Lookup returns the node at key unchanged, or def when absent.
func (d *Document) Lookup(key string, def any) any {
	v, ok := d.get(key, "any")
	if !ok {
		return def
	}
	return v
}

// String returns the value at key as text.  It performs no kind check.
func (d *Document) String(key, def string) string {
	v, ok := d.get(key, KindString.String())
	if !ok {
		return def
	}
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

/*──────────────────────────── typed ───────────────────────────────────────*/

// Typed looks up key, checks its kind against want, and decodes it into T.
// Absent keys return def unchecked.
func Typed[T any](d *Document, key string, def T, want Kind) (T, error) {
	var zero T

	v, ok := d.get(key, want.String())
	if !ok {
		return def, nil
	}
	if err := d.check(key, v, want); err != nil {
		return zero, err
	}
	if out, ok := v.(T); ok {
		return out, nil
	}

	var out T
	if err := fits(key, v, reflect.TypeOf(&out).Elem()); err != nil {
		return zero, err
	}
	if err := decode(v, &out); err != nil {
		return zero, fmt.Errorf("config: decode %q: %w", key, err)
	}
	return out, nil
}

// Int requires an integer value.
func (d *Document) Int(key string, def int) (int, error) {
	return Typed(d, key, def, KindInteger)
}

// Float requires a numeric value; integers are widened.
func (d *Document) Float(key string, def float64) (float64, error) {
	return Typed(d, key, def, KindNumber)
}

// Bool requires a boolean value.
func (d *Document) Bool(key string, def bool) (bool, error) {
	return Typed(d, key, def, KindBoolean)
}

// Map requires a mapping.
func (d *Document) Map(key string, def map[string]any) (map[string]any, error) {
	return Typed(d, key, def, KindObject)
}

// JSON requires a mapping or a sequence and returns it as decoded.
func (d *Document) JSON(key string, def any) (any, error) {
	v, ok := d.get(key, KindObject.String())
	if !ok {
		return def, nil
	}
	if err := d.check(key, v, KindObject, KindSequence); err != nil {
		return nil, err
	}
	return v, nil
}

// Unmarshal decodes the subtree at key into out using `koanf` struct tags.
// An absent key leaves out untouched.
func (d *Document) Unmarshal(key string, out any) error {
	if err := d.k.UnmarshalWithConf(key, out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("config: unmarshal %q: %w", key, err)
	}
	return nil
}

// fits rejects numbers the target type cannot hold exactly: fractions bound
// for an integer, and values outside the target's range.
func fits(key string, v any, t reflect.Type) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil
	}
	target := reflect.Zero(t)
	over := func() error {
		zap.S().Errorw("config value out of range", "key", key, "value", v, "target", t.String())
		return &RangeError{Key: key, Value: v, Target: t.String()}
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			if f != math.Trunc(f) {
				return mismatch(key, KindInteger, KindNumber)
			}
			if f < math.MinInt64 || f >= math.MaxInt64 || target.OverflowInt(int64(f)) {
				return over()
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if target.OverflowInt(rv.Int()) {
				return over()
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if u := rv.Uint(); u > math.MaxInt64 || target.OverflowInt(int64(u)) {
				return over()
			}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			if f != math.Trunc(f) {
				return mismatch(key, KindInteger, KindNumber)
			}
			if f < 0 || f >= math.MaxUint64 || target.OverflowUint(uint64(f)) {
				return over()
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if i := rv.Int(); i < 0 || target.OverflowUint(uint64(i)) {
				return over()
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if target.OverflowUint(rv.Uint()) {
				return over()
			}
		}
	case reflect.Float32:
		if rv.Kind() == reflect.Float64 && target.OverflowFloat(rv.Float()) {
			return over()
		}
	}
	return nil
}

// decode converts a document node into out, honouring `koanf` tags.  Weak
// typing stays off so "8080" never becomes 8080.
func decode(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "koanf",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
