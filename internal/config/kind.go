package config

import "reflect"

// Kind is the runtime shape of a document node.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindNumber // any numeric value; integers included when expected
	KindBoolean
	KindObject // mapping
	KindSequence
)

var kindNames = [...]string{
	KindNull:     "null",
	KindString:   "string",
	KindInteger:  "integer",
	KindNumber:   "number",
	KindBoolean:  "boolean",
	KindObject:   "object",
	KindSequence: "sequence",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// accepts reports whether a node of kind got satisfies an expectation of k.
func (k Kind) accepts(got Kind) bool {
	if k == KindNumber {
		return got == KindNumber || got == KindInteger
	}
	return k == got
}

// kindOf classifies a decoded YAML value.
func kindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case float32, float64:
		return KindNumber
	case map[string]any:
		return KindObject
	case []any:
		return KindSequence
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Struct:
		return KindObject
	case reflect.Slice, reflect.Array:
		return KindSequence
	default:
		return KindString
	}
}
