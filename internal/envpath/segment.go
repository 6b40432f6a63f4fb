// internal/envpath/segment.go
//
// Pattern segments and the compact textual pattern syntax.
//
// Context
// -------
// A pattern is an ordered list of segments.  Concatenating the rendered
// segments yields one candidate file name.  Segments marked optional may be
// left out, which is how one pattern describes both `.env.production.yaml`
// and `.env.yaml`.
//
// Textual form
// ------------
//
//	.env[.{env}].yaml
//
//   - Text inside `[` and `]` is one optional segment.
//   - Any segment containing `{env}` is an environment segment; the active
//     environment name replaces the placeholder when candidates are built.
//   - Brackets do not nest.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.
package envpath

import (
	"errors"
	"fmt"
	"strings"
)

// Placeholder is substituted with the environment name in Environment
// segments.  Only the first occurrence is replaced.
const Placeholder = "{env}"

// DefaultPattern is used when the caller supplies no pattern of its own.
const DefaultPattern = ".env[.{env}].yaml"

// ErrPattern is returned (wrapped) by ParsePattern for malformed input.
var ErrPattern = errors.New("envpath: invalid pattern")

// Kind tells whether a segment is used verbatim or rendered per environment.
type Kind int

const (
	Literal Kind = iota
	Environment
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Environment:
		return "environment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Segment is one step of a candidate file name.
type Segment struct {
	Value    string
	Kind     Kind
	Optional bool
}

// render returns the segment text for env.
func (s Segment) render(env string) string {
	if s.Kind == Environment {
		return strings.Replace(s.Value, Placeholder, env, 1)
	}
	return s.Value
}

// String renders the segment back into the textual pattern syntax.
func (s Segment) String() string {
	if s.Optional {
		return "[" + s.Value + "]"
	}
	return s.Value
}

/*──────────────────────────── parsing ─────────────────────────────────────*/

// ParsePattern turns the textual form into segments.
func ParsePattern(s string) ([]Segment, error) {
	var (
		out  []Segment
		buf  strings.Builder
		open = -1 // index of the pending '[' or -1
	)

	flush := func(optional bool) {
		if buf.Len() == 0 {
			return
		}
		v := buf.String()
		kind := Literal
		if strings.Contains(v, Placeholder) {
			kind = Environment
		}
		out = append(out, Segment{Value: v, Kind: kind, Optional: optional})
		buf.Reset()
	}

	for i, r := range s {
		switch r {
		case '[':
			if open >= 0 {
				return nil, fmt.Errorf("%w: nested '[' at offset %d in %q", ErrPattern, i, s)
			}
			flush(false)
			open = i
		case ']':
			if open < 0 {
				return nil, fmt.Errorf("%w: unmatched ']' at offset %d in %q", ErrPattern, i, s)
			}
			if buf.Len() == 0 {
				return nil, fmt.Errorf("%w: empty optional segment at offset %d in %q", ErrPattern, open, s)
			}
			flush(true)
			open = -1
		default:
			buf.WriteRune(r)
		}
	}
	if open >= 0 {
		return nil, fmt.Errorf("%w: unclosed '[' at offset %d in %q", ErrPattern, open, s)
	}
	flush(false)
	return out, nil
}

// MustParsePattern is ParsePattern for package-level defaults.  It panics on
// malformed input.
func MustParsePattern(s string) []Segment {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// FormatPattern is the inverse of ParsePattern.
func FormatPattern(p []Segment) string {
	var b strings.Builder
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}
