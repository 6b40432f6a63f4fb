// internal/envpath/resolve.go
//
// Candidate generation and on-disk resolution.
//
/*
Context
--------
`Resolve()` is called once at boot.  It expands a pattern into every file
name the pattern can produce, appends the fallback name, and returns the
first candidate that exists under the base directory.

Ordering
--------
Candidates are built iteratively.  For each optional segment, every name
built so far is copied to the end of the list without the segment, then
the segment is appended to the name it was copied from.  Index 0 therefore
always holds the most specific name (every optional segment included), and
the name that omits every optional segment comes last, just before the
fallback.

	.env[.{env}].yaml  →  .env.development.yaml, .env.yaml, .env

Duplicate names keep their first (highest priority) position.  The
fallback is dropped when the pattern already produced it.

Instrumentation
---------------
  • INFO span  - most specific candidate matched.
  • INFO span  - lower-priority candidate matched.
  • WARN span  - fallback matched (INFO when the caller suppresses it).
  • Nothing is logged when no candidate exists; the error says it all.
*/
package envpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/envconf/internal/metrics"
)

const (
	// EnvVar selects the environment name substituted into patterns.
	EnvVar = "APP_ENV"

	// DefaultEnv is used when EnvVar is unset or empty.
	DefaultEnv = "development"

	// DefaultFallback is the lowest-priority candidate.
	DefaultFallback = ".env"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("envpath: config file not found")

// NotFoundError lists every path that was tried, in search order.
type NotFoundError struct {
	BaseDir string
	Tried   []string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "envpath: no config file found in %s\ntried:", e.BaseDir)
	for _, p := range e.Tried {
		b.WriteString("\n  - ")
		b.WriteString(p)
	}
	return b.String()
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Result describes the selected file.
type Result struct {
	Path      string // absolute, cleaned
	Candidate string // matched name, relative to the base directory
	Rank      int    // index in the candidate list, 0 = most specific
	Fallback  bool   // true when the fallback name matched
}

// EnvName returns $APP_ENV or DefaultEnv.
func EnvName() string {
	if e := os.Getenv(EnvVar); e != "" {
		return e
	}
	return DefaultEnv
}

/*──────────────────────────── resolver ────────────────────────────────────*/

// Resolver carries the knobs of a resolution.  The zero value reads the
// environment name from $APP_ENV and has no fallback; use Default() for the
// stock behaviour.
type Resolver struct {
	Env      string // empty → EnvName()
	Fallback string // empty → no fallback candidate
}

// Default returns the resolver used by the package-level helpers.
func Default() Resolver {
	return Resolver{Fallback: DefaultFallback}
}

// Candidates returns the candidate names for pattern using the default
// fallback.
func Candidates(pattern []Segment, env string) []string {
	names, _ := Resolver{Env: env, Fallback: DefaultFallback}.candidates(pattern)
	return names
}

// Resolve searches baseDir with the default resolver.
func Resolve(baseDir string, pattern []Segment, ignoreFallbackWarning bool) (Result, error) {
	return Default().Resolve(baseDir, pattern, ignoreFallbackWarning)
}

// Candidates returns every name pattern can produce, most specific first,
// followed by the fallback.
func (r Resolver) Candidates(pattern []Segment) []string {
	names, _ := r.candidates(pattern)
	return names
}

// candidates also reports the index of the fallback name, or -1.
func (r Resolver) candidates(pattern []Segment) ([]string, int) {
	env := r.Env
	if env == "" {
		env = EnvName()
	}

	combos := []string{""}
	for _, seg := range pattern {
		v := seg.render(env)
		n := len(combos)
		for i := 0; i < n; i++ {
			if seg.Optional {
				combos = append(combos, combos[i])
			}
			combos[i] += v
		}
	}

	seen := make(map[string]struct{}, len(combos)+1)
	out := make([]string, 0, len(combos)+1)
	for _, c := range combos {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	fallbackAt := -1
	if r.Fallback != "" {
		if _, dup := seen[r.Fallback]; !dup {
			fallbackAt = len(out)
			out = append(out, r.Fallback)
		}
	}
	return out, fallbackAt
}

// Resolve returns the first candidate that exists as a regular file under
// baseDir.  When none exists the error is a *NotFoundError.
func (r Resolver) Resolve(baseDir string, pattern []Segment, ignoreFallbackWarning bool) (Result, error) {
	names, fallbackAt := r.candidates(pattern)
	tried := make([]string, 0, len(names))

	for i, name := range names {
		p, err := filepath.Abs(filepath.Join(baseDir, name))
		if err != nil {
			return Result{}, fmt.Errorf("envpath: absolute path for %s: %w", name, err)
		}
		tried = append(tried, p)

		fi, err := os.Stat(p)
		if err != nil || fi.IsDir() {
			continue
		}

		res := Result{Path: p, Candidate: name, Rank: i, Fallback: i == fallbackAt}
		logResult(res, names[0], ignoreFallbackWarning)
		return res, nil
	}

	metrics.ConfigResolveTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
	return Result{}, &NotFoundError{BaseDir: baseDir, Tried: tried}
}

func logResult(res Result, mostSpecific string, ignoreFallbackWarning bool) {
	switch {
	case res.Fallback:
		metrics.ConfigResolveTotal.WithLabelValues(metrics.OutcomeFallback).Inc()
		if ignoreFallbackWarning {
			zap.S().Infow("using fallback config file", "file", res.Candidate, "path", res.Path)
		} else {
			zap.S().Warnw("using fallback config file",
				"file", res.Candidate,
				"path", res.Path,
				"wanted", mostSpecific,
			)
		}
	case res.Rank == 0:
		metrics.ConfigResolveTotal.WithLabelValues(metrics.OutcomeSpecific).Inc()
		zap.S().Infow("config file resolved", "file", res.Candidate, "path", res.Path, "specific", true)
	default:
		metrics.ConfigResolveTotal.WithLabelValues(metrics.OutcomeLower).Inc()
		zap.S().Infow("config file resolved from lower-priority candidate",
			"file", res.Candidate,
			"path", res.Path,
			"rank", res.Rank,
			"wanted", mostSpecific,
			"specific", false,
		)
	}
}
