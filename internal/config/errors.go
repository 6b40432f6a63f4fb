// internal/config/errors.go
//
// Error kinds surfaced by the document loader and the typed lookups.
//
// Context
// -------
// All of these are startup-fatal.  Callers branch on them with errors.Is
// against the sentinels, or errors.As to reach the details.  A missing key
// is NOT an error: lookups fall back to the caller's default.
//
// The third startup error, "no config file found", lives in
// internal/envpath because the resolver owns the candidate list.
package config

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("config: type mismatch")

	// ErrParse matches every *ParseError.
	ErrParse = errors.New("config: parse error")

	// ErrRange matches every *RangeError.
	ErrRange = errors.New("config: value out of range")
)

// TypeMismatchError names the key and both kinds.
type TypeMismatchError struct {
	Key      string
	Expected Kind
	Actual   Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("config: value at %q is %s, expected %s", e.Key, e.Actual, e.Expected)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// RangeError reports a number the requested Go type cannot hold.
type RangeError struct {
	Key    string
	Value  any
	Target string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("config: value %v at %q does not fit %s", e.Value, e.Key, e.Target)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }

// ParseError wraps the decoder failure for a located file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
