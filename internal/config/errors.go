package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidationFailed matches any FieldErrors returned by Validate.
	ErrValidationFailed = errors.New("config: validation failed")

	ErrInvalidEnv = errors.New("config: invalid environment override")
)

// ParseError is a TOML syntax or schema error, positioned in the file when
// the decoder reports where it happened.
type ParseError struct {
	File         string
	Line, Column int
	Reason       string
	Err          error
}

// Error formats as file:line:column: reason, omitting unknown positions.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.File)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// FieldError is one rejected setting. Key is the dotted TOML key.
type FieldError struct {
	Key    string
	Reason string
	Value  any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s, got %v", e.Key, e.Reason, e.Value)
}

// FieldErrors lists every rejected setting of one Config, in check order.
type FieldErrors []*FieldError

func (errs FieldErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

func (errs FieldErrors) Is(target error) bool { return target == ErrValidationFailed }
