package slider

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every *ConfigurationError.
var ErrInvalidConfiguration = errors.New("invalid slider configuration")

// ConfigurationError reports a rejected range or step assignment.
type ConfigurationError struct {
	// Field is the setting that was rejected ("minimum", "maximum", "step").
	Field string

	// Value is the rejected value.
	Value float64

	// Reason describes the violated constraint.
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("slider: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is allows errors.Is to match ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
