package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidConfig indicates a configuration error.
	ErrInvalidConfig = errors.New("modbench: invalid configuration")
	// ErrGenerationFailed indicates an artifact generation failure.
	ErrGenerationFailed = errors.New("modbench: generation failed")
)

// ConfigError represents a configuration error. Configuration errors are
// detected before anything is written.
type ConfigError struct {
	Option  string
	Value   any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "modbench: config error for %q", e.Option)
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// WrapConfigError creates a new ConfigError caused by err.
func WrapConfigError(option string, value any, err error) *ConfigError {
	return &ConfigError{
		Option: option,
		Value:  value,
		Cause:  err,
	}
}

// GenerationError represents an error while materializing artifacts.
type GenerationError struct {
	Phase   string // "export", "bundle", "pages"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("modbench: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
