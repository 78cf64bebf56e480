package matcher

import (
	"errors"
	"fmt"
)

// Common matcher errors
var (
	// ErrInvalidOption indicates a malformed option string
	ErrInvalidOption = errors.New("invalid matcher option")

	// ErrInvalidConfig indicates invalid configuration was provided
	ErrInvalidConfig = errors.New("invalid matcher configuration")

	// ErrBufferFull indicates pending text outgrew Config.MaxBufferSize
	ErrBufferFull = errors.New("matcher buffer limit reached")

	// ErrEmptyLiteral indicates a literal matcher was given no literals or
	// an empty one
	ErrEmptyLiteral = errors.New("empty literal")
)

// OptionError reports the position of a malformed option
type OptionError struct {
	Options string
	Pos     int
	Err     error
}

// Error implements the error interface
func (e *OptionError) Error() string {
	return fmt.Sprintf("matcher: options %q at offset %d: %v", e.Options, e.Pos, e.Err)
}

// Unwrap returns the underlying error
func (e *OptionError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "matcher: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap lets errors.Is(err, ErrInvalidConfig) match any ConfigError.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
