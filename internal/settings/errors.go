package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for settings files that are neither
	// TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported settings format")

	// ErrInvalidValue indicates a settings value out of range.
	ErrInvalidValue = errors.New("invalid settings value")
)

// LoadError is returned when a settings file cannot be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("settings %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError names the setting that failed validation.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Is makes errors.Is(err, ErrInvalidValue) match validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidValue
}
