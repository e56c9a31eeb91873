package utils

import "fmt"

// Error wrapping helpers shared across the generation pipeline, so the same
// failure reads the same everywhere.

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, err error) error {
	return fmt.Errorf("failed to parse %s: %w", item, err)
}

// WrapRegisterError wraps an error with a "failed to register" message
func WrapRegisterError(name string, err error) error {
	return fmt.Errorf("failed to register %s: %w", name, err)
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(item string, err error) error {
	return fmt.Errorf("failed to generate %s: %w", item, err)
}

// WrapWriteError wraps an error with a "failed to write" message
func WrapWriteError(item string, err error) error {
	return fmt.Errorf("failed to write %s: %w", item, err)
}

// WrapScanError wraps an error with a "failed to scan" message
func WrapScanError(item string, err error) error {
	return fmt.Errorf("failed to scan %s: %w", item, err)
}
