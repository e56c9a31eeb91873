package models

import "fmt"

// GeneratorError represents an error that occurred during code generation
type GeneratorError struct {
	Type    ErrorType // type of error
	File    string    // file where error occurred
	Line    int       // line number where error occurred
	Message string    // error message
	Cause   error     // underlying error cause
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// NewSyntaxError creates a GeneratorError for a malformed annotation
func NewSyntaxError(file string, line int, format string, args ...any) *GeneratorError {
	return &GeneratorError{
		Type:    ErrorTypeAnnotationSyntax,
		File:    file,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewValidationError creates a GeneratorError for an annotation that parses
// but does not satisfy its rules
func NewValidationError(file string, line int, format string, args ...any) *GeneratorError {
	return &GeneratorError{
		Type:    ErrorTypeValidation,
		File:    file,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewGenerationError creates a GeneratorError for a failure while emitting
// code
func NewGenerationError(file string, message string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    ErrorTypeGeneration,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// NewFileSystemError creates a GeneratorError for a failed filesystem
// operation
func NewFileSystemError(file string, message string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    ErrorTypeFileSystem,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// NewParserConflictError creates a GeneratorError for two parsers claiming
// the same type
func NewParserConflictError(typeName, file string, line int, existingFile string, existingLine int) *GeneratorError {
	message := fmt.Sprintf("parser for type %s conflicts with a builtin parser", typeName)
	if existingFile != "" {
		message = fmt.Sprintf("parser for type %s already registered at %s:%d", typeName, existingFile, existingLine)
	}
	return &GeneratorError{
		Type:    ErrorTypeValidation,
		File:    file,
		Line:    line,
		Message: message,
	}
}
