package annotations

import (
	"fmt"
	"strings"
)

// AnnotationError defines the interface for annotation-related errors
type AnnotationError interface {
	error
	Location() SourceLocation
	Suggestion() string
	Code() ErrorCode
}

// ErrorCode represents different types of annotation errors
type ErrorCode int

const (
	SyntaxErrorCode ErrorCode = iota
	ValidationErrorCode
	RegistrationErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case ValidationErrorCode:
		return "ValidationError"
	case RegistrationErrorCode:
		return "RegistrationError"
	default:
		return "UnknownError"
	}
}

// ParseError represents a syntax parsing error
type ParseError struct {
	Message string         // Error message
	Loc     SourceLocation // Where the error occurred
	Hint    string         // Suggested fix
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s. %s",
		e.Loc.File, e.Loc.Line, e.Loc.Column, e.Message, e.Hint)
}

func (e *ParseError) Location() SourceLocation { return e.Loc }
func (e *ParseError) Suggestion() string       { return e.Hint }
func (e *ParseError) Code() ErrorCode          { return SyntaxErrorCode }

// ValidationError represents a parameter validation error
type ValidationError struct {
	Parameter string         // Parameter name that failed validation
	Expected  string         // What was expected
	Actual    string         // What was provided
	Loc       SourceLocation // Where the error occurred
	Hint      string         // Suggested fix
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: parameter '%s' validation failed: expected %s, got %s. %s",
		e.Loc.File, e.Loc.Line, e.Loc.Column,
		e.Parameter, e.Expected, e.Actual, e.Hint)
}

func (e *ValidationError) Location() SourceLocation { return e.Loc }
func (e *ValidationError) Suggestion() string       { return e.Hint }
func (e *ValidationError) Code() ErrorCode          { return ValidationErrorCode }

// MultipleValidationErrors represents multiple validation errors collected together
type MultipleValidationErrors struct {
	Errors []error
}

func (e *MultipleValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var messages []string
	for _, err := range e.Errors {
		messages = append(messages, err.Error())
	}

	return fmt.Sprintf("multiple validation errors:\n%s", strings.Join(messages, "\n"))
}

// Unwrap returns the underlying errors for error inspection
func (e *MultipleValidationErrors) Unwrap() []error {
	return e.Errors
}

// UsageExample returns the canonical usage line for an annotation type
func UsageExample(t AnnotationType) string {
	switch t {
	case ErrorsAnnotation:
		return "//proof::errors -Transformer=DecorateError"
	case VariantAnnotation:
		return "//proof::variant UserError -Status=BadRequest"
	case RouteAnnotation:
		return "//proof::route get /users/{id:int}"
	case OrAnnotation:
		return "//proof::or id ErrMissingID{}"
	case ParserAnnotation:
		return "//proof::parser ObjectID"
	default:
		return Prefix + t.String()
	}
}
