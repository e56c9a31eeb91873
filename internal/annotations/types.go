package annotations

import "fmt"

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	ErrorsAnnotation AnnotationType = iota
	VariantAnnotation
	RouteAnnotation
	OrAnnotation
	ParserAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case ErrorsAnnotation:
		return "errors"
	case VariantAnnotation:
		return "variant"
	case RouteAnnotation:
		return "route"
	case OrAnnotation:
		return "or"
	case ParserAnnotation:
		return "parser"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "errors":
		return ErrorsAnnotation, nil
	case "variant":
		return VariantAnnotation, nil
	case "route":
		return RouteAnnotation, nil
	case "or":
		return OrAnnotation, nil
	case "parser":
		return ParserAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// ParsedAnnotation represents a fully parsed annotation. All parameter
// values are strings; the proof annotation surface has no other value
// kinds.
type ParsedAnnotation struct {
	Type       AnnotationType    // Annotation type enum
	Positional []string          // Positional arguments in order
	Parameters map[string]string // Named -Key=Value parameters
	Location   SourceLocation    // Source location
	Raw        string            // Original annotation text
}

// GetString returns a named parameter value with optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		return value
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// HasParameter checks if a named parameter exists
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, exists := p.Parameters[paramName]
	return exists
}

// PositionalAt returns the positional argument at the given index, or ""
// when fewer were provided
func (p *ParsedAnnotation) PositionalAt(index int) string {
	if index < 0 || index >= len(p.Positional) {
		return ""
	}
	return p.Positional[index]
}

// ParameterSpec defines the specification for a named annotation parameter
type ParameterSpec struct {
	Required    bool               // Whether parameter is required
	Description string             // Parameter description
	Validator   func(string) error // Custom validator function
}

// CustomValidator represents a custom validation function for annotations
type CustomValidator func(*ParsedAnnotation) error

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type          AnnotationType           // Annotation type enum
	Description   string                   // Human-readable description
	Parameters    map[string]ParameterSpec // Named parameter specifications
	MinPositional int                      // Minimum positional argument count
	MaxPositional int                      // Maximum positional argument count, -1 for unbounded
	VerbatimTail  bool                     // Everything after the first positional is one raw argument
	Validators    []CustomValidator        // Custom validation functions
	Examples      []string                 // Usage examples
}
