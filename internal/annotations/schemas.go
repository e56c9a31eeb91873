package annotations

import (
	"fmt"
	"strings"
	"unicode"
)

// Built-in annotation schemas

// ErrorsAnnotationSchema defines the schema for //proof::errors annotations
var ErrorsAnnotationSchema = AnnotationSchema{
	Type:          ErrorsAnnotation,
	Description:   "Marks an interface as a rendered error set",
	MinPositional: 0,
	MaxPositional: 0,
	Parameters: map[string]ParameterSpec{
		"Transformer": {
			Required:    false,
			Description: "Function in the same package that shapes every response rendered for this set",
			Validator: func(v string) error {
				if !isIdentifier(v) {
					return fmt.Errorf("must be a function name, got '%s'", v)
				}
				return nil
			},
		},
	},
	Examples: []string{
		"//proof::errors",
		"//proof::errors -Transformer=DecorateError",
	},
}

// VariantAnnotationSchema defines the schema for //proof::variant annotations
var VariantAnnotationSchema = AnnotationSchema{
	Type:          VariantAnnotation,
	Description:   "Marks a struct as a member of an error set",
	MinPositional: 1,
	MaxPositional: 1,
	Parameters: map[string]ParameterSpec{
		"Status": {
			Required:    false,
			Description: "Response status name, e.g. BadRequest or ImATeapot. Defaults to InternalServerError",
			Validator: func(v string) error {
				if !isIdentifier(v) {
					return fmt.Errorf("must be a status name, got '%s'", v)
				}
				return nil
			},
		},
	},
	Examples: []string{
		"//proof::variant UserError",
		"//proof::variant UserError -Status=BadRequest",
		"//proof::variant AdminError -Status=Unauthorized",
	},
}

// RouteAnnotationSchema defines the schema for //proof::route annotations
var RouteAnnotationSchema = AnnotationSchema{
	Type:          RouteAnnotation,
	Description:   "Declares an HTTP route handled by the annotated function",
	MinPositional: 2,
	MaxPositional: 2,
	Parameters:    map[string]ParameterSpec{},
	Examples: []string{
		"//proof::route get /users",
		"//proof::route post /users",
		"//proof::route get /users/{id:int}",
		"//proof::route delete /notes/{id:uuid}",
	},
}

// OrAnnotationSchema defines the schema for //proof::or annotations
var OrAnnotationSchema = AnnotationSchema{
	Type:          OrAnnotation,
	Description:   "Overrides the error used when extracting the named parameter fails",
	MinPositional: 2,
	MaxPositional: 2,
	VerbatimTail:  true,
	Parameters:    map[string]ParameterSpec{},
	Examples: []string{
		"//proof::or id ErrMissingID{}",
		"//proof::or payload ErrInvalidBody{}",
		`//proof::or token "ErrBadToken{Reason: \"collect\"}"`,
	},
}

// ParserAnnotationSchema defines the schema for //proof::parser annotations
var ParserAnnotationSchema = AnnotationSchema{
	Type:          ParserAnnotation,
	Description:   "Marks a function as the string parser for a parameter type",
	MinPositional: 1,
	MaxPositional: 1,
	Parameters:    map[string]ParameterSpec{},
	Examples: []string{
		"//proof::parser ObjectID",
		"//proof::parser time.Time",
	},
}

// RegisterBuiltinSchemas registers all built-in annotation schemas with the given registry
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	for _, schema := range GetBuiltinSchemas() {
		if err := registry.Register(schema.Type, schema); err != nil {
			return fmt.Errorf("failed to register %s schema: %w", schema.Type.String(), err)
		}
	}
	return nil
}

// GetBuiltinSchemas returns all built-in annotation schemas
func GetBuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		ErrorsAnnotationSchema,
		VariantAnnotationSchema,
		RouteAnnotationSchema,
		OrAnnotationSchema,
		ParserAnnotationSchema,
	}
}

// SupportedMethods returns the HTTP methods a route annotation accepts
func SupportedMethods() []string {
	return []string{"GET", "PUT", "POST", "DELETE", "PATCH", "OPTIONS", "TRACE"}
}

// IsSupportedMethod reports whether method is accepted, ignoring case
func IsSupportedMethod(method string) bool {
	upper := strings.ToUpper(method)
	for _, m := range SupportedMethods() {
		if m == upper {
			return true
		}
	}
	return false
}

// ValidateRouteShape is a custom validator for route annotations
func ValidateRouteShape(annotation *ParsedAnnotation) error {
	if len(annotation.Positional) < 2 {
		return fmt.Errorf("route annotations require a method and a path, e.g. //proof::route get /users")
	}

	method := annotation.PositionalAt(0)
	if !IsSupportedMethod(method) {
		return fmt.Errorf("method must be one of: %s, got '%s'",
			strings.Join(SupportedMethods(), ", "), method)
	}

	if len(annotation.Positional) > 2 {
		return fmt.Errorf("route annotations take exactly one path, got %d arguments", len(annotation.Positional)-1)
	}

	path := annotation.PositionalAt(1)
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("route path must start with '/', got '%s'", path)
	}

	return nil
}

// ValidateVariantShape is a custom validator for variant annotations
func ValidateVariantShape(annotation *ParsedAnnotation) error {
	name := annotation.PositionalAt(0)
	if name != "" && !isIdentifier(name) {
		return fmt.Errorf("variant set must be an interface name, got '%s'", name)
	}
	return nil
}

// ValidateOverrideShape is a custom validator for or annotations
func ValidateOverrideShape(annotation *ParsedAnnotation) error {
	name := annotation.PositionalAt(0)
	if name != "" && !isIdentifier(name) {
		return fmt.Errorf("override target must be a parameter name, got '%s'", name)
	}
	if len(annotation.Positional) >= 2 && strings.TrimSpace(annotation.PositionalAt(1)) == "" {
		return fmt.Errorf("override expression cannot be empty")
	}
	return nil
}

// ValidateParserShape is a custom validator for parser annotations
func ValidateParserShape(annotation *ParsedAnnotation) error {
	name := annotation.PositionalAt(0)
	if name != "" && !isTypeName(name) {
		return fmt.Errorf("parser target must be a type name, got '%s'", name)
	}
	return nil
}

// isIdentifier reports whether s is a valid Go identifier
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// isTypeName reports whether s is an identifier or a qualified pkg.Type name
func isTypeName(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return false
	}
	for _, part := range parts {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

// init attaches custom validators to the schemas that need them
func init() {
	RouteAnnotationSchema.Validators = []CustomValidator{ValidateRouteShape}
	VariantAnnotationSchema.Validators = []CustomValidator{ValidateVariantShape}
	OrAnnotationSchema.Validators = []CustomValidator{ValidateOverrideShape}
	ParserAnnotationSchema.Validators = []CustomValidator{ValidateParserShape}
}
