package annotations

import (
	"fmt"
	"strings"
	"unicode"
)

// Prefix marks a comment as a proof annotation.
const Prefix = "//proof::"

// ParserEngine interface defines the core parsing functionality
type ParserEngine interface {
	ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error)
	ValidateAnnotation(annotation *ParsedAnnotation) error
}

type parser struct {
	registry AnnotationRegistry
}

// NewParser creates a parser that validates against the given registry
func NewParser(registry AnnotationRegistry) ParserEngine {
	return &parser{registry: registry}
}

// IsAnnotation reports whether a comment line carries a proof annotation
func IsAnnotation(comment string) bool {
	trimmed := strings.TrimSpace(comment)
	if !strings.HasPrefix(trimmed, "//") {
		return false
	}
	rest := strings.TrimLeftFunc(trimmed[2:], unicode.IsSpace)
	return strings.HasPrefix(rest, "proof::")
}

func (p *parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	body, err := p.normalizeCommentPrefix(comment, location)
	if err != nil {
		return nil, err
	}

	chunks, err := lexChunks(body)
	if err != nil {
		return nil, &ParseError{
			Message: fmt.Sprintf("could not tokenize annotation: %v", err),
			Loc:     location,
			Hint:    "Check for unterminated quoted strings",
		}
	}
	if len(chunks) == 0 {
		return nil, &ParseError{
			Message: "empty annotation",
			Loc:     location,
			Hint:    "Provide annotation type after 'proof::'",
		}
	}

	annotationType, err := ParseAnnotationType(chunks[0].text)
	if err != nil {
		return nil, &ParseError{
			Message: fmt.Sprintf("unknown annotation type: %s", chunks[0].text),
			Loc:     location,
			Hint:    "Use one of: errors, variant, route, or, parser",
		}
	}

	annotation := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]string),
		Location:   location,
		Raw:        comment,
	}

	verbatimTail := false
	if p.registry != nil {
		if schema, schemaErr := p.registry.GetSchema(annotationType); schemaErr == nil {
			verbatimTail = schema.VerbatimTail
		}
	}

	if verbatimTail {
		p.collectWithVerbatimTail(annotation, body, chunks[1:])
	} else if err := p.collectArguments(annotation, chunks[1:], location); err != nil {
		return nil, err
	}

	if err := p.ValidateAnnotation(annotation); err != nil {
		return nil, err
	}

	return annotation, nil
}

func (p *parser) normalizeCommentPrefix(comment string, location SourceLocation) (string, error) {
	input := strings.TrimSpace(comment)

	if !strings.HasPrefix(input, "//") {
		return "", &ParseError{
			Message: "annotation must start with '//'",
			Loc:     location,
			Hint:    "Use format: //proof::type arguments",
		}
	}

	withoutSlashes := strings.TrimLeftFunc(input[2:], unicode.IsSpace)
	if !strings.HasPrefix(withoutSlashes, "proof::") {
		return "", &ParseError{
			Message: "annotation must contain 'proof::' prefix",
			Loc:     location,
			Hint:    "Use format: //proof::type arguments",
		}
	}

	return strings.TrimSpace(withoutSlashes[len("proof::"):]), nil
}

// collectWithVerbatimTail takes the first chunk as a positional argument
// and the rest of the body as a single raw argument. Annotations with a
// verbatim tail accept arbitrary expressions, dashes included.
func (p *parser) collectWithVerbatimTail(annotation *ParsedAnnotation, body string, args []chunk) {
	if len(args) == 0 {
		return
	}
	annotation.Positional = append(annotation.Positional, args[0].text)
	if len(args) > 1 {
		tail := strings.TrimSpace(body[args[1].start:])
		annotation.Positional = append(annotation.Positional, unquote(tail))
	}
}

func (p *parser) collectArguments(annotation *ParsedAnnotation, args []chunk, location SourceLocation) error {
	for _, arg := range args {
		if !arg.named {
			annotation.Positional = append(annotation.Positional, unquote(arg.text))
			continue
		}

		name, value, hasValue := splitNamed(arg.text)
		if name == "" {
			return &ParseError{
				Message: fmt.Sprintf("invalid parameter format: %s", arg.text),
				Loc:     location,
				Hint:    "Parameters use the format -Name=Value",
			}
		}
		if !hasValue {
			return &ParseError{
				Message: fmt.Sprintf("parameter -%s requires a value", name),
				Loc:     location,
				Hint:    fmt.Sprintf("Use -%s=<value>", name),
			}
		}
		if _, exists := annotation.Parameters[name]; exists {
			return &ParseError{
				Message: fmt.Sprintf("parameter -%s given more than once", name),
				Loc:     location,
				Hint:    "Remove the duplicate parameter",
			}
		}
		annotation.Parameters[name] = unquote(value)
	}
	return nil
}

// splitNamed splits a -Name=Value chunk into its parts
func splitNamed(text string) (name, value string, hasValue bool) {
	text = strings.TrimPrefix(text, "-")
	if idx := strings.Index(text, "="); idx >= 0 {
		return text[:idx], text[idx+1:], true
	}
	return text, "", false
}

func (p *parser) ValidateAnnotation(annotation *ParsedAnnotation) error {
	if p.registry == nil {
		return nil
	}

	schema, err := p.registry.GetSchema(annotation.Type)
	if err != nil {
		return &ParseError{
			Message: fmt.Sprintf("no schema found for annotation type: %s", annotation.Type),
			Loc:     annotation.Location,
			Hint:    "Check if annotation type is registered",
		}
	}

	var errors []error

	if len(annotation.Positional) < schema.MinPositional {
		errors = append(errors, &ValidationError{
			Parameter: "arguments",
			Expected:  fmt.Sprintf("at least %d positional argument(s)", schema.MinPositional),
			Actual:    fmt.Sprintf("%d", len(annotation.Positional)),
			Loc:       annotation.Location,
			Hint:      "Example: " + UsageExample(annotation.Type),
		})
	}
	if schema.MaxPositional >= 0 && len(annotation.Positional) > schema.MaxPositional {
		errors = append(errors, &ValidationError{
			Parameter: "arguments",
			Expected:  fmt.Sprintf("at most %d positional argument(s)", schema.MaxPositional),
			Actual:    fmt.Sprintf("%d", len(annotation.Positional)),
			Loc:       annotation.Location,
			Hint:      "Example: " + UsageExample(annotation.Type),
		})
	}

	for name, value := range annotation.Parameters {
		spec, exists := schema.Parameters[name]
		if !exists {
			errors = append(errors, &ValidationError{
				Parameter: name,
				Expected:  "known parameter",
				Actual:    fmt.Sprintf("unknown parameter '%s'", name),
				Loc:       annotation.Location,
				Hint:      fmt.Sprintf("Remove -%s or check parameter name spelling", name),
			})
			continue
		}
		if value == "" {
			errors = append(errors, &ValidationError{
				Parameter: name,
				Expected:  "non-empty value",
				Actual:    "empty string",
				Loc:       annotation.Location,
				Hint:      fmt.Sprintf("Use -%s=<value>", name),
			})
			continue
		}
		if spec.Validator != nil {
			if err := spec.Validator(value); err != nil {
				errors = append(errors, &ValidationError{
					Parameter: name,
					Expected:  "valid value",
					Actual:    value,
					Loc:       annotation.Location,
					Hint:      err.Error(),
				})
			}
		}
	}

	for name, spec := range schema.Parameters {
		if spec.Required {
			if _, exists := annotation.Parameters[name]; !exists {
				errors = append(errors, &ValidationError{
					Parameter: name,
					Expected:  "required parameter",
					Actual:    "missing",
					Loc:       annotation.Location,
					Hint:      fmt.Sprintf("Add -%s=<value> to the annotation", name),
				})
			}
		}
	}

	for _, customValidator := range schema.Validators {
		if err := customValidator(annotation); err != nil {
			errors = append(errors, &ValidationError{
				Parameter: annotation.Type.String(),
				Expected:  "valid annotation",
				Actual:    "invalid",
				Loc:       annotation.Location,
				Hint:      err.Error(),
			})
		}
	}

	if len(errors) == 1 {
		return errors[0]
	}
	if len(errors) > 0 {
		return &MultipleValidationErrors{Errors: errors}
	}

	return nil
}
