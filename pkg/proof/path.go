package proof

import (
	"fmt"
	"regexp"
	"strings"
)

// PathPartType represents the kind of one path segment.
type PathPartType int

const (
	StaticPart PathPartType = iota
	ParameterPart
	WildcardPart
)

// PathPart represents a single piece of a declared route path.
type PathPart struct {
	Type PathPartType

	// Value holds the literal text for static parts and the parameter name
	// for parameter parts.
	Value string

	// ParamType is the declared type for parameter parts ("int", "string",
	// "uuid.UUID", ...), empty for untyped parameters.
	ParamType string
}

// Path is a declared route path with typed parameter placeholders, e.g.
// "/users/{id:int}/notes/{slug:string}".
type Path string

var (
	pathParamPattern   = regexp.MustCompile(`\{([^:}]+):([^}]+)\}`)
	bracedChunkPattern = regexp.MustCompile(`\{[^}]*\}`)
)

// Raw returns the original declared form.
func (p Path) Raw() string {
	return string(p)
}

// Parts splits the path into static, parameter and wildcard pieces.
func (p Path) Parts() []PathPart {
	path := string(p)
	var parts []PathPart

	i := 0
	for i < len(path) {
		if path[i] != '{' {
			start := i
			for i < len(path) && path[i] != '{' {
				i++
			}
			parts = append(parts, PathPart{Type: StaticPart, Value: path[start:i]})
			continue
		}

		j := i + 1
		for j < len(path) && path[j] != '}' {
			j++
		}
		if j == len(path) {
			// Unclosed brace, treat the rest as static.
			parts = append(parts, PathPart{Type: StaticPart, Value: path[i:]})
			break
		}

		content := path[i+1 : j]
		if content == "*" {
			parts = append(parts, PathPart{Type: WildcardPart, Value: "*"})
		} else {
			name, paramType := content, ""
			if colon := strings.Index(content, ":"); colon != -1 {
				name, paramType = content[:colon], content[colon+1:]
			}
			parts = append(parts, PathPart{Type: ParameterPart, Value: name, ParamType: paramType})
		}
		i = j + 1
	}

	return parts
}

// ParamTypes returns the declared parameter names mapped to their types.
func (p Path) ParamTypes() map[string]string {
	info := make(map[string]string)
	for _, match := range pathParamPattern.FindAllStringSubmatch(string(p), -1) {
		info[match[1]] = match[2]
	}
	return info
}

// Runtime converts the declared form to the serving runtime's parameter
// syntax: /users/{id:int} becomes /users/:id.
func (p Path) Runtime() string {
	runtime := pathParamPattern.ReplaceAllString(string(p), ":$1")
	return strings.ReplaceAll(runtime, "{*}", "*")
}

// Validate checks the path for balanced braces and well-formed parameter
// segments.
func (p Path) Validate() error {
	path := string(p)
	if strings.Count(path, "{") != strings.Count(path, "}") {
		return fmt.Errorf("mismatched braces in path: %s", path)
	}

	for _, chunk := range bracedChunkPattern.FindAllString(path, -1) {
		if chunk == "{*}" {
			continue
		}
		if !pathParamPattern.MatchString(chunk) {
			return fmt.Errorf("invalid parameter syntax %s in path %s (use {name:type})", chunk, path)
		}
	}

	return nil
}
