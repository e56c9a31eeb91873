package proof

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// ExtractionError records a parameter that could not be produced from the
// request. It carries its own response mapping: extraction failures without
// a declared override answer 400 with the failure text.
type ExtractionError struct {
	// Param is the handler parameter that failed to extract.
	Param string

	// Cause is the underlying parse or bind failure.
	Cause error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract %q: %v", e.Param, e.Cause)
}

// Unwrap exposes the underlying failure.
func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Response implements Responder with the default extraction policy.
func (e *ExtractionError) Response() *Response {
	return NewBuilder(http.StatusBadRequest).BodyString(e.Error()).Build()
}

// FailedParam wraps a parse or bind failure for one named parameter.
func FailedParam(param string, cause error) *ExtractionError {
	return &ExtractionError{Param: param, Cause: cause}
}

// ExtractBody decodes the request body into a fresh T.
func ExtractBody[T any](ctx RequestContext) (T, error) {
	var value T
	if err := ctx.Bind(&value); err != nil {
		return value, err
	}
	return value, nil
}

// BuiltinParsers contains metadata for all built-in parameter parsers.
var BuiltinParsers = map[string]ParserMetadata{
	"string":    builtinParser("string", "ParseString"),
	"bool":      builtinParser("bool", "ParseBool"),
	"int":       builtinParser("int", "ParseInt"),
	"int32":     builtinParser("int32", "ParseInt32"),
	"int64":     builtinParser("int64", "ParseInt64"),
	"uint":      builtinParser("uint", "ParseUint"),
	"uint32":    builtinParser("uint32", "ParseUint32"),
	"uint64":    builtinParser("uint64", "ParseUint64"),
	"float32":   builtinParser("float32", "ParseFloat32"),
	"float64":   builtinParser("float64", "ParseFloat64"),
	"uuid.UUID": builtinParser("uuid.UUID", "ParseUUID"),
}

// ParserAliases maps convenient aliases to their full type names.
var ParserAliases = map[string]string{
	"UUID":   "uuid.UUID",
	"uuid":   "uuid.UUID",
	"float":  "float64",
	"double": "float64",
}

func builtinParser(typeName, functionName string) ParserMetadata {
	return ParserMetadata{
		TypeName:       typeName,
		FunctionName:   functionName,
		PackagePath:    "builtin",
		ParameterTypes: []string{"string"},
		ReturnTypes:    []string{typeName, "error"},
		FileName:       "builtin",
	}
}

// ParseString returns the raw parameter unchanged.
func ParseString(raw string) (string, error) {
	return raw, nil
}

// ParseBool parses a raw parameter to bool.
func ParseBool(raw string) (bool, error) {
	return strconv.ParseBool(raw)
}

// ParseInt parses a raw parameter to int.
func ParseInt(raw string) (int, error) {
	return strconv.Atoi(raw)
}

// ParseInt32 parses a raw parameter to int32.
func ParseInt32(raw string) (int32, error) {
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(value), nil
}

// ParseInt64 parses a raw parameter to int64.
func ParseInt64(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// ParseUint parses a raw parameter to uint.
func ParseUint(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

// ParseUint32 parses a raw parameter to uint32.
func ParseUint32(raw string) (uint32, error) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(value), nil
}

// ParseUint64 parses a raw parameter to uint64.
func ParseUint64(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}

// ParseFloat32 parses a raw parameter to float32.
func ParseFloat32(raw string) (float32, error) {
	value, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, err
	}
	return float32(value), nil
}

// ParseFloat64 parses a raw parameter to float64.
func ParseFloat64(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

// ParseUUID parses a raw parameter to uuid.UUID.
func ParseUUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

// GetBuiltinParser returns a built-in parser by type name, checking aliases
// first.
func GetBuiltinParser(typeName string) (ParserMetadata, bool) {
	parser, exists := BuiltinParsers[ResolveTypeAlias(typeName)]
	return parser, exists
}

// IsBuiltinType checks whether a type has a built-in parser, including
// aliases.
func IsBuiltinType(typeName string) bool {
	_, exists := BuiltinParsers[ResolveTypeAlias(typeName)]
	return exists
}

// ResolveTypeAlias resolves a type alias to its actual type name.
func ResolveTypeAlias(typeName string) string {
	if actualType, isAlias := ParserAliases[typeName]; isAlias {
		return actualType
	}
	return typeName
}

// AllBuiltinTypes returns all built-in type names including aliases.
func AllBuiltinTypes() []string {
	types := make([]string, 0, len(BuiltinParsers)+len(ParserAliases))
	for typeName := range BuiltinParsers {
		types = append(types, typeName)
	}
	for alias := range ParserAliases {
		types = append(types, alias)
	}
	return types
}
