package models

// RouteMetadata represents a handler function annotated with //proof::route.
type RouteMetadata struct {
	// Method is the HTTP verb, upper-cased, e.g. "GET"
	Method string `json:"method"`

	// Path is the declared route path, e.g. "/users/{id:int}"
	Path string `json:"path"`

	// HandlerName is the annotated function name, e.g. "GetUser"
	HandlerName string `json:"handler_name"`

	// Parameters lists the handler parameters in signature order.
	// Extraction in the generated wrapper follows this order.
	Parameters []Parameter `json:"parameters"`

	// Result describes the handler's return signature.
	Result ResultShapeInfo `json:"result"`

	// Source location for error reporting
	FileName string `json:"file_name"`
	Line     int    `json:"line"`
}

// Parameter represents one parameter of a route handler.
type Parameter struct {
	// Name is the parameter name as written in the signature
	Name string `json:"name"`

	// Type is the parameter type, e.g. "int", "uuid.UUID", "NotePayload"
	Type string `json:"type"`

	// Source is where the value comes from at request time
	Source ParameterSource `json:"source"`

	// Position is the zero-based index in the handler signature
	Position int `json:"position"`

	// IsCustomType is true when the type resolves through a
	// //proof::parser registration instead of a builtin parser
	IsCustomType bool `json:"is_custom_type"`

	// ParserFunc is the parse function the wrapper calls for path and
	// query parameters, e.g. "ParseInt". Empty for body and context
	// parameters.
	ParserFunc string `json:"parser_func,omitempty"`

	// ParserImport is the import path of the package providing
	// ParserFunc. Empty when the parser lives in the route's own
	// package.
	ParserImport string `json:"parser_import,omitempty"`

	// TypeImport is the import path backing the package qualifier of
	// Type, resolved from the declaring file's imports. Empty for
	// unqualified types.
	TypeImport string `json:"type_import,omitempty"`

	// Override is the verbatim expression from a //proof::or annotation.
	// It is emitted unmodified into the failure arm.
	Override string `json:"override,omitempty"`

	// OverrideSet distinguishes an empty override expression from no
	// override at all.
	OverrideSet bool `json:"override_set"`

	// OverrideImports maps package qualifiers referenced by Override to
	// their import paths, resolved from the declaring file's imports.
	// The generated file imports each pair under the same name so the
	// verbatim expression keeps compiling.
	OverrideImports map[string]string `json:"override_imports,omitempty"`
}

// ResultShapeInfo describes the return signature of a route handler.
type ResultShapeInfo struct {
	Shape ResultShape `json:"shape"`

	// ErrorSet is the declared error set name when Shape is
	// ResultShapeResponseAndSetError, empty otherwise.
	ErrorSet string `json:"error_set,omitempty"`
}

// WrapperName returns the name of the generated dispatch wrapper for this
// route, e.g. "proofRouteGetUser".
func (r *RouteMetadata) WrapperName() string {
	return "proofRoute" + r.HandlerName
}

// BodyParameter returns the body parameter, or nil when the handler takes
// none.
func (r *RouteMetadata) BodyParameter() *Parameter {
	for i := range r.Parameters {
		if r.Parameters[i].Source == ParameterSourceBody {
			return &r.Parameters[i]
		}
	}
	return nil
}
