package models

// ErrorSetMetadata represents a sealed error interface and the variants that
// implement it, collected from //proof::errors and //proof::variant
// annotations.
type ErrorSetMetadata struct {
	// Name is the interface type name, e.g. "UserError"
	Name string `json:"name"`

	// Transformer is the optional response transformer function name.
	// Empty when the set renders plain text responses.
	Transformer string `json:"transformer,omitempty"`

	// MarkerMethod is the unexported method that seals the interface,
	// e.g. "isUserError". Empty when the interface only embeds error.
	MarkerMethod string `json:"marker_method,omitempty"`

	// Variants lists the member structs in declaration order. Order is
	// preserved because the rendered type switch follows it.
	Variants []VariantMetadata `json:"variants"`

	// Source location for error reporting
	FileName string `json:"file_name"`
	Line     int    `json:"line"`
}

// VariantMetadata represents one member struct of an error set.
type VariantMetadata struct {
	// Name is the struct type name, e.g. "InvalidBody"
	Name string `json:"name"`

	// StatusIdent is the status name as written in the annotation,
	// e.g. "BadRequest". Empty when the variant carries no status tag.
	StatusIdent string `json:"status_ident,omitempty"`

	// StatusConstant is the resolved net/http constant expression,
	// e.g. "http.StatusBadRequest". Defaults to the server fault
	// constant when no status tag is present.
	StatusConstant string `json:"status_constant"`

	// Source location for error reporting
	FileName string `json:"file_name"`
	Line     int    `json:"line"`
}

// HasTransformer reports whether responses for this set pass through a
// transformer function before being written.
func (e *ErrorSetMetadata) HasTransformer() bool {
	return e.Transformer != ""
}

// VariantNames returns the member struct names in declaration order.
func (e *ErrorSetMetadata) VariantNames() []string {
	names := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		names[i] = v.Name
	}
	return names
}
