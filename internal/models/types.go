package models

// AnnotationType represents the type of annotation found in source code
type AnnotationType int

const (
	AnnotationTypeErrors AnnotationType = iota
	AnnotationTypeVariant
	AnnotationTypeRoute
	AnnotationTypeOr
	AnnotationTypeParser
)

// ParameterSource represents where a handler parameter comes from
type ParameterSource int

const (
	// ParameterSourceUnknown is the state before classification runs.
	ParameterSourceUnknown ParameterSource = iota
	ParameterSourcePath
	ParameterSourceQuery
	ParameterSourceBody
	ParameterSourceContext
)

// ResultShape represents the kind of result signature a handler declares
type ResultShape int

const (
	// ResultShapeResponseAndSetError is (*proof.Response, E) for a declared
	// error set E.
	ResultShapeResponseAndSetError ResultShape = iota

	// ResultShapeResponseAndError is (*proof.Response, error).
	ResultShapeResponseAndError

	// ResultShapeResponse is a bare *proof.Response.
	ResultShapeResponse
)

// ErrorType represents different types of generator errors
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
)

// ParserMetadata represents metadata for a parameter parser discovered
// during scanning
type ParserMetadata struct {
	TypeName     string `json:"type_name"`
	FunctionName string `json:"function_name"`
	PackagePath  string `json:"package_path"`

	// Builtin marks parsers shipped with the runtime package
	Builtin bool `json:"builtin"`

	// Function signature validation
	ParameterTypes []string `json:"parameter_types"`
	ReturnTypes    []string `json:"return_types"`

	// Source location for error reporting
	FileName string `json:"file_name"`
	Line     int    `json:"line"`
}
