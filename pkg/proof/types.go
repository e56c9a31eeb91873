package proof

// ParserMetadata describes a parameter parser so that routes can be checked
// and wired against it during generation.
type ParserMetadata struct {
	TypeName     string `json:"type_name"`
	FunctionName string `json:"function_name"`
	PackagePath  string `json:"package_path"`

	// Function signature validation
	ParameterTypes []string `json:"parameter_types"`
	ReturnTypes    []string `json:"return_types"`

	// Source location for error reporting
	FileName string `json:"file_name"`
	Line     int    `json:"line"`
}
