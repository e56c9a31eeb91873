package models

// PackageMetadata represents everything discovered in one Go package that
// generation cares about.
type PackageMetadata struct {
	// PackageName is the package identifier, e.g. "notes"
	PackageName string `json:"package_name"`

	// PackagePath is the filesystem path of the package directory
	PackagePath string `json:"package_path"`

	// ImportPath is the module-relative import path of the package
	ImportPath string `json:"import_path"`

	// ErrorSets lists the annotated error interfaces in declaration order
	ErrorSets []ErrorSetMetadata `json:"error_sets"`

	// Routes lists the annotated handler functions in declaration order
	Routes []RouteMetadata `json:"routes"`

	// Parsers lists the //proof::parser registrations found in the package
	Parsers []ParserMetadata `json:"parsers"`
}

// HasGeneratedContent reports whether the package needs an autogen file.
func (p *PackageMetadata) HasGeneratedContent() bool {
	return len(p.ErrorSets) > 0 || len(p.Routes) > 0
}

// ErrorSet returns the set with the given name, or nil when the package
// declares none by that name.
func (p *PackageMetadata) ErrorSet(name string) *ErrorSetMetadata {
	for i := range p.ErrorSets {
		if p.ErrorSets[i].Name == name {
			return &p.ErrorSets[i]
		}
	}
	return nil
}
