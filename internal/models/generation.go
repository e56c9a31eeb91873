package models

// GeneratedFile represents a single generated source file ready to be
// written to disk.
type GeneratedFile struct {
	// PackagePath is the directory the file belongs to
	PackagePath string `json:"package_path"`

	// FileName is the base name, usually "autogen_proof.go"
	FileName string `json:"file_name"`

	// Content is the formatted Go source
	Content string `json:"content"`
}

// GenerationSummary collects counters for the end-of-run report.
type GenerationSummary struct {
	PackagesScanned int `json:"packages_scanned"`
	ErrorSets       int `json:"error_sets"`
	Routes          int `json:"routes"`
	Parsers         int `json:"parsers"`
	FilesWritten    int `json:"files_written"`
	FilesRemoved    int `json:"files_removed"`
}
