package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"

	"golang.org/x/tools/imports"
)

// FormatGoCode formats Go source code using the same logic as gofmt
func FormatGoCode(source []byte) ([]byte, error) {
	return format.Source(source)
}

// FormatGoCodeString formats Go source code from a string and returns a string
func FormatGoCodeString(source string) (string, error) {
	formatted, err := format.Source([]byte(source))
	if err != nil {
		// If formatting fails, try to parse to see if it's valid Go
		fset := token.NewFileSet()
		_, parseErr := parser.ParseFile(fset, "", source, parser.ParseComments)
		if parseErr != nil {
			return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
		}
		// If parsing works but formatting doesn't, return the original
		return source, err
	}
	return string(formatted), nil
}

// FormatGeneratedSource formats a generated file: gofmt first, then the
// goimports formatting pass to settle import grouping. The goimports pass
// runs in format-only mode, so it never reaches for the network or the
// build cache.
func FormatGeneratedSource(filename, source string) (string, error) {
	formatted, err := FormatGoCodeString(source)
	if err != nil {
		return source, err
	}

	grouped, err := imports.Process(filename, []byte(formatted), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		// gofmt already accepted the source, keep its output
		return formatted, nil
	}
	return string(grouped), nil
}
