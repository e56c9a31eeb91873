package models

import (
	"errors"
	"testing"
)

// TestGeneratorErrorFormatting ensures errors render with their source
// position when one is known
func TestGeneratorErrorFormatting(t *testing.T) {
	err := NewValidationError("notes/errors.go", 14, "variant %s declared twice", "InvalidBody")
	want := "notes/errors.go:14: variant InvalidBody declared twice"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}

	fileOnly := &GeneratorError{Type: ErrorTypeFileSystem, File: "notes", Message: "not a directory"}
	if fileOnly.Error() != "notes: not a directory" {
		t.Errorf("Expected file-prefixed message, got %q", fileOnly.Error())
	}

	bare := &GeneratorError{Type: ErrorTypeGeneration, Message: "template failed"}
	if bare.Error() != "template failed" {
		t.Errorf("Expected bare message, got %q", bare.Error())
	}
}

// TestGeneratorErrorUnwrap ensures the cause chain survives wrapping
func TestGeneratorErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewFileSystemError("autogen_proof.go", "could not write file", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the underlying cause")
	}
}

// TestErrorSetHelpers ensures variant ordering and transformer detection
func TestErrorSetHelpers(t *testing.T) {
	set := &ErrorSetMetadata{
		Name: "UserError",
		Variants: []VariantMetadata{
			{Name: "InvalidBody", StatusIdent: "BadRequest", StatusConstant: "http.StatusBadRequest"},
			{Name: "SessionExpired", StatusIdent: "Unauthorized", StatusConstant: "http.StatusUnauthorized"},
			{Name: "Unknown", StatusConstant: "http.StatusInternalServerError"},
		},
	}

	if set.HasTransformer() {
		t.Error("Expected no transformer on a plain set")
	}

	names := set.VariantNames()
	if len(names) != 3 || names[0] != "InvalidBody" || names[2] != "Unknown" {
		t.Errorf("Expected declaration order to be preserved, got %v", names)
	}

	set.Transformer = "DecorateUserError"
	if !set.HasTransformer() {
		t.Error("Expected transformer to be detected")
	}
}

// TestRouteHelpers ensures wrapper naming and body parameter lookup
func TestRouteHelpers(t *testing.T) {
	route := &RouteMetadata{
		Method:      "POST",
		Path:        "/notes/{id:int}",
		HandlerName: "CreateNote",
		Parameters: []Parameter{
			{Name: "id", Type: "int", Source: ParameterSourcePath, Position: 0},
			{Name: "payload", Type: "NotePayload", Source: ParameterSourceBody, Position: 1},
		},
	}

	if route.WrapperName() != "proofRouteCreateNote" {
		t.Errorf("Expected wrapper name proofRouteCreateNote, got %s", route.WrapperName())
	}

	body := route.BodyParameter()
	if body == nil || body.Name != "payload" {
		t.Errorf("Expected body parameter payload, got %+v", body)
	}

	pathOnly := &RouteMetadata{
		HandlerName: "GetNote",
		Parameters: []Parameter{
			{Name: "id", Type: "int", Source: ParameterSourcePath},
		},
	}
	if pathOnly.BodyParameter() != nil {
		t.Error("Expected no body parameter")
	}
}

// TestPackageMetadataLookup ensures error set lookup by name
func TestPackageMetadataLookup(t *testing.T) {
	pkg := &PackageMetadata{
		PackageName: "notes",
		ErrorSets: []ErrorSetMetadata{
			{Name: "NoteError"},
			{Name: "AdminError"},
		},
	}

	if pkg.ErrorSet("AdminError") == nil {
		t.Error("Expected AdminError to be found")
	}
	if pkg.ErrorSet("Missing") != nil {
		t.Error("Expected Missing to be absent")
	}
	if !pkg.HasGeneratedContent() {
		t.Error("Expected package with error sets to need generation")
	}

	empty := &PackageMetadata{PackageName: "util"}
	if empty.HasGeneratedContent() {
		t.Error("Expected empty package to be skipped")
	}
}
