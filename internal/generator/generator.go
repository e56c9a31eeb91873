// Package generator turns scanned package metadata into generated source:
// error set renderers, dispatch wrappers and route registrations, one
// autogen file per package.
package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/stifskere/proofroute/internal/models"
	"github.com/stifskere/proofroute/internal/utils"
)

// GeneratedFileName is the base name of every generated file. The cleaner
// matches on it when removing stale output.
const GeneratedFileName = "autogen_proof.go"

// proofImportPath is the runtime package generated code calls into.
const proofImportPath = "github.com/stifskere/proofroute/pkg/proof"

// Generator emits Go source from scanned package metadata.
type Generator struct{}

// NewGenerator creates a new code generator instance.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the file for one package. Packages without proof
// annotations produce no file and return nil.
func (g *Generator) Generate(metadata *models.PackageMetadata) (*models.GeneratedFile, error) {
	if metadata == nil {
		return nil, fmt.Errorf("metadata cannot be nil")
	}
	if !metadata.HasGeneratedContent() {
		return nil, nil
	}

	imports := newImportManager()
	var content strings.Builder

	for i := range metadata.ErrorSets {
		code, err := g.generateErrorSet(&metadata.ErrorSets[i], imports)
		if err != nil {
			return nil, err
		}
		content.WriteString(code)
		content.WriteString("\n")
	}

	owners := variantOwners(metadata)
	for i := range metadata.Routes {
		code, err := g.generateRoute(&metadata.Routes[i], owners, imports)
		if err != nil {
			return nil, err
		}
		content.WriteString(code)
		content.WriteString("\n")
	}

	if len(metadata.Routes) > 0 {
		code, err := g.generateRegistration(metadata, imports)
		if err != nil {
			return nil, err
		}
		content.WriteString(code)
	}

	// Assemble the file last so the import block covers everything the
	// body ended up referencing.
	var file strings.Builder
	file.WriteString("// Code generated by proofroute. DO NOT EDIT.\n")
	file.WriteString("// This file was automatically generated and should not be modified manually.\n\n")
	file.WriteString(fmt.Sprintf("package %s\n\n", metadata.PackageName))
	file.WriteString(imports.render())
	file.WriteString("\n")
	file.WriteString(content.String())

	formatted, err := utils.FormatGeneratedSource(GeneratedFileName, file.String())
	if err != nil {
		return nil, models.NewGenerationError(
			filepath.Join(metadata.PackagePath, GeneratedFileName),
			"generated source does not format", err)
	}

	return &models.GeneratedFile{
		PackagePath: metadata.PackagePath,
		FileName:    GeneratedFileName,
		Content:     formatted,
	}, nil
}
