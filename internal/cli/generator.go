// Package cli wires the scanner, parser, registry and code generator into
// the pipeline behind the proofroute command.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stifskere/proofroute/internal/generator"
	"github.com/stifskere/proofroute/internal/models"
	"github.com/stifskere/proofroute/internal/parser"
	"github.com/stifskere/proofroute/internal/registry"
	"github.com/stifskere/proofroute/internal/utils"
)

// Generator orchestrates a full generation run: scan directories, parse
// annotations, register custom parsers, classify route parameters and write
// one generated file per package.
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	cleaner        *Cleaner
	parser         *parser.Parser
	codeGenerator  *generator.Generator
	parsers        registry.ParserRegistryInterface
	diagnostics    *utils.DiagnosticSystem
	summary        models.GenerationSummary
}

// NewGenerator creates a generator that reports through diagnostics.
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		cleaner:        NewCleaner(),
		parser:         parser.NewParser(),
		codeGenerator:  generator.NewGenerator(),
		parsers:        registry.NewParserRegistry(),
		diagnostics:    diagnostics,
	}
}

// Run executes the generation pipeline for the given configuration.
func (g *Generator) Run(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	g.diagnostics.Header("generating route wrappers")

	moduleName, err := g.moduleResolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		return err
	}
	g.diagnostics.Verbose("resolved module name %s", moduleName)

	dirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no Go packages found in %s", strings.Join(config.Directories, ", "))
	}

	packages, err := g.scanPackages(moduleName, dirs)
	if err != nil {
		return err
	}
	if err := g.registerParsers(packages); err != nil {
		return err
	}
	if err := g.finalizeRoutes(packages); err != nil {
		return err
	}
	if err := g.writePackages(packages); err != nil {
		return err
	}

	g.diagnostics.Summary("Generation complete", []string{
		"packages", "error sets", "routes", "parsers", "files written",
	}, map[string]int{
		"packages":      g.summary.PackagesScanned,
		"error sets":    g.summary.ErrorSets,
		"routes":        g.summary.Routes,
		"parsers":       g.summary.Parsers,
		"files written": g.summary.FilesWritten,
	})
	return nil
}

// Clean removes previously generated files from the configured directories.
func (g *Generator) Clean(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	g.diagnostics.Header("removing generated files")

	removed, err := g.cleaner.Clean(config.Directories)
	for _, path := range removed {
		g.diagnostics.Item("removed %s", path)
	}
	if err != nil {
		return err
	}
	g.summary.FilesRemoved = len(removed)

	g.diagnostics.Summary("Clean complete", []string{"files removed"}, map[string]int{
		"files removed": g.summary.FilesRemoved,
	})
	return nil
}

// scanPackages parses every directory into package metadata. Import paths
// are resolved before parsing because parser declarations capture the import
// path of their package at scan time.
func (g *Generator) scanPackages(moduleName string, dirs []string) ([]*models.PackageMetadata, error) {
	g.diagnostics.Section("Packages")

	packages := make([]*models.PackageMetadata, 0, len(dirs))
	for _, dir := range dirs {
		importPath, err := g.moduleResolver.BuildPackagePath(moduleName, dir)
		if err != nil {
			return nil, err
		}
		pkg, err := g.parser.ParseDirectory(dir, importPath)
		if err != nil {
			return nil, err
		}
		g.diagnostics.List("%s", importPath)
		packages = append(packages, pkg)
		g.summary.PackagesScanned++
	}
	return packages, nil
}

// registerParsers makes every scanned custom parser visible to route
// classification. Registration covers all packages before any route is
// classified, so a route may use a parser declared in a package scanned
// after its own.
func (g *Generator) registerParsers(packages []*models.PackageMetadata) error {
	for _, pkg := range packages {
		for _, parserMeta := range pkg.Parsers {
			if err := g.parsers.RegisterParser(parserMeta); err != nil {
				return utils.WrapRegisterError("parser "+parserMeta.TypeName, err)
			}
			g.diagnostics.Verbose("registered parser %s for type %s", parserMeta.FunctionName, parserMeta.TypeName)
			g.summary.Parsers++
		}
	}
	return nil
}

func (g *Generator) finalizeRoutes(packages []*models.PackageMetadata) error {
	for _, pkg := range packages {
		if err := g.parser.FinalizeRoutes(pkg, g.parsers); err != nil {
			return err
		}
		g.summary.ErrorSets += len(pkg.ErrorSets)
		g.summary.Routes += len(pkg.Routes)
	}
	return nil
}

func (g *Generator) writePackages(packages []*models.PackageMetadata) error {
	for _, pkg := range packages {
		file, err := g.codeGenerator.Generate(pkg)
		if err != nil {
			return utils.WrapGenerateError(pkg.PackagePath, err)
		}
		if file == nil {
			g.diagnostics.Verbose("skipped %s, no annotations", pkg.PackagePath)
			continue
		}

		target := filepath.Join(file.PackagePath, file.FileName)
		if err := os.WriteFile(target, []byte(file.Content), 0644); err != nil {
			return utils.WrapWriteError(target, err)
		}
		g.diagnostics.Item("wrote %s", target)
		g.summary.FilesWritten++
	}
	return nil
}
