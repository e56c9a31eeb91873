package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stifskere/proofroute/internal/utils"
)

// ModuleResolver determines the module name of the scanned project and
// translates package directories into import paths relative to it.
type ModuleResolver struct {
	// workingDir is the module root once ResolveModuleName has run. Import
	// paths are built relative to it.
	workingDir string
}

// NewModuleResolver creates a new module resolver.
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// ResolveModuleName returns customModuleName when provided, otherwise the
// module path declared by the nearest go.mod above the current directory.
func (r *ModuleResolver) ResolveModuleName(customModuleName string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if customModuleName != "" {
		r.workingDir = wd
		return customModuleName, nil
	}

	goModPath, err := utils.FindGoMod(wd)
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider using --module flag)", err)
	}
	moduleName, err := utils.ModulePath(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider using --module flag)", err)
	}

	r.workingDir = filepath.Dir(goModPath)
	return moduleName, nil
}

// BuildPackagePath builds the import path of packageDir under moduleName.
// The module root itself maps to the bare module name.
func (r *ModuleResolver) BuildPackagePath(moduleName, packageDir string) (string, error) {
	root := r.workingDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(packageDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", packageDir, err)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", packageDir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("package %s is outside module root %s", packageDir, root)
	}

	if rel == "." {
		return moduleName, nil
	}
	return moduleName + "/" + filepath.ToSlash(rel), nil
}
