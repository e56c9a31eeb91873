package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestModulePath(t *testing.T) {
	dir := t.TempDir()
	goModPath := filepath.Join(dir, "go.mod")
	content := "module example.com/testapp\n\ngo 1.25\n"
	if err := os.WriteFile(goModPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}

	moduleName, err := ModulePath(goModPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moduleName != "example.com/testapp" {
		t.Errorf("expected example.com/testapp, got %s", moduleName)
	}
}

func TestModulePath_MissingModule(t *testing.T) {
	dir := t.TempDir()
	goModPath := filepath.Join(dir, "go.mod")
	if err := os.WriteFile(goModPath, []byte("go 1.25\n"), 0644); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}

	_, err := ModulePath(goModPath)
	if err == nil {
		t.Fatal("expected error for go.mod without module declaration")
	}
	if !strings.Contains(err.Error(), "no module declaration") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFindGoMod(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "internal", "handlers")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	goModPath := filepath.Join(root, "go.mod")
	if err := os.WriteFile(goModPath, []byte("module example.com/app\n"), 0644); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}

	found, err := FindGoMod(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != goModPath {
		t.Errorf("expected %s, got %s", goModPath, found)
	}
}

func TestFindGoMod_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := FindGoMod(dir)
	if err == nil {
		t.Fatal("expected error when no go.mod exists")
	}
	if !strings.Contains(err.Error(), "go.mod file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}
