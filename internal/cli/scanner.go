package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stifskere/proofroute/internal/utils"
)

// DirectoryScanner expands the directory arguments of a run into the list of
// package directories to parse.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner.
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves each argument to package directories. An argument
// ending in "..." is walked recursively and contributes every directory that
// holds at least one non-test Go file; a plain argument is included as given
// so that a directory without Go sources fails later with a precise error.
// The result is cleaned, deduplicated and sorted.
func (s *DirectoryScanner) ScanDirectories(directories []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			result = append(result, dir)
		}
	}

	for _, dir := range directories {
		if strings.HasSuffix(dir, "...") {
			root := filepath.Clean(strings.TrimSuffix(dir, "..."))
			if root == "" {
				root = "."
			}
			expanded, err := s.expandRecursive(root)
			if err != nil {
				return nil, utils.WrapScanError(dir, err)
			}
			for _, sub := range expanded {
				add(sub)
			}
			continue
		}

		info, err := os.Stat(dir)
		if err != nil {
			return nil, utils.WrapScanError(dir, err)
		}
		if !info.IsDir() {
			return nil, utils.WrapScanError(dir, errors.New("not a directory"))
		}
		add(dir)
	}

	sort.Strings(result)
	return result, nil
}

// expandRecursive walks root and collects the directories that contain Go
// sources. It skips vendor trees, testdata and any directory the Go toolchain
// itself would ignore (names starting with "." or "_").
func (s *DirectoryScanner) expandRecursive(root string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (name == "vendor" || name == "testdata" ||
			strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}
		hasGo, err := hasGoFiles(path)
		if err != nil {
			return err
		}
		if hasGo {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

// hasGoFiles reports whether dir directly contains a buildable Go file.
func hasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			return true, nil
		}
	}
	return false, nil
}
