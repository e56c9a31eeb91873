package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stifskere/proofroute/internal/generator"
)

// Cleaner removes previously generated files. It resolves directories with
// the same scanner generation uses, so clean visits exactly the packages a
// generate run would touch.
type Cleaner struct {
	scanner *DirectoryScanner
}

// NewCleaner creates a new cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{scanner: NewDirectoryScanner()}
}

// Clean removes the generated file from every resolved directory and returns
// the paths it removed.
func (c *Cleaner) Clean(directories []string) ([]string, error) {
	dirs, err := c.scanner.ScanDirectories(directories)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, dir := range dirs {
		target := filepath.Join(dir, generator.GeneratedFileName)
		if _, err := os.Stat(target); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("failed to inspect %s: %w", target, err)
		}
		if err := os.Remove(target); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", target, err)
		}
		removed = append(removed, target)
	}
	return removed, nil
}
