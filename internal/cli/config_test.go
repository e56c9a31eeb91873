package cli

import (
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		errorMsg string
	}{
		{
			name:   "valid minimal",
			config: Config{Directories: []string{"."}},
		},
		{
			name:   "valid with module and verbose",
			config: Config{Directories: []string{"./..."}, ModuleName: "example.com/app", Verbose: true},
		},
		{
			name:     "no directories",
			config:   Config{},
			errorMsg: "directories",
		},
		{
			name:     "empty directory entry",
			config:   Config{Directories: []string{"api", ""}},
			errorMsg: "directories[1]",
		},
		{
			name:     "invalid module path",
			config:   Config{Directories: []string{"."}, ModuleName: "bad path!"},
			errorMsg: "module",
		},
		{
			name:     "verbose and quiet together",
			config:   Config{Directories: []string{"."}, Verbose: true, Quiet: true},
			errorMsg: "cannot be combined with quiet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.errorMsg == "" {
				if err != nil {
					t.Fatalf("Validate() returned unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.errorMsg)
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errorMsg)
			}
		})
	}
}
