package utils

import (
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "error with field",
			err: ValidationError{
				Field:   "module",
				Value:   "",
				Message: "cannot be empty",
			},
			expected: "validation error for field 'module': cannot be empty",
		},
		{
			name: "error without field",
			err: ValidationError{
				Message: "invalid format",
			},
			expected: "validation error: invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNotEmpty(t *testing.T) {
	validator := NotEmpty("test_field")

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid string", "hello", false},
		{"empty string", "", true},
		{"whitespace only", "   ", false}, // NotEmpty only checks for empty, not whitespace
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NotEmpty() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasPrefix(t *testing.T) {
	validator := HasPrefix("path", "./")

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"with prefix", "./internal", false},
		{"without prefix", "internal", true},
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("HasPrefix() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidGoIdentifier(t *testing.T) {
	validator := IsValidGoIdentifier("handler")

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple identifier", "GetNote", false},
		{"with underscore", "get_note", false},
		{"with digits", "handler2", false},
		{"empty string", "", true},
		{"starts with digit", "2handler", true},
		{"contains dash", "get-note", true},
		{"keyword", "func", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("IsValidGoIdentifier() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsOneOf(t *testing.T) {
	validator := IsOneOf("method", "GET", "POST", "DELETE")

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"allowed value", "GET", false},
		{"another allowed value", "DELETE", false},
		{"disallowed value", "CONNECT", true},
		{"case sensitive", "get", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("IsOneOf() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("error message lists allowed values", func(t *testing.T) {
		err := validator("CONNECT")
		if err == nil {
			t.Fatal("expected error for disallowed value")
		}
		if !strings.Contains(err.Error(), "must be one of") {
			t.Errorf("expected allowed values in message, got %q", err.Error())
		}
	})
}

func TestSliceNotEmpty(t *testing.T) {
	validator := SliceNotEmpty[string]("directories")

	tests := []struct {
		name    string
		value   []string
		wantErr bool
	}{
		{"non-empty slice", []string{"./internal"}, false},
		{"empty slice", []string{}, true},
		{"nil slice", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("SliceNotEmpty() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCustom(t *testing.T) {
	validator := Custom("port", "must be positive", func(v int) bool {
		return v > 0
	})

	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive value", 8080, false},
		{"zero", 0, true},
		{"negative value", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Custom() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("custom message is used", func(t *testing.T) {
		err := validator(0)
		if err == nil {
			t.Fatal("expected error for zero value")
		}
		if !strings.Contains(err.Error(), "must be positive") {
			t.Errorf("expected custom message, got %q", err.Error())
		}
	})
}

func TestValidatorChain(t *testing.T) {
	chain := NewValidatorChain(
		NotEmpty("name"),
		IsValidGoIdentifier("name"),
	)

	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"valid value", "GetNote", ""},
		{"empty fails first validator", "", "cannot be empty"},
		{"invalid identifier fails second validator", "get-note", "valid Go identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := chain.Validate(tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}

	t.Run("add appends validators", func(t *testing.T) {
		chain := NewValidatorChain(NotEmpty("prefix"))
		chain.Add(HasPrefix("prefix", "//"))

		if err := chain.Validate("//proof::route"); err != nil {
			t.Errorf("Validate() unexpected error: %v", err)
		}
		if err := chain.Validate("proof::route"); err == nil {
			t.Error("Validate() expected error for missing prefix")
		}
	})
}
