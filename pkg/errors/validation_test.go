package errors

import (
	"strings"
	"testing"
)

func TestValidateEnvelopeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "x", false},
		{"valid slug", "ops_overview-2", false},
		{"valid uuid", "6f1c1e4e-2f3b-4c1a-9a57-8e0e2c1d7f00", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"space", "my dash", true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
		{"quote", `a"b`, true},
		{"angle bracket", "a<b", true},
		{"ampersand", "a&b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEnvelopeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEnvelopeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateEnvelopeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateFormatName(t *testing.T) {
	valid := []string{"studio", "envelope", "simplexml"}

	if err := ValidateFormatName("studio", valid...); err != nil {
		t.Errorf("ValidateFormatName(studio) error = %v", err)
	}

	err := ValidateFormatName("STUDIO", valid...)
	if err == nil {
		t.Fatal("ValidateFormatName should be case-sensitive")
	}
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
	}
}
