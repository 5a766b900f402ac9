package errors

import (
	"strings"
	"testing"
)

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", strings.Repeat("0a", 32), false},
		{"valid with prefix", "0x" + strings.Repeat("ff", 32), false},
		{"short", "abcd", true},
		{"non hex", strings.Repeat("g", 64), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeed(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSeed) {
				t.Errorf("ParseSeed(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidSeed)
			}
		})
	}
}

func TestNormalizeTokenID(t *testing.T) {
	maxU256 := "115792089237316195423570985008687907853269984665640564039457584007913129639935"

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"zero", "0", "0", false},
		{"simple", "42", "42", false},
		{"leading zeros", "007", "7", false},
		{"all zeros", "000", "0", false},
		{"whitespace", " 12 ", "12", false},
		{"max uint256", maxU256, maxU256, false},

		{"empty", "", "", true},
		{"negative", "-1", "", true},
		{"hex", "0x10", "", true},
		{"decimal point", "1.5", "", true},
		{"overflow", maxU256[:len(maxU256)-1] + "6", "", true},
		{"path traversal", "../1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTokenID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeTokenID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeTokenID(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if err != nil && !Is(err, ErrCodeInvalidToken) {
				t.Errorf("NormalizeTokenID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidToken)
			}
		})
	}
}
