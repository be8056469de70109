package types

import (
	"strings"
	"testing"
)

func TestHash256_IsZero(t *testing.T) {
	var zero Hash256
	if !zero.IsZero() {
		t.Error("zero-value Hash256 should be zero")
	}

	nonZero := Hash256{0x01}
	if nonZero.IsZero() {
		t.Error("non-zero Hash256 should not be zero")
	}
}

func TestHash256_String(t *testing.T) {
	var h Hash256
	s := h.String()
	if len(s) != 64 {
		t.Errorf("String() length = %d, want 64", len(s))
	}
	if s != strings.Repeat("0", 64) {
		t.Errorf("zero hash String() = %s, want all zeros", s)
	}

	h[0] = 0xab
	h[31] = 0xcd
	s = h.String()
	if !strings.HasPrefix(s, "ab") {
		t.Errorf("String() should start with 'ab', got %s", s[:2])
	}
	if !strings.HasSuffix(s, "cd") {
		t.Errorf("String() should end with 'cd', got %s", s[62:])
	}
}

func TestHash256_Bytes(t *testing.T) {
	h := Hash256{0x01, 0x02, 0x03}
	b := h.Bytes()

	if len(b) != Hash256Size {
		t.Errorf("Bytes() length = %d, want %d", len(b), Hash256Size)
	}
	if b[0] != 0x01 || b[1] != 0x02 || b[2] != 0x03 {
		t.Errorf("Bytes() content mismatch")
	}

	b[0] = 0xFF
	if h[0] == 0xFF {
		t.Error("Bytes() should return a copy, not a reference")
	}
}

func TestHash256_LessOrEqual(t *testing.T) {
	low := Hash256{0x00, 0x01}
	high := Hash256{0x00, 0x02}

	if !low.LessOrEqual(high) {
		t.Error("low should be <= high")
	}
	if high.LessOrEqual(low) {
		t.Error("high should not be <= low")
	}
	if !low.LessOrEqual(low) {
		t.Error("a hash should be <= itself")
	}
}

func TestHexToHash256(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid 64 hex chars",
			input: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
		{
			name:  "all zeros",
			input: strings.Repeat("0", 64),
		},
		{
			name:    "too short",
			input:   "abcd",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   strings.Repeat("a", 66),
			wantErr: true,
		},
		{
			name:    "invalid hex character",
			input:   strings.Repeat("g", 64),
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := HexToHash256(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("HexToHash256(%q) should have returned error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("HexToHash256(%q) unexpected error: %v", tt.input, err)
			}
			if h.String() != tt.input {
				t.Errorf("roundtrip: got %s, want %s", h.String(), tt.input)
			}
		})
	}
}
