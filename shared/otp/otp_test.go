package otp_test

import (
	"errors"
	"strings"
	"testing"

	"trek/shared/otp"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name        string
		digits      int
		expectError bool
	}{
		{
			name:   "six digits",
			digits: 6,
		},
		{
			name:   "four digits",
			digits: 4,
		},
		{
			name:   "single digit",
			digits: 1,
		},
		{
			name:        "zero digits",
			digits:      0,
			expectError: true,
		},
		{
			name:        "negative digits",
			digits:      -3,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := otp.Generate(tt.digits)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got nil")
				}

				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(code) != tt.digits {
				t.Errorf("expected %d digits, got %d (%s)", tt.digits, len(code), code)
			}

			for _, c := range code {
				if c < '0' || c > '9' {
					t.Errorf("expected numeric code, got %s", code)

					break
				}
			}
		})
	}
}

func TestGenerate_PreservesLeadingZeros(t *testing.T) {
	// With enough samples at one digit, a zero shows up and must still be a
	// full-length code.
	for range 200 {
		code, err := otp.Generate(1)
		if err != nil {
			t.Fatalf("failed to generate code: %v", err)
		}

		if len(code) != 1 {
			t.Fatalf("expected single digit code, got %s", code)
		}
	}
}

func TestHashAndVerify(t *testing.T) {
	code, err := otp.Generate(6)
	if err != nil {
		t.Fatalf("failed to generate code: %v", err)
	}

	hash, err := otp.Hash(code)
	if err != nil {
		t.Fatalf("failed to hash code: %v", err)
	}

	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") && !strings.HasPrefix(hash, "$2y$") {
		t.Errorf("expected bcrypt hash format, got %s", hash)
	}

	if err := otp.Verify(code, hash); err != nil {
		t.Errorf("expected verification to succeed, got %v", err)
	}

	if err := otp.Verify("000000", hash); !errors.Is(err, otp.ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode for wrong code, got %v", err)
	}
}

func TestHash_EmptyCode(t *testing.T) {
	if _, err := otp.Hash(""); err == nil {
		t.Error("expected error for empty code")
	}
}

func TestVerify_EmptyInputs(t *testing.T) {
	hash, err := otp.Hash("123456")
	if err != nil {
		t.Fatalf("failed to hash code: %v", err)
	}

	if err := otp.Verify("", hash); !errors.Is(err, otp.ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode for empty code, got %v", err)
	}

	if err := otp.Verify("123456", ""); !errors.Is(err, otp.ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode for empty hash, got %v", err)
	}
}
