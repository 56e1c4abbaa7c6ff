package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCode = errors.New("invalid code")
)

// Generate returns a random numeric one-time code with the given digit count.
// Leading zeros are preserved.
func Generate(digits int) (string, error) {
	if digits <= 0 {
		return "", errors.New("digit count must be positive")
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	return fmt.Sprintf("%0*d", digits, n), nil
}

// Hash generates a bcrypt hash of the one-time code for storage at rest.
func Hash(code string) (string, error) {
	if code == "" {
		return "", errors.New("code cannot be empty")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}

	return string(bytes), nil
}

// Verify checks if the provided code matches the stored hash
func Verify(code, hash string) error {
	if code == "" || hash == "" {
		return ErrInvalidCode
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCode
		}
		return fmt.Errorf("failed to verify code: %w", err)
	}

	return nil
}
