package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the given plaintext password with bcrypt using the
// default cost factor.
//
// The resulting hash embeds its own salt and cost, so it can be stored
// directly and later verified with CheckPasswordHash.
//
// Parameters:
//
//	password - plaintext password to hash
//
// Returns:
//
//	string - bcrypt hash in its standard encoded form
//	error  - non-nil if hashing fails (e.g. password exceeds 72 bytes)
//
// Example usage:
//
//	hash, err := utils.HashPassword("s3cret")
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hashed), nil
}

// CheckPasswordHash reports whether the given plaintext password matches the
// stored bcrypt hash.
//
// Comparison is constant-time inside bcrypt; a mismatch and a malformed hash
// are both reported as false.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
