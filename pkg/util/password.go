package util

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost 12 keeps login latency tolerable while staying well above the
// bcrypt default.
const bcryptCost = 12

// HashPassword hashes an account password for storage
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the submitted password matches the
// stored hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
