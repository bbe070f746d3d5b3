package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied to every stored password.
const bcryptCost = 10

// ErrEmptyPassword is returned when asked to hash an empty string.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword generates a salted bcrypt digest of the plaintext.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// CheckPassword reports whether the plaintext matches the stored digest.
// A malformed digest counts as a mismatch; no error is surfaced.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
