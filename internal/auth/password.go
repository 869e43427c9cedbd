package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is bcrypt.DefaultCost (10). Raising it invalidates nothing: the
// cost travels inside each stored hash.
const hashCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password using bcrypt with a fresh random
// salt embedded in the result.
func HashPassword(password string) (string, error) {
	if len(password) == 0 {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password with a stored hash in
// constant time.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return errors.New("password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
