package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost factor used for all password hashes.
const HashCost = bcrypt.DefaultCost

// HashPassword hashes a password using bcrypt. The salt is generated and
// embedded in the returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks whether a password matches the given bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
