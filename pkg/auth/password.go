// Package auth holds credential helpers for user accounts.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for new hashes.
var Cost = bcrypt.DefaultCost

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	return string(b), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
