package services

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks admin credentials.
type Verifier interface {
	Verify(username, password string) bool
}

// PlainVerifier compares against a configured username and password.
type PlainVerifier struct {
	Username string
	Password string
}

func (v PlainVerifier) Verify(username, password string) bool {
	if v.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	return userOK && passOK
}

// BcryptVerifier compares the password against a bcrypt hash. Do not log the
// plain password.
type BcryptVerifier struct {
	Username string
	Hash     string
}

func (v BcryptVerifier) Verify(username, password string) bool {
	if v.Hash == "" || subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(v.Hash), []byte(password)) == nil
}

// HashPassword returns a bcrypt hash suitable for BcryptVerifier.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}
