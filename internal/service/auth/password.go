package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier checks a plaintext password against a stored hash.
// The login handler depends on this seam so tests can skip real bcrypt.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier is the production PasswordVerifier.
type BcryptVerifier struct{}

// NewBcryptVerifier returns a bcrypt-backed verifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements PasswordVerifier.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
