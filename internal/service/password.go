package service

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier is the opaque password hashing capability. The login
// path only ever needs verification; hashing new passwords happens in
// provisioning tooling outside this service.
type PasswordVerifier interface {
	Verify(plain, hash string) bool
}

type bcryptVerifier struct{}

// NewBcryptVerifier returns the bcrypt-backed password verifier.
func NewBcryptVerifier() PasswordVerifier {
	return bcryptVerifier{}
}

func (bcryptVerifier) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
