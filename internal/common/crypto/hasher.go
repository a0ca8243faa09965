package crypto

import "golang.org/x/crypto/bcrypt"

// bcrypt salts per call, so equal passwords never share a stored hash.
const bcryptCost = 12

// PasswordHasher covers the two credential operations: hashing at account
// creation and comparison at login. Both failure paths of Compare look the
// same to callers.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type BcryptHasher struct{}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
