package shortlink

import "golang.org/x/crypto/bcrypt"

// VerifyPassword reports whether the plaintext candidate matches the stored
// bcrypt hash. The comparison is delegated to bcrypt, which is resistant to
// timing side channels. An empty stored hash never matches.
func VerifyPassword(hash, candidate string) bool {
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// HashPassword produces a bcrypt hash for a new link password. Hashing
// normally happens in the backend; this is used by the in-memory backend and
// by tests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
