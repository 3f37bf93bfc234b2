package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost balances login latency against brute-force resistance; the
// default cost is fine for a swipe app's login rate.
const bcryptCost = bcrypt.DefaultCost

// HashPassword bcrypt-hashes a plaintext password for storage.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the stored hash.
func CompareHashAndPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
