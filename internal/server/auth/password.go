package auth

import "golang.org/x/crypto/bcrypt"

// hashCost is bcrypt's default work factor (10). High enough to resist
// offline brute force, low enough to keep login latency acceptable.
const hashCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password. The resulting string embeds
// its own salt and cost, so verification needs no extra state.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash.
// A malformed hash is treated as a mismatch, never as an error.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
