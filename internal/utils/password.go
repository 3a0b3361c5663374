package utils

import "golang.org/x/crypto/bcrypt"

// Account passwords are stored as bcrypt hashes; the cost comes from
// BCRYPT_COST so test setups can run cheap while production runs slow.

// HashPassword hashes a plaintext password at the given bcrypt cost.
// A cost outside bcrypt's valid range falls back to the library default
// rather than failing signup over a misconfigured variable.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash.  The
// comparison is constant-time inside bcrypt.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
