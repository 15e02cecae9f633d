package hash

import (
	"golang.org/x/crypto/bcrypt"

	"propertyhub-api/pkg/config"
)

var cost = bcrypt.DefaultCost

// Initialize sets the bcrypt cost used for all subsequent hashing. Called once
// at startup; verification reads the cost from the stored hash, so existing
// credentials remain valid across cost changes.
func Initialize(cfg *config.BcryptConfig) {
	if cfg.Cost >= bcrypt.MinCost && cfg.Cost <= bcrypt.MaxCost {
		cost = cfg.Cost
	}
}

// Password produces a salted one-way hash of the plaintext password. Handlers
// call this explicitly before every persistence of a changed password.
func Password(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether the plaintext candidate matches the stored hash.
func Compare(hashed, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(candidate)) == nil
}
