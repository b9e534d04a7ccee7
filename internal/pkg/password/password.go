// Package password wraps bcrypt hashing with a configurable work factor so
// tests can run at the minimum cost while production stays at a slow one.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the production work factor.
const DefaultCost = 12

// MinCost is the cheapest factor bcrypt accepts; use it in tests.
const MinCost = bcrypt.MinCost

type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Out-of-range costs
// fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted digest from the plaintext.
func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. An empty digest (password
// never set) verifies nothing.
func (h *Hasher) Verify(plain, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
