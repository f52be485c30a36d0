package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// Hasher hashes and verifies passwords with bcrypt. The produced hash is a
// modular-crypt string carrying algorithm, cost, salt and digest, so Verify
// needs nothing but the stored value.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given work factor. Values outside the
// range accepted by bcrypt fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost reports the work factor in use.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a freshly salted hash of password. The empty password is
// hashed like any other. The only failure is bcrypt's 72-byte input limit.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches hashedPassword. A malformed hash
// or a password longer than MaxPasswordBytes is reported as a mismatch.
func (h *Hasher) Verify(password, hashedPassword string) bool {
	if len(password) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
