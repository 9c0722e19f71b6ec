// Package credentials derives and verifies one-way password hashes.
// Plaintext passwords are never persisted or exposed.
package credentials

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/tjarju/bank-users-go/errors"
)

type Manager struct {
	cost int
}

// NewManager returns a manager hashing at the given bcrypt cost. A cost
// outside bcrypt's supported range falls back to the library default.
func NewManager(cost int) *Manager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Manager{cost: cost}
}

// Hash derives a salted one-way hash from plaintext. The salt is generated
// per call and embedded in the stored value. Empty plaintext is rejected.
func (m *Manager) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.NewWeakCredentialError()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), m.cost)
	if err != nil {
		return "", errors.NewFatalError(err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. bcrypt's comparison is
// constant-time with respect to the hash output.
func (m *Manager) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
