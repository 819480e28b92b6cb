// Package identity provides the credential validator implementation.
//
// StaticValidator is a development placeholder: a fixed user set held in
// memory. Production deployments swap in a real identity backend behind
// ports.CredentialValidator; the contract (pure check, identity-or-absent)
// must be preserved.
package identity

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lazcares/todo-api/internal/core/domain"
)

type staticUser struct {
	identity     domain.Identity
	passwordHash []byte
}

// StaticValidator validates credentials against a fixed in-memory user set.
type StaticValidator struct {
	users     map[string]staticUser
	dummyHash []byte
}

// NewStaticValidator seeds the placeholder users. Password hashes are
// generated at construction so no plaintext outlives startup.
func NewStaticValidator() *StaticValidator {
	v := &StaticValidator{users: make(map[string]staticUser)}
	v.dummyHash = mustHash("decoy")

	v.seed(domain.Identity{ID: 1, FirstName: "Rolando", LastName: "Lazcares", Username: "rlazcares"}, "Test123")
	v.seed(domain.Identity{ID: 2, FirstName: "Sue", LastName: "Storm", Username: "sstorm"}, "Test123")

	return v
}

func (v *StaticValidator) seed(identity domain.Identity, password string) {
	v.users[identity.Username] = staticUser{identity: identity, passwordHash: mustHash(password)}
}

// Validate reports the identity matching the credentials, or absent. Empty
// or unknown input is a non-match, never an error.
func (v *StaticValidator) Validate(username, password string) (*domain.Identity, bool) {
	if username == "" || password == "" {
		return nil, false
	}

	user, ok := v.users[username]
	if !ok {
		// Unknown users pay the same bcrypt cost as a bad password.
		_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(password))
		return nil, false
	}

	if bcrypt.CompareHashAndPassword(user.passwordHash, []byte(password)) != nil {
		return nil, false
	}

	identity := user.identity
	return &identity, true
}

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("identity: hash seed password: %v", err))
	}
	return hash
}
