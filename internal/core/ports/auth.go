package ports

import (
	"context"

	"github.com/lazcares/todo-api/internal/core/domain"
)

// CredentialValidator checks a username/password pair against an identity
// source. It is a pure function: absent, empty, or mismatched input yields
// (nil, false), never an error.
type CredentialValidator interface {
	Validate(username, password string) (*domain.Identity, bool)
}

// TokenIssuer produces a signed, time-bounded bearer token for an identity.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// TokenVerifier validates a raw bearer token and extracts the caller identity.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// AuthService authenticates credentials and returns a bearer token.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}
