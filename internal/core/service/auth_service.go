package service

import (
	"context"
	"fmt"

	"github.com/lazcares/todo-api/internal/core/domain"
	"github.com/lazcares/todo-api/internal/core/ports"
)

// AuthService turns valid credentials into a signed bearer token. It holds
// no session state; the token is the only proof of authentication.
type AuthService struct {
	validator ports.CredentialValidator
	issuer    ports.TokenIssuer
}

func NewAuthService(validator ports.CredentialValidator, issuer ports.TokenIssuer) *AuthService {
	return &AuthService{validator: validator, issuer: issuer}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	identity, ok := s.validator.Validate(username, password)
	if !ok {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(*identity)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
