package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lazcares/todo-api/internal/core/domain"
)

// DefaultTokenTTL is the fixed token lifetime. There is no refresh
// mechanism; clients log in again once it elapses.
const DefaultTokenTTL = 5 * time.Minute

// TokenConfig carries the signing settings shared by issuance and
// verification. Both sides are built from the same value so they can
// never disagree on secret, issuer, or audience.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// identityClaims mirrors the claim set carried in every token.
type identityClaims struct {
	UniqueName string `json:"unique_name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. Verification checks
// signature, issuer, audience, and expiry; anything else fails closed.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

func NewTokenService(cfg TokenConfig) *TokenService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	s := &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
		now:      time.Now,
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s
}

// Issue signs a token for the identity. Expiry is issued-at plus the
// configured lifetime.
func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	now := s.now().UTC()
	claims := identityClaims{
		UniqueName: identity.Username,
		GivenName:  identity.FirstName,
		FamilyName: identity.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token and rebuilds the caller identity
// from its claims.
func (s *TokenService) Verify(raw string) (*domain.Identity, error) {
	claims := &identityClaims{}
	token, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token subject %q: %w", subject, err)
	}

	return &domain.Identity{
		ID:        id,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		Username:  claims.UniqueName,
	}, nil
}
