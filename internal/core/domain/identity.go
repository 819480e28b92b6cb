package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the canonical user record established at login. It is
// immutable once issued and never persisted by this service; the identity
// store lives behind the credential validator.
type Identity struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
}
