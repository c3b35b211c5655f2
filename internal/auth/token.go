package auth

import "github.com/google/uuid"

// TokenGenerator mints opaque session tokens. Implementations draw from a
// space large enough that collisions are cryptographically negligible; no
// uniqueness check against issued tokens is performed here.
type TokenGenerator interface {
	NewToken() string
}

// UUIDTokenGenerator issues UUIDv4 session tokens (122 bits of randomness).
type UUIDTokenGenerator struct{}

func (UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}
