package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account is the persisted record identifying one registered user.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	// SessionToken is nil while no session is active. A non-nil token
	// identifies at most one account (unique index on the column).
	SessionToken *string
	// ResetToken is reserved for a future password-reset flow. No operation
	// reads or writes it today.
	ResetToken *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccountUpdate is the closed set of mutable account fields. A Set* flag must
// accompany its value so that clearing a token (write NULL) stays distinct
// from leaving it untouched.
type AccountUpdate struct {
	SetSessionToken bool
	SessionToken    *string

	SetResetToken bool
	ResetToken    *string
}

// Empty reports whether the update carries no fields.
func (u AccountUpdate) Empty() bool {
	return !u.SetSessionToken && !u.SetResetToken
}

// AccountRepository abstracts account persistence.
//
// Lookups report a miss with ErrAccountNotFound; callers branch on the error
// value rather than catching anything. Create is the final authority on email
// uniqueness and returns ErrEmailTaken on a duplicate even when the caller
// checked first.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetBySessionToken(ctx context.Context, token string) (*Account, error)
	Create(ctx context.Context, email, passwordHash string) (*Account, error)
	Update(ctx context.Context, accountID uuid.UUID, update AccountUpdate) error
}
