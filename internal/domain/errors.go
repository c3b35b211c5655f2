package domain

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrEmptyUpdate     = errors.New("account update carries no fields")
	ErrUnauthenticated = errors.New("session token does not resolve to an account")
)
