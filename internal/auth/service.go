package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tbruns/accountd/internal/domain"
	"github.com/tbruns/accountd/internal/metrics"
)

// Service orchestrates registration, login validation, and the session
// lifecycle. All dependencies are injected at construction; the service holds
// no connection state of its own and is safe for concurrent use.
type Service struct {
	accounts domain.AccountRepository
	hasher   PasswordHasher
	tokens   TokenGenerator
}

func NewService(accounts domain.AccountRepository, hasher PasswordHasher, tokens TokenGenerator) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a new account for the email. It checks for an existing
// account first and returns domain.ErrEmailTaken if one is found; the unique
// constraint in the store is the backstop against concurrent registrations
// for the same email.
func (s *Service) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	_, err := s.accounts.GetByEmail(ctx, email)
	if err == nil {
		metrics.AuthOpsTotal.WithLabelValues("register", metrics.ResultRejected).Inc()
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		metrics.AuthOpsTotal.WithLabelValues("register", metrics.ResultFailure).Inc()
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		metrics.AuthOpsTotal.WithLabelValues("register", metrics.ResultFailure).Inc()
		return nil, err
	}

	account, err := s.accounts.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			// Lost the race against a concurrent registration.
			metrics.AuthOpsTotal.WithLabelValues("register", metrics.ResultRejected).Inc()
			return nil, domain.ErrEmailTaken
		}
		metrics.AuthOpsTotal.WithLabelValues("register", metrics.ResultFailure).Inc()
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	metrics.AuthOpsTotal.WithLabelValues("register", metrics.ResultSuccess).Inc()
	slog.Info("account registered", "account_id", account.ID.String())
	return account, nil
}

// ValidateLogin reports whether the credentials match a registered account.
// An unknown email and a wrong password both come back as plain false, so
// callers cannot enumerate accounts. Only infrastructure faults surface as
// errors.
func (s *Service) ValidateLogin(ctx context.Context, email, password string) (bool, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.AuthOpsTotal.WithLabelValues("login", metrics.ResultRejected).Inc()
			return false, nil
		}
		metrics.AuthOpsTotal.WithLabelValues("login", metrics.ResultFailure).Inc()
		return false, fmt.Errorf("failed to look up account: %w", err)
	}

	ok := s.hasher.Verify(password, account.PasswordHash)
	if ok {
		metrics.AuthOpsTotal.WithLabelValues("login", metrics.ResultSuccess).Inc()
	} else {
		metrics.AuthOpsTotal.WithLabelValues("login", metrics.ResultRejected).Inc()
	}
	return ok, nil
}

// CreateSession mints a fresh token and stores it on the account, replacing
// any prior token. At most one session is active per account; concurrent
// calls race and the last write wins. An unknown email returns
// domain.ErrAccountNotFound, which the transport layer renders as an absent
// token.
func (s *Service) CreateSession(ctx context.Context, email string) (string, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrAccountNotFound
		}
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	token := s.tokens.NewToken()
	update := domain.AccountUpdate{SetSessionToken: true, SessionToken: &token}
	if err := s.accounts.Update(ctx, account.ID, update); err != nil {
		return "", fmt.Errorf("failed to store session token: %w", err)
	}

	metrics.SessionsIssuedTotal.Inc()
	slog.Debug("session created", "account_id", account.ID.String())
	return token, nil
}

// DestroySession clears the token from whichever account holds it. An
// unknown or already-cleared token is a no-op success, so logout is
// idempotent.
func (s *Service) DestroySession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	account, err := s.accounts.GetBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up session: %w", err)
	}

	update := domain.AccountUpdate{SetSessionToken: true, SessionToken: nil}
	if err := s.accounts.Update(ctx, account.ID, update); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Account vanished between lookup and update; logout still holds.
			return nil
		}
		return fmt.Errorf("failed to clear session token: %w", err)
	}

	slog.Debug("session destroyed", "account_id", account.ID.String())
	return nil
}

// ResolveSession returns the account a token is assigned to, or
// domain.ErrUnauthenticated when the token is empty or unknown.
func (s *Service) ResolveSession(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	account, err := s.accounts.GetBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return account, nil
}
