package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tbruns/accountd/internal/domain"
)

// accountColumns must match the Scan order in scanAccount.
const accountColumns = `id, email, password_hash, session_token, reset_token, created_at, updated_at`

// AccountRepo implements domain.AccountRepository backed by PostgreSQL.
type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID, &account.Email, &account.PasswordHash,
		&account.SessionToken, &account.ResetToken,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email))
}

func (r *AccountRepo) GetBySessionToken(ctx context.Context, token string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE session_token = $1`, token))
}

func (r *AccountRepo) Create(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash)
		VALUES ($1, $2)
		RETURNING `+accountColumns+`
	`, email, passwordHash))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, domain.ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Update writes the fields carried by the update. The field set is closed at
// compile time; an update with nothing set is rejected before touching the
// pool.
func (r *AccountRepo) Update(ctx context.Context, accountID uuid.UUID, update domain.AccountUpdate) error {
	if update.Empty() {
		return domain.ErrEmptyUpdate
	}

	assignments := []string{"updated_at = now()"}
	args := []any{}

	if update.SetSessionToken {
		args = append(args, update.SessionToken)
		assignments = append(assignments, fmt.Sprintf("session_token = $%d", len(args)))
	}
	if update.SetResetToken {
		args = append(args, update.ResetToken)
		assignments = append(assignments, fmt.Sprintf("reset_token = $%d", len(args)))
	}

	args = append(args, accountID)
	query := fmt.Sprintf(`UPDATE accounts SET %s WHERE id = $%d`,
		strings.Join(assignments, ", "), len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
