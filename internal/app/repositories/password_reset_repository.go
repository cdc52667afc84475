package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

// PasswordResetToken is a single-use token row from the
// password_reset_tokens table.
type PasswordResetToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Used      bool
}

// PasswordResetRepository handles database operations for password
// reset tokens.
type PasswordResetRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Create stores a fresh token for a user, invalidating any tokens the
// user still has outstanding.
func (r *PasswordResetRepository) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE user_id = $1 AND used = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("error invalidating reset tokens: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO password_reset_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}
	return nil
}

// Get retrieves a token row by its value.
func (r *PasswordResetRepository) Get(ctx context.Context, token string) (*PasswordResetToken, error) {
	var t PasswordResetToken
	err := r.db.QueryRow(ctx, `
		SELECT token_id, user_id, token, expires_at, used
		FROM password_reset_tokens
		WHERE token = $1`,
		token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving reset token: %w", err)
	}
	return &t, nil
}

// MarkUsed consumes a token so it cannot be replayed.
func (r *PasswordResetRepository) MarkUsed(ctx context.Context, tokenID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE token_id = $1`, tokenID)
	if err != nil {
		return fmt.Errorf("error consuming reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
