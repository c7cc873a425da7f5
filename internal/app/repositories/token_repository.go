package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

// TokenRepository manages refresh tokens in the database
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
	}
}

// CreateRefreshToken stores a new refresh token for a user
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expiry_date)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, userID, token, expiryDate)
	if err != nil {
		return fmt.Errorf("error creating refresh token: %w", err)
	}

	return nil
}

// GetRefreshToken retrieves the user ID and expiry for a refresh token
func (r *TokenRepository) GetRefreshToken(ctx context.Context, token string) (int64, time.Time, error) {
	query := `
		SELECT user_id, expiry_date
		FROM refresh_tokens
		WHERE token = $1
	`

	var userID int64
	var expiryDate time.Time

	err := r.db.QueryRow(ctx, query, token).Scan(&userID, &expiryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, time.Time{}, apperrors.ErrTokenNotFound
		}
		return 0, time.Time{}, fmt.Errorf("error retrieving refresh token: %w", err)
	}

	return userID, expiryDate, nil
}

// DeleteRefreshToken removes a refresh token (rotation and logout)
func (r *TokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE token = $1
	`

	_, err := r.db.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}

	return nil
}

// DeleteTokensByUserID removes all refresh tokens for a user
func (r *TokenRepository) DeleteTokensByUserID(ctx context.Context, userID int64) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE user_id = $1
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("error deleting refresh tokens for user: %w", err)
	}

	return nil
}

// DeleteExpiredTokens removes all expired refresh tokens
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE expiry_date < $1
	`

	_, err := r.db.Exec(ctx, query, time.Now())
	if err != nil {
		return fmt.Errorf("error deleting expired refresh tokens: %w", err)
	}

	return nil
}
