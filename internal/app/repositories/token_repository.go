package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/pkg/apperrors"
	"github.com/placemate/placemate/internal/pkg/dberrors"
	"github.com/placemate/placemate/internal/pkg/logger"
)

// TokenRepository handles refresh token database operations. Rows are
// keyed by the token's jti, not the signed token string.
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create records a freshly issued refresh token
func (r *TokenRepository) Create(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token_id", "user_id", "expires_at", "is_revoked", "created_at").
		Values(tokenID, userID, expiresAt, false, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_id_key") {
			logger.Warn().Str("token_id", tokenID).Msg("Attempted to create duplicate refresh token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("user_id", userID).Msg("Error creating refresh token")
		return fmt.Errorf("error creating token: %w", err)
	}

	return nil
}

// GetByTokenID retrieves a live token row by jti. Revoked and expired
// rows surface as errors.
func (r *TokenRepository) GetByTokenID(ctx context.Context, tokenID string) (*models.RefreshToken, error) {
	sql, args, err := r.sb.Select("id", "user_id", "token_id", "expires_at", "is_revoked", "created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token_id": tokenID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	var token models.RefreshToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&token.ID, &token.UserID, &token.TokenID, &token.ExpiresAt, &token.IsRevoked, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving token: %w", err)
	}

	if token.IsRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if token.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	return &token, nil
}

// Revoke marks a token row revoked by jti
func (r *TokenRepository) Revoke(ctx context.Context, tokenID string) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"token_id": tokenID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// RevokeAllForUser revokes every live token belonging to a user
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke all query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error revoking user tokens: %w", err)
	}

	return nil
}

// DeleteExpired removes rows whose expiry is in the past
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
