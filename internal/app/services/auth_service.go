package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/pkg/apperrors"
	"github.com/placemate/placemate/internal/pkg/auth"
)

// UserStore is the identity access the auth service needs
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
}

// TokenStore tracks issued refresh tokens for rotation and revocation
type TokenStore interface {
	Create(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error
	GetByTokenID(ctx context.Context, tokenID string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, tokenID string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// AuthService handles authentication and session issue
type AuthService struct {
	userRepo   UserStore
	tokenRepo  TokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, tokenRepo TokenStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies credentials. A user with exactly one role gets a session
// directly; a multi-role user gets a role-selection payload and no tokens;
// a user with no roles is refused.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, *dto.RoleSelectionResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	switch len(user.Roles) {
	case 0:
		return nil, nil, apperrors.ErrNoRolesAssigned
	case 1:
		session, err := s.issueSession(ctx, user, user.Roles[0])
		if err != nil {
			return nil, nil, err
		}
		return session, nil, nil
	default:
		return nil, &dto.RoleSelectionResponse{
			UserID:                user.ID,
			Email:                 user.Email,
			FirstName:             user.FirstName,
			AvailableRoles:        user.Roles,
			RequiresRoleSelection: true,
		}, nil
	}
}

// SelectRole issues a session for a multi-role user after they picked
// the role to operate as
func (s *AuthService) SelectRole(ctx context.Context, userID int64, role string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if !user.HasRole(role) {
		return nil, apperrors.ErrRoleNotAssigned
	}

	return s.issueSession(ctx, user, role)
}

// Refresh rotates a refresh token: the presented token must verify and
// have a live DB row, the row is revoked, and a fresh pair is issued for
// the same active role re-checked against current assignments.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	stored, err := s.tokenRepo.GetByTokenID(ctx, claims.ID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Revoke(ctx, stored.TokenID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if !user.HasRole(claims.ActiveRole) {
		return nil, apperrors.ErrRoleNotAssigned
	}

	return s.issueSession(ctx, user, claims.ActiveRole)
}

// Logout revokes the presented refresh token. Missing, expired or already
// revoked tokens are not an error, logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil
	}

	if err := s.tokenRepo.Revoke(ctx, claims.ID); err != nil {
		s.logger.Debug().Err(err).Msg("Logout revoke skipped")
	}

	return nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every outstanding refresh token for the user
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to revoke sessions after password change")
	}

	return nil
}

// PurgeExpiredTokens removes refresh tokens past their expiry. Run
// periodically; revoked rows are kept until they expire so reuse of a
// rotated token stays detectable.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) error {
	deleted, err := s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("Purged expired refresh tokens")
	}
	return nil
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User, activeRole string) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Roles, activeRole)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Create(ctx, pair.RefreshTokenID, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("Failed to update last login")
	}

	return &dto.TokenResponse{
		AccessToken:    pair.AccessToken,
		RefreshToken:   pair.RefreshToken,
		TokenType:      "Bearer",
		ExpiresIn:      pair.ExpiresIn,
		ActiveRole:     activeRole,
		AvailableRoles: user.Roles,
		User:           dto.NewUserResponse(user),
	}, nil
}
