package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/pkg/apperrors"
	"github.com/placemate/placemate/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 7 * 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newAuthService(t *testing.T) (*AuthService, *mockUserStore, *mockTokenStore) {
	t.Helper()
	users := new(mockUserStore)
	tokens := new(mockTokenStore)
	svc := NewAuthService(users, tokens, newTestJWTService(), zerolog.Nop())
	return svc, users, tokens
}

func activeUser(t *testing.T, roles ...string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword("correct-password")
	require.NoError(t, err)
	return &models.User{
		ID:        7,
		Email:     "jane.doe@university.edu",
		Password:  hashed,
		FirstName: "Jane",
		LastName:  "Doe",
		IsActive:  true,
		Roles:     roles,
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "nobody@university.edu").Return(nil, apperrors.ErrUserNotFound)

	_, _, err := svc.Login(ctx, "nobody@university.edu", "whatever")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "jane.doe@university.edu").Return(activeUser(t, models.RoleStudent), nil)

	_, _, err := svc.Login(ctx, "jane.doe@university.edu", "wrong-password")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	user := activeUser(t, models.RoleStudent)
	user.IsActive = false
	users.On("GetByEmail", ctx, "jane.doe@university.edu").Return(user, nil)

	_, _, err := svc.Login(ctx, "jane.doe@university.edu", "correct-password")

	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestLoginNoRoles(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "jane.doe@university.edu").Return(activeUser(t), nil)

	_, _, err := svc.Login(ctx, "jane.doe@university.edu", "correct-password")

	assert.ErrorIs(t, err, apperrors.ErrNoRolesAssigned)
}

func TestLoginSingleRoleIssuesSession(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "jane.doe@university.edu").Return(activeUser(t, models.RoleStudent), nil)
	tokens.On("Create", ctx, mock.AnythingOfType("string"), int64(7), mock.AnythingOfType("time.Time")).Return(nil)
	users.On("UpdateLastLogin", ctx, int64(7)).Return(nil)

	session, selection, err := svc.Login(ctx, "jane.doe@university.edu", "correct-password")

	require.NoError(t, err)
	assert.Nil(t, selection)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, models.RoleStudent, session.ActiveRole)
	tokens.AssertExpectations(t)
}

func TestLoginMultiRoleReturnsSelection(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "jane.doe@university.edu").
		Return(activeUser(t, models.RoleStudent, models.RolePlacementCell), nil)

	session, selection, err := svc.Login(ctx, "jane.doe@university.edu", "correct-password")

	require.NoError(t, err)
	assert.Nil(t, session)
	require.NotNil(t, selection)
	assert.True(t, selection.RequiresRoleSelection)
	assert.Equal(t, int64(7), selection.UserID)
	assert.ElementsMatch(t, []string{models.RoleStudent, models.RolePlacementCell}, selection.AvailableRoles)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSelectRoleNotAssigned(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	users.On("GetByID", ctx, int64(7)).Return(activeUser(t, models.RoleStudent), nil)

	_, err := svc.SelectRole(ctx, 7, models.RoleAdmin)

	assert.ErrorIs(t, err, apperrors.ErrRoleNotAssigned)
}

func TestSelectRoleIssuesSessionForPickedRole(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	ctx := context.Background()

	users.On("GetByID", ctx, int64(7)).
		Return(activeUser(t, models.RoleStudent, models.RolePlacementCell), nil)
	tokens.On("Create", ctx, mock.AnythingOfType("string"), int64(7), mock.AnythingOfType("time.Time")).Return(nil)
	users.On("UpdateLastLogin", ctx, int64(7)).Return(nil)

	session, err := svc.SelectRole(ctx, 7, models.RolePlacementCell)

	require.NoError(t, err)
	assert.Equal(t, models.RolePlacementCell, session.ActiveRole)

	claims, err := newTestJWTService().ValidateToken(session.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, models.RolePlacementCell, claims.ActiveRole)
	assert.ElementsMatch(t, []string{models.RoleStudent, models.RolePlacementCell}, claims.Roles)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	ctx := context.Background()
	jwtSvc := newTestJWTService()

	pair, err := jwtSvc.GenerateTokenPair(7, "jane.doe@university.edu", []string{models.RoleStudent}, models.RoleStudent)
	require.NoError(t, err)

	tokens.On("GetByTokenID", ctx, pair.RefreshTokenID).
		Return(&models.RefreshToken{TokenID: pair.RefreshTokenID, UserID: 7}, nil)
	tokens.On("Revoke", ctx, pair.RefreshTokenID).Return(nil)
	users.On("GetByID", ctx, int64(7)).Return(activeUser(t, models.RoleStudent), nil)
	tokens.On("Create", ctx, mock.AnythingOfType("string"), int64(7), mock.AnythingOfType("time.Time")).Return(nil)
	users.On("UpdateLastLogin", ctx, int64(7)).Return(nil)

	session, err := svc.Refresh(ctx, pair.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, session.RefreshToken)
	tokens.AssertCalled(t, "Revoke", ctx, pair.RefreshTokenID)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()
	jwtSvc := newTestJWTService()

	pair, err := jwtSvc.GenerateTokenPair(7, "jane.doe@university.edu", []string{models.RoleStudent}, models.RoleStudent)
	require.NoError(t, err)

	tokens.On("GetByTokenID", ctx, pair.RefreshTokenID).Return(nil, apperrors.ErrTokenInvalid)

	_, err = svc.Refresh(ctx, pair.RefreshToken)

	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()
	jwtSvc := newTestJWTService()

	pair, err := jwtSvc.GenerateTokenPair(7, "jane.doe@university.edu", []string{models.RoleStudent}, models.RoleStudent)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)

	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	tokens.AssertNotCalled(t, "GetByTokenID", mock.Anything, mock.Anything)
}

func TestRefreshRejectsUnassignedActiveRole(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	ctx := context.Background()
	jwtSvc := newTestJWTService()

	pair, err := jwtSvc.GenerateTokenPair(7, "jane.doe@university.edu",
		[]string{models.RolePlacementCell}, models.RolePlacementCell)
	require.NoError(t, err)

	tokens.On("GetByTokenID", ctx, pair.RefreshTokenID).
		Return(&models.RefreshToken{TokenID: pair.RefreshTokenID, UserID: 7}, nil)
	tokens.On("Revoke", ctx, pair.RefreshTokenID).Return(nil)
	users.On("GetByID", ctx, int64(7)).Return(activeUser(t, models.RoleStudent), nil)

	_, err = svc.Refresh(ctx, pair.RefreshToken)

	assert.ErrorIs(t, err, apperrors.ErrRoleNotAssigned)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()

	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, "not-a-jwt"))
	tokens.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
}

func TestLogoutRevokesValidToken(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()
	jwtSvc := newTestJWTService()

	pair, err := jwtSvc.GenerateTokenPair(7, "jane.doe@university.edu", []string{models.RoleStudent}, models.RoleStudent)
	require.NoError(t, err)

	tokens.On("Revoke", ctx, pair.RefreshTokenID).Return(nil)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	tokens.AssertExpectations(t)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	ctx := context.Background()

	users.On("GetByID", ctx, int64(7)).Return(activeUser(t, models.RoleStudent), nil)

	err := svc.ChangePassword(ctx, 7, "wrong-password", "NewSecret#1")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	tokens.AssertNotCalled(t, "RevokeAllForUser", mock.Anything, mock.Anything)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	ctx := context.Background()

	users.On("GetByID", ctx, int64(7)).Return(activeUser(t, models.RoleStudent), nil)
	users.On("UpdatePassword", ctx, int64(7), mock.AnythingOfType("string")).Return(nil)
	tokens.On("RevokeAllForUser", ctx, int64(7)).Return(nil)

	err := svc.ChangePassword(ctx, 7, "correct-password", "NewSecret#1")

	require.NoError(t, err)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestPurgeExpiredTokens(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()

	tokens.On("DeleteExpired", ctx).Return(3, nil)

	require.NoError(t, svc.PurgeExpiredTokens(ctx))
	tokens.AssertExpectations(t)
}

func TestPurgeExpiredTokensPropagatesError(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()

	storeErr := errors.New("connection reset")
	tokens.On("DeleteExpired", ctx).Return(0, storeErr)

	assert.ErrorIs(t, svc.PurgeExpiredTokens(ctx), storeErr)
}
