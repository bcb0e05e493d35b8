package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placemate/placemate/internal/pkg/apperrors"
)

func testConfig() JWTConfig {
	return JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 7 * 24 * time.Hour,
		TokenIssuer:     "test",
	}
}

func TestGenerateTokenPairClaims(t *testing.T) {
	svc := NewJWTService(testConfig())

	pair, err := svc.GenerateTokenPair(7, "jane.doe@university.edu",
		[]string{"Student", "Student Placement Cell"}, "Student")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshTokenID)
	assert.Equal(t, int((15 * time.Minute).Seconds()), pair.ExpiresIn)

	access, err := svc.ValidateToken(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(7), access.UserID)
	assert.Equal(t, "jane.doe@university.edu", access.Email)
	assert.Equal(t, "Student", access.ActiveRole)
	assert.ElementsMatch(t, []string{"Student", "Student Placement Cell"}, access.Roles)
	assert.Equal(t, TokenTypeAccess, access.TokenType)

	refresh, err := svc.ValidateToken(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshTokenID, refresh.ID)
	assert.Equal(t, "Student", refresh.ActiveRole)
}

func TestValidateTokenWrongType(t *testing.T) {
	svc := NewJWTService(testConfig())

	pair, err := svc.GenerateTokenPair(7, "jane.doe@university.edu", []string{"Student"}, "Student")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken, TokenTypeRefresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = svc.ValidateToken(pair.RefreshToken, TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenExp = -time.Minute
	svc := NewJWTService(cfg)

	pair, err := svc.GenerateTokenPair(7, "jane.doe@university.edu", []string{"Student"}, "Student")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService(testConfig())

	pair, err := svc.GenerateTokenPair(7, "jane.doe@university.edu", []string{"Student"}, "Student")
	require.NoError(t, err)

	other := testConfig()
	other.SecretKey = "another-secret"

	_, err = NewJWTService(other).ValidateToken(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService(testConfig())

	_, err := svc.ValidateToken("not-a-jwt", TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "case insensitive scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty", header: "", wantErr: apperrors.ErrTokenNotFound},
		{name: "wrong scheme", header: "Basic abc", wantErr: apperrors.ErrTokenInvalid},
		{name: "no token", header: "Bearer", wantErr: apperrors.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
