package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/pkg/auth"
)

type mockRoleChecker struct{ mock.Mock }

func (m *mockRoleChecker) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})
}

func authTestRouter(jwtService *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwtService, nil)
	router := gin.New()
	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     GetUserID(c),
			"active_role": GetActiveRole(c),
		})
	})
	return router
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuthenticateMissingToken(t *testing.T) {
	router := authTestRouter(newTestJWTService(15 * time.Minute))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrorCodeUnauthorized, resp.ErrorCode)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	router := authTestRouter(newTestJWTService(15 * time.Minute))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, decodeEnvelope(t, rec).ErrorCode)
}

func TestAuthenticateWithBearerHeader(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	router := authTestRouter(jwtService)

	pair, err := jwtService.GenerateTokenPair(7, "jane.doe@university.edu", []string{"Student"}, "Student")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["user_id"])
	assert.Equal(t, "Student", body["active_role"])
}

func TestAuthenticateWithCookie(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	router := authTestRouter(jwtService)

	pair, err := jwtService.GenerateTokenPair(7, "jane.doe@university.edu", []string{"Student"}, "Student")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: pair.AccessToken})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	expired := newTestJWTService(-time.Minute)
	router := authTestRouter(expired)

	pair, err := expired.GenerateTokenPair(7, "jane.doe@university.edu", []string{"Student"}, "Student")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeTokenExpired, decodeEnvelope(t, rec).ErrorCode)
}

func roleTestRouter(jwtService *auth.JWTService, checker RoleChecker, roles ...string) *gin.Engine {
	m := NewAuthMiddleware(jwtService, checker)
	router := gin.New()
	router.GET("/staff", m.Authenticate(), m.RequireRoles(roles...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireRolesActiveRoleMismatch(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	checker := new(mockRoleChecker)
	router := roleTestRouter(jwtService, checker, "Admin")

	pair, err := jwtService.GenerateTokenPair(7, "jane.doe@university.edu",
		[]string{"Student", "Admin"}, "Student")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeEnvelope(t, rec).ErrorCode)
	checker.AssertNotCalled(t, "HasRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequireRolesRevokedAssignment(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	checker := new(mockRoleChecker)
	router := roleTestRouter(jwtService, checker, "Admin")

	pair, err := jwtService.GenerateTokenPair(7, "jane.doe@university.edu", []string{"Admin"}, "Admin")
	require.NoError(t, err)

	checker.On("HasRole", mock.Anything, int64(7), "Admin").Return(false, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeEnvelope(t, rec).ErrorCode)
}

func TestRequireRolesAllowsVerifiedRole(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	checker := new(mockRoleChecker)
	router := roleTestRouter(jwtService, checker, "Admin", "Student Placement Cell")

	pair, err := jwtService.GenerateTokenPair(7, "jane.doe@university.edu",
		[]string{"Student Placement Cell"}, "Student Placement Cell")
	require.NoError(t, err)

	checker.On("HasRole", mock.Anything, int64(7), "Student Placement Cell").Return(true, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	checker.AssertExpectations(t)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	router := authTestRouter(jwtService)

	pair, err := jwtService.GenerateTokenPair(7, "jane.doe@university.edu", []string{"Student"}, "Student")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, decodeEnvelope(t, rec).ErrorCode)
}
