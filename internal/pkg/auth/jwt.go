package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/placemate/placemate/internal/pkg/apperrors"
)

// Token types embedded in claims so an access token cannot be replayed
// against the refresh endpoint and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	TokenIssuer     string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// Claims defines JWT token content. ActiveRole is the single role the
// session operates as; Roles lists everything assigned to the user.
type Claims struct {
	UserID     int64    `json:"user_id"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	ActiveRole string   `json:"active_role,omitempty"`
	TokenType  string   `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair bundles the two signed tokens with their lifetimes in seconds.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshTokenID   string
	ExpiresIn        int
	RefreshExpiresIn int
}

// GenerateTokenPair creates an access and refresh token pair for a user.
// Both tokens carry the full role list and the chosen active role; the
// refresh token additionally gets its own jti so it can be tracked and
// revoked server side.
func (s *JWTService) GenerateTokenPair(userID int64, email string, roles []string, activeRole string) (*TokenPair, error) {
	now := time.Now()

	accessClaims := &Claims{
		UserID:     userID,
		Email:      email,
		Roles:      roles,
		ActiveRole: activeRole,
		TokenType:  TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", userID),
			ID:        uuid.New().String(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshID := uuid.New().String()
	refreshClaims := &Claims{
		UserID:     userID,
		Email:      email,
		Roles:      roles,
		ActiveRole: activeRole,
		TokenType:  TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.RefreshTokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", userID),
			ID:        refreshID,
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshTokenID:   refreshID,
		ExpiresIn:        int(s.config.AccessTokenExp.Seconds()),
		RefreshExpiresIn: int(s.config.RefreshTokenExp.Seconds()),
	}, nil
}

// ValidateToken parses and validates a token of the expected type.
func (s *JWTService) ValidateToken(tokenString, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}
	if claims.TokenType != expectedType {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}

// GetRefreshTokenExpiry returns the expiry time a refresh token issued now
// would carry.
func (s *JWTService) GetRefreshTokenExpiry() time.Time {
	return time.Now().Add(s.config.RefreshTokenExp)
}

// ExtractBearerToken extracts the token from an Authorization header.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", apperrors.ErrTokenNotFound
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.ErrTokenInvalid
	}

	return parts[1], nil
}
