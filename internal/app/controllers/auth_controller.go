// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/app/services"
	"github.com/placemate/placemate/internal/config"
	"github.com/placemate/placemate/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	cfg         *config.Config
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, cfg *config.Config, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cfg:         cfg,
		logger:      logger,
	}
}

// Login verifies credentials. Single-role users get a session directly;
// multi-role users get a role selection payload and no tokens.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	tokens, selection, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	if selection != nil {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Role selection required", selection))
		return
	}

	c.setSessionCookies(ctx, tokens)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Login successful", tokens))
}

// SelectRole completes login for a multi-role user
func (c *AuthController) SelectRole(ctx *gin.Context) {
	var req dto.SelectRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	tokens, err := c.authService.SelectRole(ctx.Request.Context(), req.UserID, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookies(ctx, tokens)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Login successful", tokens))
}

// Refresh rotates the refresh token and issues a new session
func (c *AuthController) Refresh(ctx *gin.Context) {
	refreshToken := c.refreshTokenFromRequest(ctx)
	if refreshToken == "" {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse("Refresh token required", dto.ErrorCodeUnauthorized, nil))
		return
	}

	tokens, err := c.authService.Refresh(ctx.Request.Context(), refreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookies(ctx, tokens)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Token refreshed", tokens))
}

// Logout revokes the current refresh token and clears session cookies.
// Logout never fails on an already invalid token.
func (c *AuthController) Logout(ctx *gin.Context) {
	refreshToken := c.refreshTokenFromRequest(ctx)

	if err := c.authService.Logout(ctx.Request.Context(), refreshToken); err != nil {
		c.logger.Warn().Err(err).Msg("Logout revocation failed")
	}

	c.clearSessionCookies(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Logged out", nil))
}

// ChangePassword updates the caller's password and revokes all their
// refresh tokens
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID := middleware.GetUserID(ctx)
	if err := c.authService.ChangePassword(ctx.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.clearSessionCookies(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Password changed, please log in again", nil))
}

func (c *AuthController) refreshTokenFromRequest(ctx *gin.Context) string {
	if token, err := ctx.Cookie("refresh_token"); err == nil && token != "" {
		return token
	}
	var req dto.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (c *AuthController) setSessionCookies(ctx *gin.Context, tokens *dto.TokenResponse) {
	ctx.SetSameSite(c.sameSite())
	ctx.SetCookie("access_token", tokens.AccessToken,
		int(c.cfg.AccessTokenDuration().Seconds()), "/", c.cfg.Cookie.Domain, c.cfg.Cookie.Secure, true)
	ctx.SetCookie("refresh_token", tokens.RefreshToken,
		int(c.cfg.RefreshTokenDuration().Seconds()), "/", c.cfg.Cookie.Domain, c.cfg.Cookie.Secure, true)
}

func (c *AuthController) clearSessionCookies(ctx *gin.Context) {
	ctx.SetSameSite(c.sameSite())
	ctx.SetCookie("access_token", "", -1, "/", c.cfg.Cookie.Domain, c.cfg.Cookie.Secure, true)
	ctx.SetCookie("refresh_token", "", -1, "/", c.cfg.Cookie.Domain, c.cfg.Cookie.Secure, true)
}

func (c *AuthController) sameSite() http.SameSite {
	switch c.cfg.Cookie.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
