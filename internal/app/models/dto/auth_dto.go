package dto

// LoginRequest is the credential payload for the login endpoint
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SelectRoleRequest picks the active role for a multi-role user
type SelectRoleRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// RoleSelectionResponse is returned when login cannot pick a role
// automatically. No tokens are issued until a role is selected.
type RoleSelectionResponse struct {
	UserID                int64    `json:"user_id"`
	Email                 string   `json:"email"`
	FirstName             string   `json:"first_name"`
	AvailableRoles        []string `json:"available_roles"`
	RequiresRoleSelection bool     `json:"requires_role_selection"`
}

// RefreshRequest carries the refresh token when the client does not use
// cookies. With cookie auth the body may be empty.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is the session payload issued after successful
// authentication or role selection. The same tokens are also set as
// HttpOnly cookies.
type TokenResponse struct {
	AccessToken    string       `json:"access_token"`
	RefreshToken   string       `json:"refresh_token"`
	TokenType      string       `json:"token_type"`
	ExpiresIn      int          `json:"expires_in"`
	ActiveRole     string       `json:"active_role"`
	AvailableRoles []string     `json:"available_roles"`
	User           UserResponse `json:"user"`
}

// ChangePasswordRequest updates the caller's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
