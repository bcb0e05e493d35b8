package dto

import (
	"time"

	"github.com/placemate/placemate/internal/app/models"
)

// RegisterUserRequest is the admin payload for creating a user. The
// initial password is generated server side and emailed to the user.
type RegisterUserRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	FirstName string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string  `json:"last_name" binding:"required,min=2,max=100"`
	Phone     *string `json:"phone,omitempty"`
	RoleIDs   []int64 `json:"role_ids" binding:"required,min=1"`
}

// UpdateProfileRequest is the self-service profile update payload
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone,omitempty"`
}

// UpdateUserRolesRequest replaces a user's role assignments
type UpdateUserRolesRequest struct {
	RoleIDs []int64 `json:"role_ids" binding:"required,min=1"`
}

// UpdateUserActivationRequest toggles a user's active flag
type UpdateUserActivationRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CreateRoleRequest creates a new named role
type CreateRoleRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

// UserResponse is the outward user representation
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       *string    `json:"phone,omitempty"`
	IsActive    bool       `json:"is_active"`
	Roles       []string   `json:"roles"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewUserResponse maps a user model to its response form
func NewUserResponse(u *models.User) UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		Roles:       roles,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
