package models

import (
	"time"
)

// Role names seeded at startup
const (
	RoleAdmin         = "Admin"
	RolePlacementCell = "Student Placement Cell"
	RoleStudent       = "Student"
)

// PlacementTeamRoles are the roles allowed to operate staff endpoints
var PlacementTeamRoles = []string{RoleAdmin, RolePlacementCell}

// Role defines a named role based on the 'roles' table
type Role struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	Phone       *string    `json:"phone,omitempty" db:"phone"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	Roles       []string   `json:"roles,omitempty"` // Relation, no db tag
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user has the named role assigned
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// RefreshToken defines a row in the 'refresh_tokens' table. The token
// itself is a JWT; the row tracks its jti for rotation and revocation.
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	TokenID   string    `json:"token_id" db:"token_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	IsRevoked bool      `json:"is_revoked" db:"is_revoked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
