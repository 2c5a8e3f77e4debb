package models

import (
	"time"
)

// User is a staff member authenticated through the identity provider.
type User struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`
	Email       string     `json:"email" db:"email"`
	FullName    string     `json:"full_name" db:"full_name"`
	IsAdmin     bool       `json:"is_admin" db:"is_admin"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created" db:"created_at"`
	UpdatedAt   time.Time  `json:"modified" db:"updated_at"`
	LastLoginAt *time.Time `json:"last_login,omitempty" db:"last_login_at"`
}

// Role returns the role implied by the admin flag.
func (u *User) Role() RoleType {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleStaff
}
