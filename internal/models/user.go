package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role names understood by the authorization middleware.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account of the store.
type User struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string                      `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string                      `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	FullName  string                      `json:"fullName" gorm:"type:varchar(255);not null"`
	IsActive  bool                        `json:"isActive" gorm:"not null;default:true"`
	Roles     datatypes.JSONSlice[string] `json:"roles"`
	CreatedAt time.Time                   `json:"-"`
	UpdatedAt time.Time                   `json:"-"`
}

// Normalize applies the write-time invariants of a user row.
func (u *User) Normalize() {
	u.Email = NormalizeEmail(u.Email)
}

// HasRole reports whether the user holds any of the given roles.
func (u *User) HasRole(roles ...string) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// UserView is the read shape of a user. It never carries the password hash.
type UserView struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	IsActive bool     `json:"isActive"`
	Roles    []string `json:"roles"`
}

// View strips sensitive fields from the user.
func (u *User) View() UserView {
	roles := make([]string, len(u.Roles))
	copy(roles, u.Roles)
	return UserView{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		IsActive: u.IsActive,
		Roles:    roles,
	}
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
	FullName string `json:"fullName" validate:"required,min=1"`
}

// LoginInput is the payload for exchanging credentials for a token.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by register, login and status checks.
type AuthResult struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}
