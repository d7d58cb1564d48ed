package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	PlatformWeb    = "web"
	PlatformMobile = "mobile"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// ValidRole reports whether role is one the system provisions.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// UserAccount models an operator of the gate system.
type UserAccount struct {
	UID          string     `json:"uid"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName,omitempty"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Platform     string     `json:"platform"`
	IsOnline     bool       `json:"isOnline"`
	LastSeen     *time.Time `json:"lastSeen,omitempty"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	DeviceInfo   string     `json:"deviceInfo,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// IsAdmin reports whether the account holds the admin role.
func (u UserAccount) IsAdmin() bool {
	return u.Role == RoleAdmin
}
