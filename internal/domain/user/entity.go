// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

// Role of a signed-in user
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is the sanitized user record kept in the session. It never carries
// secrets.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session is the persisted form of a signed-in user
type Session struct {
	User   User  `json:"user"`
	Expiry int64 `json:"expiry"` // epoch millis
}

// ExpiresAt returns the expiry as a time
func (s *Session) ExpiresAt() time.Time {
	return time.UnixMilli(s.Expiry)
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt())
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
