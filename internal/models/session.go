package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the roles that can request reports.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOffice   UserRole = "office"
	RoleLecturer UserRole = "lecturer"
)

// Session identifies the caller of a report operation. It is passed
// explicitly into every service call; there is no process-wide current user.
// For lecturers UserID is also their lecturer ID.
type Session struct {
	UserID   int64    `json:"user_id" validate:"required,gt=0"`
	Username string   `json:"username"`
	Role     UserRole `json:"role" validate:"required,oneof=admin office lecturer"`
}

// Is reports whether the session carries role.
func (s Session) Is(role UserRole) bool {
	return s.Role == role
}

// SessionClaims is the bearer token payload a Session is derived from.
type SessionClaims struct {
	UserID   int64    `json:"user_id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Session converts the claims into a Session.
func (c *SessionClaims) Session() Session {
	return Session{UserID: c.UserID, Username: c.Username, Role: c.Role}
}
