package models

import "time"

// ============================================================
// Session Model
// ============================================================

// Role is recorded on every session. Both roles are currently authorized
// identically.
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// ParseRole accepts "host" or "guest". An empty value yields fallback.
func ParseRole(value string, fallback Role) (Role, bool) {
	switch Role(value) {
	case "":
		return fallback, true
	case RoleHost, RoleGuest:
		return Role(value), true
	default:
		return "", false
	}
}

// Session associates an opaque token with a role. Sessions have no TTL;
// CreatedAt is informational.
type Session struct {
	Token     string    `json:"token"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession returns an active session for token. A blank role becomes guest.
func NewSession(token string, role Role, now time.Time) Session {
	if role == "" {
		role = RoleGuest
	}
	return Session{
		Token:     token,
		Role:      role,
		Active:    true,
		CreatedAt: now.UTC(),
	}
}
