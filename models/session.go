package models

import "time"

// Session is the client-side view of an authenticated session. It is an
// explicit value threaded into every operation that needs the user's identity
// or capabilities; privileged paths inspect Role instead of any persisted
// admin-mode flag.
type Session struct {
	// UserID is the server-assigned identifier of the logged-in user.
	UserID int64 `json:"user_id"`

	// Email is the login email of the session owner.
	Email string `json:"email"`

	// Role is the capability of the session: [RoleStandard] or [RoleAdmin].
	Role string `json:"role"`

	// Token is the bearer token attached to authenticated requests.
	Token string `json:"token"`

	// SavedAt is when the session was last persisted locally.
	SavedAt time.Time `json:"saved_at"`
}

// IsAdmin reports whether the session carries the admin capability.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
