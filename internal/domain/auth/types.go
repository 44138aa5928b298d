package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents a user's application role, set during onboarding.
// Keep string form for easy persistence and cookies.
// The zero value means the role has not been chosen yet.
type Role string

const (
	RoleInfluencer Role = "influencer"
	RoleBrand      Role = "brand"
	RoleAdmin      Role = "admin"
)

// IsSet reports whether a role has been assigned.
func (r Role) IsSet() bool { return r != "" }

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleInfluencer, RoleBrand, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity represents the authenticated principal returned by the OAuth
// provider. Adapters map provider-specific claims into this shape.
// Immutable once issued for the lifetime of the session.
type Identity struct {
	UserID    string // stable user identifier (sub claim)
	Username  string // provider preferred_username, best effort
	FirstName string
	LastName  string
	Email     string
	AvatarURL string
	Locale    string
	ExpiresAt time.Time // absolute expiry from provider token
}

// FullName joins first and last name, tolerating either being empty.
func (i Identity) FullName() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	default:
		return i.FirstName + " " + i.LastName
	}
}

// Session is the server-side record persisted for an authenticated user.
// ID doubles as the access credential handed to clients (cookie value or
// bearer token). Sessions are replaced wholesale on refresh, never patched.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatar_url"`
	Locale       string    `json:"locale"`
	Role         Role      `json:"role"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Identity extracts the immutable identity carried by the session.
func (s Session) Identity() Identity {
	return Identity{
		UserID:    s.UserID,
		Username:  s.Username,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		AvatarURL: s.AvatarURL,
		Locale:    s.Locale,
		ExpiresAt: s.ExpiresAt,
	}
}

// Event tags the session-change notifications emitted by the auth layer.
type Event string

const (
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)
