package domain

import "time"

// Session is the client-held authentication state. It is replaced as a whole
// on every transition and never mutated in place.
type Session struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// Authenticated is true iff both the user and the token are present.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// HasRole reports whether the session is authenticated with role r.
func (s Session) HasRole(r Role) bool {
	return s.Authenticated() && s.User.HasRole(r)
}

// Username returns the session user name, or "" when anonymous.
func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// Expired reports whether a known expiry has passed.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
