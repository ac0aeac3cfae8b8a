package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// User is the identity carried by an authenticated session.
type User struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Roles    RoleSet `json:"roles"`
}

// HasRole reports whether the user was granted r.
func (u *User) HasRole(r Role) bool {
	return u != nil && u.Roles.Has(r)
}

// DecodeUser parses a persisted user record. A record without a username is
// treated as corrupt.
func DecodeUser(raw string) (*User, error) {
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if strings.TrimSpace(u.Username) == "" {
		return nil, fmt.Errorf("%w: missing username", ErrCorruptSession)
	}
	return &u, nil
}

// EncodeUser serialises u for the credential store.
func EncodeUser(u *User) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}
	return string(b), nil
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token     string   `json:"token"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"tokenType"`
	ExpiresIn int64    `json:"expiresIn"`
}

// User builds the session identity from the response, field for field.
func (r *LoginResponse) User() *User {
	return &User{
		Username: r.Username,
		Email:    r.Email,
		Roles:    ParseRoleSet(r.Roles),
	}
}

// SessionInfo describes a freshly established session.
type SessionInfo struct {
	User      User      `json:"user"`
	TokenType string    `json:"tokenType"`
	ExpiresIn int64     `json:"expiresIn"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// ChangePasswordRequest is the body of PUT /user/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// ChangePasswordResponse acknowledges a password change.
type ChangePasswordResponse struct {
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Timestamp int64  `json:"timestamp"`
}
