// ABOUTME: The logged in user and token, passed explicitly to views and commands.
// ABOUTME: Answers ownership and admin questions that gate edit and delete affordances.
package session

import (
	"github.com/2389-research/inkwell/internal/config"
	"github.com/2389-research/inkwell/internal/models"
)

// Session is the current authentication context. The zero value is logged out.
type Session struct {
	Token string
	User  *models.User
}

// FromConfig restores the session persisted in cfg.
func FromConfig(cfg *config.Config) *Session {
	if cfg == nil || !cfg.HasSession() {
		return &Session{}
	}
	return &Session{
		Token: cfg.Auth.Token,
		User: &models.User{
			ID:       cfg.Auth.UserID,
			Username: cfg.Auth.Username,
			Role:     models.Role(cfg.Auth.Role),
		},
	}
}

// Store writes the session into cfg. A logged out session clears it.
func (s *Session) Store(cfg *config.Config) {
	if !s.LoggedIn() {
		cfg.ClearSession()
		return
	}
	cfg.Auth.Token = s.Token
	cfg.Auth.UserID = s.User.ID
	cfg.Auth.Username = s.User.Username
	cfg.Auth.Role = string(s.User.Role)
}

// LoggedIn reports whether there is a user and a token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != "" && s.User != nil && s.User.ID != ""
}

// UserID returns the current user's id, or "".
func (s *Session) UserID() string {
	if !s.LoggedIn() {
		return ""
	}
	return s.User.ID
}

// IsAdmin reports whether the current user is an admin.
func (s *Session) IsAdmin() bool {
	return s.LoggedIn() && s.User.Role == models.RoleAdmin
}

// IsOwner reports whether authorID belongs to the current user.
func (s *Session) IsOwner(authorID string) bool {
	return s.LoggedIn() && authorID != "" && s.User.ID == authorID
}

// CanMutate reports whether the current user may edit or delete content by authorID.
func (s *Session) CanMutate(authorID string) bool {
	return s.IsOwner(authorID) || s.IsAdmin()
}

// CanDeleteUser reports whether the current user may delete u. Admin
// accounts cannot be deleted from the client.
func (s *Session) CanDeleteUser(u models.User) bool {
	return s.IsAdmin() && u.Role != models.RoleAdmin
}

// Login replaces the session with a fresh token and user.
func (s *Session) Login(token string, u models.User) {
	s.Token = token
	s.User = &u
}

// Logout clears the session.
func (s *Session) Logout() {
	s.Token = ""
	s.User = nil
}

// UpdateUser refreshes the cached user after a profile edit, keeping the token.
func (s *Session) UpdateUser(u models.User) {
	if !s.LoggedIn() || u.ID != s.User.ID {
		return
	}
	if u.Role == "" {
		u.Role = s.User.Role
	}
	s.User = &u
}
