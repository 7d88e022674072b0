package models

import "strings"

// Session holds the remote API credentials for one signed-in browser.
// It exists exactly as long as the user is authenticated: created on login,
// replaced wholesale on re-login, destroyed on logout.
type Session struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	User      User   `json:"user"`
}

// AuthorizationHeader returns the value for the Authorization header,
// e.g. "Bearer abc123". Empty when the session has no token.
func (s *Session) AuthorizationHeader() string {
	if s == nil || s.Token == "" {
		return ""
	}
	tokenType := s.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + s.Token
}

// HasRole reports whether the session's user holds any of the given roles.
// Returns false for a nil session.
func (s *Session) HasRole(roles ...string) bool {
	if s == nil {
		return false
	}
	return s.User.HasRole(roles...)
}

// Role returns the session user's role lowercased, or "" for a nil session.
func (s *Session) Role() string {
	if s == nil {
		return ""
	}
	return strings.ToLower(s.User.Role)
}

// AuthResponse is the remote API's login response body. Some deployments
// return the token under "access_token", others under "token".
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// BearerToken returns whichever token field the API populated.
func (a *AuthResponse) BearerToken() string {
	if a.AccessToken != "" {
		return a.AccessToken
	}
	return a.Token
}
