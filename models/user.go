package models

import "strings"

// User is the account record returned by the remote API on login.
type User struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            string  `json:"role,omitempty"`
	EmailVerifiedAt *string `json:"email_verified_at,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

// HasRole reports whether the user's role matches any of the given roles.
// Comparison is case-insensitive. An empty role matches nothing.
func (u *User) HasRole(roles ...string) bool {
	if u == nil || u.Role == "" {
		return false
	}
	current := strings.ToLower(u.Role)
	for _, r := range roles {
		if current == strings.ToLower(r) {
			return true
		}
	}
	return false
}
