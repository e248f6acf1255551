package dto

import "strings"

// LoginRequest is posted by the login view. Either email or username
// identifies the account.
type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Username string `json:"username,omitempty"`
	Password string `json:"password" validate:"required"`
}

// Check requires one of the identifiers.
func (r LoginRequest) Check(c *Checker) {
	if strings.TrimSpace(r.Email) == "" && strings.TrimSpace(r.Username) == "" {
		c.Fail("email", "email or username is required")
	}
}
