package api

import (
	"context"
	"net/http"

	"github.com/healthmate/cli/internal/models"
)

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// profilePayload wraps the user object the profile endpoints return.
type profilePayload struct {
	User models.UserProfile `json:"user"`
}

// Register creates a new account and returns the issued token and profile.
func (c *Client) Register(ctx context.Context, reg models.Registration) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, reg, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Profile fetches the current account's profile. Used both by the profile
// screen and by session bootstrap to validate a stored token.
func (c *Client) Profile(ctx context.Context) (*models.UserProfile, error) {
	var res profilePayload
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

// UpdateProfile applies a partial profile update and returns the stored result.
func (c *Client) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	var res profilePayload
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", nil, upd, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}
