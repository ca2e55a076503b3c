// ABOUTME: Auth and contact endpoints: login, signup, current user, and the contact form.
// ABOUTME: Login and signup return a bearer token which callers persist in the config.
package api

import (
	"context"
	"net/http"

	"github.com/2389-research/inkwell/internal/models"
)

// AuthResult is a freshly issued session.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a token. The client's token is not changed.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*AuthResult, error) {
	var res AuthResult
	if err := c.send(ctx, http.MethodPost, "/auth/login", creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, reg models.Registration) (*AuthResult, error) {
	var res AuthResult
	if err := c.send(ctx, http.MethodPost, "/auth/register", reg, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Me returns the user owning the current token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp userEnvelope
	if err := c.get(ctx, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// SendContact submits the contact form and returns the server's acknowledgement.
func (c *Client) SendContact(ctx context.Context, in models.ContactInput) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.send(ctx, http.MethodPost, "/contact", in, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
