// ABOUTME: User endpoints: admin listing, profile lookup and update, and deletion.
// ABOUTME: Listing users and deleting accounts require an admin token.
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/2389-research/inkwell/internal/models"
)

// UserList is one page of users.
type UserList struct {
	Users      []models.User `json:"users"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

type userEnvelope struct {
	User models.User `json:"user"`
}

// ListUsers fetches one page of users. Admin only.
func (c *Client) ListUsers(ctx context.Context, p PageParams) (*UserList, error) {
	var list UserList
	if err := c.get(ctx, "/users", p, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetUser fetches a public profile.
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var resp userEnvelope
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateProfile changes the logged in user's username and bio.
func (c *Client) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.User, error) {
	var resp userEnvelope
	if err := c.send(ctx, http.MethodPut, "/users/profile", in, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}
