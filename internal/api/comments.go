// ABOUTME: Comment endpoints: paged listing per post, create, and delete.
// ABOUTME: Comments come back newest first; the list endpoint takes page and limit only.
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/2389-research/inkwell/internal/models"
)

// PageParams is the page/limit pair shared by the simpler list endpoints.
type PageParams struct {
	Page  int `url:"page,omitempty"`
	Limit int `url:"limit,omitempty"`
}

// CommentList is one page of comments on a post, newest first.
type CommentList struct {
	Comments   []models.Comment `json:"comments"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// ListComments fetches one page of comments for postID.
func (c *Client) ListComments(ctx context.Context, postID string, p PageParams) (*CommentList, error) {
	var list CommentList
	if err := c.get(ctx, "/comments/"+url.PathEscape(postID), p, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AddComment posts text as a comment on postID.
func (c *Client) AddComment(ctx context.Context, postID, text string) (*models.Comment, error) {
	body := struct {
		Text string `json:"text"`
	}{Text: text}
	var resp struct {
		Comment models.Comment `json:"comment"`
	}
	if err := c.send(ctx, http.MethodPost, "/comments/"+url.PathEscape(postID), body, &resp); err != nil {
		return nil, err
	}
	return &resp.Comment, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/comments/"+url.PathEscape(id), nil, nil)
}
