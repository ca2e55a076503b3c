// ABOUTME: Post endpoints: paged listing with filters, CRUD, likes, and tag counts.
// ABOUTME: Responses are unwrapped from the backend's {post} and {posts, page, totalPages} envelopes.
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/2389-research/inkwell/internal/models"
)

// ListPostsParams filters GET /posts. Empty filters are not sent.
type ListPostsParams struct {
	Page   int    `url:"page,omitempty"`
	Limit  int    `url:"limit,omitempty"`
	Search string `url:"search,omitempty"`
	Tag    string `url:"tag,omitempty"`
	Author string `url:"author,omitempty"`
}

// PostList is one page of posts.
type PostList struct {
	Posts      []models.Post `json:"posts"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

type postEnvelope struct {
	Post models.Post `json:"post"`
}

// LikeResult is the outcome of toggling a like.
type LikeResult struct {
	LikesCount int   `json:"likesCount"`
	Liked      *bool `json:"liked,omitempty"`
}

// ListPosts fetches one page of posts.
func (c *Client) ListPosts(ctx context.Context, p ListPostsParams) (*PostList, error) {
	var list PostList
	if err := c.get(ctx, "/posts", p, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListTags fetches every tag with its post count.
func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var resp struct {
		Tags []models.Tag `json:"tags"`
	}
	if err := c.get(ctx, "/posts/tags/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

// GetPost fetches a single post.
func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var resp postEnvelope
	if err := c.get(ctx, "/posts/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

// CreatePost publishes a new post as the logged in user.
func (c *Client) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	var resp postEnvelope
	if err := c.send(ctx, http.MethodPost, "/posts", in, &resp); err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

// UpdatePost replaces the editable fields of a post.
func (c *Client) UpdatePost(ctx context.Context, id string, in models.PostInput) (*models.Post, error) {
	var resp postEnvelope
	if err := c.send(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), in, &resp); err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}

// ToggleLike likes or unlikes a post for the logged in user.
func (c *Client) ToggleLike(ctx context.Context, id string) (*LikeResult, error) {
	var res LikeResult
	if err := c.send(ctx, http.MethodPut, "/posts/"+url.PathEscape(id)+"/like", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
