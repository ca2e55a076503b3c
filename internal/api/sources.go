// ABOUTME: Adapters exposing the paged endpoints as listing sources.
// ABOUTME: Only non-empty filters are forwarded; limit is always the query's page size.
package api

import (
	"context"

	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
)

// PostSource lists posts for the feed and author pages.
func (c *Client) PostSource() listing.Source[models.Post] {
	return listing.SourceFunc[models.Post](func(ctx context.Context, q listing.Query) (listing.Page[models.Post], error) {
		list, err := c.ListPosts(ctx, ListPostsParams{
			Page:   q.Page,
			Limit:  q.PageSize,
			Search: q.Search,
			Tag:    q.Tag,
			Author: q.AuthorID,
		})
		if err != nil {
			return listing.Page[models.Post]{}, err
		}
		return listing.Page[models.Post]{Items: list.Posts, Page: list.Page, TotalPages: list.TotalPages}, nil
	})
}

// CommentSource lists comments on one post. Filters other than paging are ignored.
func (c *Client) CommentSource(postID string) listing.Source[models.Comment] {
	return listing.SourceFunc[models.Comment](func(ctx context.Context, q listing.Query) (listing.Page[models.Comment], error) {
		list, err := c.ListComments(ctx, postID, PageParams{Page: q.Page, Limit: q.PageSize})
		if err != nil {
			return listing.Page[models.Comment]{}, err
		}
		return listing.Page[models.Comment]{Items: list.Comments, Page: list.Page, TotalPages: list.TotalPages}, nil
	})
}

// UserSource lists accounts for the admin table.
func (c *Client) UserSource() listing.Source[models.User] {
	return listing.SourceFunc[models.User](func(ctx context.Context, q listing.Query) (listing.Page[models.User], error) {
		list, err := c.ListUsers(ctx, PageParams{Page: q.Page, Limit: q.PageSize})
		if err != nil {
			return listing.Page[models.User]{}, err
		}
		return listing.Page[models.User]{Items: list.Users, Page: list.Page, TotalPages: list.TotalPages}, nil
	})
}
