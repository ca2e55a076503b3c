// ABOUTME: MCP tool implementations for reading the blog.
// ABOUTME: Registers list_posts, read_post, list_comments, and list_tags tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/render"
)

// maxLimit caps how many items one tool call may request.
const maxLimit = 50

func (s *Server) registerBlogTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_posts",
		Description: "List blog posts, newest first, with optional search, tag, and author filters.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"page": {"type": "number", "description": "Page number, starting at 1 (default 1)"},
				"limit": {"type": "number", "description": "Posts per page (default 9, max 50)"},
				"search": {"type": "string", "description": "Only posts whose title or content matches this text"},
				"tag": {"type": "string", "description": "Only posts with this tag"},
				"author": {"type": "string", "description": "Only posts by this author ID"}
			}
		}`),
	}, s.handleListPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_post",
		Description: "Read one post as plain text, with its like count and tags.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "The post ID.", "minLength": 1}
			},
			"required": ["id"]
		}`),
	}, s.handleReadPost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_comments",
		Description: "List comments on a post, newest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "string", "description": "The post ID.", "minLength": 1},
				"page": {"type": "number", "description": "Page number, starting at 1 (default 1)"},
				"limit": {"type": "number", "description": "Comments per page (default 10, max 50)"}
			},
			"required": ["post_id"]
		}`),
	}, s.handleListComments)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_tags",
		Description: "List every tag in use with the number of posts carrying it.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)
}

func pageQuery(page, limit, def int) listing.Query {
	if limit <= 0 {
		limit = def
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return listing.NewQuery(limit).WithPage(page)
}

func (s *Server) handleListPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Page   int    `json:"page"`
		Limit  int    `json:"limit"`
		Search string `json:"search"`
		Tag    string `json:"tag"`
		Author string `json:"author"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	q := pageQuery(args.Page, args.Limit, s.pageSize)
	q.Search = strings.TrimSpace(args.Search)
	q.Tag = strings.TrimSpace(args.Tag)
	q.AuthorID = strings.TrimSpace(args.Author)

	posts := listing.NewController(s.client.PostSource(), models.Post.Key, q)
	posts.Run(ctx, posts.Start())
	if err := posts.Err(); err != nil {
		s.log.WithError(err).Warn("list_posts failed")
		return toolError("failed to list posts: %v", err), nil
	}

	items := posts.Items()
	if len(items) == 0 {
		return textResult("No posts found."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page %d of %d\n", posts.Page(), posts.TotalPages()))
	for _, p := range items {
		sb.WriteString(fmt.Sprintf("---\n[%s] %s\nby %s on %s · %s",
			p.ID, p.Title, p.Author.Username, render.Date(p.CreatedAt), render.Plural(len(p.Likes), "like", "likes")))
		if len(p.Tags) > 0 {
			sb.WriteString(fmt.Sprintf(" · #%s", strings.Join(p.Tags, " #")))
		}
		if ex := render.Excerpt(p.Content); ex != "" {
			sb.WriteString("\n" + ex)
		}
		sb.WriteString("\n")
	}
	return textResult(sb.String()), nil
}

func (s *Server) handleReadPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.ID) == "" {
		return toolError("id is required"), nil
	}

	p, err := s.client.GetPost(ctx, args.ID)
	if err != nil {
		s.log.WithError(err).WithField("post_id", args.ID).Warn("read_post failed")
		return toolError("failed to read post: %s", api.MessageOr(err, err.Error())), nil
	}

	var sb strings.Builder
	sb.WriteString(p.Title + "\n")
	sb.WriteString(fmt.Sprintf("by %s on %s · %s\n", p.Author.Username, render.Date(p.CreatedAt), render.Plural(len(p.Likes), "like", "likes")))
	if len(p.Tags) > 0 {
		sb.WriteString("#" + strings.Join(p.Tags, " #") + "\n")
	}
	if p.CoverImage != "" {
		sb.WriteString("Cover: " + p.CoverImage + "\n")
	}
	sb.WriteString("\n" + render.Text(p.Content) + "\n")
	return textResult(sb.String()), nil
}

func (s *Server) handleListComments(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID string `json:"post_id"`
		Page   int    `json:"page"`
		Limit  int    `json:"limit"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.PostID) == "" {
		return toolError("post_id is required"), nil
	}

	comments := listing.NewController(s.client.CommentSource(args.PostID), models.Comment.Key,
		pageQuery(args.Page, args.Limit, listing.DefaultPageSize))
	comments.Run(ctx, comments.Start())
	if err := comments.Err(); err != nil {
		s.log.WithError(err).WithField("post_id", args.PostID).Warn("list_comments failed")
		return toolError("failed to list comments: %s", api.MessageOr(err, err.Error())), nil
	}

	items := comments.Items()
	if len(items) == 0 {
		return textResult("No comments yet."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page %d of %d\n", comments.Page(), comments.TotalPages()))
	for _, c := range items {
		sb.WriteString(fmt.Sprintf("---\n@%s %s\n%s\n", c.Author.Username, render.Relative(c.CreatedAt), c.Text))
	}
	return textResult(sb.String()), nil
}

func (s *Server) handleListTags(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	tags, err := s.client.ListTags(ctx)
	if err != nil {
		s.log.WithError(err).Warn("list_tags failed")
		return toolError("failed to list tags: %v", err), nil
	}
	if len(tags) == 0 {
		return textResult("No tags yet."), nil
	}

	var sb strings.Builder
	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("#%s (%s)\n", t.Name, render.Plural(t.Count, "post", "posts")))
	}
	return textResult(sb.String()), nil
}

// decodeArgs unmarshals tool arguments; a call without arguments decodes as {}.
func decodeArgs(req *gomcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
