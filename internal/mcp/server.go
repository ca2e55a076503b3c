// ABOUTME: MCP server initialization and configuration for inkwell.
// ABOUTME: Exposes the blog's read side (posts, comments, tags) as tools for AI agents.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/logging"
)

// Server wraps the MCP server with a blog API client.
type Server struct {
	mcp      *gomcp.Server
	client   *api.Client
	log      logrus.FieldLogger
	pageSize int
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithLogger sets the logger used for tool calls.
func WithLogger(log logrus.FieldLogger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// WithPageSize sets the default number of posts per list_posts call.
func WithPageSize(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewServer creates an MCP server reading through client.
func NewServer(client *api.Client, version string, opts ...ServerOption) (*Server, error) {
	if client == nil {
		return nil, fmt.Errorf("api client is required")
	}
	if version == "" {
		version = "dev"
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "inkwell",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		client:   client,
		log:      logging.Discard(),
		pageSize: listing.DefaultPageSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerBlogTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.log.WithField("api", s.client.BaseURL()).Info("mcp server listening on stdio")
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
