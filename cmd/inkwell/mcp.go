// ABOUTME: MCP server command implementation for inkwell.
// ABOUTME: Starts the MCP server in stdio mode for AI agent integration.
package main

import (
	"github.com/spf13/cobra"

	mcppkg "github.com/2389-research/inkwell/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio and exposes read-only tools for
listing posts and tags, reading posts, and listing comments.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	server, err := mcppkg.NewServer(globalClient, version,
		mcppkg.WithLogger(globalLogger),
		mcppkg.WithPageSize(globalConfig.FeedPageSize()),
	)
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}
