// ABOUTME: CLI commands for comments: list, add, and delete.
// ABOUTME: Comment text is trimmed and length-checked before it is sent.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/validate"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Read and write comments",
}

var commentListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "List comments on a post, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentList,
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id> <text>",
	Short: "Comment on a post",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCommentAdd,
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <comment-id>",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentDelete,
}

var (
	commentPage int
	commentYes  bool
)

func init() {
	rootCmd.AddCommand(commentCmd)
	commentCmd.AddCommand(commentListCmd, commentAddCmd, commentDeleteCmd)

	commentListCmd.Flags().IntVar(&commentPage, "page", 1, "Page number (1 is newest)")
	commentDeleteCmd.Flags().BoolVarP(&commentYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runCommentList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	q := listing.NewQuery(globalConfig.CommentPageSize()).WithPage(commentPage)
	comments := listing.NewController(globalClient.CommentSource(args[0]), models.Comment.Key, q)
	comments.Run(ctx, comments.Start())
	if err := comments.Err(); err != nil {
		return apiError(err, "Failed to fetch comments")
	}

	out := cmd.OutOrStdout()
	if len(comments.Items()) == 0 {
		fmt.Fprintln(out, "No comments yet. Be the first to share your thoughts!")
		return nil
	}
	for _, c := range comments.Items() {
		printComment(out, c)
	}
	if comments.TotalPages() > 1 {
		fmt.Fprintf(out, "\npage %d of %d\n", comments.Page(), comments.TotalPages())
	}
	return nil
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return fmt.Errorf("please log in to leave a comment: %w", err)
	}
	text, err := validate.Comment(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	c, err := globalClient.AddComment(ctx, args[0], text)
	if err != nil {
		return apiError(err, "Failed to post comment")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Comment posted (ID: %s)\n", c.ID)
	return nil
}

func runCommentDelete(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	if !commentYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete this comment?") {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := globalClient.DeleteComment(ctx, args[0]); err != nil {
		return apiError(err, "Failed to delete comment")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Comment deleted.")
	return nil
}
