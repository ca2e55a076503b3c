// ABOUTME: CLI commands for posts: list, show, create, edit, delete, like, and tags.
// ABOUTME: Create and edit validate locally before anything is sent.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/render"
	"github.com/2389-research/inkwell/internal/validate"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Read and manage posts",
	Long:  "List, read, write, like, and delete blog posts.",
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Long:  "Print one page of the feed with optional search, tag, and author filters.",
	Args:  cobra.NoArgs,
	RunE:  runPostList,
}

var postShowCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "Show a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostShow,
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	Long:  "Create a post. Content is HTML; use --content-file to read it from a file ('-' for stdin).",
	Args:  cobra.NoArgs,
	RunE:  runPostCreate,
}

var postEditCmd = &cobra.Command{
	Use:   "edit <post-id>",
	Short: "Edit a post",
	Long:  "Edit a post you own. Fields you don't pass keep their current values.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostEdit,
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostDelete,
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostLike,
}

var postTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags with post counts",
	Args:  cobra.NoArgs,
	RunE:  runPostTags,
}

// Flags
var (
	postPage        int
	postLimit       int
	postSearch      string
	postTag         string
	postAuthor      string
	postTitle       string
	postContent     string
	postContentFile string
	postCover       string
	postTags        string
	postComments    bool
	postYes         bool
)

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.AddCommand(postListCmd, postShowCmd, postCreateCmd, postEditCmd, postDeleteCmd, postLikeCmd, postTagsCmd)

	postListCmd.Flags().IntVar(&postPage, "page", 1, "Page number")
	postListCmd.Flags().IntVar(&postLimit, "limit", 0, "Posts per page (default from config)")
	postListCmd.Flags().StringVar(&postSearch, "search", "", "Search text")
	postListCmd.Flags().StringVar(&postTag, "tag", "", "Filter by tag")
	postListCmd.Flags().StringVar(&postAuthor, "author", "", "Filter by author ID")

	postShowCmd.Flags().BoolVar(&postComments, "comments", false, "Also print the first page of comments")

	for _, c := range []*cobra.Command{postCreateCmd, postEditCmd} {
		c.Flags().StringVar(&postTitle, "title", "", "Post title")
		c.Flags().StringVar(&postContent, "content", "", "Post content (HTML)")
		c.Flags().StringVar(&postContentFile, "content-file", "", "Read content from a file, '-' for stdin")
		c.Flags().StringVar(&postCover, "cover", "", "Cover image URL")
		c.Flags().StringVar(&postTags, "tags", "", "Comma-separated tags")
		c.MarkFlagsMutuallyExclusive("content", "content-file")
	}

	postDeleteCmd.Flags().BoolVarP(&postYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runPostList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	size := postLimit
	if size <= 0 {
		size = globalConfig.FeedPageSize()
	}
	q := listing.NewQuery(size).WithPage(postPage)
	q.Search = strings.TrimSpace(postSearch)
	q.Tag = strings.TrimSpace(postTag)
	q.AuthorID = strings.TrimSpace(postAuthor)

	posts := listing.NewController(globalClient.PostSource(), models.Post.Key, q)
	posts.Run(ctx, posts.Start())
	if err := posts.Err(); err != nil {
		return apiError(err, "Failed to fetch posts")
	}

	out := cmd.OutOrStdout()
	if len(posts.Items()) == 0 {
		fmt.Fprintln(out, "No posts found.")
		if posts.Query().HasFilters() {
			fmt.Fprintln(out, "Try adjusting your search or filter.")
		}
		return nil
	}
	for _, p := range posts.Items() {
		printPostSummary(out, p)
	}
	printPager(out, posts.Page(), posts.TotalPages())
	return nil
}

func runPostShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	p, err := globalClient.GetPost(ctx, args[0])
	if err != nil {
		return apiError(err, "Failed to load post")
	}
	out := cmd.OutOrStdout()
	printPost(out, *p)

	if !postComments {
		return nil
	}
	comments := listing.NewController(globalClient.CommentSource(p.ID), models.Comment.Key, listing.NewQuery(globalConfig.CommentPageSize()))
	comments.Run(ctx, comments.Start())
	if err := comments.Err(); err != nil {
		return apiError(err, "Failed to fetch comments")
	}
	fmt.Fprintf(out, "\nComments (%d)\n", len(comments.Items()))
	if len(comments.Items()) == 0 {
		fmt.Fprintln(out, "No comments yet. Be the first to share your thoughts!")
	}
	for _, c := range comments.Items() {
		printComment(out, c)
	}
	return nil
}

// readContent returns --content, or the file named by --content-file.
func readContent(cmd *cobra.Command) (string, error) {
	switch postContentFile {
	case "":
		return postContent, nil
	case "-":
		data, err := readAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read content from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(postContentFile)
	if err != nil {
		return "", fmt.Errorf("failed to read content file: %w", err)
	}
	return string(data), nil
}

func runPostCreate(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	content, err := readContent(cmd)
	if err != nil {
		return err
	}
	in, err := validate.Post(postTitle, content, postCover, postTags)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	p, err := globalClient.CreatePost(ctx, in)
	if err != nil {
		return apiError(err, "Failed to create post")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Post created (ID: %s)\n", p.ID)
	return nil
}

func runPostEdit(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	current, err := globalClient.GetPost(ctx, args[0])
	if err != nil {
		return apiError(err, "Failed to load post")
	}
	if !globalSession.CanMutate(current.Author.ID) {
		return fmt.Errorf("you can only edit your own posts")
	}

	flags := cmd.Flags()
	title, content, cover, tags := current.Title, current.Content, current.CoverImage, strings.Join(current.Tags, ", ")
	if flags.Changed("title") {
		title = postTitle
	}
	if flags.Changed("content") || flags.Changed("content-file") {
		if content, err = readContent(cmd); err != nil {
			return err
		}
	}
	if flags.Changed("cover") {
		cover = postCover
	}
	if flags.Changed("tags") {
		tags = postTags
	}

	in, err := validate.Post(title, content, cover, tags)
	if err != nil {
		return err
	}
	p, err := globalClient.UpdatePost(ctx, current.ID, in)
	if err != nil {
		return apiError(err, "Failed to update post")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Post updated (ID: %s)\n", p.ID)
	return nil
}

func runPostDelete(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	if !postYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to delete this post?") {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := globalClient.DeletePost(ctx, args[0]); err != nil {
		return apiError(err, "Failed to delete post")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Post deleted.")
	return nil
}

func runPostLike(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	res, err := globalClient.ToggleLike(ctx, args[0])
	if err != nil {
		return apiError(err, "Failed to toggle like")
	}
	verb := "Toggled like"
	if res.Liked != nil {
		verb = "Unliked"
		if *res.Liked {
			verb = "Liked"
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", verb, render.Plural(res.LikesCount, "like", "likes"))
	return nil
}

func runPostTags(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	tags, err := globalClient.ListTags(ctx)
	if err != nil {
		return apiError(err, "Failed to fetch tags")
	}
	out := cmd.OutOrStdout()
	if len(tags) == 0 {
		fmt.Fprintln(out, "No tags yet.")
		return nil
	}
	for _, t := range tags {
		fmt.Fprintf(out, "#%s (%s)\n", t.Name, render.Plural(t.Count, "post", "posts"))
	}
	return nil
}
