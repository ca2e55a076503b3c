// ABOUTME: Plain-text rendering of posts, comments, and users for CLI output.
// ABOUTME: Shares date, count, and HTML-to-text helpers with the terminal UI.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/render"
)

func printPostSummary(w io.Writer, p models.Post) {
	fmt.Fprintf(w, "--- [%s] %s\n", p.ID, p.Title)
	fmt.Fprintf(w, "    by %s · %s · %s", p.Author.Username, render.Date(p.CreatedAt), render.Plural(len(p.Likes), "like", "likes"))
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, " · #%s", strings.Join(p.Tags, " #"))
	}
	fmt.Fprintln(w)
	if ex := render.Excerpt(p.Content); ex != "" {
		fmt.Fprintf(w, "    %s\n", ex)
	}
}

func printPost(w io.Writer, p models.Post) {
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "by %s · %s · %s\n", p.Author.Username, render.Date(p.CreatedAt), render.Plural(len(p.Likes), "like", "likes"))
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "#%s\n", strings.Join(p.Tags, " #"))
	}
	if p.CoverImage != "" {
		fmt.Fprintf(w, "Cover: %s\n", p.CoverImage)
	}
	fmt.Fprintf(w, "\n%s\n", render.Text(p.Content))
}

func printComment(w io.Writer, c models.Comment) {
	fmt.Fprintf(w, "--- [%s] @%s %s\n%s\n", c.ID, c.Author.Username, render.Relative(c.CreatedAt), c.Text)
}

func printUser(w io.Writer, u models.User) {
	fmt.Fprintf(w, "%s (%s)\n", u.Username, u.Role)
	if u.Email != "" {
		fmt.Fprintf(w, "Email: %s\n", u.Email)
	}
	if u.Bio != "" {
		fmt.Fprintf(w, "%s\n", u.Bio)
	}
	fmt.Fprintf(w, "%s · %s\n", render.Plural(u.PostCount, "post", "posts"), render.Joined(u.CreatedAt))
}

func printPager(w io.Writer, page, total int) {
	if pager := render.Pager(page, total); pager != "" {
		fmt.Fprintf(w, "\n%s\n", pager)
	}
}
