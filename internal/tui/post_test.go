// ABOUTME: Tests for the post detail view and its comment section.
// ABOUTME: Covers likes, confirmed deletes, comment prepend, and failed deletes keeping items.
package tui

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

func loadedPost(t *testing.T, blog *fakeBlog, sess *session.Session, id string) *PostModel {
	t.Helper()
	m := NewPostModel(newTestEnv(t, blog, sess), id)
	return settle(t, m, m.Init()).(*PostModel)
}

func blogWithPost() *fakeBlog {
	blog := newFakeBlog()
	blog.posts = []models.Post{{
		ID:      "p1",
		Title:   "Hello Ink",
		Content: "<h2>Intro</h2><p>First <b>post</b>.</p><ul><li>one</li><li>two</li></ul>",
		Tags:    []string{"go", "cli"},
		Author:  ada,
		Likes:   []string{"someone"},
	}}
	blog.comments["p1"] = []models.Comment{
		{ID: "c1", Text: "Nice", Author: models.Author{ID: "u2", Username: "bob"}},
		{ID: "c2", Text: "Agreed", Author: ada},
		{ID: "c3", Text: "Older one", Author: ada},
	}
	return blog
}

func TestPost_LoadsBodyAndComments(t *testing.T) {
	m := loadedPost(t, blogWithPost(), nil, "p1")

	view := m.View()
	for _, want := range []string{"Hello Ink", "#go #cli", "by ada", "Intro", "• one", "1 Like", "Comments (2)", "Nice", "older ]"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "<p>") {
		t.Error("expected HTML to be rendered as text")
	}
	if !strings.Contains(view, "Please log in to leave a comment.") {
		t.Error("expected login prompt for anonymous reader")
	}
}

func TestPost_NotFound(t *testing.T) {
	m := loadedPost(t, blogWithPost(), nil, "missing")
	if !strings.Contains(m.View(), "Post not found") {
		t.Errorf("expected server message, got %q", m.View())
	}
}

func TestPost_LikeToggle(t *testing.T) {
	blog := blogWithPost()
	var s screen = loadedPost(t, blog, loggedIn("u2", models.RoleUser), "p1")
	m := s.(*PostModel)

	s = press(t, s, "l")
	if !m.liked || m.likes != 2 {
		t.Errorf("expected liked with 2 likes, got liked=%v likes=%d", m.liked, m.likes)
	}
	press(t, s, "l")
	if m.liked || m.likes != 1 {
		t.Errorf("expected unliked with 1 like, got liked=%v likes=%d", m.liked, m.likes)
	}
}

func TestPost_LikeRequiresLogin(t *testing.T) {
	var s screen = loadedPost(t, blogWithPost(), nil, "p1")
	s = press(t, s, "l")
	if !strings.Contains(s.View(), "Log in to like posts") {
		t.Error("expected login hint")
	}
}

func TestPost_DeleteOnlyForOwnerOrAdmin(t *testing.T) {
	m := loadedPost(t, blogWithPost(), loggedIn("u2", models.RoleUser), "p1")
	m.Update(key("d"))
	if m.confirm.active() {
		t.Error("expected no delete prompt for a non-owner")
	}

	admin := loadedPost(t, blogWithPost(), loggedIn("root", models.RoleAdmin), "p1")
	admin.Update(key("d"))
	if !strings.Contains(admin.View(), "Are you sure you want to delete this post? [y/N]") {
		t.Error("expected delete prompt for admin")
	}
}

func TestPost_DeleteConfirmed(t *testing.T) {
	blog := blogWithPost()
	m := loadedPost(t, blog, loggedIn("u1", models.RoleUser), "p1")

	m.Update(key("d"))
	_, cmd := m.Update(key("y"))
	var nav tea.Cmd
	for _, msg := range drain(cmd, 200*time.Millisecond) {
		if _, ok := msg.(postDeletedMsg); ok {
			_, nav = m.Update(msg)
		}
	}
	got := navigation(nav)
	if back, ok := got.(backMsg); !ok || !back.reload {
		t.Errorf("expected back with reload after delete, got %#v", got)
	}
	if blog.postCount() != 0 {
		t.Error("expected post removed on the server")
	}
}

func TestPost_DeleteCancelled(t *testing.T) {
	blog := blogWithPost()
	m := loadedPost(t, blog, loggedIn("u1", models.RoleUser), "p1")

	m.Update(key("d"))
	if _, cmd := m.Update(key("n")); cmd != nil {
		t.Error("expected no command after declining")
	}
	if m.confirm.active() || blog.postCount() != 1 {
		t.Error("expected prompt cleared and post kept")
	}
}

func TestPost_DeleteFailureStays(t *testing.T) {
	blog := blogWithPost()
	blog.failWith(http.MethodDelete, "/api/posts/p1", http.StatusForbidden)
	var s screen = loadedPost(t, blog, loggedIn("u1", models.RoleUser), "p1")

	s.Update(key("d"))
	s = press(t, s, "y")
	view := s.View()
	if !strings.Contains(view, "Failed to delete post") {
		t.Errorf("expected fallback error, got %q", view)
	}
	if !strings.Contains(view, "Hello Ink") {
		t.Error("expected post to remain on screen")
	}
}

func TestPost_TagAndAuthorNavigation(t *testing.T) {
	m := loadedPost(t, blogWithPost(), nil, "p1")

	_, cmd := m.Update(key("t"))
	if nav, ok := navigation(cmd).(filterTagMsg); !ok || nav.tag != "go" {
		t.Errorf("expected filterTagMsg go, got %#v", nav)
	}
	_, cmd = m.Update(key("u"))
	if nav, ok := navigation(cmd).(openProfileMsg); !ok || nav.id != "u1" {
		t.Errorf("expected openProfileMsg u1, got %#v", nav)
	}
	_, cmd = m.Update(key("esc"))
	if _, ok := navigation(cmd).(backMsg); !ok {
		t.Error("expected backMsg on esc")
	}
}

func TestComments_AddPrependsWithoutRefetch(t *testing.T) {
	blog := blogWithPost()
	var s screen = loadedPost(t, blog, loggedIn("u2", models.RoleUser), "p1")
	m := s.(*PostModel)

	s = press(t, s, "tab")
	s = press(t, s, "c")
	if !m.comments.writing {
		t.Fatal("expected comment input to open")
	}
	s = typeText(s, "Great read")
	s = press(t, s, "enter")

	items := m.comments.list.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 comments on the page after prepend, got %d", len(items))
	}
	if items[0].Text != "Great read" {
		t.Errorf("expected new comment first, got %q", items[0].Text)
	}
	if m.comments.writing {
		t.Error("expected input closed after posting")
	}
	if !strings.Contains(s.View(), "Comment posted") {
		t.Error("expected success status")
	}
}

func TestComments_EmptyCommentRejected(t *testing.T) {
	blog := blogWithPost()
	var s screen = loadedPost(t, blog, loggedIn("u2", models.RoleUser), "p1")

	s = press(t, s, "tab")
	s = press(t, s, "c")
	s = typeText(s, "   ")
	s = press(t, s, "enter")
	if blog.commentCount("p1") != 3 {
		t.Error("expected no request for a blank comment")
	}
	if !strings.Contains(s.View(), "✗") {
		t.Error("expected validation error in view")
	}
}

func TestComments_WriteRequiresLogin(t *testing.T) {
	var s screen = loadedPost(t, blogWithPost(), nil, "p1")
	s = press(t, s, "tab")
	s = press(t, s, "c")
	if s.(*PostModel).comments.writing {
		t.Error("expected anonymous reader not to open the input")
	}
}

func TestComments_DeleteAfterServerConfirms(t *testing.T) {
	blog := blogWithPost()
	var s screen = loadedPost(t, blog, loggedIn("u2", models.RoleUser), "p1")
	m := s.(*PostModel)

	s = press(t, s, "tab")
	s = press(t, s, "d")
	if !strings.Contains(s.View(), "Delete this comment? [y/N]") {
		t.Fatal("expected delete prompt")
	}
	press(t, s, "y")

	items := m.comments.list.Items()
	if len(items) != 1 || items[0].ID != "c2" {
		t.Errorf("expected c1 removed locally, got %+v", items)
	}
}

func TestComments_DeleteFailureKeepsComment(t *testing.T) {
	blog := blogWithPost()
	blog.failWith(http.MethodDelete, "/api/comments/c1", http.StatusInternalServerError)
	var s screen = loadedPost(t, blog, loggedIn("u2", models.RoleUser), "p1")
	m := s.(*PostModel)

	s = press(t, s, "tab")
	s = press(t, s, "d")
	s = press(t, s, "y")

	if len(m.comments.list.Items()) != 2 {
		t.Error("expected comment kept after failed delete")
	}
	if !strings.Contains(s.View(), "Failed to delete comment") {
		t.Error("expected delete failure message")
	}
}

func TestComments_CannotDeleteOthers(t *testing.T) {
	var s screen = loadedPost(t, blogWithPost(), loggedIn("u9", models.RoleUser), "p1")
	s = press(t, s, "tab")
	s = press(t, s, "d")
	if !strings.Contains(s.View(), "You can only delete your own comments") {
		t.Error("expected ownership message")
	}
}

func TestComments_Paging(t *testing.T) {
	var s screen = loadedPost(t, blogWithPost(), nil, "p1")
	m := s.(*PostModel)

	s = press(t, s, "tab")
	s = press(t, s, "]")
	if m.comments.list.Page() != 2 || m.comments.list.Items()[0].ID != "c3" {
		t.Errorf("expected older page with c3, got page %d", m.comments.list.Page())
	}
	if !strings.Contains(s.View(), "[ newer") {
		t.Error("expected newer hint on page 2")
	}
}
