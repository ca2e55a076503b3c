// ABOUTME: Tests for the home feed against an in-memory blog API.
// ABOUTME: Covers paging, filters, stale results, failures, and the debounced deep link.
package tui

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var ada = models.Author{ID: "u1", Username: "ada"}

func loadedFeed(t *testing.T, env *Env, q listing.Query) *FeedModel {
	t.Helper()
	m := NewFeedModel(env, q)
	return settle(t, m, m.Init()).(*FeedModel)
}

func TestFeed_InitialLoad(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = seedPosts(5, ada, "go")
	blog.tags = []models.Tag{{Name: "go", Count: 5}}
	m := loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{})

	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("expected 2 posts on page 1, got %d", got)
	}
	if m.list.TotalPages() != 3 {
		t.Errorf("expected 3 pages, got %d", m.list.TotalPages())
	}
	view := m.View()
	for _, want := range []string{"Post 1", "Post 2", "by ada", "#go 5", "[1]"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "Post 3") {
		t.Error("expected page 2 posts not to be shown")
	}
}

func TestFeed_EmptyStates(t *testing.T) {
	blog := newFakeBlog()
	env := newTestEnv(t, blog, nil)

	m := loadedFeed(t, env, listing.Query{})
	view := m.View()
	if !strings.Contains(view, "No posts found") || !strings.Contains(view, "Be the first to create a post!") {
		t.Errorf("expected unfiltered empty state, got %q", view)
	}

	m = loadedFeed(t, env, listing.Query{Search: "nothing"})
	if !strings.Contains(m.View(), "Try adjusting your search or filter") {
		t.Error("expected filtered empty state")
	}
}

func TestFeed_Paging(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = seedPosts(5, ada)
	var s screen = loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{})

	s = press(t, s, "l")
	m := s.(*FeedModel)
	if m.list.Page() != 2 || m.list.Items()[0].ID != "p3" {
		t.Errorf("expected page 2 starting at p3, got page %d", m.list.Page())
	}

	s = press(t, s, "G")
	if m.list.Page() != 3 {
		t.Errorf("expected last page 3, got %d", m.list.Page())
	}

	// Past the last page nothing is issued.
	before := len(blog.postQueries())
	if _, cmd := s.Update(key("l")); cmd != nil {
		t.Error("expected no command when paging past the end")
	}
	if len(blog.postQueries()) != before {
		t.Error("expected no request when paging past the end")
	}

	s = press(t, s, "g")
	if m.list.Page() != 1 {
		t.Errorf("expected page 1 after g, got %d", m.list.Page())
	}
}

func TestFeed_SearchResetsPage(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = seedPosts(12, ada)
	var s screen = loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{Page: 2})

	s = press(t, s, "/")
	s = typeText(s, "post 1")
	s = press(t, s, "enter")

	m := s.(*FeedModel)
	if m.Query().Search != "post 1" || m.Query().Page != 1 {
		t.Errorf("expected search on page 1, got %+v", m.Query())
	}
	queries := blog.postQueries()
	if last := queries[len(queries)-1]; !strings.Contains(last, "search=post+1") || !strings.Contains(last, "page=1") {
		t.Errorf("expected search query on page 1, got %q", last)
	}
	// Post 1, 10, 11, 12 match.
	if m.list.TotalPages() != 2 {
		t.Errorf("expected 2 pages of matches, got %d", m.list.TotalPages())
	}
}

func TestFeed_TagCycleAndClear(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = append(seedPosts(1, ada, "go"), models.Post{ID: "r1", Title: "Rusty", Tags: []string{"rust"}, Author: ada})
	blog.tags = []models.Tag{{Name: "go", Count: 1}, {Name: "rust", Count: 1}}
	var s screen = loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{})
	m := s.(*FeedModel)

	s = press(t, s, "t")
	if m.Query().Tag != "go" {
		t.Errorf("expected tag go, got %q", m.Query().Tag)
	}
	s = press(t, s, "t")
	if m.Query().Tag != "rust" || m.list.Items()[0].ID != "r1" {
		t.Errorf("expected rust posts, got tag %q", m.Query().Tag)
	}
	s = press(t, s, "t")
	if m.Query().Tag != "" {
		t.Errorf("expected cycle back to all, got %q", m.Query().Tag)
	}
	s = press(t, s, "T")
	if m.Query().Tag != "rust" {
		t.Errorf("expected reverse cycle to rust, got %q", m.Query().Tag)
	}

	press(t, s, "x")
	if m.Query().HasFilters() {
		t.Errorf("expected filters cleared, got %+v", m.Query())
	}
}

func TestFeed_StaleResultDropped(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = append(seedPosts(2, ada, "go"), models.Post{ID: "r1", Title: "Rusty", Tags: []string{"rust"}, Author: ada})
	m := loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{})

	ctx := context.Background()
	goReq := m.list.SetFilter(listing.TagFilter("go"))
	rustReq := m.list.SetFilter(listing.TagFilter("rust"))
	goRes := m.list.Fetch(ctx, goReq)
	rustRes := m.list.Fetch(ctx, rustReq)

	m.Update(fetchedMsg[models.Post]{owner: m.id, res: rustRes})
	m.Update(fetchedMsg[models.Post]{owner: m.id, res: goRes})

	if m.Query().Tag != "rust" {
		t.Errorf("expected rust query to win, got %q", m.Query().Tag)
	}
	if items := m.list.Items(); len(items) != 1 || items[0].ID != "r1" {
		t.Errorf("expected only the rust post, got %+v", items)
	}
}

func TestFeed_ForeignResultIgnored(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = seedPosts(1, ada)
	m := loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{})

	req := m.list.Reload()
	res := m.list.Fetch(context.Background(), req)
	res.Page.Items = nil
	m.Update(fetchedMsg[models.Post]{owner: m.id + 1000, res: res})
	if m.list.State() != listing.Loading {
		t.Errorf("expected result for another view to be ignored, state %s", m.list.State())
	}
}

func TestFeed_FailureKeepsLastPage(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = seedPosts(4, ada)
	var s screen = loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{})

	blog.failWith(http.MethodGet, "/api/posts", http.StatusInternalServerError)
	s = press(t, s, "l")

	m := s.(*FeedModel)
	if m.list.State() != listing.Failed {
		t.Fatalf("expected failed state, got %s", m.list.State())
	}
	view := m.View()
	if !strings.Contains(view, "Post 1") {
		t.Error("expected last good page to stay visible")
	}
	if !strings.Contains(view, "✗") {
		t.Error("expected an error line")
	}
}

func TestFeed_ClampsPastLastPage(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = seedPosts(3, ada)
	m := loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{Page: 9})

	if m.list.Page() != 2 {
		t.Errorf("expected clamp to last page 2, got %d", m.list.Page())
	}
	if items := m.list.Items(); len(items) != 1 || items[0].ID != "p3" {
		t.Errorf("expected last page contents after clamp, got %+v", items)
	}
}

func TestFeed_DeepLinkDebounced(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = seedPosts(6, ada)
	env := newTestEnv(t, blog, nil)
	var mu sync.Mutex
	var saved []string
	env.SaveLink = func(link string) error {
		mu.Lock()
		defer mu.Unlock()
		saved = append(saved, link)
		return nil
	}
	m := loadedFeed(t, env, listing.Query{})

	_, first := m.Update(key("l"))
	_, second := m.Update(key("l"))

	var msgs []tea.Msg
	msgs = append(msgs, drain(first, time.Second)...)
	msgs = append(msgs, drain(second, time.Second)...)
	for _, msg := range msgs {
		if _, ok := msg.(syncLinkMsg); ok {
			m.Update(msg)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(saved) != 1 {
		t.Fatalf("expected one link write, got %v", saved)
	}
	if saved[0] != "page=3" {
		t.Errorf("expected final link page=3, got %q", saved[0])
	}
}

func TestFeed_ServerClampSavesLink(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = seedPosts(6, ada)
	env := newTestEnv(t, blog, nil)
	var mu sync.Mutex
	var saved []string
	env.SaveLink = func(link string) error {
		mu.Lock()
		defer mu.Unlock()
		saved = append(saved, link)
		return nil
	}
	m := loadedFeed(t, env, listing.Query{})
	m = press(t, m, "G").(*FeedModel)
	if m.Link() != "page=3" {
		t.Fatalf("expected link page=3, got %q", m.Link())
	}

	blog.mu.Lock()
	blog.posts = blog.posts[:2]
	blog.mu.Unlock()

	// Apply every result, holding link writes until the feed has settled.
	_, cmd := m.Update(key("r"))
	queue := drain(cmd, 200*time.Millisecond)
	var syncs []tea.Msg
	for i := 0; len(queue) > 0; i++ {
		if i > 100 {
			t.Fatal("messages did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case syncLinkMsg:
			syncs = append(syncs, msg)
			continue
		case spinner.TickMsg, clearStatusMsg:
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, drain(next, time.Second)...)
	}
	for _, msg := range syncs {
		m.Update(msg)
	}

	if m.list.Page() != 1 {
		t.Errorf("expected clamp to page 1, got %d", m.list.Page())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(saved) != 1 || saved[0] != "" {
		t.Errorf("expected the clamped link to be saved once, got %q", saved)
	}
}

func TestFeed_Navigation(t *testing.T) {
	blog := newFakeBlog()
	blog.posts = seedPosts(2, ada)
	m := loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{})

	_, cmd := m.Update(key("j"))
	if cmd != nil {
		t.Error("expected no command for cursor movement")
	}
	_, cmd = m.Update(key("enter"))
	if nav, ok := navigation(cmd).(openPostMsg); !ok || nav.id != "p2" {
		t.Errorf("expected openPostMsg for p2, got %#v", navigation(cmd))
	}
	_, cmd = m.Update(key("u"))
	if nav, ok := navigation(cmd).(openProfileMsg); !ok || nav.id != "u1" {
		t.Errorf("expected openProfileMsg for u1, got %#v", nav)
	}
}

func TestFeed_GatedShortcuts(t *testing.T) {
	blog := newFakeBlog()
	var s screen = loadedFeed(t, newTestEnv(t, blog, nil), listing.Query{})

	s = press(t, s, "A")
	if !strings.Contains(s.View(), "Admin access required") {
		t.Error("expected admin gate message for anonymous user")
	}
	s = press(t, s, "m")
	if !strings.Contains(s.View(), "Log in to view your profile") {
		t.Error("expected login hint for anonymous user")
	}

	admin := newTestEnv(t, blog, loggedIn("root", models.RoleAdmin))
	m := loadedFeed(t, admin, listing.Query{})
	_, cmd := m.Update(key("A"))
	if _, ok := navigation(cmd).(openAdminMsg); !ok {
		t.Error("expected admin navigation for admin user")
	}
}
