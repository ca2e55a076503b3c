// ABOUTME: Test helpers for the terminal views: an in-memory blog API and a message pump.
// ABOUTME: Commands run on goroutines; their messages are fed back until the view settles.
package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/session"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeBlog is a small in-memory version of the blogging backend.
type fakeBlog struct {
	mu       sync.Mutex
	me       string
	posts    []models.Post
	comments map[string][]models.Comment
	users    []models.User
	tags     []models.Tag
	// fail maps "METHOD /path" to a status the next matching requests return.
	fail    map[string]int
	queries []string
	seq     int
}

func newFakeBlog() *fakeBlog {
	return &fakeBlog{comments: map[string][]models.Comment{}, fail: map[string]int{}}
}

func (b *fakeBlog) failWith(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[method+" "+path] = status
}

func (b *fakeBlog) postQueries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func (b *fakeBlog) postCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.posts)
}

func (b *fakeBlog) commentCount(post string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.comments[post])
}

func (b *fakeBlog) userCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.users)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func paginate[T any](items []T, r *http.Request) ([]T, int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	total := (len(items) + limit - 1) / limit
	if total < 1 {
		total = 1
	}
	start := min((page-1)*limit, len(items))
	end := min(start+limit, len(items))
	return append([]T{}, items[start:end]...), page, total
}

func (b *fakeBlog) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		b.queries = append(b.queries, r.URL.RawQuery)
		var matched []models.Post
		for _, p := range b.posts {
			if s := q.Get("search"); s != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(s)) {
				continue
			}
			if tag := q.Get("tag"); tag != "" && !contains(p.Tags, tag) {
				continue
			}
			if a := q.Get("author"); a != "" && p.Author.ID != a {
				continue
			}
			matched = append(matched, p)
		}
		items, page, total := paginate(matched, r)
		writeJSON(w, http.StatusOK, api.PostList{Posts: items, Page: page, TotalPages: total})
	})
	mux.HandleFunc("GET /api/posts/tags/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"tags": b.tags})
	})
	mux.HandleFunc("GET /api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		if i := b.postIndex(r.PathValue("id")); i >= 0 {
			writeJSON(w, http.StatusOK, map[string]any{"post": b.posts[i]})
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
	})
	mux.HandleFunc("DELETE /api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		if i := b.postIndex(r.PathValue("id")); i >= 0 {
			b.posts = append(b.posts[:i], b.posts[i+1:]...)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
	})
	mux.HandleFunc("PUT /api/posts/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		i := b.postIndex(r.PathValue("id"))
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
			return
		}
		p := &b.posts[i]
		liked := !p.LikedBy(b.me)
		if liked {
			p.Likes = append(p.Likes, b.me)
		} else {
			var rest []string
			for _, id := range p.Likes {
				if id != b.me {
					rest = append(rest, id)
				}
			}
			p.Likes = rest
		}
		writeJSON(w, http.StatusOK, map[string]any{"likesCount": len(p.Likes), "liked": liked})
	})

	mux.HandleFunc("GET /api/comments/{post}", func(w http.ResponseWriter, r *http.Request) {
		items, page, total := paginate(b.comments[r.PathValue("post")], r)
		writeJSON(w, http.StatusOK, api.CommentList{Comments: items, Page: page, TotalPages: total})
	})
	mux.HandleFunc("POST /api/comments/{post}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.seq++
		c := models.Comment{ID: "c-new-" + strconv.Itoa(b.seq), Text: body.Text, Author: models.Author{ID: b.me, Username: "me"}}
		post := r.PathValue("post")
		b.comments[post] = append([]models.Comment{c}, b.comments[post]...)
		writeJSON(w, http.StatusCreated, map[string]any{"comment": c})
	})
	mux.HandleFunc("DELETE /api/comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		for post, list := range b.comments {
			var rest []models.Comment
			for _, c := range list {
				if c.ID != id {
					rest = append(rest, c)
				}
			}
			b.comments[post] = rest
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
	})

	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		items, page, total := paginate(b.users, r)
		writeJSON(w, http.StatusOK, api.UserList{Users: items, Page: page, TotalPages: total})
	})
	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, u := range b.users {
			if u.ID == r.PathValue("id") {
				writeJSON(w, http.StatusOK, map[string]any{"user": u})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
	})
	mux.HandleFunc("PUT /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		var in models.ProfileInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		for i := range b.users {
			if b.users[i].ID == b.me {
				b.users[i].Username = in.Username
				b.users[i].Bio = in.Bio
				writeJSON(w, http.StatusOK, map[string]any{"user": models.User{ID: b.me, Username: in.Username, Bio: in.Bio}})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
	})
	mux.HandleFunc("DELETE /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var rest []models.User
		for _, u := range b.users {
			if u.ID != r.PathValue("id") {
				rest = append(rest, u)
			}
		}
		b.users = rest
		writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if status, ok := b.fail[r.Method+" "+r.URL.Path]; ok {
			writeJSON(w, status, map[string]string{})
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (b *fakeBlog) postIndex(id string) int {
	for i, p := range b.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func seedPosts(n int, author models.Author, tags ...string) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{
			ID:        "p" + strconv.Itoa(i+1),
			Title:     "Post " + strconv.Itoa(i+1),
			Content:   "<p>Body of post " + strconv.Itoa(i+1) + "</p>",
			Tags:      tags,
			Author:    author,
			CreatedAt: time.Date(2024, 3, 1+i, 0, 0, 0, 0, time.UTC),
		}
	}
	return posts
}

func loggedIn(id string, role models.Role) *session.Session {
	return &session.Session{Token: "tok-" + id, User: &models.User{ID: id, Username: id, Role: role}}
}

// newTestEnv starts blog on an httptest server and returns an Env pointed at it.
func newTestEnv(t *testing.T, blog *fakeBlog, sess *session.Session) *Env {
	t.Helper()
	srv := httptest.NewServer(blog.handler())
	t.Cleanup(srv.Close)
	if sess == nil {
		sess = &session.Session{}
	}
	if sess.User != nil {
		blog.me = sess.User.ID
	}
	return &Env{
		Client:  api.NewClient(srv.URL+"/api", api.WithToken(sess.Token)),
		Session: sess,
		Sizes:   PageSizes{Feed: 2, Profile: 2, Comments: 2, Users: 2},
	}
}

// drain runs cmd and any batched commands concurrently and returns the
// messages produced within wait. Timers longer than wait are abandoned.
func drain(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}
	out := make(chan tea.Msg, 128)
	var wg sync.WaitGroup
	var launch func(tea.Cmd)
	launch = func(c tea.Cmd) {
		if c == nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, bc := range batch {
					launch(bc)
				}
				return
			}
			if msg != nil {
				out <- msg
			}
		}()
	}
	launch(cmd)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(wait):
	}

	var msgs []tea.Msg
	for {
		select {
		case msg := <-out:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

// settle feeds cmd's messages to s, then the messages its replies
// produce, until nothing is left. Timer ticks are skipped.
func settle(t *testing.T, s screen, cmd tea.Cmd) screen {
	t.Helper()
	queue := drain(cmd, 200*time.Millisecond)
	for i := 0; len(queue) > 0; i++ {
		if i > 100 {
			t.Fatal("messages did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case spinner.TickMsg, clearStatusMsg, syncLinkMsg:
			continue
		}
		var next tea.Cmd
		s, next = s.Update(msg)
		queue = append(queue, drain(next, 200*time.Millisecond)...)
	}
	return s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends one key to s and settles the result.
func press(t *testing.T, s screen, k string) screen {
	t.Helper()
	next, cmd := s.Update(key(k))
	return settle(t, next, cmd)
}

// typeText sends each rune as its own key press.
func typeText(s screen, text string) screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

// navigation runs cmd and returns the first navigation request it produced.
func navigation(cmd tea.Cmd) tea.Msg {
	for _, msg := range drain(cmd, 50*time.Millisecond) {
		switch msg.(type) {
		case openPostMsg, openProfileMsg, openAdminMsg, backMsg, filterTagMsg:
			return msg
		}
	}
	return nil
}
