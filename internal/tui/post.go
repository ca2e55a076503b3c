// ABOUTME: Post detail view: rendered body, like toggle, confirmed delete, and comments.
// ABOUTME: Tab moves focus between the post and its comment section.
package tui

import (
	"strings"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/render"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type postLoadedMsg struct {
	owner int
	post  *models.Post
	err   error
}

type likedMsg struct {
	owner int
	res   *api.LikeResult
	err   error
}

type postDeletedMsg struct {
	owner int
	err   error
}

// PostModel shows one post.
type PostModel struct {
	id        int
	env       *Env
	postID    string
	post      *models.Post
	err       error
	liked     bool
	likes     int
	liking    bool
	comments  *CommentsModel
	onComment bool
	spinner   spinner.Model
	confirm   confirmation
	status    status
}

// NewPostModel creates the detail view for postID.
func NewPostModel(env *Env, postID string) *PostModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &PostModel{
		id:       newOwner(),
		env:      env,
		postID:   postID,
		comments: NewCommentsModel(env, postID),
		spinner:  s,
	}
}

// Init loads the post and its first page of comments.
func (m *PostModel) Init() tea.Cmd {
	ctx, client, owner, id := m.env.ctx(), m.env.Client, m.id, m.postID
	load := func() tea.Msg {
		p, err := client.GetPost(ctx, id)
		return postLoadedMsg{owner: owner, post: p, err: err}
	}
	return tea.Batch(load, m.comments.Init(), m.spinner.Tick)
}

// Update handles one message.
func (m *PostModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case postLoadedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.env.log().WithError(msg.err).WithField("post_id", m.postID).Warn("failed to load post")
			return m, nil
		}
		m.post = msg.post
		m.likes = len(msg.post.Likes)
		m.liked = msg.post.LikedBy(m.env.Session.UserID())
		return m, nil

	case likedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		m.liking = false
		if msg.err != nil {
			m.env.log().WithError(msg.err).Warn("failed to toggle like")
			return m, m.status.set(m.id, api.MessageOr(msg.err, "Failed to toggle like"), true)
		}
		if msg.res.Liked != nil {
			m.liked = *msg.res.Liked
		} else {
			m.liked = !m.liked
		}
		m.likes = msg.res.LikesCount
		return m, nil

	case postDeletedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.env.log().WithError(msg.err).WithField("post_id", m.postID).Warn("failed to delete post")
			return m, m.status.set(m.id, api.MessageOr(msg.err, "Failed to delete post"), true)
		}
		return m, navigate(backMsg{reload: true})

	case clearStatusMsg:
		m.status.clear(msg, m.id)
		return m, m.comments.Update(msg)

	case spinner.TickMsg:
		if m.post != nil || m.err != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if ok, cmd := m.confirm.handle(msg); ok {
			return m, cmd
		}
		if m.onComment && m.comments.capturing() {
			return m, m.comments.Update(msg)
		}
		return m.updateKeys(msg)
	}

	return m, m.comments.Update(msg)
}

func (m *PostModel) updateKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		return m, navigate(backMsg{})
	case "tab":
		m.onComment = !m.onComment
		return m, nil
	}

	if m.onComment {
		return m, m.comments.Update(msg)
	}
	if m.post == nil {
		return m, nil
	}

	switch msg.String() {
	case "l":
		if !m.env.Session.LoggedIn() {
			return m, m.status.set(m.id, "Log in to like posts", true)
		}
		if m.liking {
			return m, nil
		}
		m.liking = true
		ctx, client, owner, id := m.env.ctx(), m.env.Client, m.id, m.postID
		return m, func() tea.Msg {
			res, err := client.ToggleLike(ctx, id)
			return likedMsg{owner: owner, res: res, err: err}
		}
	case "d":
		if !m.env.Session.CanMutate(m.post.Author.ID) {
			return m, nil
		}
		m.confirm = confirmation{
			prompt: "Are you sure you want to delete this post?",
			onYes:  m.deleteCmd,
		}
	case "u":
		if m.post.Author.ID != "" {
			return m, navigate(openProfileMsg{id: m.post.Author.ID})
		}
	case "t":
		if len(m.post.Tags) > 0 {
			return m, navigate(filterTagMsg{tag: m.post.Tags[0]})
		}
	}
	return m, nil
}

func (m *PostModel) deleteCmd() tea.Cmd {
	ctx, client, owner, id := m.env.ctx(), m.env.Client, m.id, m.postID
	return func() tea.Msg {
		return postDeletedMsg{owner: owner, err: client.DeletePost(ctx, id)}
	}
}

// View renders the post.
func (m *PostModel) View() string {
	var b strings.Builder
	b.WriteString(header("Post"))

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("✗ "+api.MessageOr(m.err, "Failed to load post")) + "\n")
		b.WriteString("\n" + promptStyle.Render("[esc] back") + "\n")
		return b.String()
	case m.post == nil:
		b.WriteString(m.spinner.View() + " Loading post...\n")
		return b.String()
	}

	p := m.post
	if len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = "#" + t
		}
		b.WriteString(tagStyle.Render(strings.Join(tags, " ")) + "\n")
	}
	b.WriteString(titleStyle.Render(p.Title) + "\n")
	b.WriteString(dimStyle.Render("by "+p.Author.Username+" · "+render.Date(p.CreatedAt)) + "\n\n")
	b.WriteString(bodyStyle.Render(render.Text(p.Content)) + "\n\n")

	heart := "♡"
	if m.liked {
		heart = "♥"
	}
	b.WriteString(selectedStyle.Render(heart) + " " + render.Plural(m.likes, "Like", "Likes") + "\n\n")

	b.WriteString(m.comments.View(m.onComment))

	if c := m.confirm.view(); c != "" {
		b.WriteString("\n" + c + "\n")
	}
	if s := m.status.view(); s != "" {
		b.WriteString("\n" + s + "\n")
	}

	help := "[l] like  [u] author  [t] tag  [tab] comments  [esc] back"
	if m.env.Session.CanMutate(p.Author.ID) {
		help = "[l] like  [d] delete  [u] author  [t] tag  [tab] comments  [esc] back"
	}
	if m.onComment {
		help = "[c] comment  [d] delete  [ / ] newer/older  [tab] post  [esc] back"
	}
	b.WriteString("\n" + promptStyle.Render(help) + "\n")
	return b.String()
}
