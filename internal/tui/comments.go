// ABOUTME: Comment list for a post: newer/older paging, writing, and confirmed deletion.
// ABOUTME: New comments are prepended and deleted ones removed only after the server agrees.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/render"
	"github.com/2389-research/inkwell/internal/validate"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type commentAddedMsg struct {
	owner   int
	comment *models.Comment
	err     error
}

type commentDeletedMsg struct {
	owner int
	id    string
	err   error
}

// CommentsModel shows and edits the comments on one post.
type CommentsModel struct {
	id         int
	env        *Env
	postID     string
	list       *listing.Controller[models.Comment]
	cursor     int
	input      textinput.Model
	writing    bool
	submitting bool
	confirm    confirmation
	status     status
}

// NewCommentsModel creates the comment list for postID.
func NewCommentsModel(env *Env, postID string) *CommentsModel {
	in := textinput.New()
	in.Placeholder = "Write a comment..."
	in.CharLimit = 1000
	in.Width = 60

	return &CommentsModel{
		id:     newOwner(),
		env:    env,
		postID: postID,
		list:   listing.NewController(env.Client.CommentSource(postID), models.Comment.Key, listing.NewQuery(env.Sizes.Comments)),
		input:  in,
	}
}

// Init loads the first page.
func (m *CommentsModel) Init() tea.Cmd {
	return fetchCmd(m.env.ctx(), m.id, m.list, m.list.Start())
}

// capturing reports whether key presses belong to this model exclusively.
func (m *CommentsModel) capturing() bool {
	return m.writing || m.confirm.active()
}

// Update handles one message.
func (m *CommentsModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fetchedMsg[models.Comment]:
		applied, cmd := applyFetched(m.env.ctx(), m.id, m.list, msg)
		if applied {
			m.cursor = clampCursor(m.cursor, len(m.list.Items()))
		}
		return cmd

	case commentAddedMsg:
		if msg.owner != m.id {
			return nil
		}
		m.submitting = false
		if msg.err != nil {
			m.env.log().WithError(msg.err).Warn("failed to post comment")
			return m.status.set(m.id, api.MessageOr(msg.err, "Failed to post comment"), true)
		}
		m.list.PrependItem(*msg.comment)
		m.cursor = 0
		m.input.SetValue("")
		m.input.Blur()
		m.writing = false
		return m.status.set(m.id, "Comment posted", false)

	case commentDeletedMsg:
		if msg.owner != m.id {
			return nil
		}
		if msg.err != nil {
			m.env.log().WithError(msg.err).WithField("comment_id", msg.id).Warn("failed to delete comment")
			return m.status.set(m.id, api.MessageOr(msg.err, "Failed to delete comment"), true)
		}
		m.list.RemoveItem(msg.id)
		m.cursor = clampCursor(m.cursor, len(m.list.Items()))
		return m.status.set(m.id, "Comment deleted", false)

	case clearStatusMsg:
		m.status.clear(msg, m.id)

	case tea.KeyMsg:
		if ok, cmd := m.confirm.handle(msg); ok {
			return cmd
		}
		if m.writing {
			return m.updateWriting(msg)
		}
		return m.updateKeys(msg)
	}
	return nil
}

func (m *CommentsModel) updateWriting(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEscape:
		m.writing = false
		m.input.Blur()
		return nil
	case tea.KeyEnter:
		if m.submitting {
			return nil
		}
		text, err := validate.Comment(m.input.Value())
		if err != nil {
			return m.status.set(m.id, err.Error(), true)
		}
		m.submitting = true
		ctx, client, owner, postID := m.env.ctx(), m.env.Client, m.id, m.postID
		return func() tea.Msg {
			c, err := client.AddComment(ctx, postID, text)
			return commentAddedMsg{owner: owner, comment: c, err: err}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *CommentsModel) updateKeys(msg tea.KeyMsg) tea.Cmd {
	items := m.list.Items()
	switch msg.String() {
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(items))
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(items))
	case "]", "right":
		return m.goTo(m.list.Page() + 1)
	case "[", "left":
		return m.goTo(m.list.Page() - 1)
	case "c":
		if !m.env.Session.LoggedIn() {
			return m.status.set(m.id, "Please log in to leave a comment.", true)
		}
		m.writing = true
		m.input.Focus()
		return textinput.Blink
	case "d":
		if len(items) == 0 {
			return nil
		}
		c := items[m.cursor]
		if !m.env.Session.CanMutate(c.Author.ID) {
			return m.status.set(m.id, "You can only delete your own comments", true)
		}
		m.confirm = confirmation{
			prompt: "Delete this comment?",
			onYes:  func() tea.Cmd { return m.deleteCmd(c.ID) },
		}
	}
	return nil
}

func (m *CommentsModel) goTo(page int) tea.Cmd {
	req, ok := m.list.SetPage(page)
	if !ok {
		return nil
	}
	m.cursor = 0
	return fetchCmd(m.env.ctx(), m.id, m.list, req)
}

func (m *CommentsModel) deleteCmd(id string) tea.Cmd {
	ctx, client, owner := m.env.ctx(), m.env.Client, m.id
	return func() tea.Msg {
		return commentDeletedMsg{owner: owner, id: id, err: client.DeleteComment(ctx, id)}
	}
}

// View renders the comment section.
func (m *CommentsModel) View(focused bool) string {
	var b strings.Builder
	title := fmt.Sprintf("Comments (%d)", len(m.list.Items()))
	if focused {
		title = selectedStyle.Render(title)
	} else {
		title = titleStyle.Render(title)
	}
	b.WriteString(title + "\n\n")

	switch {
	case m.writing:
		b.WriteString(m.input.View() + "\n")
		if m.submitting {
			b.WriteString(promptStyle.Render("Posting...") + "\n")
		}
		b.WriteString("\n")
	case !m.env.Session.LoggedIn():
		b.WriteString(promptStyle.Render("Please log in to leave a comment.") + "\n\n")
	}

	switch {
	case !m.list.HasPage() && m.list.State() == listing.Loading:
		b.WriteString(promptStyle.Render("Loading comments...") + "\n")
	case len(m.list.Items()) == 0 && m.list.HasPage():
		b.WriteString(promptStyle.Render("No comments yet. Be the first to share your thoughts!") + "\n")
	default:
		for i, c := range m.list.Items() {
			marker := "  "
			if focused && i == m.cursor {
				marker = selectedStyle.Render("› ")
			}
			b.WriteString(marker + titleStyle.Render(c.Author.Username) + " " + dimStyle.Render(render.Relative(c.CreatedAt)) + "\n")
			b.WriteString("    " + c.Text + "\n\n")
		}
	}

	if m.list.TotalPages() > 1 {
		var nav []string
		if m.list.Page() > 1 {
			nav = append(nav, "[ newer")
		}
		nav = append(nav, fmt.Sprintf("page %d of %d", m.list.Page(), m.list.TotalPages()))
		if m.list.Page() < m.list.TotalPages() {
			nav = append(nav, "older ]")
		}
		b.WriteString(promptStyle.Render(strings.Join(nav, "  ")) + "\n")
	}
	if msg := m.list.Message(); msg != "" {
		b.WriteString(errorStyle.Render("✗ "+msg) + "\n")
	}
	if c := m.confirm.view(); c != "" {
		b.WriteString("\n" + c + "\n")
	}
	if s := m.status.view(); s != "" {
		b.WriteString("\n" + s + "\n")
	}
	return b.String()
}
