// ABOUTME: Profile view: user card, the author's posts, and inline editing of one's own profile.
// ABOUTME: Profile edits refresh the cached session user so the new name shows everywhere.
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

type userLoadedMsg struct {
	owner int
	user  *models.User
	err   error
}

type profileSavedMsg struct {
	owner int
	user  *models.User
	err   error
}

// ProfileModel shows a user and their posts.
type ProfileModel struct {
	id      int
	env     *Env
	userID  string
	user    *models.User
	err     error
	posts   *listing.Controller[models.Post]
	cursor  int
	editing bool
	saving  bool
	field   int
	inputs  [2]textinput.Model
	status  status
}

// NewProfileModel creates the profile view for userID.
func NewProfileModel(env *Env, userID string) *ProfileModel {
	name := textinput.New()
	name.Placeholder = "Username"
	name.Width = 40

	bio := textinput.New()
	bio.Placeholder = "Write a short bio..."
	bio.CharLimit = 500
	bio.Width = 60

	q := listing.NewQuery(env.Sizes.Profile).WithFilter(listing.AuthorFilter(userID))
	return &ProfileModel{
		id:     newOwner(),
		env:    env,
		userID: userID,
		posts:  listing.NewController(env.Client.PostSource(), models.Post.Key, q),
		inputs: [2]textinput.Model{name, bio},
	}
}

// Init loads the user and the first page of their posts.
func (m *ProfileModel) Init() tea.Cmd {
	ctx, client, owner, id := m.env.ctx(), m.env.Client, m.id, m.userID
	load := func() tea.Msg {
		u, err := client.GetUser(ctx, id)
		return userLoadedMsg{owner: owner, user: u, err: err}
	}
	return tea.Batch(load, fetchCmd(ctx, m.id, m.posts, m.posts.Start()))
}

func (m *ProfileModel) isOwn() bool {
	return m.env.Session.IsOwner(m.userID)
}

// Update handles one message.
func (m *ProfileModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.env.log().WithError(msg.err).WithField("user_id", m.userID).Warn("failed to load user")
			m.err = msg.err
			return m, nil
		}
		m.user = msg.user
		return m, nil

	case fetchedMsg[models.Post]:
		applied, cmd := applyFetched(m.env.ctx(), m.id, m.posts, msg)
		if applied {
			m.cursor = clampCursor(m.cursor, len(m.posts.Items()))
		}
		return m, cmd

	case profileSavedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			m.env.log().WithError(msg.err).Warn("failed to update profile")
			return m, m.status.set(m.id, api.MessageOr(msg.err, "Failed to update profile"), true)
		}
		merged := *m.user
		merged.Username = msg.user.Username
		merged.Bio = msg.user.Bio
		m.user = &merged
		if m.isOwn() {
			m.env.Session.UpdateUser(merged)
			if m.env.SaveSession != nil {
				if err := m.env.SaveSession(); err != nil {
					m.env.log().WithError(err).Warn("failed to save session")
				}
			}
		}
		m.editing = false
		return m, m.status.set(m.id, "Profile updated", false)

	case backMsg:
		if msg.reload {
			return m, fetchCmd(m.env.ctx(), m.id, m.posts, m.posts.Reload())
		}
		return m, nil

	case clearStatusMsg:
		m.status.clear(msg, m.id)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *ProfileModel) updateKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	items := m.posts.Items()
	switch msg.String() {
	case "esc", "q", "backspace":
		return m, navigate(backMsg{})
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(items))
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(items))
	case "right", "l", "n":
		return m, m.goTo(m.posts.Page() + 1)
	case "left", "h", "p":
		return m, m.goTo(m.posts.Page() - 1)
	case "enter":
		if len(items) > 0 {
			return m, navigate(openPostMsg{id: items[m.cursor].ID})
		}
	case "e":
		if !m.isOwn() || m.user == nil {
			return m, nil
		}
		m.editing = true
		m.field = 0
		m.inputs[0].SetValue(m.user.Username)
		m.inputs[1].SetValue(m.user.Bio)
		m.inputs[0].Focus()
		m.inputs[1].Blur()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *ProfileModel) updateEditing(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.editing = false
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.inputs[m.field].Blur()
		m.field = 1 - m.field
		m.inputs[m.field].Focus()
		return m, textinput.Blink
	case tea.KeyEnter:
		if m.field == 0 {
			m.inputs[0].Blur()
			m.field = 1
			m.inputs[1].Focus()
			return m, textinput.Blink
		}
		if m.saving {
			return m, nil
		}
		in, err := validate.Profile(models.ProfileInput{Username: m.inputs[0].Value(), Bio: m.inputs[1].Value()})
		if err != nil {
			return m, m.status.set(m.id, err.Error(), true)
		}
		m.saving = true
		ctx, client, owner := m.env.ctx(), m.env.Client, m.id
		return m, func() tea.Msg {
			u, err := client.UpdateProfile(ctx, in)
			return profileSavedMsg{owner: owner, user: u, err: err}
		}
	}
	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	return m, cmd
}

func (m *ProfileModel) goTo(page int) tea.Cmd {
	req, ok := m.posts.SetPage(page)
	if !ok {
		return nil
	}
	m.cursor = 0
	return fetchCmd(m.env.ctx(), m.id, m.posts, req)
}

// View renders the profile.
func (m *ProfileModel) View() string {
	var b strings.Builder
	b.WriteString(header("Profile"))

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("User not found") + "\n")
		b.WriteString("\n" + promptStyle.Render("[esc] back") + "\n")
		return b.String()
	case m.user == nil:
		b.WriteString(promptStyle.Render("Loading profile...") + "\n")
		return b.String()
	}

	u := m.user
	if m.editing {
		b.WriteString(m.inputs[0].View() + "\n")
		b.WriteString(m.inputs[1].View() + "\n")
		if m.saving {
			b.WriteString(promptStyle.Render("Saving...") + "\n")
		}
		b.WriteString(promptStyle.Render("[tab] next field  [enter] save  [esc] cancel") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render(u.Username) + "\n")
		if u.Bio != "" {
			b.WriteString(u.Bio + "\n")
		}
		stats := fmt.Sprintf("%s · %s · %s", render.Plural(u.PostCount, "Post", "Posts"), u.Role, render.Joined(u.CreatedAt))
		b.WriteString(dimStyle.Render(stats) + "\n\n")
	}

	b.WriteString(titleStyle.Render("Posts by "+u.Username) + "\n\n")
	switch {
	case !m.posts.HasPage() && m.posts.State() == listing.Loading:
		b.WriteString(promptStyle.Render("Loading posts...") + "\n")
	case m.posts.HasPage() && len(m.posts.Items()) == 0:
		b.WriteString(promptStyle.Render("No posts yet.") + "\n")
	default:
		b.WriteString(renderPosts(m.posts.Items(), m.cursor))
		if pager := render.Pager(m.posts.Page(), m.posts.TotalPages()); pager != "" {
			b.WriteString(pager + "\n")
		}
	}
	if msg := m.posts.Message(); msg != "" {
		b.WriteString(errorStyle.Render("✗ "+msg) + "\n")
	}
	if s := m.status.view(); s != "" {
		b.WriteString("\n" + s + "\n")
	}

	help := "[enter] read  [←/→] page  [esc] back"
	if m.isOwn() {
		help = "[enter] read  [←/→] page  [e] edit profile  [esc] back"
	}
	b.WriteString("\n" + promptStyle.Render(help) + "\n")
	return b.String()
}
