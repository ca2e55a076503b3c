// ABOUTME: Admin dashboard: a table of users with confirmed deletion of non-admin accounts.
// ABOUTME: Only reachable for admins; others see an access message.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/render"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type userDeletedMsg struct {
	owner int
	id    string
	err   error
}

// AdminModel lists users for an admin.
type AdminModel struct {
	id      int
	env     *Env
	users   *listing.Controller[models.User]
	table   table.Model
	confirm confirmation
	status  status
}

// NewAdminModel creates the admin dashboard.
func NewAdminModel(env *Env) *AdminModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "User", Width: 20},
			{Title: "Email", Width: 28},
			{Title: "Role", Width: 8},
			{Title: "Posts", Width: 6},
			{Title: "Joined", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("212"))
	t.SetStyles(st)

	return &AdminModel{
		id:    newOwner(),
		env:   env,
		users: listing.NewController(env.Client.UserSource(), models.User.Key, listing.NewQuery(env.Sizes.Users)),
		table: t,
	}
}

// Init loads the first page of users when the session is an admin.
func (m *AdminModel) Init() tea.Cmd {
	if !m.env.Session.IsAdmin() {
		return nil
	}
	return fetchCmd(m.env.ctx(), m.id, m.users, m.users.Start())
}

func (m *AdminModel) syncRows() {
	users := m.users.Items()
	rows := make([]table.Row, len(users))
	for i, u := range users {
		rows[i] = table.Row{u.Username, u.Email, string(u.Role), render.Count(u.PostCount), render.Date(u.CreatedAt)}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(clampCursor(c, len(rows)))
	}
}

func (m *AdminModel) selected() (models.User, bool) {
	users := m.users.Items()
	c := m.table.Cursor()
	if c < 0 || c >= len(users) {
		return models.User{}, false
	}
	return users[c], true
}

// Update handles one message.
func (m *AdminModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg[models.User]:
		applied, cmd := applyFetched(m.env.ctx(), m.id, m.users, msg)
		if applied {
			m.syncRows()
		}
		return m, cmd

	case userDeletedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.env.log().WithError(msg.err).WithField("user_id", msg.id).Warn("failed to delete user")
			return m, m.status.set(m.id, api.MessageOr(msg.err, "Failed to delete user"), true)
		}
		m.users.RemoveItem(msg.id)
		m.syncRows()
		return m, m.status.set(m.id, "User deleted", false)

	case clearStatusMsg:
		m.status.clear(msg, m.id)
		return m, nil

	case tea.KeyMsg:
		if ok, cmd := m.confirm.handle(msg); ok {
			return m, cmd
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *AdminModel) updateKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		return m, navigate(backMsg{})
	case "right", "n":
		return m, m.goTo(m.users.Page() + 1)
	case "left", "p":
		return m, m.goTo(m.users.Page() - 1)
	case "r":
		return m, fetchCmd(m.env.ctx(), m.id, m.users, m.users.Reload())
	case "enter":
		if u, ok := m.selected(); ok {
			return m, navigate(openProfileMsg{id: u.ID})
		}
		return m, nil
	case "d":
		u, ok := m.selected()
		if !ok {
			return m, nil
		}
		if !m.env.Session.CanDeleteUser(u) {
			return m, m.status.set(m.id, "Admin accounts cannot be deleted", true)
		}
		m.confirm = confirmation{
			prompt: fmt.Sprintf("Delete %s and all their content?", u.Username),
			onYes:  func() tea.Cmd { return m.deleteCmd(u.ID) },
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *AdminModel) goTo(page int) tea.Cmd {
	req, ok := m.users.SetPage(page)
	if !ok {
		return nil
	}
	return fetchCmd(m.env.ctx(), m.id, m.users, req)
}

func (m *AdminModel) deleteCmd(id string) tea.Cmd {
	ctx, client, owner := m.env.ctx(), m.env.Client, m.id
	return func() tea.Msg {
		return userDeletedMsg{owner: owner, id: id, err: client.DeleteUser(ctx, id)}
	}
}

// View renders the dashboard.
func (m *AdminModel) View() string {
	var b strings.Builder
	b.WriteString(header("Admin Dashboard"))

	if !m.env.Session.IsAdmin() {
		b.WriteString(errorStyle.Render("Admin access required") + "\n")
		b.WriteString("\n" + promptStyle.Render("[esc] back") + "\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("Users (%d)", len(m.users.Items()))) + "\n\n")
	if !m.users.HasPage() && m.users.State() == listing.Loading {
		b.WriteString(promptStyle.Render("Loading users...") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
		if pager := render.Pager(m.users.Page(), m.users.TotalPages()); pager != "" {
			b.WriteString(pager + "\n")
		}
	}
	if msg := m.users.Message(); msg != "" {
		b.WriteString(errorStyle.Render("✗ "+msg) + "\n")
	}
	if c := m.confirm.view(); c != "" {
		b.WriteString("\n" + c + "\n")
	}
	if s := m.status.view(); s != "" {
		b.WriteString("\n" + s + "\n")
	}
	b.WriteString("\n" + promptStyle.Render("[↑/↓] select  [enter] profile  [d] delete  [←/→] page  [r] reload  [esc] back") + "\n")
	return b.String()
}
