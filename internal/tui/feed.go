// ABOUTME: Home feed view: paged posts with search, tag filter, and a numbered pager.
// ABOUTME: Query changes are projected to a deep link once they stop changing.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/render"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// linkDebounce is how long the query must stay unchanged before the link is written.
const linkDebounce = 400 * time.Millisecond

type tagsMsg struct {
	owner int
	tags  []models.Tag
	err   error
}

type syncLinkMsg struct {
	owner int
	seq   int
}

// FeedModel is the home feed.
type FeedModel struct {
	id        int
	env       *Env
	list      *listing.Controller[models.Post]
	tags      []models.Tag
	cursor    int
	search    textinput.Model
	searching bool
	spinner   spinner.Model
	ticking   bool
	status    status
	linkSeq   int
}

// NewFeedModel creates a feed positioned at initial, e.g. a decoded deep link.
func NewFeedModel(env *Env, initial listing.Query) *FeedModel {
	if initial.PageSize < 1 {
		initial.PageSize = env.Sizes.Feed
	}

	in := textinput.New()
	in.Placeholder = "Search posts..."
	in.Prompt = "/ "
	in.Width = 50
	in.SetValue(initial.Search)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &FeedModel{
		id:      newOwner(),
		env:     env,
		list:    listing.NewController(env.Client.PostSource(), models.Post.Key, initial),
		search:  in,
		spinner: s,
	}
}

// Init starts the first page and tag load.
func (m *FeedModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.list.Start()), m.loadTags())
}

// Query returns the feed's current query.
func (m *FeedModel) Query() listing.Query { return m.list.Query() }

// Link returns the deep link for the current query.
func (m *FeedModel) Link() string { return listing.Encode(m.list.Query()) }

func (m *FeedModel) fetch(req listing.Request) tea.Cmd {
	cmds := []tea.Cmd{fetchCmd(m.env.ctx(), m.id, m.list, req)}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// mutate issues req for a query change and schedules the debounced link write.
func (m *FeedModel) mutate(req listing.Request) tea.Cmd {
	return tea.Batch(m.fetch(req), m.syncLink())
}

// syncLink schedules a debounced write of the current deep link.
func (m *FeedModel) syncLink() tea.Cmd {
	m.linkSeq++
	seq, owner := m.linkSeq, m.id
	return tea.Tick(linkDebounce, func(time.Time) tea.Msg {
		return syncLinkMsg{owner: owner, seq: seq}
	})
}

func (m *FeedModel) loadTags() tea.Cmd {
	ctx, client, owner := m.env.ctx(), m.env.Client, m.id
	return func() tea.Msg {
		tags, err := client.ListTags(ctx)
		return tagsMsg{owner: owner, tags: tags, err: err}
	}
}

// Update handles one message.
func (m *FeedModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg[models.Post]:
		before := m.Link()
		applied, cmd := applyFetched(m.env.ctx(), m.id, m.list, msg)
		if applied {
			m.cursor = clampCursor(m.cursor, len(m.list.Items()))
			if err := m.list.Err(); err != nil {
				m.env.log().WithError(err).Warn("failed to fetch posts")
			}
			// The server can move the page, e.g. clamping past the last one.
			if m.Link() != before {
				cmd = tea.Batch(cmd, m.syncLink())
			}
		}
		return m, cmd

	case tagsMsg:
		if msg.owner != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.env.log().WithError(msg.err).Warn("failed to fetch tags")
			return m, nil
		}
		m.tags = msg.tags
		return m, nil

	case syncLinkMsg:
		if msg.owner == m.id && msg.seq == m.linkSeq && m.env.SaveLink != nil {
			if err := m.env.SaveLink(m.Link()); err != nil {
				m.env.log().WithError(err).Warn("failed to save deep link")
			}
		}
		return m, nil

	case filterTagMsg:
		return m, m.mutate(m.list.SetFilter(listing.TagFilter(msg.tag)))

	case backMsg:
		if msg.reload {
			return m, m.fetch(m.list.Reload())
		}
		return m, nil

	case clearStatusMsg:
		m.status.clear(msg, m.id)
		return m, nil

	case spinner.TickMsg:
		if msg.ID != m.spinner.ID() {
			return m, nil
		}
		if m.list.State() != listing.Loading {
			m.ticking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *FeedModel) updateSearch(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, m.mutate(m.list.SetFilter(listing.SearchFilter(m.search.Value())))
	case tea.KeyEscape:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.list.Query().Search)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *FeedModel) updateKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	items := m.list.Items()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(items))
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(items))
	case "right", "l", "n":
		return m, m.goTo(m.list.Page() + 1)
	case "left", "h", "p":
		return m, m.goTo(m.list.Page() - 1)
	case "g":
		return m, m.goTo(1)
	case "G":
		return m, m.goTo(m.list.TotalPages())
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "t":
		return m, m.mutate(m.list.SetFilter(listing.TagFilter(m.cycleTag(1))))
	case "T":
		return m, m.mutate(m.list.SetFilter(listing.TagFilter(m.cycleTag(-1))))
	case "a":
		if m.list.Query().Tag == "" {
			return m, nil
		}
		return m, m.mutate(m.list.SetFilter(listing.TagFilter("")))
	case "x":
		if !m.list.Query().HasFilters() {
			return m, nil
		}
		empty := ""
		m.search.SetValue("")
		return m, m.mutate(m.list.SetFilter(listing.Filter{Search: &empty, Tag: &empty}))
	case "r":
		return m, tea.Batch(m.fetch(m.list.Reload()), m.loadTags())
	case "enter":
		if len(items) > 0 {
			return m, navigate(openPostMsg{id: items[m.cursor].ID})
		}
	case "u":
		if len(items) > 0 && items[m.cursor].Author.ID != "" {
			return m, navigate(openProfileMsg{id: items[m.cursor].Author.ID})
		}
	case "m":
		if !m.env.Session.LoggedIn() {
			return m, m.status.set(m.id, "Log in to view your profile", true)
		}
		return m, navigate(openProfileMsg{id: m.env.Session.UserID()})
	case "A":
		if !m.env.Session.IsAdmin() {
			return m, m.status.set(m.id, "Admin access required", true)
		}
		return m, navigate(openAdminMsg{})
	}
	return m, nil
}

func (m *FeedModel) goTo(page int) tea.Cmd {
	req, ok := m.list.SetPage(page)
	if !ok {
		return nil
	}
	m.cursor = 0
	return m.mutate(req)
}

// cycleTag returns the tag dir steps away from the current one, with "" (All)
// between the last and first tags.
func (m *FeedModel) cycleTag(dir int) string {
	names := make([]string, 0, len(m.tags)+1)
	names = append(names, "")
	for _, t := range m.tags {
		names = append(names, t.Name)
	}
	cur := 0
	for i, n := range names {
		if n == m.list.Query().Tag {
			cur = i
			break
		}
	}
	next := (cur + dir + len(names)) % len(names)
	return names[next]
}

// View renders the feed.
func (m *FeedModel) View() string {
	var b strings.Builder
	b.WriteString(header("Feed"))

	if len(m.tags) > 0 {
		b.WriteString(m.tagBar())
		b.WriteString("\n\n")
	}

	q := m.list.Query()
	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	} else if q.Search != "" {
		b.WriteString(promptStyle.Render(fmt.Sprintf("Search: %q", q.Search)))
		b.WriteString("\n\n")
	}

	switch {
	case !m.list.HasPage() && m.list.State() == listing.Loading:
		b.WriteString(m.spinner.View() + " Loading posts...\n")
	case m.list.HasPage() && len(m.list.Items()) == 0 && m.list.State() == listing.Loaded:
		b.WriteString(titleStyle.Render("No posts found"))
		b.WriteString("\n")
		if q.HasFilters() {
			b.WriteString(promptStyle.Render("Try adjusting your search or filter"))
		} else {
			b.WriteString(promptStyle.Render("Be the first to create a post!"))
		}
		b.WriteString("\n")
	default:
		b.WriteString(renderPosts(m.list.Items(), m.cursor))
		if pager := render.Pager(m.list.Page(), m.list.TotalPages()); pager != "" {
			b.WriteString("\n" + pager + "\n")
		}
	}

	if m.list.State() == listing.Loading && m.list.HasPage() {
		b.WriteString("\n" + m.spinner.View() + " Loading...\n")
	}
	if msg := m.list.Message(); msg != "" {
		b.WriteString("\n" + errorStyle.Render("✗ "+api.MessageOr(m.list.Err(), msg)) + "\n")
	}
	if s := m.status.view(); s != "" {
		b.WriteString("\n" + s + "\n")
	}

	b.WriteString("\n")
	b.WriteString(promptStyle.Render("[enter] read  [←/→] page  [/] search  [t] tag  [a] all  [x] clear  [u] author  [m] me  [r] reload  [q] quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *FeedModel) tagBar() string {
	current := m.list.Query().Tag
	parts := make([]string, 0, len(m.tags)+1)
	if current == "" {
		parts = append(parts, activeStyle.Render(" All "))
	} else {
		parts = append(parts, tagStyle.Render("All"))
	}
	for _, t := range m.tags {
		label := fmt.Sprintf("#%s %d", t.Name, t.Count)
		if t.Name == current {
			parts = append(parts, activeStyle.Render(" "+label+" "))
		} else {
			parts = append(parts, tagStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

// renderPosts renders post cards with a cursor marker.
func renderPosts(posts []models.Post, cursor int) string {
	var b strings.Builder
	for i, p := range posts {
		marker := "  "
		title := p.Title
		if i == cursor {
			marker = selectedStyle.Render("› ")
			title = selectedStyle.Render(title)
		}
		b.WriteString(marker + title + "\n")

		meta := fmt.Sprintf("by %s · %s · ♥ %s", p.Author.Username, render.Date(p.CreatedAt), render.Count(len(p.Likes)))
		b.WriteString("    " + dimStyle.Render(meta) + "\n")
		if len(p.Tags) > 0 {
			tags := make([]string, len(p.Tags))
			for j, t := range p.Tags {
				tags[j] = "#" + t
			}
			b.WriteString("    " + tagStyle.Render(strings.Join(tags, " ")) + "\n")
		}
		if ex := render.Excerpt(p.Content); ex != "" {
			b.WriteString("    " + promptStyle.Render(ex) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
