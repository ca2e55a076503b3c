// ABOUTME: Root bubbletea model holding a stack of views with the feed at the bottom.
// ABOUTME: Key presses go to the top view; async results are offered to every view.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// screen is one view in the navigation stack.
type screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (screen, tea.Cmd)
	View() string
}

// App is the terminal client.
type App struct {
	env   *Env
	feed  *FeedModel
	stack []screen
}

// NewApp creates the client with feed as the home view.
func NewApp(env *Env, feed *FeedModel) App {
	return App{env: env, feed: feed, stack: []screen{feed}}
}

// Feed returns the home feed, e.g. to read its final deep link.
func (a App) Feed() *FeedModel { return a.feed }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

func (a App) top() screen { return a.stack[len(a.stack)-1] }

func (a App) push(s screen) (tea.Model, tea.Cmd) {
	a.stack = append(a.stack, s)
	return a, s.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		next, cmd := a.top().Update(msg)
		a.stack[len(a.stack)-1] = next
		return a, cmd

	case openPostMsg:
		return a.push(NewPostModel(a.env, msg.id))
	case openProfileMsg:
		return a.push(NewProfileModel(a.env, msg.id))
	case openAdminMsg:
		return a.push(NewAdminModel(a.env))

	case backMsg:
		if len(a.stack) > 1 {
			a.stack = a.stack[:len(a.stack)-1]
		}
		next, cmd := a.top().Update(msg)
		a.stack[len(a.stack)-1] = next
		return a, cmd

	case filterTagMsg:
		a.stack = a.stack[:1]
		_, cmd := a.feed.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	for i, s := range a.stack {
		next, cmd := s.Update(msg)
		a.stack[i] = next
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a App) View() string {
	return a.top().View()
}
