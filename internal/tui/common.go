// ABOUTME: Shared plumbing for the terminal views: environment, fetch commands, and messages.
// ABOUTME: List fetches run as tea.Cmds; results are applied back on the update loop.
package tui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/logging"
	"github.com/2389-research/inkwell/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// PageSizes are the list sizes used by each view.
type PageSizes struct {
	Feed     int
	Profile  int
	Comments int
	Users    int
}

// Env is what every view needs from the outside world.
type Env struct {
	Ctx     context.Context
	Client  *api.Client
	Session *session.Session
	Log     logrus.FieldLogger
	Sizes   PageSizes
	// SaveLink persists the feed's deep link. May be nil.
	SaveLink func(link string) error
	// SaveSession persists Session after it changes. May be nil.
	SaveSession func() error
}

func (e *Env) ctx() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

func (e *Env) log() logrus.FieldLogger {
	if e.Log == nil {
		return logging.Discard()
	}
	return e.Log
}

var ownerSeq int64

// newOwner returns an id that tags async messages with the view that asked for them.
func newOwner() int {
	return int(atomic.AddInt64(&ownerSeq, 1))
}

// fetchedMsg carries a list fetch result back to its owner.
type fetchedMsg[T any] struct {
	owner int
	res   listing.Result[T]
}

func fetchCmd[T any](ctx context.Context, owner int, c *listing.Controller[T], req listing.Request) tea.Cmd {
	return func() tea.Msg {
		return fetchedMsg[T]{owner: owner, res: c.Fetch(ctx, req)}
	}
}

// applyFetched applies msg to c and follows a clamp with one more fetch.
func applyFetched[T any](ctx context.Context, owner int, c *listing.Controller[T], msg fetchedMsg[T]) (bool, tea.Cmd) {
	if msg.owner != owner || !c.Apply(msg.res) {
		return false, nil
	}
	if next, ok := c.Settle(); ok {
		return true, fetchCmd(ctx, owner, c, next)
	}
	return true, nil
}

// Navigation requests handled by the App.
type (
	openPostMsg    struct{ id string }
	openProfileMsg struct{ id string }
	openAdminMsg   struct{}
	backMsg        struct{ reload bool }
	// filterTagMsg asks the feed to show one tag.
	filterTagMsg struct{ tag string }
)

func navigate(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// status is a transient message line that clears itself.
type status struct {
	text  string
	isErr bool
	id    int
}

type clearStatusMsg struct {
	owner int
	id    int
}

func (s *status) set(owner int, text string, isErr bool) tea.Cmd {
	s.id++
	s.text = text
	s.isErr = isErr
	after := 3 * time.Second
	if isErr {
		after = 5 * time.Second
	}
	id := s.id
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{owner: owner, id: id}
	})
}

func (s *status) clear(msg clearStatusMsg, owner int) {
	if msg.owner == owner && msg.id == s.id {
		s.text = ""
		s.isErr = false
	}
}

func (s status) view() string {
	if s.text == "" {
		return ""
	}
	if s.isErr {
		return errorStyle.Render("✗ " + s.text)
	}
	return successStyle.Render("✓ " + s.text)
}

// confirmation is a pending yes/no question gating a destructive action.
type confirmation struct {
	prompt string
	onYes  func() tea.Cmd
}

// handle resolves a pending confirmation from a key press. It reports
// whether the key was consumed.
func (c *confirmation) handle(msg tea.KeyMsg) (bool, tea.Cmd) {
	if c.onYes == nil {
		return false, nil
	}
	switch msg.String() {
	case "y", "Y":
		yes := c.onYes
		*c = confirmation{}
		return true, yes()
	case "n", "N", "esc":
		*c = confirmation{}
		return true, nil
	}
	return true, nil
}

func (c confirmation) active() bool { return c.onYes != nil }

func (c confirmation) view() string {
	if !c.active() {
		return ""
	}
	return warnStyle.Render(c.prompt + " [y/N]")
}
