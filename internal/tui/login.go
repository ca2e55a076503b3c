// ABOUTME: Interactive wizard that points the client at an API and signs in.
// ABOUTME: Three inputs (API URL, email, password) followed by an async login attempt.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/config"
	"github.com/2389-research/inkwell/internal/validate"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Step is the current wizard step.
type Step int

const (
	StepAPIURL Step = iota
	StepEmail
	StepPassword
	StepValidating
	StepDone
	StepFailed
)

// loginResultMsg carries the result of an async login attempt.
type loginResultMsg struct {
	res *api.AuthResult
	err error
}

// LoginFn exchanges credentials for a session.
type LoginFn func(ctx context.Context, apiURL, email, password string) (*api.AuthResult, error)

// cancelHolder shares a cancel function across copies of a value-receiver model.
type cancelHolder struct {
	cancel context.CancelFunc
}

// LoginModel is the bubbletea model for the login wizard.
type LoginModel struct {
	step     Step
	inputs   [3]textinput.Model
	spinner  spinner.Model
	loginFn  LoginFn
	cancel   *cancelHolder
	result   *api.AuthResult
	loginErr error
	urlOnly  bool
	quitting bool
}

// NewLoginModel creates the wizard, pre-filling the API URL and email.
func NewLoginModel(apiURL, email string) LoginModel {
	urlInput := textinput.New()
	urlInput.Placeholder = config.DefaultAPIURL
	urlInput.Focus()
	urlInput.Width = 50
	if apiURL != "" {
		urlInput.SetValue(apiURL)
	}

	emailInput := textinput.New()
	emailInput.Placeholder = "you@example.com"
	emailInput.Width = 50
	if email != "" {
		emailInput.SetValue(email)
	}

	passInput := textinput.New()
	passInput.Placeholder = "password"
	passInput.EchoMode = textinput.EchoPassword
	passInput.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot

	return LoginModel{
		step:    StepAPIURL,
		inputs:  [3]textinput.Model{urlInput, emailInput, passInput},
		spinner: s,
		loginFn: Authenticate,
		cancel:  &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancel.cancel != nil {
				m.cancel.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepAPIURL, StepEmail, StepPassword:
			return m.updateInput(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case loginResultMsg:
		m.cancel.cancel = nil
		if msg.err == nil {
			m.result = msg.res
			m.step = StepDone
			return m, tea.Quit
		}
		m.loginErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m LoginModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		idx := int(m.step)

		if m.step == StepAPIURL {
			val := strings.TrimSpace(m.inputs[0].Value())
			if val == "" {
				val = config.DefaultAPIURL
			}
			m.inputs[0].SetValue(strings.TrimRight(val, "/"))
		}
		if m.step == StepEmail && strings.TrimSpace(m.inputs[1].Value()) == "" {
			return m, nil
		}
		if m.step == StepPassword && m.inputs[2].Value() == "" {
			return m, nil
		}

		m.inputs[idx].Blur()

		switch m.step {
		case StepAPIURL:
			m.step = StepEmail
			m.inputs[1].Focus()
			return m, textinput.Blink
		case StepEmail:
			m.step = StepPassword
			m.inputs[2].Focus()
			return m, textinput.Blink
		case StepPassword:
			m.step = StepValidating
			return m, tea.Batch(m.startLogin(), m.spinner.Tick)
		}
	}

	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m LoginModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return m, nil
	}
	switch msg.Runes[0] {
	case 'r':
		m.step = StepValidating
		m.loginErr = nil
		return m, tea.Batch(m.startLogin(), m.spinner.Tick)
	case 'e':
		m.step = StepEmail
		m.loginErr = nil
		m.inputs[2].SetValue("")
		m.inputs[1].Focus()
		return m, textinput.Blink
	case 's':
		m.urlOnly = true
		m.step = StepDone
		return m, tea.Quit
	case 'q':
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LoginModel) startLogin() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel.cancel = cancel
	apiURL := m.inputs[0].Value()
	email := strings.TrimSpace(m.inputs[1].Value())
	password := m.inputs[2].Value()
	fn := m.loginFn
	return func() tea.Msg {
		res, err := fn(ctx, apiURL, email, password)
		return loginResultMsg{res: res, err: err}
	}
}

// View implements tea.Model.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   INKWELL"))
	b.WriteString(titleStyle.Render(" - Sign in"))
	b.WriteString("\n\n")

	switch m.step {
	case StepAPIURL:
		b.WriteString(stepStyle.Render("Step 1 of 3: API URL"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for default)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepEmail:
		b.WriteString(fmt.Sprintf("  API URL: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 3: Email"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepPassword:
		b.WriteString(fmt.Sprintf("  API URL: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Email:   %s\n\n", m.inputs[1].Value()))
		b.WriteString(stepStyle.Render("Step 3 of 3: Password"))
		b.WriteString("\n")
		b.WriteString(m.inputs[2].View())
		b.WriteString("\n")

	case StepValidating:
		b.WriteString(fmt.Sprintf("  API URL: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Email:   %s\n\n", m.inputs[1].Value()))
		b.WriteString(m.spinner.View())
		b.WriteString(" Signing in...")
		b.WriteString("\n")

	case StepDone:
		if m.result != nil {
			b.WriteString(successStyle.Render("✓ Signed in as " + m.result.User.Username))
		} else {
			b.WriteString(successStyle.Render("✓ API URL saved"))
		}
		b.WriteString("\n")

	case StepFailed:
		b.WriteString(errorStyle.Render("✗ " + failureText(m.loginErr, "Login failed")))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [e]dit credentials  [s]ave URL only  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

// failureText prefers a local validation message, then the server's, then fallback.
func failureText(err error, fallback string) string {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return api.MessageOr(err, fallback)
}

// APIURL returns the entered API URL.
func (m LoginModel) APIURL() string {
	return m.inputs[0].Value()
}

// Result returns the session issued by a successful login, or nil.
func (m LoginModel) Result() *api.AuthResult {
	return m.result
}

// ShouldSave reports whether the wizard finished without being cancelled.
// A nil Result with ShouldSave true means only the API URL should be kept.
func (m LoginModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
