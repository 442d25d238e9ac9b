package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

type Decision int

const (
	Pending Decision = iota
	Keep
	Revert
)

func (d Decision) Value() string {
	switch d {
	case Keep:
		return "keep"
	case Revert:
		return "revert"
	}
	return "pending"
}

type confirmKeyMap struct {
	Accept key.Binding
	Reject key.Binding
	Back   key.Binding
}

func (c *confirmKeyMap) Help() []key.Binding {
	return []key.Binding{
		c.Accept,
		c.Reject,
		c.Back,
	}
}

type tickMsg struct{}

// RevertPrompt asks whether to keep a freshly applied display mode and
// decides Revert once the countdown runs out.
type RevertPrompt struct {
	title     string
	remaining time.Duration
	interval  time.Duration
	decision  Decision
	keys      confirmKeyMap
	help      help.Model
}

type RevertPromptOption func(*RevertPrompt)

// WithTickInterval changes how often the countdown advances, each tick
// takes the interval off the remaining time.
func WithTickInterval(interval time.Duration) RevertPromptOption {
	return func(r *RevertPrompt) {
		r.interval = interval
	}
}

func NewRevertPrompt(title string, timeout time.Duration, opts ...RevertPromptOption) *RevertPrompt {
	prompt := &RevertPrompt{
		title:     title,
		remaining: timeout,
		interval:  time.Second,
		decision:  Pending,
		keys: confirmKeyMap{
			Accept: key.NewBinding(
				key.WithKeys("y", "Y"),
				key.WithHelp("y/Y", "keep"),
			),
			Reject: key.NewBinding(
				key.WithKeys("n", "N"),
				key.WithHelp("n/N", "revert"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc", "ctrl+c"),
				key.WithHelp("esc", "revert"),
			),
		},
		help: help.New(),
	}
	for _, opt := range opts {
		opt(prompt)
	}
	return prompt
}

func (r *RevertPrompt) tick() tea.Cmd {
	return tea.Tick(r.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (r *RevertPrompt) Init() tea.Cmd {
	return r.tick()
}

func (r *RevertPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if r.decision != Pending {
		return r, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, r.keys.Accept):
			logrus.Debug("Revert prompt accepted")
			r.decision = Keep
			return r, tea.Quit

		case key.Matches(msg, r.keys.Reject), key.Matches(msg, r.keys.Back):
			logrus.Debug("Revert prompt rejected")
			r.decision = Revert
			return r, tea.Quit
		}

	case tickMsg:
		r.remaining -= r.interval
		if r.remaining <= 0 {
			logrus.Debug("Revert prompt timed out")
			r.remaining = 0
			r.decision = Revert
			return r, tea.Quit
		}
		return r, r.tick()
	}

	return r, nil
}

func (r *RevertPrompt) View() string {
	title := TitleStyle.Render(r.title)
	countdown := MutedStyle.Render(fmt.Sprintf("Reverting in %ds", int(r.remaining.Round(time.Second).Seconds())))
	help := HelpStyle.Render(r.help.ShortHelpView(r.keys.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, title, countdown, help) + "\n"
}

func (r *RevertPrompt) Decision() Decision {
	return r.decision
}

func (r *RevertPrompt) Remaining() time.Duration {
	return r.remaining
}
