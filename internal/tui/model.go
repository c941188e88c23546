package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	diceGlyph   = "⚄"
	placeholder = "Press space to roll the dice for a piece of advice."
	cardWidth   = 56
)

// Trigger runs one fetch-and-render activation
type Trigger interface {
	Fetch() bool
}

// Message types for the TUI
type (
	// fetchDoneMsg is sent when one activation has finished
	fetchDoneMsg struct {
		ok bool
	}
	copiedMsg struct {
		err error
	}
)

// Model represents the TUI state
type Model struct {
	trigger  Trigger
	copyFunc func(string) error

	// Display regions
	idText     string
	adviceText string

	// State
	inFlight int
	feedback string

	// UI components
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width  int
	height int
}

// NewModel creates the advice card model. When rollOnStart is set the
// first activation is issued from Init.
func NewModel(trigger Trigger, rollOnStart bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	m := Model{
		trigger:  trigger,
		copyFunc: clipboard.WriteAll,
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeyMap(),
	}
	if rollOnStart {
		m.inFlight = 1
	}
	return m
}

// Init issues the initial roll when requested
func (m Model) Init() tea.Cmd {
	if m.inFlight > 0 {
		return tea.Batch(m.roll(), m.spinner.Tick)
	}
	return nil
}

// roll returns a command running one activation. Each call is independent;
// bubbletea runs commands concurrently.
func (m Model) roll() tea.Cmd {
	trigger := m.trigger
	return func() tea.Msg {
		return fetchDoneMsg{ok: trigger.Fetch()}
	}
}

// copyAdvice returns a command copying the advice region to the clipboard
func (m Model) copyAdvice() tea.Cmd {
	text := strings.TrimSpace(m.adviceText)
	copyFunc := m.copyFunc
	return func() tea.Msg {
		return copiedMsg{err: copyFunc(text)}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Roll):
			m.feedback = ""
			m.inFlight++
			if m.inFlight == 1 {
				return m, tea.Batch(m.roll(), m.spinner.Tick)
			}
			return m, m.roll()

		case key.Matches(msg, m.keys.Copy):
			if m.adviceText == "" {
				return m, nil
			}
			return m, m.copyAdvice()
		}

	case regionTextMsg:
		switch msg.region {
		case regionID:
			m.idText = msg.text
		case regionAdvice:
			m.adviceText = msg.text
		}

	case fetchDoneMsg:
		// Failures are logged by the fetcher; the card just stays as it was.
		if m.inFlight > 0 {
			m.inFlight--
		}

	case copiedMsg:
		if msg.err != nil {
			m.feedback = "clipboard unavailable"
		} else {
			m.feedback = "copied to clipboard"
		}

	case spinner.TickMsg:
		if m.inFlight > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	heading := "ADVICE #"
	if m.idText != "" {
		heading += m.idText
	}

	var body string
	if m.adviceText == "" {
		body = placeholderStyle.Width(cardWidth).Render(placeholder)
	} else {
		body = adviceStyle.Width(cardWidth).Render(m.adviceText)
	}

	divider := dividerStyle.Render(strings.Repeat("─", cardWidth/2-3) + " ▌▌ " + strings.Repeat("─", cardWidth/2-3))

	dice := diceStyle.Render(diceGlyph)
	if m.inFlight > 0 {
		dice = diceActiveStyle.Render(m.spinner.View())
	}

	card := cardStyle.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		headingStyle.Render(heading),
		body,
		divider,
		dice,
	))

	sections := []string{card}
	if m.feedback != "" {
		sections = append(sections, feedbackStyle.Render(m.feedback))
	}
	sections = append(sections, helpStyle.Render(m.help.View(m.keys)))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
