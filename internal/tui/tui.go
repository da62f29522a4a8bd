// Package tui is the live session screen: category/content inputs, a
// one-second elapsed display, a rotating support message, and
// pause/resume/finish keys. Quitting leaves the snapshot in place so the
// session survives and can be recovered.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"studyrec/internal/message"
	"studyrec/internal/recordstore"
	"studyrec/internal/timer"
)

// tickMsg is sent every second to update elapsed time
type tickMsg time.Time

// supportTickMsg rotates the support message
type supportTickMsg time.Time

// Model is the session screen model
type Model struct {
	timer           *timer.Timer
	store           *recordstore.Store
	styles          Styles
	keys            KeyMap
	messageInterval time.Duration

	elapsed time.Duration
	support string
	err     error

	inputMode bool
	inputs    [2]textinput.Model
	focus     int

	finished  bool
	finishMsg string
	finishDur int
}

// NewModel creates a session screen over t and store. A recovered active
// timer shows the running view immediately.
func NewModel(t *timer.Timer, store *recordstore.Store, messageInterval time.Duration) Model {
	category := textinput.New()
	category.Placeholder = "Category..."
	category.CharLimit = 100
	category.Width = 40

	content := textinput.New()
	content.Placeholder = "Content..."
	content.CharLimit = 200
	content.Width = 40

	if messageInterval <= 0 {
		messageInterval = timer.DefaultMessageInterval
	}

	return Model{
		timer:           t,
		store:           store,
		styles:          DefaultStyles(),
		keys:            DefaultKeyMap(),
		messageInterval: messageInterval,
		inputs:          [2]textinput.Model{category, content},
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.timer.Active() {
		return tea.Batch(m.tick(), m.supportTick())
	}
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputMode(msg)
		}
		return m.handleKey(msg)

	case tickMsg:
		if m.timer.Active() && !m.timer.Paused() {
			m.elapsed = m.timer.ElapsedAt(time.Time(msg))
		}
		if m.timer.Active() {
			return m, m.tick()
		}
		return m, nil

	case supportTickMsg:
		if m.timer.Active() && !m.timer.Paused() {
			m.support = message.Support(m.store.MasterData().SupportMessages)
		}
		if m.timer.Active() {
			return m, m.supportTick()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// Ticks stop; the snapshot stays for recovery.
		m.timer.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		if m.timer.Active() || m.finished {
			return m, nil
		}
		m.inputMode = true
		m.focus = 0
		m.inputs[0].SetValue("")
		m.inputs[1].SetValue("")
		m.inputs[0].Focus()
		m.inputs[1].Blur()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Pause):
		if !m.timer.Active() {
			return m, nil
		}
		if m.timer.Paused() {
			m.err = m.timer.Resume()
			return m, m.tick()
		}
		m.err = m.timer.Pause()
		return m, nil

	case key.Matches(msg, m.keys.Finish):
		if !m.timer.Active() {
			return m, nil
		}
		return m.finishSession()

	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Back):
		if m.finished {
			m.finished = false
			m.finishMsg = ""
			m.support = ""
			m.elapsed = 0
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.inputMode = false
		m.inputs[m.focus].Blur()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.focus == 0 {
			m.inputs[0].Blur()
			m.focus = 1
			m.inputs[1].Focus()
			return m, textinput.Blink
		}
		category := strings.TrimSpace(m.inputs[0].Value())
		content := strings.TrimSpace(m.inputs[1].Value())
		if category == "" || content == "" {
			return m, nil
		}
		m.inputMode = false
		m.inputs[1].Blur()
		if err := m.timer.Start(category, content, ""); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.elapsed = 0
		m.support = message.Support(m.store.MasterData().SupportMessages)
		return m, tea.Batch(m.tick(), m.supportTick())

	case msg.String() == "tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % 2
		m.inputs[m.focus].Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) finishSession() (tea.Model, tea.Cmd) {
	if _, err := m.timer.Finish(); err != nil {
		m.err = err
		return m, nil
	}
	rec, err := m.timer.Commit(timer.Extra{})
	if err != nil {
		m.err = err
		return m, nil
	}

	today := m.store.TodayTotalMinutes() + rec.Duration
	m.finishMsg = message.Select(m.store.MasterData().FinishMessages, rec.Duration, today)
	m.finishDur = rec.Duration
	m.finished = true
	m.err = m.store.Create(rec)
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Study Session"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch {
	case m.inputMode:
		b.WriteString(m.styles.Label.Render("Category:"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Content:"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("Enter to continue, Esc to cancel"))

	case m.finished:
		b.WriteString(m.styles.Finish.Render(m.finishMsg))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Label.Render("Studied:"))
		b.WriteString(" ")
		b.WriteString(m.styles.Value.Render(fmt.Sprintf("%d min", m.finishDur)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("Enter to continue, 'q' to quit"))

	case m.timer.Active():
		if m.timer.Paused() {
			b.WriteString(m.styles.PausedBadge.Render("⏸ Paused"))
		} else {
			b.WriteString(m.styles.Running.Render("● Studying"))
		}
		b.WriteString("\n\n")

		category, content, _ := m.timer.Session()
		b.WriteString(m.styles.Label.Render("Category:"))
		b.WriteString(" ")
		b.WriteString(m.styles.Value.Render(category))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Content:"))
		b.WriteString(" ")
		b.WriteString(m.styles.Value.Render(content))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Elapsed:"))
		b.WriteString(" ")
		b.WriteString(m.styles.Elapsed.Render(formatElapsed(m.elapsed)))
		b.WriteString("\n\n")

		if m.support != "" && !m.timer.Paused() {
			b.WriteString(m.styles.Support.Render(m.support))
			b.WriteString("\n\n")
		}
		b.WriteString(m.styles.Help.Render("'p' pause/resume, 'f' finish, 'q' quit"))

	default:
		b.WriteString(m.styles.Label.Render("No session running"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("Press 's' to start a session"))
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) supportTick() tea.Cmd {
	return tea.Tick(m.messageInterval, func(t time.Time) tea.Msg {
		return supportTickMsg(t)
	})
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
