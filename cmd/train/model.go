package train

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/mctrainer/cmd/morse/timeline"
	"github.com/gigurra/mctrainer/cmd/morse/trainer"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	correctStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))  // Green
	wrongStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")) // Bright red
	revealStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const seekStep = 10

type progressMsg int

type completeMsg struct{}

// settingsMsg reports a config reload that has already been applied.
type settingsMsg struct {
	settings trainer.Settings
	err      error
}

// events carries timeline callbacks into the program. Sends never block the
// caller. When the buffer is full a progressMsg is dropped, anything else is
// handed to a goroutine so completion and reloads always arrive.
type events chan tea.Msg

func (e events) send(msg tea.Msg) {
	select {
	case e <- msg:
		return
	default:
	}
	if _, ok := msg.(progressMsg); ok {
		return
	}
	go func() { e <- msg }()
}

func (e events) wait() tea.Cmd {
	return func() tea.Msg {
		return <-e
	}
}

type model struct {
	tr     *trainer.Trainer
	events events

	input    textinput.Model
	bar      progress.Model
	progress int

	status string
	style  lipgloss.Style
	reveal string
	err    error
}

func newModel(tr *trainer.Trainer, ev events) model {
	ti := textinput.New()
	ti.Placeholder = "type what you hear"
	ti.CharLimit = 64
	ti.Width = 30
	ti.Focus()

	return model{
		tr:     tr,
		events: ev,
		input:  ti,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.events.wait(), playCmd(m.tr.Play))
}

type playedMsg struct{ err error }

func playCmd(play func() error) tea.Cmd {
	return func() tea.Msg {
		return playedMsg{err: play()}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(60, msg.Width-10))
		return m, nil

	case progressMsg:
		m.progress = int(msg)
		return m, m.events.wait()

	case completeMsg:
		m.progress = 0
		return m, m.events.wait()

	case settingsMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.setStatus(fmt.Sprintf("settings reloaded: %d units/s, %.0f Hz, max %d letters",
				msg.settings.Speed, msg.settings.Frequency, msg.settings.MaxWordLength), infoStyle)
			m.reveal = ""
			m.progress = 0
		}
		return m, m.events.wait()

	case playedMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		answer := strings.TrimSpace(m.input.Value())
		if answer == "" {
			return m, nil
		}
		ok, err := m.tr.Submit(answer)
		m.err = err
		if ok {
			m.setStatus("Correct!", correctStyle)
			m.input.SetValue("")
			m.reveal = ""
			m.progress = 0
		} else if err == nil {
			m.setStatus(fmt.Sprintf("%q is not it, try again", answer), wrongStyle)
		}
		return m, nil

	case "tab":
		m.err = m.tr.TogglePause()
		return m, nil

	case "ctrl+r":
		return m, playCmd(m.tr.Replay)

	case "shift+left", "ctrl+left":
		return m.seek(m.progress - seekStep), nil

	case "shift+right", "ctrl+right":
		return m.seek(m.progress + seekStep), nil

	case "ctrl+n":
		if _, err := m.tr.Next(); err != nil {
			m.err = err
			return m, nil
		}
		m.input.SetValue("")
		m.reveal = ""
		m.progress = 0
		m.setStatus("", infoStyle)
		return m, playCmd(m.tr.Play)

	case "ctrl+g":
		word, pattern, err := m.tr.Reveal()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.reveal = fmt.Sprintf("%s   %s", word, pattern)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) seek(percent int) model {
	percent = max(0, min(99, percent))
	if _, err := m.tr.Seek(percent); err != nil && !errors.Is(err, timeline.ErrNotStarted) {
		m.err = err
	}
	return m
}

func (m *model) setStatus(s string, style lipgloss.Style) {
	m.status = s
	m.style = style
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📻 MORSE LISTENING TRAINER"))
	b.WriteString("\n\n")

	settings := m.tr.Settings()
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d units/s  •  %.0f Hz  •  max %d letters",
		settings.Speed, settings.Frequency, settings.MaxWordLength)))
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(float64(m.progress) / 100))
	b.WriteString(fmt.Sprintf(" %3d%%\n\n", m.progress))

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.style.Render(m.status))
		b.WriteString("\n")
	}
	if m.reveal != "" {
		b.WriteString(revealStyle.Render(m.reveal))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(wrongStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	stats := m.tr.Stats()
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("✅ %d/%d correct   🔥 streak %d (best %d)   👀 revealed %d",
		stats.Correct, stats.Attempts, stats.Streak, stats.BestStreak, stats.Revealed)))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: submit • tab: pause/resume • ctrl+r: replay • shift+←/→: seek • ctrl+n: next word • ctrl+g: give up • esc: quit"))
	b.WriteString("\n")

	return b.String()
}
