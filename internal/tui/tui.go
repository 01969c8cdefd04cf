package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/mansion/internal/engine"
	"github.com/tatianab/mansion/internal/logger"
	"github.com/tatianab/mansion/internal/models"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateRiddle
	stateGameOver
)

// Describer retells the current room. The Gemini narrator implements it.
type Describer interface {
	Describe(ctx context.Context, snap models.Snapshot) (string, error)
}

type model struct {
	state      sessionState
	engine     *engine.Engine
	narrator   Describer
	recordsDir string
	snap       models.Snapshot
	textInput  textinput.Model
	viewport   viewport.Model
	cursor     int
	narration  string
	narrating  bool
	bestScore  int
	notice     string
	width      int
	height     int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	narrationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B4A7D6")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFA500")).
			Padding(1, 3)
)

func NewModel(eng *engine.Engine, narrator Describer, recordsDir string) model {
	ti := textinput.New()
	ti.Placeholder = "Answer the riddle..."
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:      statePlaying,
		engine:     eng,
		narrator:   narrator,
		recordsDir: recordsDir,
		snap:       eng.Snapshot(),
		textInput:  ti,
		viewport:   viewport.New(80, 20),
	}
}

func (m model) Init() tea.Cmd {
	return m.loadRecords()
}

type recordsLoadedMsg struct {
	best int
	err  error
}

type recordSavedMsg struct {
	err error
}

type narrationMsg struct {
	text string
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch m.state {
		case statePlaying:
			return m.updatePlaying(msg)
		case stateRiddle:
			if msg.Type == tea.KeyEnter {
				answer := m.textInput.Value()
				m.textInput.Reset()
				m.textInput.Blur()
				return m.dispatch(models.Command{Kind: models.ActionAnswer, Target: answer})
			}
		case stateGameOver:
			switch msg.String() {
			case "r":
				m.engine.Reset()
				m.state = statePlaying
				m.narration = ""
				m.notice = ""
				m.refresh()
				return m, m.loadRecords()
			case "q":
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.70)
		m.viewport.Height = max(msg.Height-lipgloss.Height(m.renderActions())-6, 5)
		m.viewport.SetContent(m.renderLog())
		m.viewport.GotoBottom()

	case narrationMsg:
		m.narrating = false
		if msg.err != nil {
			logger.Log.WithError(msg.err).Warn("narration failed")
			m.notice = "The narrator is silent: " + msg.err.Error()
		} else {
			m.narration = msg.text
		}
		m.viewport.SetContent(m.renderLog())
		return m, nil

	case recordsLoadedMsg:
		if msg.err != nil {
			logger.Log.WithError(msg.err).Warn("failed to load records")
			return m, nil
		}
		m.bestScore = msg.best
		return m, nil

	case recordSavedMsg:
		if msg.err != nil {
			logger.Log.WithError(msg.err).Warn("failed to save record")
			m.notice = "Could not record this game: " + msg.err.Error()
		}
		return m, nil
	}

	if m.state == stateRiddle {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actions := m.snap.Actions
	switch key := msg.String(); key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(actions)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(actions) && actions[m.cursor].Enabled {
			return m.dispatch(actions[m.cursor])
		}
	case "n":
		if m.narrator != nil && !m.narrating {
			m.narrating = true
			m.notice = ""
			return m, m.narrate()
		}
	case "q":
		return m, tea.Quit
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(actions) && actions[i].Enabled {
				m.cursor = i
				return m.dispatch(actions[i])
			}
		}
	}
	return m, nil
}

func (m model) dispatch(cmd models.Command) (tea.Model, tea.Cmd) {
	room := m.snap.Room.ID
	m.engine.Dispatch(cmd)
	m.refresh()
	if m.snap.Room.ID != room {
		m.narration = ""
	}

	switch {
	case m.snap.Outcome != nil:
		m.state = stateGameOver
		return m, m.saveRecord(*m.snap.Outcome, m.engine.Turns())
	case m.snap.Riddle != nil:
		m.state = stateRiddle
		return m, m.textInput.Focus()
	default:
		m.state = statePlaying
	}
	return m, nil
}

func (m *model) refresh() {
	m.snap = m.engine.Snapshot()
	if m.cursor >= len(m.snap.Actions) {
		m.cursor = 0
	}
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if m.state == stateGameOver {
		return "\n" + m.renderGameOver() + "\n"
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)

	var bottom string
	if m.state == stateRiddle {
		bottom = m.snap.Riddle.Speaker + " waits for your answer:\n" + m.textInput.View()
	} else {
		bottom = m.renderActions()
	}

	help := "Commands: ↑/↓ + enter or 1-9 to act, q to quit."
	if m.narrator != nil {
		help = "Commands: ↑/↓ + enter or 1-9 to act, n to narrate, q to quit."
	}
	if m.notice != "" {
		help = m.notice
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+bottom,
		"\n"+helpStyle.Render(help),
	) + "\n"
}

func (m model) renderLog() string {
	room := m.snap.Room
	logWidth := max(m.viewport.Width, 20)

	var b strings.Builder
	b.WriteString(titleStyle.Render(room.Name) + "\n\n")
	b.WriteString(gameStyle.Width(logWidth).Render(room.Description) + "\n")
	if m.narration != "" {
		b.WriteString("\n" + narrationStyle.Width(logWidth).Render(m.narration) + "\n")
	}
	if m.narrating {
		b.WriteString("\n" + helpStyle.Render("The narrator gathers their thoughts...") + "\n")
	}

	if len(room.Characters) > 0 {
		b.WriteString("\n" + userStyle.Render("Characters") + "\n")
		for _, c := range room.Characters {
			b.WriteString(gameStyle.Width(logWidth).Render("• "+c.Name+": "+c.Description) + "\n")
		}
	}
	if len(room.Objects) > 0 {
		b.WriteString("\n" + userStyle.Render("Objects") + "\n")
		for _, o := range room.Objects {
			b.WriteString(gameStyle.Width(logWidth).Render("• "+o.Name+": "+o.Description) + "\n")
		}
	}

	b.WriteString("\n")
	for _, msg := range m.snap.Messages {
		b.WriteString(gameStyle.Width(logWidth).Render("> "+msg) + "\n")
	}
	return b.String()
}

func (m model) renderState() string {
	s := m.snap

	location := titleStyle.Render("LOCATION") + "\n" + s.Room.Name + "\n\n"

	stats := titleStyle.Render("STATS") + "\n" +
		fmt.Sprintf("Health: %d\nScore: %d\n", s.Health, s.Score)
	if m.bestScore > 0 {
		stats += fmt.Sprintf("Best: %d\n", m.bestScore)
	}
	stats += "\n"

	inventory := titleStyle.Render("INVENTORY") + "\n"
	if len(s.Inventory) == 0 {
		inventory += "Your inventory is empty."
	} else {
		for _, item := range s.Inventory {
			inventory += "- " + item + "\n"
		}
	}

	stateWidth := int(float64(m.width) * 0.25)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(location + stats + inventory)
}

func (m model) renderActions() string {
	var b strings.Builder
	for i, a := range m.snap.Actions {
		line := fmt.Sprintf("%d. %s", i+1, a.Label)
		switch {
		case !a.Enabled:
			line = disabledStyle.Render("  " + line)
		case i == m.cursor:
			line = userStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) renderGameOver() string {
	o := m.snap.Outcome
	title := "Game Over"
	if o.Won {
		title = "Congratulations!"
	}

	width := max(min(m.width-8, 70), 30)
	body := titleStyle.Render(title) + "\n\n" +
		gameStyle.Width(width).Render(fmt.Sprintf("%s Final Score: %d", o.Message, o.FinalScore)) + "\n\n" +
		helpStyle.Render("Press r to play again or q to quit.")
	if m.notice != "" {
		body += "\n" + helpStyle.Render(m.notice)
	}
	return modalStyle.Render(body)
}

func (m model) narrate() tea.Cmd {
	snap := m.snap
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := m.narrator.Describe(ctx, snap)
		return narrationMsg{text, err}
	}
}

func (m model) loadRecords() tea.Cmd {
	dir := m.recordsDir
	return func() tea.Msg {
		records, err := models.ListRecords(dir)
		if err != nil {
			return recordsLoadedMsg{err: err}
		}
		return recordsLoadedMsg{best: models.BestScore(records)}
	}
}

func (m model) saveRecord(o models.Outcome, turns int) tea.Cmd {
	dir := m.recordsDir
	return func() tea.Msg {
		return recordSavedMsg{models.NewRecord(o, turns, time.Now()).Save(dir)}
	}
}

// Start runs a game with default settings and no narrator.
func Start() error {
	return Run(engine.New(), nil, models.DefaultRecordsDir)
}

func Run(eng *engine.Engine, narrator Describer, recordsDir string) error {
	p := tea.NewProgram(NewModel(eng, narrator, recordsDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
