package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

const (
	maxScores = 100 // Max scores to load
	maxRounds = 50  // Max round history rows to load
)

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewScores boardView = iota
	viewRounds
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.NextGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "scores/rounds"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	view       boardView
	scores     []storage.ScoreEntry
	rounds     []storage.RoundRecord
	stats      *storage.RoundStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.view == viewRounds {
		return []table.Column{
			{Title: "Round", Width: 6},
			{Title: "Score", Width: 7},
			{Title: "Ended", Width: 8},
			{Title: "Batches", Width: 8},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 14},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: 20},
	}
}

// createTable creates a new table for the current view.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload rebuilds the table and fetches rows for the selected game.
func (m *ScoreboardModel) reload() {
	m.table = m.createTable()
	m.scores, m.rounds, m.stats = nil, nil, nil

	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.gameCursor].ID
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if rounds, err := m.store.RecentRounds(id, maxRounds); err == nil {
			m.rounds = rounds
		}
		if stats, err := m.store.GetRoundStats(id); err == nil {
			m.stats = stats
		}
	}

	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m *ScoreboardModel) rows() []table.Row {
	if m.view == viewRounds {
		rows := make([]table.Row, len(m.rounds))
		for i, r := range m.rounds {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", r.Number),
				fmt.Sprintf("%d", r.Score),
				reasonLabel(r.Reason),
				fmt.Sprintf("%d", r.Batches),
				r.Duration.Round(100 * time.Millisecond).String(),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func reasonLabel(reason string) string {
	switch reason {
	case "time_up":
		return "time"
	case "hazard":
		return "bomb"
	}
	return reason
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.view == viewScores {
				m.view = viewRounds
			} else {
				m.view = viewScores
			}
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + len(m.games) - 1) % len(m.games)
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	heading := "HIGH SCORES"
	if m.view == viewRounds {
		heading = "RECENT ROUNDS"
	}
	if len(m.games) > 0 {
		heading = fmt.Sprintf("%s - %s", heading, m.games[m.gameCursor].Title)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render(heading), m.width))
	b.WriteString("\n\n")

	if m.stats != nil && m.stats.Rounds > 0 {
		line := fmt.Sprintf("%d rounds  |  %d timed out  |  %d bombed  |  %d batches  |  %s played",
			m.stats.Rounds, m.stats.TimeUps, m.stats.Hazards, m.stats.Batches,
			m.stats.PlayTime.Round(time.Second))
		b.WriteString(centerStyled(dimStyle.Render(line), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerStyled(boxStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := len(m.scores) == 0
	if m.view == viewRounds {
		empty = len(m.rounds) == 0
	}
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("Nothing recorded yet.\nCollect some stars first!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
