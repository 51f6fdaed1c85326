package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/level"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

// maxScores is the number of runs loaded into the table.
const maxScores = 100

// scoreboardPage selects what the table shows.
type scoreboardPage int

const (
	pageRuns scoreboardPage = iota
	pageLevels
)

func (p scoreboardPage) title() string {
	if p == pageLevels {
		return "LEVEL RECORDS"
	}
	return "BEST RUNS"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage},
		{k.Back, k.Quit},
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
		NextPage: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "runs/levels"),
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
	gameID    string
	levels    []level.Level
	store     *storage.Store
	tickRate  float64 // seconds per tick, for best times
	page      scoreboardPage
	scores    []storage.ScoreEntry
	stats     map[string]storage.LevelStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model for one game.
func NewScoreboardModel(gameID string, levels []level.Level, store *storage.Store, cfg core.RuntimeConfig) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		gameID:   gameID,
		levels:   levels,
		store:    store,
		tickRate: cfg.TickDuration(),
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads scores and level stats from the store.
func (m *ScoreboardModel) load() {
	if m.store == nil {
		return
	}
	if scores, err := m.store.TopScores(m.gameID, maxScores); err == nil {
		m.scores = scores
	}
	if stats, err := m.store.AllLevelStats(); err == nil {
		m.stats = stats
	}
}

func (m *ScoreboardModel) columns() []table.Column {
	avail := max(m.width-8, 40)
	if m.page == pageLevels {
		name := min(max(avail-44, 10), 24)
		return []table.Column{
			{Title: "Level", Width: name},
			{Title: "Flights", Width: 8},
			{Title: "Landed", Width: 8},
			{Title: "Best", Width: 8},
			{Title: "Last flown", Width: 16},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Landings", Width: 10},
		{Title: "Date", Width: min(max(avail-20, 12), 20)},
	}
}

// createTable creates a new table with the columns of the current page.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// updateTableRows fills the table for the current page.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.page == pageLevels {
		rows = m.levelRows()
	} else {
		rows = make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// levelRows lists the known levels in play order, then any flown levels
// that are no longer installed.
func (m *ScoreboardModel) levelRows() []table.Row {
	var rows []table.Row
	seen := make(map[string]bool, len(m.levels))
	for _, lvl := range m.levels {
		seen[lvl.ID] = true
		rows = append(rows, m.levelRow(lvl.Name, m.stats[lvl.ID]))
	}

	var orphans []string
	for id := range m.stats {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		rows = append(rows, m.levelRow(id, m.stats[id]))
	}
	return rows
}

func (m *ScoreboardModel) levelRow(name string, st storage.LevelStats) table.Row {
	best, last := "-", "never"
	if st.BestTicks > 0 {
		best = fmt.Sprintf("%.1fs", float64(st.BestTicks)*m.tickRate)
	}
	if !st.LastFlown.IsZero() {
		last = humanize.Time(st.LastFlown)
	}
	return table.Row{
		name,
		fmt.Sprintf("%d", st.Attempts),
		fmt.Sprintf("%d", st.Landings),
		best,
		last,
	}
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

		case key.Matches(msg, m.keys.NextPage):
			m.page = 1 - m.page
			m.table = m.createTable()
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
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

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(m.page.title()), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No flights recorded yet.\nLand on a pad to set a record!")
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
func RunScoreboard(gameID string, levels []level.Level, store *storage.Store, cfg core.RuntimeConfig) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(gameID, levels, store, cfg),
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
