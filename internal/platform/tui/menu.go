package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/level"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

// menuChrome is the number of rows used by the title, subtitle and footer.
const menuChrome = 10

// LevelMenuModel is the level picker shown before a run.
type LevelMenuModel struct {
	levels       []level.Level
	stats        map[string]storage.LevelStats
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	cursor       int
	scrollOffset int

	chosen      bool
	quitting    bool
	back        bool
	wantsScores bool
}

// NewLevelMenuModel creates a level picker. The store may be nil, in which
// case no flight statistics are shown.
func NewLevelMenuModel(levels []level.Level, store *storage.Store, cfg core.RuntimeConfig) LevelMenuModel {
	m := LevelMenuModel{
		levels:    levels,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		stats, err := store.AllLevelStats()
		if err != nil {
			log.Warn("cannot load level stats", "err", err)
		}
		m.stats = stats
	}
	return m
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.chosen = true
			return m, tea.Quit
		}
	case MenuActionScores:
		m.wantsScores = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	return max(m.config.ScreenH-menuChrome, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level list.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("R O C K E T   B O O S T"), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.MenuDescription.Render("Pick a level to launch from:"), width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(theme.MenuDescription.Render("No levels found"), width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.levels))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.MenuDescription.Render("... more above ..."), width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.MenuItemActive
		}
		line := style.Render(fmt.Sprintf("%s%2d. %-16s", cursor, i+1, m.levels[i].Name))
		if st, ok := m.stats[m.levels[i].ID]; ok && st.Attempts > 0 {
			line += " " + theme.MenuStat.Render(m.statLine(st))
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}
	if end < len(m.levels) {
		b.WriteString(centerText(theme.MenuDescription.Render("... more below ..."), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Launch  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(theme.Controls.Render(controls), width))
	b.WriteString("\n")

	return b.String()
}

// statLine summarizes the flights of one level.
func (m LevelMenuModel) statLine(st storage.LevelStats) string {
	s := fmt.Sprintf("%d/%d landed", st.Landings, st.Attempts)
	if st.BestTicks > 0 {
		s += fmt.Sprintf(", best %.1fs", float64(st.BestTicks)*m.config.TickDuration())
	}
	if !st.LastFlown.IsZero() {
		s += ", " + humanize.Time(st.LastFlown)
	}
	return s
}

// Selected returns the chosen level index and whether a level was chosen.
func (m LevelMenuModel) Selected() (int, bool) {
	return m.cursor, m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// WantsScoreboard returns true if user asked for the scoreboard.
func (m LevelMenuModel) WantsScoreboard() bool {
	return m.wantsScores
}

// Config returns the runtime config, updated for any resize.
func (m LevelMenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the level menu.
type MenuResult struct {
	Level           int
	Chosen          bool
	WantsScoreboard bool
	Quit            bool
	Config          core.RuntimeConfig
}

// RunLevelMenu runs the level picker until the user decides.
func RunLevelMenu(levels []level.Level, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewLevelMenuModel(levels, store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Quit: true, Config: cfg}, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return MenuResult{Quit: true, Config: cfg}, nil
	}

	idx, chosen := m.Selected()
	return MenuResult{
		Level:           idx,
		Chosen:          chosen,
		WantsScoreboard: m.WantsScoreboard(),
		Quit:            m.IsQuitting() || m.WantsBack(),
		Config:          m.Config(),
	}, nil
}
