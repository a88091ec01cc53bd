package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stardrop/internal/config"
	"github.com/vovakirdan/stardrop/internal/scenes/game"
	"github.com/vovakirdan/stardrop/internal/storage"
)

const (
	wideLayoutWidth = 80 // narrower terminals get tabs instead of the level list
	levelListWidth  = 24
	scoreLimit      = 100
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle    = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/right", "next level")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/left", "prev level")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// levelTab is one score filter. An empty ID selects every level.
type levelTab struct {
	ID    string
	Title string
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	store *storage.Store
	tabs  []levelTab
	tab   int

	scores  []storage.ScoreEntry
	total   *storage.GameStats
	byLevel map[string]*storage.GameStats
	loadErr error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
	standalone    bool // Back exits the program instead of returning
}

// NewScoreboardModel creates a scoreboard over store. A nil store shows an
// empty board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		tabs:   scoreTabs(),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.loadStats()
	m.table = m.newTable()
	m.loadScores()
	return m
}

// scoreTabs lists "All levels" followed by every known level.
func scoreTabs() []levelTab {
	tabs := []levelTab{{Title: "All levels"}}
	levels, err := config.ListLevels()
	if err != nil {
		return tabs
	}
	for _, l := range levels {
		tabs = append(tabs, levelTab{ID: l.ID, Title: l.Name})
	}
	return tabs
}

func (m ScoreboardModel) wide() bool {
	return m.width >= wideLayoutWidth
}

func (m ScoreboardModel) newTable() table.Model {
	avail := m.width - 6
	if m.wide() {
		avail -= levelListWidth + 4
	}
	dateW := max(min(avail-30, 20), 12)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 12},
			{Title: "Date", Width: dateW},
		}),
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

// loadStats reads the totals shown in the level list and footer.
func (m *ScoreboardModel) loadStats() {
	m.total, m.byLevel = nil, nil
	if m.store == nil {
		return
	}
	total, err := m.store.GetGameStats(game.ID)
	if err != nil {
		m.loadErr = err
		return
	}
	byLevel, err := m.store.LevelStats(game.ID)
	if err != nil {
		m.loadErr = err
		return
	}
	m.total, m.byLevel = total, byLevel
}

// loadScores fills the table for the selected tab.
func (m *ScoreboardModel) loadScores() {
	m.scores = nil
	if m.store != nil {
		scores, err := m.store.TopScores(game.ID, m.tabs[m.tab].ID, scoreLimit)
		if err != nil {
			m.loadErr = err
		} else {
			m.scores = scores
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, e := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Score),
			e.Level,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) selectTab(delta int) {
	n := len(m.tabs)
	m.tab = ((m.tab+delta)%n + n) % n
	m.loadScores()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.selectTab(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectTab(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.loadScores()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := "STARDROP HIGH SCORES - " + m.tabs[m.tab].Title
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			boardPanelStyle.Width(levelListWidth).Render(m.levelList()),
			"  ",
			boardPanelStyle.Render(m.tableView()),
		))
	} else {
		b.WriteString(centerText(m.tabLine(), m.width))
		b.WriteString("\n\n")
		b.WriteString(boardPanelStyle.Render(m.tableView()))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.statsLine()))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// levelList renders every tab with its best score.
func (m ScoreboardModel) levelList() string {
	var b strings.Builder
	b.WriteString("Levels\n")
	b.WriteString(strings.Repeat("-", levelListWidth-4))
	for i, t := range m.tabs {
		best := ""
		if st := m.statsFor(t.ID); st != nil && st.GamesCount > 0 {
			best = fmt.Sprintf("%d", st.HighScore)
		}
		nameW := levelListWidth - 6 - len(best)
		name := t.Title
		if len(name) > nameW {
			name = name[:max(nameW-1, 0)] + "."
		}
		line := fmt.Sprintf("%-*s %s", nameW, name, best)

		b.WriteString("\n")
		if i == m.tab {
			b.WriteString(boardActiveStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
	}
	return b.String()
}

// tabLine renders the narrow layout's level selector.
func (m ScoreboardModel) tabLine() string {
	parts := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		name := t.Title
		if len(name) > 10 {
			name = name[:9] + "."
		}
		if i == m.tab {
			parts[i] = boardTabStyle.Render(name)
		} else {
			parts[i] = boardDimStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.tabs[m.tab].Title)
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No scores recorded yet.\nCollect some stars to set a high score!")
	}
	return m.table.View()
}

// statsFor returns the stats behind a tab, or nil when nothing was played.
func (m ScoreboardModel) statsFor(level string) *storage.GameStats {
	if level == "" {
		return m.total
	}
	return m.byLevel[level]
}

// statsLine summarizes the selected tab.
func (m ScoreboardModel) statsLine() string {
	if m.loadErr != nil {
		return "Scores unavailable: " + m.loadErr.Error()
	}
	st := m.statsFor(m.tabs[m.tab].ID)
	if st == nil || st.GamesCount == 0 {
		return "No runs yet"
	}
	line := fmt.Sprintf("Runs: %d  Best: %d  Average: %.1f  Total: %d",
		st.GamesCount, st.HighScore, st.AvgScore, st.TotalScore)
	if !st.LastPlayed.IsZero() {
		line += "  Last: " + st.LastPlayed.Format("Jan 02 15:04")
	}
	return line
}

// IsGoingBack returns true if user wants to go back to the main menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
// Returns true if user pressed back, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)
	model.standalone = true

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
