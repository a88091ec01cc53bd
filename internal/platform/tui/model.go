package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stardrop/internal/config"
	"github.com/vovakirdan/stardrop/internal/core"
	"github.com/vovakirdan/stardrop/internal/registry"
	"github.com/vovakirdan/stardrop/internal/scene"
	"github.com/vovakirdan/stardrop/internal/scenes/game"
	"github.com/vovakirdan/stardrop/internal/scenes/menu"
	"github.com/vovakirdan/stardrop/internal/storage"
)

// Options configure a Model.
type Options struct {
	Runtime core.RuntimeConfig
	Config  config.Config
	Level   config.Level
	Store   *storage.Store // nil disables persistence
	Logger  *log.Logger

	// Renderer styles the screen for the session's terminal. Nil uses the
	// local terminal.
	Renderer *lipgloss.Renderer

	// FirstScene is the scene shown at start, the main menu by default.
	FirstScene string
}

// Model is the Bubble Tea model that hosts one session's scenes.
type Model struct {
	manager    *registry.Manager
	screen     *core.Screen
	painter    *Painter
	store      *storage.Store
	config     core.RuntimeConfig
	level      string
	logger     *log.Logger
	keyMapper  *KeyMapper
	held       *HeldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	scoreboard *ScoreboardModel
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
	err        error
	now        func() time.Time
}

// NewModel creates the session's scene manager and boots the first scene.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// A nil *storage.Store must not become a non-nil interface.
	var scores scene.ScoreStore
	if opts.Store != nil {
		scores = opts.Store
	}

	manager, err := registry.NewManager(registry.Options{
		Runtime: cfg,
		Config:  opts.Config,
		Level:   opts.Level,
		Store:   scores,
		Logger:  logger,
	})
	if err != nil {
		return Model{}, err
	}

	first := opts.FirstScene
	if first == "" {
		first = menu.Key
	}
	if err := manager.Boot(first); err != nil {
		return Model{}, err
	}

	input := opts.Config.Input
	if input.HoldMS <= 0 || input.RepeatMS <= 0 {
		input = config.Default().Input
	}
	hold := time.Duration(input.HoldMS) * time.Millisecond
	repeat := time.Duration(input.RepeatMS) * time.Millisecond

	return Model{
		manager:    manager,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		painter:    NewPainter(opts.Renderer),
		store:      opts.Store,
		config:     cfg,
		level:      opts.Level.ID,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		held:       NewHeldKeys(hold, repeat),
		inputFrame: core.NewInputFrame(),
		now:        time.Now,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouse(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "tab":
		if m.activeKey() == menu.Key {
			sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
			m.scoreboard = &sb
		}
		return m, nil
	}

	actions, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	now := m.now()
	for _, a := range actions {
		if isDirection(a) {
			m.held.Press(a, now)
		}
		m.inputFrame.Set(a)
	}
	return m, nil
}

// handleResize changes the viewport; the running scene keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.manager.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.held.Apply(&m.inputFrame, m.now())

	before := m.activeKey()
	if err := m.manager.Update(m.inputFrame); err != nil {
		m.logger.Error("scene update failed", "err", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	if m.activeKey() != before {
		m.held.Reset()
	}

	m.gameState = m.manager.State()
	m.recordScore()

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordScore saves a finished run once.
func (m *Model) recordScore() {
	if !m.gameState.GameOver {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(game.ID, m.level, m.gameState.Score); err != nil {
		m.logger.Warn("could not save score", "score", m.gameState.Score, "err", err)
		return
	}
	m.logger.Info("score saved", "score", m.gameState.Score, "level", m.level)
}

func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		m.screen.Resize(wsm.Width, wsm.Height)
		m.manager.Resize(wsm.Width, wsm.Height)
	}
	// The simulation is frozen while the scoreboard is open.
	if _, ok := msg.(TickMsg); ok {
		return m, tickCmd(m.config.TickRate)
	}

	next, cmd := m.scoreboard.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		return m, cmd
	}
	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scoreboard = nil
		return m, nil
	}
	m.scoreboard = &sb
	return m, cmd
}

func (m Model) activeKey() string {
	if s := m.manager.Active(); s != nil {
		return s.Key()
	}
	return ""
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.manager.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, config.Dir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", game.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.manager.Render(m.screen)
	return m.painter.Render(m.screen)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Err returns the error that stopped the session, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse releases press the START button
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
