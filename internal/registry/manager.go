package registry

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stardrop/internal/anim"
	"github.com/vovakirdan/stardrop/internal/assets"
	"github.com/vovakirdan/stardrop/internal/config"
	"github.com/vovakirdan/stardrop/internal/core"
	"github.com/vovakirdan/stardrop/internal/scene"
)

// Options configure a Manager.
type Options struct {
	Runtime core.RuntimeConfig
	Config  config.Config
	Level   config.Level
	Store   scene.ScoreStore
	Logger  *log.Logger
	Loader  *assets.Loader // nil uses the embedded assets
}

// Manager owns one live instance of every registered scene for a session
// and runs whichever one is active.
type Manager struct {
	ctx     scene.Context
	scenes  map[string]scene.Scene
	active  scene.Scene
	pending string
}

// NewManager instantiates and preloads every registered scene.
func NewManager(opts Options) (*Manager, error) {
	return newManager(opts, List())
}

func newManager(opts Options, infos []SceneInfo) (*Manager, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Loader == nil {
		opts.Loader = assets.NewLoader(nil)
	}

	m := &Manager{
		scenes: make(map[string]scene.Scene, len(infos)),
	}
	m.ctx = scene.Context{
		Runtime: opts.Runtime,
		Config:  opts.Config,
		Level:   opts.Level,
		Loader:  opts.Loader,
		Anims:   anim.NewManager(),
		Scenes:  m,
		Store:   opts.Store,
		Logger:  opts.Logger,
		Rand:    rand.New(rand.NewSource(opts.Runtime.Seed)),
	}

	for _, info := range infos {
		s, err := Create(info.Key)
		if err != nil {
			return nil, err
		}
		m.scenes[info.Key] = s
		s.Preload(m.ctx.Loader)
	}

	if err := m.ctx.Loader.Start(); err != nil {
		return nil, fmt.Errorf("registry: preload failed: %w", err)
	}
	return m, nil
}

// Boot creates and activates the first scene immediately.
func (m *Manager) Boot(key string) error {
	if err := m.Start(key); err != nil {
		return err
	}
	return m.applyPending()
}

// Get returns the live scene registered under key.
func (m *Manager) Get(key string) (scene.Scene, bool) {
	s, ok := m.scenes[key]
	return s, ok
}

// Start schedules a switch to key, applied after the current tick.
func (m *Manager) Start(key string) error {
	if _, ok := m.scenes[key]; !ok {
		return fmt.Errorf("registry: unknown scene %q", key)
	}
	m.pending = key
	return nil
}

// Active returns the running scene, or nil before Boot.
func (m *Manager) Active() scene.Scene {
	return m.active
}

// Context returns the services shared by the session's scenes.
func (m *Manager) Context() *scene.Context {
	return &m.ctx
}

// Update advances the active scene, then performs any requested switch.
func (m *Manager) Update(in core.InputFrame) error {
	if m.active != nil {
		m.active.Update(in)
	}
	return m.applyPending()
}

func (m *Manager) applyPending() error {
	if m.pending == "" {
		return nil
	}
	next := m.scenes[m.pending]
	m.pending = ""

	if sd, ok := m.active.(scene.Shutdowner); ok {
		sd.Shutdown()
	}
	m.active = next

	if err := next.Create(&m.ctx); err != nil {
		return fmt.Errorf("registry: creating scene %q: %w", next.Key(), err)
	}
	next.Resize(m.ctx.Runtime.ScreenW, m.ctx.Runtime.ScreenH)
	m.ctx.Logger.Debug("scene started", "scene", next.Key())
	return nil
}

// Render draws the active scene.
func (m *Manager) Render(dst *core.Screen) {
	dst.Clear()
	if m.active != nil {
		m.active.Render(dst)
	}
}

// Resize forwards a viewport change to the active scene and remembers it
// for scenes started later.
func (m *Manager) Resize(cols, rows int) {
	m.ctx.Runtime.ScreenW = cols
	m.ctx.Runtime.ScreenH = rows
	if m.active != nil {
		m.active.Resize(cols, rows)
	}
}

// State reports the active scene's state, or the zero state when the
// active scene does not track one.
func (m *Manager) State() core.GameState {
	if st, ok := m.active.(scene.Stater); ok {
		return st.State()
	}
	return core.GameState{}
}

