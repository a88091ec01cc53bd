// Package scene defines the contract between game screens and the scene
// manager that hosts them. A scene queues its assets in Preload, builds its
// objects in Create, and is then updated and rendered once per tick.
package scene

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stardrop/internal/anim"
	"github.com/vovakirdan/stardrop/internal/assets"
	"github.com/vovakirdan/stardrop/internal/config"
	"github.com/vovakirdan/stardrop/internal/core"
)

// Scene is one game screen.
type Scene interface {
	// Key uniquely names the scene, e.g. "Game" or "MainMenu".
	Key() string

	// Preload queues the scene's assets. It is called once per session,
	// before any scene is created.
	Preload(load *assets.Loader)

	// Create builds the scene's objects. It runs every time the scene is
	// started; state kept on the scene value survives between starts.
	Create(ctx *Context) error

	// Update advances the scene by one tick.
	Update(in core.InputFrame)

	// Render draws the scene into dst, which has been cleared.
	Render(dst *core.Screen)

	// Resize is called when the viewport changes size.
	Resize(cols, rows int)
}

// Shutdowner is implemented by scenes that release resources when another
// scene is started in their place.
type Shutdowner interface {
	Shutdown()
}

// Stater is implemented by scenes that report score and game over.
type Stater interface {
	State() core.GameState
}

// Directory gives scenes access to their live siblings.
type Directory interface {
	// Get returns the live instance registered under key.
	Get(key string) (Scene, bool)
	// Start switches to the scene registered under key after the current tick.
	Start(key string) error
}

// ScoreStore is the persistence a scene may consult. It may be nil.
type ScoreStore interface {
	// HighScore returns the best stored score for gameID on level.
	HighScore(gameID, level string) (int, error)
}

// Context carries the session services a scene is created with.
type Context struct {
	Runtime core.RuntimeConfig
	Config  config.Config
	Level   config.Level
	Loader  *assets.Loader
	Anims   *anim.Manager
	Scenes  Directory
	Store   ScoreStore
	Logger  *log.Logger
	Rand    *rand.Rand
}
