package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/stardrop/internal/assets"
	"github.com/vovakirdan/stardrop/internal/core"
	"github.com/vovakirdan/stardrop/internal/scene"
)

// recorder is a scene that logs its lifecycle calls.
type recorder struct {
	key       string
	events    []string
	createErr error
	state     core.GameState
	next      string
	ctx       *scene.Context
}

func (r *recorder) Key() string { return r.key }
func (r *recorder) Preload(load *assets.Loader) { r.events = append(r.events, "preload") }
func (r *recorder) Render(dst *core.Screen) { dst.DrawText(0, 0, r.key) }
func (r *recorder) Shutdown() { r.events = append(r.events, "shutdown") }
func (r *recorder) State() core.GameState { return r.state }

func (r *recorder) Create(ctx *scene.Context) error {
	r.ctx = ctx
	r.events = append(r.events, "create")
	return r.createErr
}

func (r *recorder) Update(in core.InputFrame) {
	r.events = append(r.events, "update")
	if r.next != "" {
		_ = r.ctx.Scenes.Start(r.next)
		r.next = ""
	}
}

func (r *recorder) Resize(cols, rows int) {
	r.events = append(r.events, "resize")
}

func register(t *testing.T, key string) {
	t.Helper()
	if Exists(key) {
		return
	}
	Register(key, func() scene.Scene { return &recorder{key: key} })
}

func newTestManager(t *testing.T, keys ...string) *Manager {
	t.Helper()
	infos := make([]SceneInfo, 0, len(keys))
	for _, k := range keys {
		register(t, k)
		infos = append(infos, SceneInfo{Key: k})
	}
	m, err := newManager(Options{Runtime: core.DefaultConfig()}, infos)
	if err != nil {
		t.Fatalf("newManager failed: %v", err)
	}
	return m
}

func rec(t *testing.T, m *Manager, key string) *recorder {
	t.Helper()
	s, ok := m.Get(key)
	if !ok {
		t.Fatalf("scene %q not found", key)
	}
	return s.(*recorder)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register(t, "dup")
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("dup", func() scene.Scene { return &recorder{key: "dup"} })
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-scene"); err == nil {
		t.Error("expected error for unknown scene")
	}
	if Exists("no-such-scene") {
		t.Error("unknown scene reported as existing")
	}
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	register(t, "order-a")
	register(t, "order-b")

	var a, b = -1, -1
	for i, info := range List() {
		switch info.Key {
		case "order-a":
			a = i
		case "order-b":
			b = i
		}
	}
	if a < 0 || b < 0 || a > b {
		t.Errorf("order-a at %d, order-b at %d", a, b)
	}
}

func TestManagerPreloadsEveryScene(t *testing.T) {
	m := newTestManager(t, "pre-menu", "pre-game")

	for _, key := range []string{"pre-menu", "pre-game"} {
		r := rec(t, m, key)
		if len(r.events) != 1 || r.events[0] != "preload" {
			t.Errorf("%s events = %v, expected [preload]", key, r.events)
		}
	}
	if m.Active() != nil {
		t.Error("no scene should be active before Boot")
	}
}

func TestBootAndTransition(t *testing.T) {
	m := newTestManager(t, "tr-menu", "tr-game")
	if err := m.Boot("tr-menu"); err != nil {
		t.Fatalf("Boot failed: %v", err)
	}
	if m.Active().Key() != "tr-menu" {
		t.Fatalf("active = %q, expected tr-menu", m.Active().Key())
	}

	menu := rec(t, m, "tr-menu")
	game := rec(t, m, "tr-game")
	menu.next = "tr-game"

	if err := m.Update(core.NewInputFrame()); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if m.Active() != game {
		t.Fatalf("active = %q, expected tr-game", m.Active().Key())
	}

	wantMenu := []string{"preload", "create", "resize", "update", "shutdown"}
	if !equal(menu.events, wantMenu) {
		t.Errorf("menu events = %v, expected %v", menu.events, wantMenu)
	}
	wantGame := []string{"preload", "create", "resize"}
	if !equal(game.events, wantGame) {
		t.Errorf("game events = %v, expected %v", game.events, wantGame)
	}

	// Restarting the active scene re-creates the same instance.
	game.next = "tr-game"
	if err := m.Update(core.NewInputFrame()); err != nil {
		t.Fatal(err)
	}
	if m.Active() != game {
		t.Error("restart replaced the scene instance")
	}
	if got := game.events[len(game.events)-2]; got != "create" {
		t.Errorf("restart events = %v", game.events)
	}
}

func TestStartUnknownScene(t *testing.T) {
	m := newTestManager(t, "unk-menu")
	if err := m.Start("missing"); err == nil {
		t.Error("expected error for unknown scene")
	}
	if err := m.Boot("missing"); err == nil {
		t.Error("expected Boot to fail for unknown scene")
	}
}

func TestCreateErrorIsReturned(t *testing.T) {
	m := newTestManager(t, "err-menu")
	r := rec(t, m, "err-menu")
	r.createErr = errors.New("boom")

	err := m.Boot("err-menu")
	if err == nil || !errors.Is(err, r.createErr) {
		t.Errorf("Boot error = %v, expected to wrap %v", err, r.createErr)
	}
}

func TestResizeAndState(t *testing.T) {
	m := newTestManager(t, "rs-menu", "rs-game")
	if err := m.Boot("rs-menu"); err != nil {
		t.Fatal(err)
	}

	m.Resize(100, 30)
	if rt := m.Context().Runtime; rt.ScreenW != 100 || rt.ScreenH != 30 {
		t.Errorf("runtime size = %dx%d, expected 100x30", rt.ScreenW, rt.ScreenH)
	}

	rec(t, m, "rs-menu").state = core.GameState{Score: 30}
	if m.State().Score != 30 {
		t.Errorf("state score = %d, expected 30", m.State().Score)
	}

	screen := core.NewScreen(20, 2)
	screen.Fill('x')
	m.Render(screen)
	if got := screen.Row(1); got != "                    " {
		t.Errorf("render did not clear the screen: %q", got)
	}
	if got := screen.Row(0); got[:7] != "rs-menu" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestManagerDefaults(t *testing.T) {
	m := newTestManager(t, "def-menu")
	ctx := m.Context()
	if ctx.Logger == nil || ctx.Rand == nil || ctx.Anims == nil || ctx.Loader == nil {
		t.Fatal("manager should fill in default services")
	}
	if ctx.Runtime.Seed == 0 {
		t.Error("seed should be picked when zero")
	}
	if ctx.Scenes != m {
		t.Error("scenes directory should be the manager")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
