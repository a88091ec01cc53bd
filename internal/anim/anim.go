// Package anim plays keyed frame animations over spritesheet frames.
package anim

import (
	"errors"
	"fmt"
	"sync"
)

// RepeatForever loops an animation until another one is played.
const RepeatForever = -1

// FrameRef points at one frame of a loaded texture.
type FrameRef struct {
	Key   string
	Frame int
}

// GenerateFrameNumbers returns frames start..end (inclusive) of a texture.
func GenerateFrameNumbers(key string, start, end int) []FrameRef {
	if end < start {
		return nil
	}
	frames := make([]FrameRef, 0, end-start+1)
	for i := start; i <= end; i++ {
		frames = append(frames, FrameRef{Key: key, Frame: i})
	}
	return frames
}

// Config defines an animation.
type Config struct {
	Key       string
	Frames    []FrameRef
	FrameRate float64 // frames per second
	Repeat    int     // extra plays after the first; RepeatForever loops
}

// Animation is a registered, immutable animation definition.
type Animation struct {
	Key       string
	Frames    []FrameRef
	FrameRate float64
	Repeat    int
}

// Manager holds animation definitions shared by all sprites of a session.
type Manager struct {
	mu    sync.RWMutex
	anims map[string]*Animation
}

// NewManager creates an empty animation manager.
func NewManager() *Manager {
	return &Manager{anims: make(map[string]*Animation)}
}

// Create registers an animation. Creating a key that already exists keeps
// the existing definition, so scenes can be restarted freely.
func (m *Manager) Create(cfg Config) error {
	if cfg.Key == "" {
		return errors.New("anim: empty key")
	}
	if len(cfg.Frames) == 0 {
		return fmt.Errorf("anim: %q has no frames", cfg.Key)
	}
	rate := cfg.FrameRate
	if rate <= 0 {
		rate = 24
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.anims[cfg.Key]; ok {
		return nil
	}
	frames := make([]FrameRef, len(cfg.Frames))
	copy(frames, cfg.Frames)
	m.anims[cfg.Key] = &Animation{
		Key:       cfg.Key,
		Frames:    frames,
		FrameRate: rate,
		Repeat:    cfg.Repeat,
	}
	return nil
}

// Get returns the animation registered under key.
func (m *Manager) Get(key string) (*Animation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.anims[key]
	return a, ok
}

// State is the playback state of one sprite.
type State struct {
	manager *Manager
	current *Animation
	index   int
	plays   int
	elapsed float64
	playing bool
}

// NewState creates playback state bound to a manager.
func NewState(m *Manager) *State {
	return &State{manager: m}
}

// Play starts the animation from its first frame. With ignoreIfPlaying,
// a call for the animation that is already running is a no-op.
func (s *State) Play(key string, ignoreIfPlaying bool) error {
	if ignoreIfPlaying && s.playing && s.current != nil && s.current.Key == key {
		return nil
	}
	a, ok := s.manager.Get(key)
	if !ok {
		return fmt.Errorf("anim: unknown animation %q", key)
	}
	s.current = a
	s.index = 0
	s.plays = 0
	s.elapsed = 0
	s.playing = true
	return nil
}

// Update advances playback by dt seconds.
func (s *State) Update(dt float64) {
	if !s.playing || s.current == nil {
		return
	}
	step := 1 / s.current.FrameRate
	s.elapsed += dt
	for s.elapsed >= step && s.playing {
		s.elapsed -= step
		s.advance()
	}
}

func (s *State) advance() {
	if s.index+1 < len(s.current.Frames) {
		s.index++
		return
	}
	if s.current.Repeat == RepeatForever || s.plays < s.current.Repeat {
		s.plays++
		s.index = 0
		return
	}
	s.playing = false
}

// Key returns the key of the current animation, or "" if none.
func (s *State) Key() string {
	if s.current == nil {
		return ""
	}
	return s.current.Key
}

// Frame returns the frame to draw.
func (s *State) Frame() (FrameRef, bool) {
	if s.current == nil {
		return FrameRef{}, false
	}
	return s.current.Frames[s.index], true
}
